package server

import (
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/camerarecorder/camera-streaming-daemon/internal/camera"
	"github.com/camerarecorder/camera-streaming-daemon/internal/config"
	"github.com/camerarecorder/camera-streaming-daemon/internal/constants"
	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/mavlink"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
	"github.com/camerarecorder/camera-streaming-daemon/internal/registry"
	"github.com/camerarecorder/camera-streaming-daemon/internal/rtsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSocket is an in-memory UDPSocket: inbound() feeds bytes as if
// received from peer, and sent frames land in outbox for assertions.
type fakeSocket struct {
	mu      sync.Mutex
	inbound chan []byte
	outbox  [][]byte
	closed  bool
	peer    *net.UDPAddr
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{
		inbound: make(chan []byte, 16),
		peer:    &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 14550},
	}
}

func (f *fakeSocket) deliver(b []byte) { f.inbound <- b }

func (f *fakeSocket) ReadFromUDP(b []byte) (int, *net.UDPAddr, error) {
	select {
	case data, ok := <-f.inbound:
		if !ok {
			return 0, nil, &net.OpError{Op: "read", Err: errClosed{}}
		}
		n := copy(b, data)
		return n, f.peer, nil
	case <-time.After(50 * time.Millisecond):
		return 0, nil, timeoutError{}
	}
}

func (f *fakeSocket) WriteToUDP(b []byte, addr *net.UDPAddr) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]byte, len(b))
	copy(cp, b)
	f.outbox = append(f.outbox, cp)
	return len(b), nil
}

func (f *fakeSocket) SetReadDeadline(time.Time) error { return nil }

func (f *fakeSocket) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.inbound)
	}
	return nil
}

// reset clears the outbox, letting a test start a fresh assertion
// window (e.g. between the S3 and S4 halves of the same scenario).
func (f *fakeSocket) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outbox = nil
}

func (f *fakeSocket) frames(t *testing.T) []mavlink.Frame {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	parser := mavlink.NewParser()
	var out []mavlink.Frame
	for _, raw := range f.outbox {
		for _, b := range raw {
			if fr, ok := parser.Feed(b); ok {
				out = append(out, fr)
			}
		}
	}
	return out
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type errClosed struct{}

func (errClosed) Error() string { return "use of closed network connection" }

func testConfig() *config.Config {
	return &config.Config{
		MAVLink: config.MAVLinkConfig{
			Port:           14550,
			SystemID:       1,
			BroadcastAddr:  "127.0.0.1:14551",
			RTSPServerAddr: "127.0.0.1:8554",
		},
	}
}

func testDevice(t *testing.T) *camera.GazeboSimDevice {
	t.Helper()
	schema := paramstore.NewSchema(paramstore.DefaultEntries())
	info := camera.Info{Vendor: "Acme", Model: "SimCam", ResolutionHorizontal: 1920, ResolutionVertical: 1080}
	formats := []camera.Format{
		{PixelFormat: "YUYV", FrameSizes: []camera.FrameSize{
			{Width: 640, Height: 480},
			{Width: 1280, Height: 720},
			{Width: 1920, Height: 1080},
		}},
	}
	logging.Configure(&config.LoggingConfig{Level: "debug", ConsoleEnabled: true})
	return camera.NewGazeboSimDevice(info, formats, schema, logging.GetLogger("test-device"))
}

func newTestServer(t *testing.T) (*Server, *fakeSocket, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	sock := newFakeSocket()
	logging.Configure(&config.LoggingConfig{Level: "debug", ConsoleEnabled: true})
	srv := New(testConfig(), sock, reg, rtsp.DefaultURIBuilder{}, logging.GetLogger("test-server"))
	return srv, sock, reg
}

func runServer(t *testing.T, srv *Server) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("server did not stop")
		}
	})
	return cancel
}

func sendCommandLong(t *testing.T, sock *fakeSocket, compID uint8, command uint16, params [7]float32) {
	t.Helper()
	cmd := mavlink.CommandLong{Param: params, Command: command, TargetSystem: 1, TargetComponent: compID}
	frame := mavlink.Frame{SystemID: 255, ComponentID: 0, MessageID: constants.MsgIDCommandLong, Payload: mavlink.EncodeCommandLong(cmd)}
	raw, err := mavlink.EncodeFrame(frame)
	require.NoError(t, err)
	sock.deliver(raw)
}

func waitForFrame(t *testing.T, sock *fakeSocket, msgID uint32) mavlink.Frame {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, f := range sock.frames(t) {
			if f.MessageID == msgID {
				return f
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for message id %d", msgID)
	return mavlink.Frame{}
}

// assertNoFrame waits out the window and fails if msgID ever appears in
// the socket's outbox — used to pin down silent-drop behavior (property
// 7, the unsupported-command path, and short-circuited info requests).
func assertNoFrame(t *testing.T, sock *fakeSocket, msgID uint32, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		for _, f := range sock.frames(t) {
			if f.MessageID == msgID {
				t.Fatalf("unexpected message id %d observed", msgID)
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func sendSetVideoStreamSettings(t *testing.T, sock *fakeSocket, compID, streamID uint8, resH, resV uint16) {
	t.Helper()
	set := mavlink.SetVideoStreamSettings{
		TargetSystem: 1, TargetComponent: compID, StreamID: streamID,
		ResolutionH: resH, ResolutionV: resV,
	}
	frame := mavlink.Frame{SystemID: 255, MessageID: constants.MsgIDSetVideoStreamSettings, Payload: mavlink.EncodeSetVideoStreamSettings(set)}
	raw, err := mavlink.EncodeFrame(frame)
	require.NoError(t, err)
	sock.deliver(raw)
}

func TestServer_EmitsHeartbeatsForEachRegisteredDevice(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	f := waitForFrame(t, sock, constants.MsgIDHeartbeat)
	assert.Equal(t, compID, f.ComponentID)
	hb, err := mavlink.DecodeHeartbeat(f.Payload)
	require.NoError(t, err)
	assert.Equal(t, constants.HeartbeatType, hb.Type)
}

// TestServer_RequestCameraInformationRepliesAndAcks exercises S1: a
// param1=1 request gets one CAMERA_INFORMATION followed by one
// COMMAND_ACK{ACCEPTED}.
func TestServer_RequestCameraInformationRepliesAndAcks(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	sendCommandLong(t, sock, compID, constants.CmdRequestCameraInformation, [7]float32{1})

	info := waitForFrame(t, sock, constants.MsgIDCameraInformation)
	decoded, err := mavlink.DecodeCameraInformation(info.Payload)
	require.NoError(t, err)
	assert.Equal(t, "Acme", decoded.VendorName)
	assert.Equal(t, "SimCam", decoded.ModelName)

	ack := waitForFrame(t, sock, constants.MsgIDCommandAck)
	ackMsg, err := mavlink.DecodeCommandAck(ack.Payload)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultAccepted, ackMsg.Result)
}

// TestServer_RequestCameraInformationShortCircuitsOnParam1Zero exercises
// S2: param1=0 acks ACCEPTED but sends zero CAMERA_INFORMATION replies.
func TestServer_RequestCameraInformationShortCircuitsOnParam1Zero(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	sendCommandLong(t, sock, compID, constants.CmdRequestCameraInformation, [7]float32{0})

	ack := waitForFrame(t, sock, constants.MsgIDCommandAck)
	ackMsg, err := mavlink.DecodeCommandAck(ack.Payload)
	require.NoError(t, err)
	assert.Equal(t, constants.ResultAccepted, ackMsg.Result)

	for _, f := range sock.frames(t) {
		assert.NotEqual(t, uint32(constants.MsgIDCameraInformation), f.MessageID, "param1=0 must not emit CAMERA_INFORMATION")
	}
}

// TestServer_UnsupportedCommandIsDroppedSilently: spec.md §4.8 step 2 —
// commands outside the handled set are logged at debug and dropped,
// with no COMMAND_ACK at all.
func TestServer_UnsupportedCommandIsDroppedSilently(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	sendCommandLong(t, sock, compID, 65535, [7]float32{})

	assertNoFrame(t, sock, constants.MsgIDCommandAck, 300*time.Millisecond)
}

// TestServer_TargetFilterDropsWrongSystem exercises testable property
// 7: a COMMAND_LONG with the wrong target_system produces no outbound
// traffic whatsoever, even though the component is valid and param1=1.
func TestServer_TargetFilterDropsWrongSystem(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	cmd := mavlink.CommandLong{Param: [7]float32{1}, Command: constants.CmdRequestCameraInformation, TargetSystem: 2, TargetComponent: compID}
	frame := mavlink.Frame{SystemID: 255, MessageID: constants.MsgIDCommandLong, Payload: mavlink.EncodeCommandLong(cmd)}
	raw, err := mavlink.EncodeFrame(frame)
	require.NoError(t, err)
	sock.deliver(raw)

	assertNoFrame(t, sock, constants.MsgIDCameraInformation, 300*time.Millisecond)
	assertNoFrame(t, sock, constants.MsgIDCommandAck, 50*time.Millisecond)
}

// TestServer_TargetFilterDropsOutOfRangeComponent: property 7's other
// half — a target_component outside [CAMERA, CAMERA6] is also dropped
// silently, independent of whether any device is registered there.
func TestServer_TargetFilterDropsOutOfRangeComponent(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	_, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	sendCommandLong(t, sock, 42, constants.CmdRequestCameraInformation, [7]float32{1})

	assertNoFrame(t, sock, constants.MsgIDCameraInformation, 300*time.Millisecond)
	assertNoFrame(t, sock, constants.MsgIDCommandAck, 50*time.Millisecond)
}

// TestServer_StreamURISelectionAndClear exercises S3 then S4 in
// sequence on the same registered device.
func TestServer_StreamURISelectionAndClear(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	// S3: select under a (1000, 1000) ceiling. SET_VIDEO_STREAM_SETTINGS
	// itself must produce no reply of its own.
	sendSetVideoStreamSettings(t, sock, compID, 1, 1000, 1000)
	assertNoFrame(t, sock, constants.MsgIDVideoStreamInformation, 200*time.Millisecond)

	sendCommandLong(t, sock, compID, constants.CmdRequestVideoStreamInformation, [7]float32{1, 1})
	info := waitForFrame(t, sock, constants.MsgIDVideoStreamInformation)
	decoded, err := mavlink.DecodeVideoStreamInformation(info.Payload)
	require.NoError(t, err)
	assert.EqualValues(t, 640, decoded.ResolutionH)
	assert.EqualValues(t, 480, decoded.ResolutionV)
	assert.True(t, strings.HasSuffix(decoded.URI, "?width=640&height=480"), "got URI %q", decoded.URI)

	sock.reset()

	// S4: clear the selection, then request info again.
	sendSetVideoStreamSettings(t, sock, compID, 1, 0, 0)
	sendCommandLong(t, sock, compID, constants.CmdRequestVideoStreamInformation, [7]float32{1, 1})

	info2 := waitForFrame(t, sock, constants.MsgIDVideoStreamInformation)
	decoded2, err := mavlink.DecodeVideoStreamInformation(info2.Payload)
	require.NoError(t, err)
	assert.EqualValues(t, 1920, decoded2.ResolutionH)
	assert.EqualValues(t, 1080, decoded2.ResolutionV)
	assert.False(t, strings.Contains(decoded2.URI, "?width="), "got URI %q", decoded2.URI)
}

// TestServer_RequestVideoStreamInformationHasNoAck: §4.9 states no ack
// is sent for this command.
func TestServer_RequestVideoStreamInformationHasNoAck(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	sendCommandLong(t, sock, compID, constants.CmdRequestVideoStreamInformation, [7]float32{1, 1})
	waitForFrame(t, sock, constants.MsgIDVideoStreamInformation)
	assertNoFrame(t, sock, constants.MsgIDCommandAck, 200*time.Millisecond)
}

// TestServer_RequestVideoStreamInformationRequiresActionOne: action !=
// 1 (param2) yields no reply at all.
func TestServer_RequestVideoStreamInformationRequiresActionOne(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	sendCommandLong(t, sock, compID, constants.CmdRequestVideoStreamInformation, [7]float32{1, 0})
	assertNoFrame(t, sock, constants.MsgIDVideoStreamInformation, 300*time.Millisecond)
}

func TestServer_ParamExtSetRejectionEchoesCurrentValue(t *testing.T) {
	srv, sock, reg := newTestServer(t)
	dev := testDevice(t)
	dev.Reject["image-size"] = true
	compID, err := srv.RegisterDevice(dev)
	require.NoError(t, err)
	runServer(t, srv)

	current, err := dev.GetParam("image-size")
	require.NoError(t, err)

	attempted := paramstore.EncodeUint32(current.DecodeUint32() + 1)
	set := mavlink.ParamExtSet{TargetSystem: 1, TargetComponent: compID, ParamType: uint8(paramstore.TypeUint32), ParamID: "image-size"}
	copy(set.ParamValue[:], attempted[:])
	frame := mavlink.Frame{SystemID: 255, MessageID: constants.MsgIDParamExtSet, Payload: mavlink.EncodeParamExtSet(set)}
	raw, err := mavlink.EncodeFrame(frame)
	require.NoError(t, err)
	sock.deliver(raw)

	ack := waitForFrame(t, sock, constants.MsgIDParamExtAck)
	ackMsg, err := mavlink.DecodeParamExtAck(ack.Payload)
	require.NoError(t, err)
	assert.NotEqual(t, constants.ParamAckAccepted, ackMsg.ParamResult)

	var echoed paramstore.Value
	copy(echoed[:], ackMsg.ParamValue[:])
	assert.Equal(t, current.DecodeUint32(), echoed.DecodeUint32(), "rejected set must echo the device's real current value")

	_ = reg
}

func TestServer_ParamExtRequestListEmitsEveryKnownParam(t *testing.T) {
	srv, sock, _ := newTestServer(t)
	compID, err := srv.RegisterDevice(testDevice(t))
	require.NoError(t, err)
	runServer(t, srv)

	frame := mavlink.Frame{SystemID: 255, MessageID: constants.MsgIDParamExtRequestList, Payload: mavlink.EncodeParamExtRequestList(mavlink.ParamExtRequestList{TargetSystem: 1, TargetComponent: compID})}
	raw, err := mavlink.EncodeFrame(frame)
	require.NoError(t, err)
	sock.deliver(raw)

	deadline := time.Now().Add(2 * time.Second)
	seen := map[string]bool{}
	for time.Now().Before(deadline) && len(seen) < paramstore.NewSchema(paramstore.DefaultEntries()).Len() {
		for _, f := range sock.frames(t) {
			if f.MessageID != constants.MsgIDParamExtValue {
				continue
			}
			v, err := mavlink.DecodeParamExtValue(f.Payload)
			require.NoError(t, err)
			seen[v.ParamID] = true
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.Equal(t, paramstore.NewSchema(paramstore.DefaultEntries()).Len(), len(seen))
}
