package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/camerarecorder/camera-streaming-daemon/internal/camera"
	"github.com/camerarecorder/camera-streaming-daemon/internal/config"
	"github.com/camerarecorder/camera-streaming-daemon/internal/constants"
	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/mavlink"
	"github.com/camerarecorder/camera-streaming-daemon/internal/registry"
	"github.com/camerarecorder/camera-streaming-daemon/internal/rtsp"
	"golang.org/x/sync/errgroup"
)

type datagram struct {
	data []byte
	from *net.UDPAddr
}

// Server is the daemon's runtime: a UDP transport, a component
// registry, and the single dispatch loop that owns all mutable state
// (spec.md C8-C11).
type Server struct {
	cfg    *config.Config
	logger *logging.Logger

	socket     UDPSocket
	registry   *registry.Registry
	uriBuilder rtsp.URIBuilder

	incoming chan datagram
	stopCh   chan struct{}
	stopOnce sync.Once

	mu  sync.Mutex // guards seq; only the dispatch/heartbeat goroutines touch it
	seq uint8
}

// New constructs a Server. socket must already be bound; the caller
// owns opening it, and Stop closes it.
func New(cfg *config.Config, socket UDPSocket, reg *registry.Registry, uriBuilder rtsp.URIBuilder, logger *logging.Logger) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		socket:     socket,
		registry:   reg,
		uriBuilder: uriBuilder,
		incoming:   make(chan datagram, 64),
		stopCh:     make(chan struct{}),
	}
}

// RegisterDevice assigns dev a component ID, logging the outcome.
func (s *Server) RegisterDevice(dev camera.Device) (uint8, error) {
	id, err := s.registry.Add(dev)
	if err != nil {
		s.logger.WithError(err).Warn("failed to register camera device")
		return 0, err
	}
	s.logger.WithFields(logging.Fields{"component_id": id, "model": dev.Info().Model}).Info("registered camera device")
	return id, nil
}

// Run starts the reader, dispatch, and heartbeat goroutines and blocks
// until ctx is canceled or one of them returns an error.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.readLoop(gctx) })
	g.Go(func() error { return s.dispatchLoop(gctx) })
	g.Go(func() error { return s.heartbeatLoop(gctx) })

	err := g.Wait()
	if err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// Stop signals all loops to exit and closes the transport. Idempotent.
func (s *Server) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stopCh) })

	done := make(chan struct{})
	go func() {
		_ = s.socket.Close()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) readLoop(ctx context.Context) error {
	buf := make([]byte, constants.UDPReadBufferSize)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		default:
		}

		_ = s.socket.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
		n, addr, err := s.socket.ReadFromUDP(buf)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			select {
			case <-s.stopCh:
				return nil
			default:
			}
			return fmt.Errorf("server: udp read: %w", err)
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		select {
		case s.incoming <- datagram{data: data, from: addr}:
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		}
	}
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	te, ok := err.(timeouter)
	return ok && te.Timeout()
}

func (s *Server) dispatchLoop(ctx context.Context) error {
	parser := mavlink.NewParser()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case dg := <-s.incoming:
			for _, b := range dg.data {
				frame, ok := parser.Feed(b)
				if !ok {
					continue
				}
				s.onFrame(ctx, frame, dg.from)
			}
		}
	}
}

func (s *Server) heartbeatLoop(ctx context.Context) error {
	ticker := time.NewTicker(constants.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.sendHeartbeat()
		}
	}
}

func (s *Server) sendHeartbeat() {
	hb := mavlink.Heartbeat{
		Type:           constants.HeartbeatType,
		Autopilot:      constants.HeartbeatAutopilot,
		BaseMode:       constants.HeartbeatBaseMode,
		SystemStatus:   constants.HeartbeatSystemStatus,
		MAVLinkVersion: constants.MAVLinkVersion,
	}
	for _, compID := range s.registry.ListComponentIDs() {
		s.broadcast(constants.MsgIDHeartbeat, compID, mavlink.EncodeHeartbeat(hb))
	}
}

func (s *Server) nextSeq() uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.seq
	s.seq++
	return seq
}

// broadcast encodes and sends a frame from compID to the configured
// broadcast address.
func (s *Server) broadcast(msgID uint32, compID uint8, payload []byte) {
	s.sendTo(msgID, compID, payload, nil)
}

// sendTo encodes and sends a frame to addr, or to the configured
// broadcast address when addr is nil (the GCS is typically discovered
// by its source address on the first datagram it sends us).
func (s *Server) sendTo(msgID uint32, compID uint8, payload []byte, addr *net.UDPAddr) {
	frame := mavlink.Frame{
		Sequence:    s.nextSeq(),
		SystemID:    s.cfg.MAVLink.SystemID,
		ComponentID: compID,
		MessageID:   msgID,
		Payload:     payload,
	}
	raw, err := mavlink.EncodeFrame(frame)
	if err != nil {
		s.logger.WithError(err).WithFields(logging.Fields{"msg_id": msgID}).Warn("failed to encode outgoing frame")
		return
	}

	target := addr
	if target == nil {
		resolved, err := net.ResolveUDPAddr("udp", s.cfg.MAVLink.BroadcastAddr)
		if err != nil {
			s.logger.WithError(err).Warn("failed to resolve broadcast address")
			return
		}
		target = resolved
	}

	if _, err := s.socket.WriteToUDP(raw, target); err != nil {
		s.logger.WithError(err).Warn("failed to send frame")
	}
}
