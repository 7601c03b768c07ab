package server

import (
	"context"
	"fmt"
	"math"
	"net"

	"github.com/camerarecorder/camera-streaming-daemon/internal/camera"
	"github.com/camerarecorder/camera-streaming-daemon/internal/constants"
	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/mavlink"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
	"github.com/camerarecorder/camera-streaming-daemon/internal/rtsp"
)

// onFrame is the dispatch loop's single entry point for a decoded
// frame: it resolves the target component and routes by MessageID,
// replying to from (the GCS' source address).
func (s *Server) onFrame(ctx context.Context, frame mavlink.Frame, from *net.UDPAddr) {
	logger := s.logger.WithFields(logging.Fields{
		"msg_id": frame.MessageID, "from_component": frame.ComponentID,
	})

	switch frame.MessageID {
	case constants.MsgIDCommandLong:
		cmd, err := mavlink.DecodeCommandLong(frame.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping malformed COMMAND_LONG")
			return
		}
		s.handleCommandLong(cmd, from)

	case constants.MsgIDSetVideoStreamSettings:
		set, err := mavlink.DecodeSetVideoStreamSettings(frame.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping malformed SET_VIDEO_STREAM_SETTINGS")
			return
		}
		s.handleSetVideoStreamSettings(set, from)

	case constants.MsgIDParamExtRequestRead:
		req, err := mavlink.DecodeParamExtRequestRead(frame.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping malformed PARAM_EXT_REQUEST_READ")
			return
		}
		s.handleParamExtRequestRead(req, from)

	case constants.MsgIDParamExtRequestList:
		req, err := mavlink.DecodeParamExtRequestList(frame.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping malformed PARAM_EXT_REQUEST_LIST")
			return
		}
		s.handleParamExtRequestList(req, from)

	case constants.MsgIDParamExtSet:
		set, err := mavlink.DecodeParamExtSet(frame.Payload)
		if err != nil {
			logger.WithError(err).Debug("dropping malformed PARAM_EXT_SET")
			return
		}
		s.handleParamExtSet(set, from)

	default:
		// Unrecognized or not-yet-relevant message: silently ignored,
		// matching the parser's own resync-on-garbage behavior.
	}
}

func (s *Server) lookupTarget(compID uint8) (camera.Device, bool) {
	dev, err := s.registry.Lookup(compID)
	if err != nil {
		return nil, false
	}
	return dev, true
}

func (s *Server) ackCommand(compID uint8, command uint16, result uint8, addr *net.UDPAddr) {
	ack := mavlink.CommandAck{Command: command, Result: result}
	s.sendTo(constants.MsgIDCommandAck, compID, mavlink.EncodeCommandAck(ack), addr)
}

// handleCommandLong enforces the target filter (spec.md §4.8 step 1,
// testable property 7) before routing: a command addressed to the
// wrong system, or to a component outside the camera range, produces
// no outbound traffic at all — not even an ack.
func (s *Server) handleCommandLong(cmd mavlink.CommandLong, addr *net.UDPAddr) {
	if cmd.TargetSystem != s.cfg.MAVLink.SystemID {
		return
	}
	if cmd.TargetComponent < constants.CompIDCameraFirst || cmd.TargetComponent > constants.CompIDCameraLast {
		return
	}

	switch cmd.Command {
	case constants.CmdRequestCameraInformation:
		if cmd.Param[0] != 1 {
			s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultAccepted, addr)
			return
		}
		dev, ok := s.lookupTarget(cmd.TargetComponent)
		if !ok {
			s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultFailed, addr)
			return
		}
		s.sendCameraInformation(cmd.TargetComponent, dev, addr)
		s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultAccepted, addr)

	case constants.CmdRequestCameraSettings:
		if cmd.Param[0] != 1 {
			s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultAccepted, addr)
			return
		}
		dev, ok := s.lookupTarget(cmd.TargetComponent)
		if !ok {
			s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultFailed, addr)
			return
		}
		s.sendCameraSettings(cmd.TargetComponent, dev, addr)
		s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultAccepted, addr)

	case constants.CmdRequestStorageInformation:
		if cmd.Param[0] != 1 {
			s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultAccepted, addr)
			return
		}
		if _, ok := s.lookupTarget(cmd.TargetComponent); !ok {
			s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultFailed, addr)
			return
		}
		s.sendStorageInformation(cmd.TargetComponent, addr)
		s.ackCommand(cmd.TargetComponent, cmd.Command, constants.ResultAccepted, addr)

	case constants.CmdRequestVideoStreamInformation:
		// No ack is sent for this command; the source omits it.
		if cmd.Param[1] != 1 {
			return
		}
		dev, ok := s.lookupTarget(cmd.TargetComponent)
		if !ok {
			return
		}
		s.sendMatchingVideoStreamInformation(cmd.TargetComponent, dev, uint8(cmd.Param[0]), addr)

	default:
		s.logger.WithFields(logging.Fields{"command": cmd.Command}).Debug("unsupported MAV_CMD, dropping")
	}
}

func (s *Server) sendCameraInformation(compID uint8, dev camera.Device, addr *net.UDPAddr) {
	info := dev.Info()
	msg := mavlink.CameraInformation{
		FirmwareVersion:      info.FirmwareVersion,
		FocalLength:          info.FocalLength,
		SensorSizeH:          info.SensorWidth,
		SensorSizeV:          info.SensorHeight,
		ResolutionH:          info.ResolutionHorizontal,
		ResolutionV:          info.ResolutionVertical,
		CamDefinitionVersion: info.DefinitionVersion,
		Flags:                info.Flags,
		VendorName:           info.Vendor,
		ModelName:            info.Model,
		LensID:               info.LensID,
		CamDefinitionURI:     info.DefinitionURI,
	}
	s.sendTo(constants.MsgIDCameraInformation, compID, mavlink.EncodeCameraInformation(msg), addr)
}

func (s *Server) sendCameraSettings(compID uint8, dev camera.Device, addr *net.UDPAddr) {
	// ModeID is wire-fixed to 1 regardless of the device's actual mode
	// (spec decision, see DESIGN.md); zoom/focus are not modeled by any
	// plugin today, so they report zero. The real mode is still logged
	// for operators even though it isn't placed on the wire.
	s.logger.WithFields(logging.Fields{"component_id": compID, "actual_mode": dev.GetMode()}).Debug("camera settings requested")
	msg := mavlink.CameraSettings{
		ModeID: 1,
	}
	s.sendTo(constants.MsgIDCameraSettings, compID, mavlink.EncodeCameraSettings(msg), addr)
}

// sendStorageInformation reports a single fixed storage slot. This
// daemon streams over RTSP and never writes to local storage itself,
// so the numbers are static placeholders a GCS can display without
// erroring on a missing STORAGE_INFORMATION reply (spec.md §9).
func (s *Server) sendStorageInformation(compID uint8, addr *net.UDPAddr) {
	msg := mavlink.StorageInformation{
		TotalCapacity:     50.0,
		UsedCapacity:      0.0,
		AvailableCapacity: 50.0,
		ReadSpeed:         128,
		WriteSpeed:        128,
		StorageID:         1,
		StorageCount:      1,
		Status:            2, // STORAGE_STATUS_READY (formatted)
	}
	s.sendTo(constants.MsgIDStorageInformation, compID, mavlink.EncodeStorageInformation(msg), addr)
}

// sendMatchingVideoStreamInformation emits one VIDEO_STREAM_INFORMATION
// per stream whose id matches cameraID, or every stream if cameraID==0
// (spec.md §4.9).
func (s *Server) sendMatchingVideoStreamInformation(compID uint8, dev camera.Device, cameraID uint8, addr *net.UDPAddr) {
	streams := dev.Streams()
	for _, stream := range streams {
		if cameraID != 0 && stream.ID != cameraID {
			continue
		}
		s.sendVideoStreamInformation(compID, stream, uint8(len(streams)), addr)
	}
}

func (s *Server) sendVideoStreamInformation(compID uint8, stream *camera.Stream, count uint8, addr *net.UDPAddr) {
	msg := mavlink.VideoStreamInformation{
		StreamID: stream.ID,
		Count:    count,
	}

	fs, selected := stream.Selected()
	if !selected {
		if fi, si, ok := camera.ResolveFrameSize(stream, math.MaxUint32, math.MaxUint32); ok {
			fs = stream.Formats[fi].FrameSizes[si]
		}
	}
	msg.ResolutionH = uint16(fs.Width)
	msg.ResolutionV = uint16(fs.Height)

	if stream.IsStreaming {
		msg.Flags = 1 // VIDEO_STREAM_STATUS_FLAGS_RUNNING
	}

	// The query suffix reflects an explicit selection only; the
	// resolver-default fallback above is never advertised in the URI.
	var querySuffix string
	if selected {
		querySuffix = fmt.Sprintf("width=%d&height=%d", fs.Width, fs.Height)
	}

	pathName := rtsp.PathName(compID, stream.ID)
	if uri, err := s.uriBuilder.BuildURI(s.cfg.MAVLink.RTSPServerAddr, pathName, querySuffix); err == nil {
		msg.URI = uri
	}
	s.sendTo(constants.MsgIDVideoStreamInformation, compID, mavlink.EncodeVideoStreamInformation(msg), addr)
}

// handleSetVideoStreamSettings commits a frame-size selection (or
// clears it) with no reply, per spec.md §4.9.
func (s *Server) handleSetVideoStreamSettings(set mavlink.SetVideoStreamSettings, addr *net.UDPAddr) {
	dev, ok := s.lookupTarget(set.TargetComponent)
	if !ok {
		return
	}
	var target *camera.Stream
	for _, stream := range dev.Streams() {
		if stream.ID == set.StreamID {
			target = stream
			break
		}
	}
	if target == nil {
		s.logger.WithFields(logging.Fields{"stream_id": set.StreamID}).Debug("set_video_stream_settings: unknown stream")
		return
	}

	if set.ResolutionH == 0 || set.ResolutionV == 0 {
		target.ClearSelection()
		return
	}
	camera.SelectFrameSize(target, uint32(set.ResolutionH), uint32(set.ResolutionV))
}

func (s *Server) handleParamExtRequestList(req mavlink.ParamExtRequestList, addr *net.UDPAddr) {
	dev, ok := s.lookupTarget(req.TargetComponent)
	if !ok {
		return
	}
	entries := dev.ParamList()
	for i, entry := range entries {
		typ, _ := dev.GetParamType(entry.Name)
		s.sendParamExtValue(req.TargetComponent, entry.Name, entry.Value, typ, uint16(i), uint16(len(entries)), addr)
	}
}

func (s *Server) handleParamExtRequestRead(req mavlink.ParamExtRequestRead, addr *net.UDPAddr) {
	dev, ok := s.lookupTarget(req.TargetComponent)
	if !ok {
		return
	}
	name := req.ParamID
	if req.ParamIndex >= 0 {
		entries := dev.ParamList()
		idx := int(req.ParamIndex)
		if idx >= len(entries) {
			return
		}
		name = entries[idx].Name
	}

	value, err := dev.GetParam(name)
	if err != nil {
		return
	}
	typ, _ := dev.GetParamType(name)
	s.sendParamExtValue(req.TargetComponent, name, value, typ, 0, 0, addr)
}

func (s *Server) handleParamExtSet(set mavlink.ParamExtSet, addr *net.UDPAddr) {
	dev, ok := s.lookupTarget(set.TargetComponent)
	if !ok {
		return
	}

	var value paramstore.Value
	copy(value[:], set.ParamValue[:])
	declared := paramstore.Type(set.ParamType)

	err := dev.SetParam(set.ParamID, value, declared)
	if err != nil {
		// Echo the device's actual current value on rejection, per
		// PARAM_EXT_SET's "always reflect ground truth" contract.
		current, getErr := dev.GetParam(set.ParamID)
		result := uint8(constants.ParamAckFailed)
		if getErr != nil {
			current = value
			result = constants.ParamAckValueUnsupported
		}
		s.sendParamExtAck(set.TargetComponent, set.ParamID, current, set.ParamType, result, addr)
		return
	}

	s.sendParamExtAck(set.TargetComponent, set.ParamID, value, set.ParamType, constants.ParamAckAccepted, addr)
}

func (s *Server) sendParamExtValue(compID uint8, name string, value paramstore.Value, typ paramstore.Type, index, count uint16, addr *net.UDPAddr) {
	msg := mavlink.ParamExtValue{
		ParamCount: count,
		ParamIndex: index,
		ParamType:  uint8(typ),
		ParamID:    name,
	}
	copy(msg.ParamValue[:], value[:])
	s.sendTo(constants.MsgIDParamExtValue, compID, mavlink.EncodeParamExtValue(msg), addr)
}

func (s *Server) sendParamExtAck(compID uint8, name string, value paramstore.Value, typ uint8, result uint8, addr *net.UDPAddr) {
	msg := mavlink.ParamExtAck{
		ParamType:   typ,
		ParamResult: result,
		ParamID:     name,
	}
	copy(msg.ParamValue[:], value[:])
	s.sendTo(constants.MsgIDParamExtAck, compID, mavlink.EncodeParamExtAck(msg), addr)
}
