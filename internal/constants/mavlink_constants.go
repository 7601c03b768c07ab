package constants

import "time"

// =============================================================================
// MAVLINK MESSAGE IDS (common.xml, subset this daemon speaks)
// =============================================================================

const (
	MsgIDHeartbeat               = 0
	MsgIDCommandLong             = 76
	MsgIDCommandAck              = 77
	MsgIDCameraInformation       = 259
	MsgIDCameraSettings          = 260
	MsgIDStorageInformation      = 261
	MsgIDVideoStreamInformation  = 269
	MsgIDSetVideoStreamSettings  = 270
	MsgIDParamExtRequestRead     = 320
	MsgIDParamExtRequestList     = 321
	MsgIDParamExtValue           = 322
	MsgIDParamExtSet             = 323
	MsgIDParamExtAck             = 324
)

// =============================================================================
// MAV_CMD VALUES THIS DAEMON ACCEPTS VIA COMMAND_LONG
// =============================================================================

const (
	CmdRequestCameraInformation      = 521
	CmdRequestCameraSettings         = 522
	CmdRequestStorageInformation     = 525
	CmdRequestVideoStreamInformation = 2504
	CmdSetCameraMode                 = 530 // defined for reference; internal/server does not handle it
)

// =============================================================================
// MAV_RESULT (COMMAND_ACK.result)
// =============================================================================

const (
	ResultAccepted     uint8 = 0
	ResultTemporarilyRejected uint8 = 1
	ResultDenied       uint8 = 2
	ResultUnsupported  uint8 = 3
	ResultFailed       uint8 = 4
	ResultInProgress   uint8 = 5
)

// =============================================================================
// PARAM_ACK (PARAM_EXT_ACK.param_result)
// =============================================================================

const (
	ParamAckAccepted      uint8 = 0
	ParamAckValueUnsupported uint8 = 1
	ParamAckFailed        uint8 = 2
	ParamAckInProgress    uint8 = 3
)

// =============================================================================
// COMPONENT ADDRESSING (MAV_COMPONENT)
// =============================================================================

const (
	CompIDCameraFirst = 100 // MAV_COMP_ID_CAMERA
	CompIDCameraLast  = 105 // MAV_COMP_ID_CAMERA6
	CompIDCameraSlots = CompIDCameraLast - CompIDCameraFirst + 1
)

// =============================================================================
// HEARTBEAT FIELDS THIS DAEMON REPORTS
// =============================================================================

const (
	HeartbeatType         uint8 = 0 // MAV_TYPE_GENERIC
	HeartbeatAutopilot    uint8 = 8  // MAV_AUTOPILOT_INVALID
	HeartbeatBaseMode     uint8 = 0
	HeartbeatSystemStatus uint8 = 4 // MAV_STATE_ACTIVE
	MAVLinkVersion        uint8 = 3
)

// =============================================================================
// WIRE-LEVEL AND TIMING CONSTANTS
// =============================================================================

const (
	MagicV2          uint8 = 0xFD
	MaxPayloadLength       = 255
	HeartbeatInterval      = 1000 * time.Millisecond
	UDPReadBufferSize      = 2048
)

// ParamIDLength is the fixed ASCII width of PARAM_EXT_* param_id fields.
const ParamIDLength = 16

// ParamValueLength is the opaque PARAM_EXT_* param_value width.
const ParamValueLength = 128
