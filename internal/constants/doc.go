// Package constants provides shared constants for the MAVLink camera
// streaming daemon.
//
// This package centralizes MAVLink message IDs, command IDs, result
// codes, and component-ID addressing so the wire format has a single
// source of truth shared by internal/mavlink, internal/registry, and
// internal/server.
//
// Constant Categories:
//   - MAVLink Message IDs: the subset of the common dialect this daemon speaks
//   - MAV_CMD values: commands accepted via COMMAND_LONG
//   - MAV_RESULT / PARAM_ACK: command and parameter acknowledgement codes
//   - Component addressing: MAV_COMP_ID_CAMERA..CAMERA6 slot range
//   - Heartbeat fields: type/autopilot/base_mode/system_status this daemon reports
//
// Usage Pattern:
//   - Import constants: import "github.com/camerarecorder/camera-streaming-daemon/internal/constants"
//   - Use message IDs: constants.MsgIDHeartbeat
//   - Use component range: constants.CompIDCameraFirst, constants.CompIDCameraLast
package constants
