// Package mavlink implements a minimal MAVLink v2 wire codec: a
// byte-by-byte stateful frame parser, a CRC-16/X.25 checksum with the
// per-message CRC_EXTRA scheme, and encode/decode for the HEARTBEAT,
// COMMAND_LONG/ACK, CAMERA_INFORMATION/SETTINGS, STORAGE_INFORMATION,
// VIDEO_STREAM_INFORMATION, SET_VIDEO_STREAM_SETTINGS, and PARAM_EXT_*
// messages this daemon speaks.
//
// It does not implement MAVLink's full message dialect, signing, or
// fragmentation — only the subset spec.md's C6 names. Message IDs and
// other wire constants live in internal/constants so the codec and
// internal/server share one source of truth.
package mavlink
