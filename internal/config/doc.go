// Package config loads and validates the camera streaming daemon's
// configuration: MAVLink addressing/transport, camera device
// discovery, and logging, via Viper with YAML files and
// CAMERA_STREAMER_-prefixed environment overrides.
//
// A Watcher supports hot reload of the small subset of fields
// safe to change without restarting the dispatch loop — broadcast_addr
// and the camera discovery interval — per SPEC_FULL.md §4; system_id,
// component_id, and port changes require a restart since they are
// baked into already-open sockets and already-assigned component IDs.
package config
