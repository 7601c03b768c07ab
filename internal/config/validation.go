package config

import "fmt"

// Validate checks a loaded Config for values the daemon cannot safely
// run with.
func Validate(cfg *Config) error {
	if cfg.MAVLink.Port <= 0 || cfg.MAVLink.Port > 65535 {
		return fmt.Errorf("mavlink.port %d out of range [1, 65535]", cfg.MAVLink.Port)
	}
	if cfg.MAVLink.BroadcastAddr == "" {
		return fmt.Errorf("mavlink.broadcast_addr must not be empty")
	}
	if cfg.MAVLink.RTSPServerAddr == "" {
		return fmt.Errorf("mavlink.rtsp_server_addr must not be empty")
	}
	if cfg.Camera.DevDir == "" {
		return fmt.Errorf("camera.dev_dir must not be empty")
	}
	if cfg.Camera.DiscoveryInterval <= 0 {
		return fmt.Errorf("camera.discovery_interval must be positive")
	}
	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("logging.level %q is not a recognized level", cfg.Logging.Level)
	}
	return nil
}
