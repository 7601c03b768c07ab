package config

import "time"

// MAVLinkConfig configures the UDP transport and addressing this
// daemon uses to speak MAVLink (spec.md C11).
type MAVLinkConfig struct {
	Port           int    `mapstructure:"port"`
	SystemID       uint8  `mapstructure:"system_id"`
	BroadcastAddr  string `mapstructure:"broadcast_addr"`
	RTSPServerAddr string `mapstructure:"rtsp_server_addr"`
}

// CameraConfig configures device discovery (spec.md C4).
type CameraConfig struct {
	DevDir            string        `mapstructure:"dev_dir"`
	DiscoveryInterval time.Duration `mapstructure:"discovery_interval"`
	SimEnabled        bool          `mapstructure:"sim_enabled"`
	SimURIs           []string      `mapstructure:"sim_uris"`
}

// LoggingConfig configures the structured logger (SPEC_FULL.md §2.1).
type LoggingConfig struct {
	Level          string `mapstructure:"level"`
	FilePath       string `mapstructure:"file_path"`
	FileEnabled    bool   `mapstructure:"file_enabled"`
	MaxSizeMB      int    `mapstructure:"max_size_mb"`
	MaxBackups     int    `mapstructure:"max_backups"`
	MaxAgeDays     int    `mapstructure:"max_age_days"`
	ConsoleEnabled bool   `mapstructure:"console_enabled"`
}

// Config is the daemon's full configuration tree.
type Config struct {
	MAVLink MAVLinkConfig `mapstructure:"mavlink"`
	Camera  CameraConfig  `mapstructure:"camera"`
	Logging LoggingConfig `mapstructure:"logging"`
}
