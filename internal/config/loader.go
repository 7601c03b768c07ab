package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Loader loads a Config from a YAML file, environment overrides, and
// built-in defaults via Viper.
type Loader struct {
	viper  *viper.Viper
	logger *logrus.Logger
}

// NewLoader returns a Loader bound to the CAMERA_STREAMER_ environment
// prefix.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CAMERA_STREAMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{viper: v, logger: logrus.New()}
}

// Load reads configPath, falling back to defaults for a missing file,
// and returns a validated Config.
func (l *Loader) Load(configPath string) (*Config, error) {
	l.viper.SetConfigFile(configPath)
	l.setDefaults()

	if err := l.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
			l.logger.Warn("configuration file not found, using defaults")
		} else {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := l.viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (l *Loader) setDefaults() {
	l.viper.SetDefault("mavlink.port", 14550)
	l.viper.SetDefault("mavlink.system_id", 1)
	l.viper.SetDefault("mavlink.broadcast_addr", "255.255.255.255:14550")
	l.viper.SetDefault("mavlink.rtsp_server_addr", "127.0.0.1:8554")

	l.viper.SetDefault("camera.dev_dir", "/dev")
	l.viper.SetDefault("camera.discovery_interval", "5s")
	l.viper.SetDefault("camera.sim_enabled", false)
	l.viper.SetDefault("camera.sim_uris", []string{})

	l.viper.SetDefault("logging.level", "info")
	l.viper.SetDefault("logging.file_enabled", true)
	l.viper.SetDefault("logging.file_path", "/var/log/camera-streaming-daemon/daemon.log")
	l.viper.SetDefault("logging.max_size_mb", 10)
	l.viper.SetDefault("logging.max_backups", 5)
	l.viper.SetDefault("logging.max_age_days", 28)
	l.viper.SetDefault("logging.console_enabled", true)
}

// GetViper exposes the underlying Viper instance for advanced callers
// (the hot-reload watcher re-reads through a fresh Loader instead).
func (l *Loader) GetViper() *viper.Viper {
	return l.viper
}
