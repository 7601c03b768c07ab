package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoader_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 14550, cfg.MAVLink.Port)
	assert.EqualValues(t, 1, cfg.MAVLink.SystemID)
	assert.Equal(t, "/dev", cfg.Camera.DevDir)
}

func TestLoader_FileOverridesDefaults(t *testing.T) {
	t.Parallel()
	path := writeTempConfig(t, `
mavlink:
  port: 15000
  system_id: 42
  broadcast_addr: "192.168.1.255:15000"
camera:
  sim_enabled: true
  sim_uris:
    - "gazebo://camera0"
`)
	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15000, cfg.MAVLink.Port)
	assert.EqualValues(t, 42, cfg.MAVLink.SystemID)
	assert.Equal(t, "192.168.1.255:15000", cfg.MAVLink.BroadcastAddr)
	assert.True(t, cfg.Camera.SimEnabled)
	assert.Equal(t, []string{"gazebo://camera0"}, cfg.Camera.SimURIs)
}

func TestValidate_RejectsBadPort(t *testing.T) {
	t.Parallel()
	cfg := Config{
		MAVLink: MAVLinkConfig{Port: 0, BroadcastAddr: "x", RTSPServerAddr: "y"},
		Camera:  CameraConfig{DevDir: "/dev", DiscoveryInterval: 1},
		Logging: LoggingConfig{Level: "info"},
	}
	assert.Error(t, Validate(&cfg))
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()
	cfg := Config{
		MAVLink: MAVLinkConfig{Port: 14550, BroadcastAddr: "x", RTSPServerAddr: "y"},
		Camera:  CameraConfig{DevDir: "/dev", DiscoveryInterval: 1},
		Logging: LoggingConfig{Level: "verbose"},
	}
	assert.Error(t, Validate(&cfg))
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}
