package config

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestWatcher_NotifiesOnBroadcastAddrChange(t *testing.T) {
	path := writeTempConfig(t, `
mavlink:
  broadcast_addr: "10.0.0.1:14550"
`)
	initial, err := NewLoader().Load(path)
	require.NoError(t, err)

	changes := make(chan ReloadableFields, 1)
	w, err := NewWatcher(path, initial, func(f ReloadableFields) { changes <- f }, logrus.New())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`
mavlink:
  broadcast_addr: "10.0.0.2:14550"
`), 0o644))

	select {
	case f := <-changes:
		require.Equal(t, "10.0.0.2:14550", f.BroadcastAddr)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config change notification")
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := writeTempConfig(t, "mavlink:\n  port: 14550\n")
	initial, err := NewLoader().Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(path, initial, func(ReloadableFields) {}, logrus.New())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
