package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ReloadableFields is the subset of Config a running daemon can pick
// up without a restart: mavlink.broadcast_addr and
// camera.discovery_interval. system_id, component addressing, and the
// listening port are fixed for the process lifetime because sockets
// and already-assigned MAV_COMPONENT slots are built around them.
type ReloadableFields struct {
	BroadcastAddr     string
	DiscoveryInterval time.Duration
}

func reloadableFieldsOf(cfg *Config) ReloadableFields {
	return ReloadableFields{
		BroadcastAddr:     cfg.MAVLink.BroadcastAddr,
		DiscoveryInterval: cfg.Camera.DiscoveryInterval,
	}
}

// Watcher watches configPath and invokes onChange with the new
// ReloadableFields whenever the file changes and those fields differ
// from their last-applied value.
type Watcher struct {
	configPath string
	onChange   func(ReloadableFields)
	logger     *logrus.Logger

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	last    ReloadableFields
}

// NewWatcher constructs a Watcher seeded with initial's reloadable
// fields, so the first observed change is compared against the
// config the daemon actually started with.
func NewWatcher(configPath string, initial *Config, onChange func(ReloadableFields), logger *logrus.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	return &Watcher{
		configPath: configPath,
		onChange:   onChange,
		logger:     logger,
		watcher:    w,
		last:       reloadableFieldsOf(initial),
	}, nil
}

// Start begins watching the config file's directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("config: watcher already running")
	}

	dir := filepath.Dir(w.configPath)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("config: watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.running = true
	go w.loop(ctx)
	return nil
}

// Stop stops watching.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.cancel()
	w.running = false
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.configPath) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.WithError(err).Warn("config watcher error")
			}
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := NewLoader().Load(w.configPath)
	if err != nil {
		if w.logger != nil {
			w.logger.WithError(err).Error("config hot-reload: failed to load")
		}
		return
	}

	fresh := reloadableFieldsOf(cfg)
	w.mu.Lock()
	changed := fresh != w.last
	w.last = fresh
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange(fresh)
	}
}
