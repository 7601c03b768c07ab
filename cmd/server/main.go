// Package main implements the camera streaming daemon entry point.
//
// This daemon bridges V4L2 and simulated cameras to a MAVLink ground
// control station over UDP, advertising each camera as a
// MAV_COMP_ID_CAMERA..CAMERA6 component and pointing the GCS at an
// RTSP stream for each one.
//
// The startup sequence:
//  1. Foundation: load and validate configuration, initialize logging
//  2. Parameter schema: build the closed name<->id<->type registry
//  3. Discovery: enumerate V4L2 and simulated camera devices, register
//     each against a MAVLink component slot
//  4. Transport: open the MAVLink UDP socket and start the dispatch,
//     reader, and heartbeat goroutines
//  5. Supplemented watchers: hotplug discovery and config hot-reload
//
// Graceful shutdown reverses this order.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camerarecorder/camera-streaming-daemon/internal/camera"
	"github.com/camerarecorder/camera-streaming-daemon/internal/common"
	"github.com/camerarecorder/camera-streaming-daemon/internal/config"
	"github.com/camerarecorder/camera-streaming-daemon/internal/logging"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
	"github.com/camerarecorder/camera-streaming-daemon/internal/registry"
	"github.com/camerarecorder/camera-streaming-daemon/internal/rtsp"
	"github.com/camerarecorder/camera-streaming-daemon/internal/server"
)

func main() {
	// Layer 1: Foundation - load and validate configuration.
	configPath := "config/default.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.NewLoader().Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logging.Configure(&cfg.Logging)
	logger := logging.GetLogger("daemon")
	logger.Info("starting camera streaming daemon")

	// Layer 2: Parameter schema - closed, bijective name<->id<->type table.
	schema := paramstore.NewSchema(paramstore.DefaultEntries())

	// Layer 3: Discovery - enumerate devices and register each with a
	// MAVLink component slot (first-free ascending assignment).
	reg := registry.New()

	plugins := []camera.Plugin{
		camera.NewV4L2Plugin(cfg.Camera.DevDir, schema, logger),
	}
	if cfg.Camera.SimEnabled {
		plugins = append(plugins, camera.NewSimPlugin(cfg.Camera.SimURIs, schema, logger))
	}

	for _, plugin := range plugins {
		uris, err := plugin.ListDevices()
		if err != nil {
			logger.WithError(err).WithFields(logging.Fields{"plugin": plugin.Name()}).Warn("device discovery failed")
			continue
		}
		for _, uri := range uris {
			dev, err := plugin.CreateDevice(uri)
			if err != nil {
				logger.WithError(err).WithFields(logging.Fields{"plugin": plugin.Name(), "uri": uri}).Warn("failed to open device")
				continue
			}
			compID, err := reg.Add(dev)
			if err != nil {
				logger.WithError(err).WithFields(logging.Fields{"uri": uri}).Warn("no free component slot for device")
				continue
			}
			logger.WithFields(logging.Fields{"uri": uri, "component_id": compID, "plugin": plugin.Name()}).Info("registered camera device")
		}
	}

	// Layer 4: Transport - open the MAVLink UDP socket and start the
	// dispatch/reader/heartbeat goroutines.
	srv, err := server.Listen(cfg, reg, rtsp.DefaultURIBuilder{}, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to open MAVLink UDP socket")
	}

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- srv.Run(ctx) }()
	logger.WithFields(logging.Fields{"port": cfg.MAVLink.Port}).Info("MAVLink server listening")

	// Layer 5: Supplemented watchers - hotplug discovery and config
	// hot-reload, neither of which spec.md's original core describes
	// but which a complete daemon needs (SPEC_FULL.md §4).
	hotplug, err := camera.NewHotplugWatcher(cfg.Camera.DevDir, logger)
	if err != nil {
		logger.WithError(err).Warn("hotplug watcher unavailable, falling back to static discovery only")
	} else {
		go watchHotplug(hotplug, plugins[0], reg, logger)
	}

	reloadWatcher, err := config.NewWatcher(configPath, cfg, func(fields config.ReloadableFields) {
		logger.WithFields(logging.Fields{"broadcast_addr": fields.BroadcastAddr}).Info("config hot-reload applied")
		cfg.MAVLink.BroadcastAddr = fields.BroadcastAddr
		cfg.Camera.DiscoveryInterval = fields.DiscoveryInterval
	}, logger.Logger)
	if err != nil {
		logger.WithError(err).Warn("config hot-reload watcher unavailable")
	} else if err := reloadWatcher.Start(); err != nil {
		logger.WithError(err).Warn("failed to start config hot-reload watcher")
	}

	logger.Info("camera streaming daemon started successfully")

	// Graceful shutdown on SIGINT/SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("received shutdown signal, stopping daemon")
	case err := <-runDone:
		if err != nil {
			logger.WithError(err).Error("server loop exited unexpectedly")
		}
	}

	cancel()
	if hotplug != nil {
		_ = hotplug.Close()
	}
	if reloadWatcher != nil {
		_ = reloadWatcher.Stop()
	}

	if err := common.StopWithTimeout(srv, 10*time.Second); err != nil {
		logger.WithError(err).Error("error stopping MAVLink server")
	}

	select {
	case <-runDone:
	case <-time.After(10 * time.Second):
		logger.Error("shutdown timed out, forcing exit")
		os.Exit(1)
	}

	logger.Info("camera streaming daemon stopped")
}

// watchHotplug applies V4L2 hotplug events to the registry. It only
// handles additions: removal requires mapping a /dev path back to the
// component slot that owns it, which the current V4L2Device does not
// expose, so a removed device is left registered until the process
// restarts (logged, not silently dropped).
func watchHotplug(hw *camera.HotplugWatcher, plugin camera.Plugin, reg *registry.Registry, logger *logging.Logger) {
	for ev := range hw.Events() {
		switch ev.Type {
		case camera.HotplugAdded:
			dev, err := plugin.CreateDevice(ev.Path)
			if err != nil {
				logger.WithError(err).WithFields(logging.Fields{"path": ev.Path}).Warn("hotplug: failed to open new device")
				continue
			}
			compID, err := reg.Add(dev)
			if err != nil {
				logger.WithError(err).WithFields(logging.Fields{"path": ev.Path}).Warn("hotplug: no free component slot")
				continue
			}
			logger.WithFields(logging.Fields{"path": ev.Path, "component_id": compID}).Info("hotplug: registered new camera device")
		case camera.HotplugRemoved:
			logger.WithFields(logging.Fields{"path": ev.Path}).Info("hotplug: device node removed")
		}
	}
}
