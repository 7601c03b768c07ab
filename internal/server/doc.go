// Package server implements the daemon's command dispatcher, message
// handlers, heartbeat emitter, and start/stop lifecycle (spec.md
// C8-C11).
//
// A single dispatch-loop goroutine consumes decoded MAVLink frames
// from a channel fed by one UDP-reader goroutine, while a second
// goroutine emits HEARTBEAT on a fixed interval. Message handling, and
// with it every change to camera and stream state, runs on the dispatch
// loop, so the channel serializes that access the same way the
// original's single-threaded cooperative model did. The registry is
// the exception: the heartbeat goroutine reads it and the daemon's
// hotplug handling adds devices from its own goroutine, so
// registry.Registry guards its slots with a mutex.
package server
