// Package logging provides structured logging with correlation ID
// support for the camera streaming daemon.
//
// It wraps Logrus with component identification, correlation ID
// helpers (on a Logger or a context.Context), and file rotation via
// lumberjack. internal/server does not attach correlation IDs to the
// datagrams it handles. A single
// LoggerFactory configuration (level, console/file output, rotation
// limits) is shared by every component-scoped Logger.
//
// Usage:
//   - Configure globally at startup: logging.Configure(&cfg.Logging)
//   - Create a component logger: logging.GetLogger("dispatch")
//   - Carry a correlation ID across goroutines: logger.WithCorrelationID(id)
package logging
