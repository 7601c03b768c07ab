package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/camerarecorder/camera-streaming-daemon/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerFactory creates component-scoped Loggers sharing one global
// level/format/output configuration. Thread-safe for concurrent use.
type LoggerFactory struct {
	mu  sync.RWMutex
	cfg *config.LoggingConfig
}

var (
	factory     *LoggerFactory
	factoryOnce sync.Once
)

// GetLoggerFactory returns the process-wide LoggerFactory, defaulting
// to info-level console output until Configure is called.
func GetLoggerFactory() *LoggerFactory {
	factoryOnce.Do(func() {
		factory = &LoggerFactory{
			cfg: &config.LoggingConfig{Level: "info", ConsoleEnabled: true},
		}
	})
	return factory
}

// Configure installs cfg as the factory's configuration. Loggers
// created before this call keep their earlier settings; call this
// during startup before the first GetLogger.
func Configure(cfg *config.LoggingConfig) {
	f := GetLoggerFactory()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
}

// GetLogger returns a new Logger for component, configured per the
// factory's current settings.
func GetLogger(component string) *Logger {
	return GetLoggerFactory().CreateLogger(component)
}

// CreateLogger builds a Logger for component.
func (f *LoggerFactory) CreateLogger(component string) *Logger {
	f.mu.RLock()
	cfg := f.cfg
	f.mu.RUnlock()

	logger := newBareLogger(component)

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch {
	case cfg.FileEnabled && cfg.FilePath != "":
		if err := attachFileOutput(logger, cfg); err != nil {
			logger.WithError(err).Warn("failed to attach file output, logging to stderr")
		}
	case !cfg.ConsoleEnabled:
		logger.SetOutput(&discardWriter{})
	default:
		logger.SetOutput(os.Stdout)
	}

	return logger
}

func attachFileOutput(logger *Logger, cfg *config.LoggingConfig) error {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return fmt.Errorf("logging: create log dir: %w", err)
	}
	logger.SetOutput(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	})
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05"})
	return nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
