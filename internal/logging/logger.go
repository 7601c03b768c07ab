package logging

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with component identification and
// correlation ID propagation across the dispatch loop's goroutines.
type Logger struct {
	*logrus.Logger
	correlationID string
	component     string
}

// Fields is a type alias for logrus.Fields.
type Fields = logrus.Fields

// CorrelationIDKey is the context key correlation IDs are stored under.
const CorrelationIDKey = "correlation_id"

func newBareLogger(component string) *Logger {
	l := &Logger{Logger: logrus.New(), component: component}
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// WithCorrelationID returns a new Logger carrying id; the underlying
// logrus.Logger (and its output/level/formatter) is shared.
func (l *Logger) WithCorrelationID(id string) *Logger {
	return &Logger{Logger: l.Logger, correlationID: id, component: l.component}
}

// WithField returns a new Logger with key=value attached to every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithField(key, value).Logger, correlationID: l.correlationID, component: l.component}
}

// WithFields returns a new Logger with fields attached to every entry.
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{Logger: l.Logger.WithFields(fields).Logger, correlationID: l.correlationID, component: l.component}
}

// WithError returns a new Logger with err attached to every entry.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.Logger.WithError(err).Logger, correlationID: l.correlationID, component: l.component}
}

// LogWithContext logs msg at level, attaching the component name and
// any correlation ID found on the logger itself or on ctx (ctx wins
// if both are set, since it reflects the call actually in flight).
func (l *Logger) LogWithContext(ctx context.Context, level logrus.Level, msg string) {
	entry := l.Logger.WithField("component", l.component)
	if l.correlationID != "" {
		entry = entry.WithField("correlation_id", l.correlationID)
	}
	if id := GetCorrelationIDFromContext(ctx); id != "" {
		entry = entry.WithField("correlation_id", id)
	}
	entry.Log(level, msg)
}

func (l *Logger) DebugWithContext(ctx context.Context, msg string) { l.LogWithContext(ctx, logrus.DebugLevel, msg) }
func (l *Logger) InfoWithContext(ctx context.Context, msg string)  { l.LogWithContext(ctx, logrus.InfoLevel, msg) }
func (l *Logger) WarnWithContext(ctx context.Context, msg string)  { l.LogWithContext(ctx, logrus.WarnLevel, msg) }
func (l *Logger) ErrorWithContext(ctx context.Context, msg string) { l.LogWithContext(ctx, logrus.ErrorLevel, msg) }
func (l *Logger) FatalWithContext(ctx context.Context, msg string) {
	l.LogWithContext(ctx, logrus.FatalLevel, msg)
	os.Exit(1)
}

// GenerateCorrelationID returns a fresh UUIDv4 for request tracing.
func GenerateCorrelationID() string {
	return uuid.New().String()
}

// WithCorrelationIDContext attaches id to ctx.
func WithCorrelationIDContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// GetCorrelationIDFromContext extracts a correlation ID from ctx, or
// "" if none is set.
func GetCorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}
