package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	catreeErrors "github.com/YuminosukeSato/catree/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger creates a JSON logger writing to w at the given minimum level.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

// NewConsoleLogger creates a human readable logger, used by the CLI.
func NewConsoleLogger(w io.Writer, level Level) *ZerologLogger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	zl := zerolog.New(out).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

// Error implements Logger.Error. A leading error value is logged under
// ErrorKey and its cockroachdb/errors stack under StacktraceKey.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	e := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = withError(e, err)
			fields = fields[1:]
		}
	}
	l.emit(e, msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	return &ZerologLogger{zl: l.zl.With().Fields(normalizeFields(fields)).Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= l.zl.GetLevel()
}

func (l *ZerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	e.Fields(normalizeFields(fields)).Msg(msg)
}

func withError(e *zerolog.Event, err error) *zerolog.Event {
	e = e.AnErr(ErrorKey, err).Str(ErrorTypeKey, fmt.Sprintf("%T", err))
	if stack := fmt.Sprintf("%+v", err); stack != err.Error() {
		e = e.Str(StacktraceKey, stack)
	}
	if m, ok := err.(zerolog.LogObjectMarshaler); ok {
		e = e.EmbedObject(m)
	}
	return e
}

// normalizeFields drops a trailing key without a value and stringifies keys,
// zerolog ignores pairs whose key is not a string.
func normalizeFields(fields []any) []any {
	out := make([]any, 0, len(fields))
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		out = append(out, key, fields[i+1])
	}
	return out
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewZerologLogger(os.Stderr, LevelInfo)
)

func init() {
	catreeErrors.SetZerologWarnFunc(logWarning)
}

// logWarning receives warnings raised through pkg/errors.Warn.
func logWarning(w error) {
	logger := GetLogger()
	if zl, ok := logger.(*ZerologLogger); ok {
		e := zl.zl.Warn().Str(ErrorTypeKey, fmt.Sprintf("%T", w))
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			e = e.EmbedObject(m)
		}
		e.Msg(w.Error())
		return
	}
	logger.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
}

// GetLogger returns the process wide logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// GetLoggerWithName returns the process wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLogger replaces the process wide logger and returns the previous one.
func SetLogger(l Logger) Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	prev := globalLogger
	globalLogger = l
	return prev
}
