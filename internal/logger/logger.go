package logger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownLevel is returned by SetLevelByName for unrecognized level names.
var ErrUnknownLevel = errors.New("unknown log level")

var (
	// level is shared by every logger built with New and switched by --log-level.
	//nolint:gochecknoglobals // Both binaries share one level switch.
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
	// global is returned by FromContext when the context carries no logger.
	//nolint:gochecknoglobals // Logger is used all over the project, so it's okay.
	global = New()
)

// New creates a console logger on stderr that follows the shared level.
// Stdout stays reserved for command output.
func New(options ...zap.Option) *zap.SugaredLogger {
	//nolint:exhaustruct // Unset encoder keys are omitted from the output.
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		NameKey:          "logger",
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})

	return zap.New(zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level), options...).Sugar()
}

// ParseLogLevel maps a --log-level value to a zap level.
// Unknown names report false together with the info level.
func ParseLogLevel(name string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	case "fatal":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// SetLevelByName parses name and applies it to every logger built with New.
// The current level is kept when name is not recognized.
func SetLevelByName(name string) error {
	parsed, ok := ParseLogLevel(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}

	level.SetLevel(parsed)

	return nil
}

// Debug logs args at debug level. Its signature lets it be passed around as a line sink.
func Debug(ctx context.Context, args ...any) {
	FromContext(ctx).Debug(args...)
}

// DebugKV logs message with key-value pairs at debug level.
func DebugKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Debugw(message, kvs...)
}

// InfoKV logs message with key-value pairs at info level.
func InfoKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Infow(message, kvs...)
}

// WarnKV logs message with key-value pairs at warning level.
func WarnKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Warnw(message, kvs...)
}

// ErrorKV logs message with key-value pairs at error level.
func ErrorKV(ctx context.Context, message string, kvs ...any) {
	FromContext(ctx).Errorw(message, kvs...)
}
