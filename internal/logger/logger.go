// Package logger provides logging for the docchat CLI.
//
// Verbose messages (enabled with --verbose) are printed to stderr in a
// compact "[LEVEL] message" form. When a log file is configured, Info and
// above are also written there as JSON, rotated by size.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the file sink.
type Options struct {
	// File is the log file path. Empty disables file logging.
	File string

	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int

	// MaxBackups is the number of rotated files kept.
	MaxBackups int

	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int
}

var (
	mu      sync.RWMutex
	verbose bool
	output  = zapcore.Lock(zapcore.AddSync(os.Stderr))
	rotator *lumberjack.Logger
	base    = zap.NewNop()
)

// Init configures the file sink. It may be called again to reconfigure.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}

	if opts.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		}
	}

	rebuildLocked()
	return nil
}

// Close flushes and closes the file sink.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	_ = base.Sync()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	rebuildLocked()
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuildLocked()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = zapcore.Lock(zapcore.AddSync(w))
	rebuildLocked()
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries.
func Sync() error {
	return L().Sync()
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(zapcore.DebugLevel, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	logf(zapcore.DebugLevel, "=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	logf(zapcore.InfoLevel, format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	logf(zapcore.WarnLevel, format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	logf(zapcore.ErrorLevel, format, args...)
}

func logf(level zapcore.Level, format string, args ...any) {
	l := L()
	if !l.Core().Enabled(level) {
		return
	}
	if ce := l.Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// rebuildLocked recreates base from the current sinks (caller must hold lock).
func rebuildLocked() {
	var cores []zapcore.Core

	if verbose {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig()),
			output,
			zapcore.DebugLevel,
		))
	}

	if rotator != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(rotator),
			zapcore.InfoLevel,
		))
	}

	base = zap.New(zapcore.NewTee(cores...))
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "message",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
