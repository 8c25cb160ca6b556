package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	defaultLogger *slog.Logger
	logLevel      *slog.LevelVar
	initOnce      sync.Once
	logFile       *os.File
)

// Init configures the package from cfg. It is safe to call once; later
// calls are no-ops. On failure the logger falls back to discarding output
// so the wrappers stay safe to call.
func Init(cfg Config) error {
	var initErr error
	initOnce.Do(func() {
		cfg.process()

		output, file, err := openOutput(cfg.LogFilePath)
		if err != nil {
			initErr = err
			output = io.Discard
		}
		logFile = file

		logLevel = new(slog.LevelVar)
		logLevel.Set(cfg.level)

		opts := slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
						source.File = filepath.Base(source.File)
					}
				}
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
				}
				return a
			},
		}
		base := slog.NewTextHandler(output, &opts)
		defaultLogger = slog.New(newFilteringHandler(base, &cfg))

		// Emit the init record through the handler directly; PC 0 skips
		// source resolution for this one message.
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "logger initialized", 0)
		r.AddAttrs(slog.String("level", cfg.level.String()))
		_ = defaultLogger.Handler().Handle(context.Background(), r)
	})
	return initErr
}

// openOutput maps a configured path onto a writer. "-" is stderr, empty
// discards, anything else appends to a file.
func openOutput(path string) (io.Writer, *os.File, error) {
	switch path {
	case "":
		return io.Discard, nil, nil
	case "-":
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %q: %w", path, err)
	}
	return f, f, nil
}

// Close flushes and closes the log file if one was opened.
func Close() {
	if logFile != nil {
		_ = logFile.Sync()
		_ = logFile.Close()
		logFile = nil
	}
}

// ensureInitialized installs a discarding logger when Init was never
// called, so the wrappers never dereference nil.
func ensureInitialized() {
	initOnce.Do(func() {
		logLevel = new(slog.LevelVar)
		logLevel.Set(slog.LevelInfo)
		handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel})
		defaultLogger = slog.New(handler)
	})
}

// logAt logs a formatted record at level, attaching the given attrs and
// the program counter of the wrapper's caller for source resolution.
func logAt(level slog.Level, format string, args []interface{}, attrs ...slog.Attr) {
	ensureInitialized()
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAt and the public wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	r.AddAttrs(attrs...)
	_ = defaultLogger.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAt(slog.LevelDebug, format, args)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAt(slog.LevelInfo, format, args)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAt(slog.LevelWarn, format, args)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAt(slog.LevelError, format, args)
}

// Fatalf logs an error message then exits.
func Fatalf(format string, args ...interface{}) {
	logAt(slog.LevelError, format, args)
	Close()
	os.Exit(1)
}

// DebugTagf logs a debug message carrying a filterable tag.
func DebugTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelDebug, format, args, slog.String(tagKey, tag))
}

// InfoTagf logs an info message carrying a filterable tag.
func InfoTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelInfo, format, args, slog.String(tagKey, tag))
}

// WarnTagf logs a warning message carrying a filterable tag.
func WarnTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelWarn, format, args, slog.String(tagKey, tag))
}

// ErrorTagf logs an error message carrying a filterable tag.
func ErrorTagf(tag, format string, args ...interface{}) {
	logAt(slog.LevelError, format, args, slog.String(tagKey, tag))
}

// Get returns the configured slog logger.
func Get() *slog.Logger {
	ensureInitialized()
	return defaultLogger
}
