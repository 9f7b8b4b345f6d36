package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultLogPath is where logs go when no path is configured. The TUI owns
// stdout, so logs are never written there.
const DefaultLogPath = "/tmp/charbrowser.out"

// Logger provides a centralized logging mechanism for charbrowser
type Logger struct {
	zl   zerolog.Logger
	file afero.File
	mu   sync.Mutex
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// GetLogger returns the default logger instance, creating one at
// DefaultLogPath on first use
func GetLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		var err error
		defaultLogger, err = NewLogger(afero.NewOsFs(), DefaultLogPath, false)
		if err != nil {
			// Fallback to stderr if we can't create the log file
			fmt.Fprintf(os.Stderr, "Failed to create log file, falling back to stderr: %v\n", err)
			defaultLogger = NewWriterLogger(os.Stderr, false)
		}
	}
	return defaultLogger
}

// SetDefault replaces the default logger and returns the previous one
func SetDefault(l *Logger) *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLogger
	defaultLogger = l
	return prev
}

// NewLogger creates a new logger that appends to the file at logPath on fs
func NewLogger(fs afero.Fs, logPath string, verbose bool) (*Logger, error) {
	// Ensure the directory exists
	dir := filepath.Dir(logPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open or create the log file
	file, err := fs.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriterLogger(file, verbose)
	l.file = file
	return l, nil
}

// NewWriterLogger creates a logger writing plain console lines to w
func NewWriterLogger(w io.Writer, verbose bool) *Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	return &Logger{
		zl: zerolog.New(out).Level(level).With().Timestamp().Logger(),
	}
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Warn().Msgf(format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Debug().Msgf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Info().Msgf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.Error().Msgf(format, args...)
}

// Close closes the log file (if any)
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Warning logs a warning through the default logger
func Warning(format string, args ...interface{}) {
	GetLogger().Warning(format, args...)
}

// HTTPLogger adapts a Logger to retryablehttp.LeveledLogger
type HTTPLogger struct {
	l *Logger
}

// NewHTTPLogger wraps l; a nil l uses the default logger
func NewHTTPLogger(l *Logger) *HTTPLogger {
	return &HTTPLogger{l: l}
}

func (h *HTTPLogger) logger() *Logger {
	if h.l != nil {
		return h.l
	}
	return GetLogger()
}

func (h *HTTPLogger) event(level zerolog.Level, msg string, keysAndValues []interface{}) {
	l := h.logger()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl.WithLevel(level).Fields(keysAndValues).Msg(msg)
}

func (h *HTTPLogger) Error(msg string, keysAndValues ...interface{}) {
	h.event(zerolog.ErrorLevel, msg, keysAndValues)
}

func (h *HTTPLogger) Info(msg string, keysAndValues ...interface{}) {
	h.event(zerolog.InfoLevel, msg, keysAndValues)
}

func (h *HTTPLogger) Debug(msg string, keysAndValues ...interface{}) {
	h.event(zerolog.DebugLevel, msg, keysAndValues)
}

func (h *HTTPLogger) Warn(msg string, keysAndValues ...interface{}) {
	h.event(zerolog.WarnLevel, msg, keysAndValues)
}
