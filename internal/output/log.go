// Package output provides terminal output utilities for the boilrkit CLI.
package output

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

// logger is the global logger instance.
var logger *log.Logger

// logOutput is the writer logger currently writes to.
var logOutput io.Writer = os.Stderr

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// LogConfig controls logger construction.
type LogConfig struct {
	// Verbose enables debug level, caller reporting and forces timestamps on.
	Verbose bool

	// Timestamps controls timestamp display. nil means on.
	Timestamps *bool
}

// SetupLogging configures the global logger.
func SetupLogging(cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	logOutput = os.Stderr
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// SetLogWriter redirects log output to w, keeping the current options.
func SetLogWriter(w io.Writer) {
	logOutput = w
	logger.SetOutput(w)
}

// heldWriter buffers log lines written from the spinner's action goroutine.
type heldWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (h *heldWriter) Write(p []byte) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.buf.Write(p)
}

// holdLogs buffers log output until release is called, then restores the
// previous writer and flushes what was held to it. Loggers obtained from
// StageLogger before the hold keep writing to the previous writer.
func holdLogs() (release func()) {
	prev := logOutput
	held := &heldWriter{}
	SetLogWriter(held)

	return func() {
		SetLogWriter(prev)
		held.mu.Lock()
		defer held.mu.Unlock()
		_, _ = prev.Write(held.buf.Bytes())
		held.buf.Reset()
	}
}

// StageLogger returns a child logger whose lines are prefixed with the
// given pipeline stage name.
func StageLogger(stage string) *log.Logger {
	return logger.WithPrefix(StyleDim.Render("[") + StyleNoun.Render(stage) + StyleDim.Render("]"))
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Details prints multi-line detail text to stderr without log formatting.
func Details(msg string) {
	os.Stderr.WriteString(msg)
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
