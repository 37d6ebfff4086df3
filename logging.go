package tide

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// LogMessage represents a recorded log message
type LogMessage struct {
	Timestamp time.Time
	Level     LogLevel
	Message   string
}

// Logger writes runtime diagnostics. The terminal belongs to the renderer
// while a Program runs, so a Logger never writes to stdout on its own: give
// it a file (see OpenLogFile) or keep the default io.Discard and inspect
// Messages.
type Logger struct {
	mu          sync.Mutex
	out         io.Writer
	std         *log.Logger
	level       LogLevel
	trace       bool
	messages    []LogMessage
	maxMessages int
}

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Level       LogLevel // minimum level written to the output
	Trace       bool     // emit JSON trace entries
	MaxMessages int      // history size kept in memory (default 1000)
	Prefix      string
}

// NewLogger creates a logger writing to out. A nil out discards output but
// still records history.
func NewLogger(out io.Writer, opts LoggerOptions) *Logger {
	if out == nil {
		out = io.Discard
	}
	maxMessages := opts.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 1000
	}

	return &Logger{
		out:         out,
		std:         log.New(out, opts.Prefix, log.LstdFlags|log.Lmicroseconds),
		level:       opts.Level,
		trace:       opts.Trace,
		maxMessages: maxMessages,
	}
}

// discardLogger is used when a Program is built without WithLogger.
func discardLogger() *Logger {
	return NewLogger(io.Discard, LoggerOptions{Level: LogLevelWarn})
}

// OpenLogFile opens path for appending, creating missing parent directories.
func OpenLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Log records a message at the given level
func (l *Logger) Log(level LogLevel, format string, args ...any) {
	msg := LogMessage{
		Timestamp: time.Now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msg)
	if len(l.messages) > l.maxMessages {
		// Trim to max
		l.messages = l.messages[len(l.messages)-l.maxMessages:]
	}

	if level >= l.level {
		l.std.Printf("%s %s", level, msg.Message)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...any) {
	l.Log(LogLevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...any) {
	l.Log(LogLevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...any) {
	l.Log(LogLevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...any) {
	l.Log(LogLevelError, format, args...)
}

// Trace appends a structured JSON entry when tracing is enabled.
func (l *Logger) Trace(event string, payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.trace {
		return
	}

	entry := struct {
		Time    time.Time `json:"time"`
		Event   string    `json:"event"`
		Payload any       `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	if err := json.NewEncoder(l.out).Encode(entry); err != nil {
		l.std.Printf("%s trace encoding failed: %v", LogLevelError, err)
	}
}

// Messages returns a copy of the recorded history, oldest first.
func (l *Logger) Messages() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Clear drops the recorded history.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
