// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and output redirection.
//
// Verifiers accept any Logger; loggers that also implement [Leveled]
// receive debug and warning messages at their own level.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// Leveled is implemented by loggers that distinguish debug and warning output.
type Leveled interface {
	Logger
	// Debugf logs a diagnostic message.
	Debugf(format string, v ...any)
	// Warnf logs a message about a degraded but non-fatal condition.
	Warnf(format string, v ...any)
}

// Debugf logs a debug message through l, falling back to Printf when l is not [Leveled].
// A nil logger discards the message.
func Debugf(l Logger, format string, v ...any) {
	switch lv := l.(type) {
	case nil:
	case Leveled:
		lv.Debugf(format, v...)
	default:
		l.Printf("debug: "+format, v...)
	}
}

// Warnf logs a warning through l, falling back to Printf when l is not [Leveled].
// A nil logger discards the message.
func Warnf(l Logger, format string, v ...any) {
	switch lv := l.(type) {
	case nil:
	case Leveled:
		lv.Warnf(format, v...)
	default:
		l.Printf("warning: "+format, v...)
	}
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
//
// Debug messages are dropped unless verbose output was requested.
type CLILogger struct {
	logger  *log.Logger
	verbose bool
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// SetVerbose enables or disables debug output.
// It must be called before the logger is shared between goroutines.
func (c *CLILogger) SetVerbose(verbose bool) { c.verbose = verbose }

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Debugf prints a debug message when verbose output is enabled.
func (c *CLILogger) Debugf(format string, v ...any) {
	if c.verbose {
		c.logger.Printf("debug: "+format, v...)
	}
}

// Warnf prints a warning message.
func (c *CLILogger) Warnf(format string, v ...any) { c.logger.Printf("warning: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger as one JSON object per line, with "level"
// and "message" keys. It is intended for log collectors and for the
// --json mode of the CLI.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewJSONLogger creates a new structured logger writing to writer.
// A nil writer discards output. When silent is true nothing is written.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Discard is a logger that drops everything written to it.
// It is the default logger of every verifier.
var Discard Logger = NewJSONLogger(io.Discard, true)

// write marshals a single entry and writes it as one line.
func (m *JSONLogger) write(level, msg string) {
	if m.silent {
		return
	}

	data, _ := json.Marshal(map[string]any{
		"level":   level,
		"message": msg,
	})

	m.mu.Lock()
	fmt.Fprintln(m.writer, string(data))
	m.mu.Unlock()
}

// Printf formats and logs a structured message at info level.
//
// Printf is safe for concurrent use by multiple goroutines.
func (m *JSONLogger) Printf(format string, v ...any) { m.write("info", fmt.Sprintf(format, v...)) }

// Println logs a structured message at info level.
//
// Println is safe for concurrent use by multiple goroutines.
func (m *JSONLogger) Println(v ...any) { m.write("info", fmt.Sprint(v...)) }

// Debugf logs a structured message at debug level.
func (m *JSONLogger) Debugf(format string, v ...any) { m.write("debug", fmt.Sprintf(format, v...)) }

// Warnf logs a structured message at warn level.
func (m *JSONLogger) Warnf(format string, v ...any) { m.write("warn", fmt.Sprintf(format, v...)) }

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (m *JSONLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		m.writer = io.Discard
	} else {
		m.writer = w
	}
}
