// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and for redirecting it.
//
// The classifier only ever logs through this interface, so batch runs can switch
// between human-readable output and structured JSON without touching the pipeline.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// FieldLogger is a Logger that can attach key/value pairs to an entry,
// so diagnostics can be filtered by field instead of parsed from text.
type FieldLogger interface {
	Logger
	// Warnw logs msg at warning level with alternating keys and values.
	Warnw(msg string, keysAndValues ...any)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// swapWriter is a [zapcore.WriteSyncer] whose destination can be replaced while
// the logger is in use.
type swapWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *swapWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *swapWriter) Sync() error { return nil }

func (s *swapWriter) set(w io.Writer) {
	if w == nil {
		w = io.Discard
	}

	s.mu.Lock()
	s.w = w
	s.mu.Unlock()
}

// StructuredLogger implements Logger on top of [zap], writing one JSON object
// per entry with "level" and "message" keys.
//
// StructuredLogger is safe for concurrent use by multiple goroutines.
//
// [zap]: https://pkg.go.dev/go.uber.org/zap
type StructuredLogger struct {
	out    *swapWriter
	sugar  *zap.SugaredLogger
	silent bool
}

// NewStructuredLogger creates a new JSON logger writing to writer.
// A nil writer discards output. When silent is true every entry is dropped,
// which keeps stdout clean when it carries a machine-readable report.
func NewStructuredLogger(writer io.Writer, silent bool) *StructuredLogger {
	out := &swapWriter{}
	out.set(writer)

	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "message",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), out, zapcore.InfoLevel)
	if silent {
		core = zapcore.NewNopCore()
	}

	return &StructuredLogger{
		out:    out,
		sugar:  zap.New(core).Sugar(),
		silent: silent,
	}
}

// Printf formats and logs a structured message at info level.
// Output is suppressed if silent mode is enabled.
func (s *StructuredLogger) Printf(format string, v ...any) {
	if s.silent {
		return
	}
	s.sugar.Info(fmt.Sprintf(format, v...))
}

// Println logs a structured message at info level.
// Operands are joined the same way [fmt.Sprint] joins them.
func (s *StructuredLogger) Println(v ...any) {
	if s.silent {
		return
	}
	s.sugar.Info(fmt.Sprint(v...))
}

// Warnw logs msg at warning level with alternating keys and values,
// for example Warnw("decode failed", "id", "42", "stage", "decode").
func (s *StructuredLogger) Warnw(msg string, keysAndValues ...any) {
	if s.silent {
		return
	}
	s.sugar.Warnw(msg, keysAndValues...)
}

// SetOutput sets the output destination for the structured logger.
// A nil writer discards subsequent entries.
func (s *StructuredLogger) SetOutput(w io.Writer) { s.out.set(w) }

// Sync flushes any buffered log entries.
func (s *StructuredLogger) Sync() error { return s.sugar.Sync() }
