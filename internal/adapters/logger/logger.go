// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/lingo/internal/core/ports"
)

// messager matches errors that can report their own message without the chain, like zerr.Error.
type messager interface {
	Message() string
}

// metadataCarrier matches errors that carry structured metadata, like zerr.Error.
type metadataCarrier interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
}

var _ ports.Logger = (*Logger)(nil)

// New creates a new Logger writing pretty output to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, false)),
		output: os.Stderr,
	}
}

func newHandler(w io.Writer, jsonMode bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// SetOutput updates the logger's output destination, keeping the current mode.
// A nil writer selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.jsonMode))
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(newHandler(l.output, enable))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its cause chain and metadata.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	messages, meta := collectErrorEntries(err)
	l.logger.Error(formatErrorEntries(messages, meta))
}

// collectErrorEntries flattens an error chain into messages, outermost first,
// and merges the metadata found along the way. Joined errors are walked in order.
func collectErrorEntries(err error) ([]string, map[string]any) {
	var messages []string
	meta := make(map[string]any)

	var walk func(error)
	walk = func(current error) {
		for current != nil {
			if joined, ok := current.(interface{ Unwrap() []error }); ok {
				for _, e := range joined.Unwrap() {
					walk(e)
				}
				return
			}

			m, ok := current.(messager)
			if !ok {
				messages = append(messages, current.Error())
				return
			}

			if msg := m.Message(); msg != "" {
				messages = append(messages, msg)
			}
			if c, ok := current.(metadataCarrier); ok {
				for k, v := range c.Metadata() {
					if _, seen := meta[k]; !seen {
						meta[k] = v
					}
				}
			}
			current = errors.Unwrap(current)
		}
	}
	walk(err)

	return messages, meta
}

// formatErrorEntries renders messages as an "Error / Caused by" block followed by sorted metadata.
func formatErrorEntries(messages []string, meta map[string]any) string {
	var lines []string

	for i, msg := range messages {
		parts := strings.Split(msg, "\n")

		switch i {
		case 0:
			lines = append(lines, "Error: "+parts[0])
			for _, line := range parts[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		case 1:
			lines = append(lines, "", "  Caused by:")
		}

		lines = append(lines, "    → "+parts[0])
		for _, line := range parts[1:] {
			lines = append(lines, "      "+line)
		}
	}

	if len(meta) > 0 {
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		lines = append(lines, "", "  Details:")
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("    %s: %v", k, meta[k]))
		}
	}

	return strings.Join(lines, "\n")
}
