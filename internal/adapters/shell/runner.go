// Package shell runs external build tools and streams their output to the logger.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

// stderrTailLines is the number of stderr lines attached to a failure.
const stderrTailLines = 20

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes cmd. Stdout lines are logged as info, stderr lines as warnings.
// The environment is os.Environ() overlaid with cmd.Env.
func (r *Runner) Run(ctx context.Context, cmd domain.Command) error {
	if cmd.Name == "" {
		return zerr.With(domain.ErrCommandFailed, "reason", "empty command")
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // tool paths come from settings
	c.Dir = cmd.Dir
	c.Env = mergeEnvironment(os.Environ(), cmd.Env)

	stdout := &lineWriter{emit: r.logger.Info}
	stderr := &lineWriter{emit: r.logger.Warn, keep: stderrTailLines}
	c.Stdout = stdout
	c.Stderr = stderr

	err := c.Run()
	stdout.Flush()
	stderr.Flush()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.With(errors.Join(domain.ErrCommandFailed, err), "command", cmd.String())
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if tail := stderr.Tail(); tail != "" {
		wrapped = zerr.With(wrapped, "stderr", tail)
	}
	return wrapped
}

// lineWriter splits a stream into lines. Partial lines are buffered until
// the next newline or Flush.
type lineWriter struct {
	mu   sync.Mutex
	emit func(string)
	buf  bytes.Buffer
	keep int
	tail []string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line, put it back
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.line(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.line(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}

func (w *lineWriter) line(s string) {
	w.emit(s)
	if w.keep == 0 {
		return
	}
	w.tail = append(w.tail, s)
	if len(w.tail) > w.keep {
		w.tail = w.tail[len(w.tail)-w.keep:]
	}
}

// Tail returns the last kept lines joined by newlines.
func (w *lineWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.Join(w.tail, "\n")
}

// mergeEnvironment overlays overrides onto a KEY=VALUE list. The result is sorted.
func mergeEnvironment(base []string, overrides map[string]string) []string {
	env := make(map[string]string, len(base)+len(overrides))
	for _, entry := range base {
		if k, v, ok := strings.Cut(entry, "="); ok {
			env[k] = v
		}
	}
	for k, v := range overrides {
		env[k] = v
	}

	result := make([]string, 0, len(env))
	for k, v := range env {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}
