// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"

	"github.com/etc-dev/etc/internal/ports"
)

// RealRunner executes actual shell commands.
type RealRunner struct {
	env map[string]string
}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// WithEnv returns a RealRunner that adds the given variables to the
// environment inherited from the current process.
func (r *RealRunner) WithEnv(env map[string]string) *RealRunner {
	merged := make(map[string]string, len(r.env)+len(env))
	for k, v := range r.env {
		merged[k] = v
	}
	for k, v := range env {
		merged[k] = v
	}
	return &RealRunner{env: merged}
}

// Env returns the extra environment variables as KEY=VALUE pairs, sorted by key.
func (r *RealRunner) Env() []string {
	keys := make([]string, 0, len(r.env))
	for k := range r.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+r.env[k])
	}
	return pairs
}

// Run executes a command and returns the result.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	return r.run(ctx, nil, command, args)
}

// Stream executes a command like Run and copies its output to w as it is
// produced.
func (r *RealRunner) Stream(ctx context.Context, w io.Writer, command string, args ...string) (ports.CommandResult, error) {
	return r.run(ctx, w, command, args)
}

func (r *RealRunner) run(ctx context.Context, w io.Writer, command string, args []string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	if len(r.env) > 0 {
		cmd.Env = append(os.Environ(), r.Env()...)
	}

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if w != nil {
		// exec copies each stream in its own goroutine.
		shared := &lockedWriter{w: w}
		cmd.Stdout = io.MultiWriter(&stdout, shared)
		cmd.Stderr = io.MultiWriter(&stderr, shared)
	}

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		// A cancelled context kills the process; report that as an error
		// rather than as an ordinary non-zero exit.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// Ensure RealRunner implements ports.StreamingRunner.
var _ ports.StreamingRunner = (*RealRunner)(nil)
