// Package terminal renders run progress for humans.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/etc-dev/etc/internal/ports"
)

// Theme colors, matching the palette used elsewhere in the CLI.
var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorStep    = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94e2d5"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"}
)

type styles struct {
	phase   lipgloss.Style
	step    lipgloss.Style
	task    lipgloss.Style
	done    lipgloss.Style
	command lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		phase:   r.NewStyle().Bold(true).Foreground(colorPrimary),
		step:    r.NewStyle().Foreground(colorStep),
		task:    r.NewStyle().Faint(true),
		done:    r.NewStyle().Foreground(colorSuccess),
		command: r.NewStyle().Foreground(colorMuted),
	}
}

// Terminal implements ports.Reporter by writing styled lines.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	color  bool
	styles styles
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithOutput sets the writer (default: os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(t *Terminal) {
		t.out = w
	}
}

// WithColor enables ANSI styling.
func WithColor(enabled bool) Option {
	return func(t *Terminal) {
		t.color = enabled
	}
}

// New creates a Terminal.
func New(opts ...Option) *Terminal {
	t := &Terminal{out: os.Stderr}
	for _, opt := range opts {
		opt(t)
	}

	r := lipgloss.NewRenderer(t.out)
	if t.color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	t.styles = newStyles(r)

	return t
}

// Writer returns the underlying writer so other output can share it.
func (t *Terminal) Writer() io.Writer {
	return t.out
}

// StartPhase announces a phase of the run.
func (t *Terminal) StartPhase(msg string) {
	t.line(t.styles.phase.Render("==> " + msg))
}

// CompletePhase marks a phase as finished.
func (t *Terminal) CompletePhase(msg string) {
	t.line(t.styles.done.Render("✓ " + msg))
}

// StartStep announces a step.
func (t *Terminal) StartStep(msg string) {
	t.line("  " + t.styles.step.Render("→ "+msg))
}

// CompleteStep marks a step as finished.
func (t *Terminal) CompleteStep(msg string) {
	t.line("  " + t.styles.done.Render("✓ "+msg))
}

// StartTask announces a task within a step.
func (t *Terminal) StartTask(msg string) {
	t.line("    " + t.styles.task.Render("• "+msg))
}

// CompleteTask marks a task as finished.
func (t *Terminal) CompleteTask(msg string) {
	t.line("    " + t.styles.done.Render("✓ "+msg))
}

// PrintCommand echoes a command line.
func (t *Terminal) PrintCommand(call ports.CommandCall) {
	t.line(t.styles.command.Render("$ " + call.String()))
}

func (t *Terminal) line(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, s)
}

// Ensure Terminal implements ports.Reporter.
var _ ports.Reporter = (*Terminal)(nil)
