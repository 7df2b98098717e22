package mocks

import (
	"sync"

	"github.com/etc-dev/etc/internal/ports"
)

// ReporterEvent is one call recorded by Reporter.
type ReporterEvent struct {
	Kind    string
	Message string
}

// Reporter is a ports.Reporter that records every call in order.
type Reporter struct {
	mu       sync.Mutex
	events   []ReporterEvent
	commands []ports.CommandCall
}

// NewReporter creates a new Reporter mock.
func NewReporter() *Reporter {
	return &Reporter{}
}

func (r *Reporter) record(kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ReporterEvent{Kind: kind, Message: msg})
}

// StartPhase records a phase start.
func (r *Reporter) StartPhase(msg string) { r.record("start-phase", msg) }

// CompletePhase records a phase completion.
func (r *Reporter) CompletePhase(msg string) { r.record("complete-phase", msg) }

// StartStep records a step start.
func (r *Reporter) StartStep(msg string) { r.record("start-step", msg) }

// CompleteStep records a step completion.
func (r *Reporter) CompleteStep(msg string) { r.record("complete-step", msg) }

// StartTask records a task start.
func (r *Reporter) StartTask(msg string) { r.record("start-task", msg) }

// CompleteTask records a task completion.
func (r *Reporter) CompleteTask(msg string) { r.record("complete-task", msg) }

// PrintCommand records an echoed command.
func (r *Reporter) PrintCommand(call ports.CommandCall) {
	r.mu.Lock()
	r.commands = append(r.commands, call)
	r.mu.Unlock()
	r.record("command", call.String())
}

// Events returns a copy of all recorded events.
func (r *Reporter) Events() []ReporterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]ReporterEvent, len(r.events))
	copy(events, r.events)
	return events
}

// Messages returns the messages of all events of the given kind.
func (r *Reporter) Messages(kind string) []string {
	msgs := make([]string, 0)
	for _, e := range r.Events() {
		if e.Kind == kind {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Commands returns the echoed command lines.
func (r *Reporter) Commands() []ports.CommandCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	commands := make([]ports.CommandCall, len(r.commands))
	copy(commands, r.commands)
	return commands
}

// Ensure Reporter implements ports.Reporter.
var _ ports.Reporter = (*Reporter)(nil)
