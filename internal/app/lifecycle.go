package app

import (
	"fmt"
	"sync"

	"github.com/felixgeelhaar/statekit"
)

// State is the phase a run is in.
type State string

const (
	// StateIdle is the state before a run starts and after New.
	StateIdle State = "idle"
	// StateLoading covers reading the configuration and environment files.
	StateLoading State = "loading"
	// StateResolving covers turning the document into step configurations.
	StateResolving State = "resolving"
	// StateExecuting covers running the steps.
	StateExecuting State = "executing"
	// StateSucceeded means every step succeeded.
	StateSucceeded State = "succeeded"
	// StateFailed means the run stopped on an error or a failed step.
	StateFailed State = "failed"
)

// Event types for the run state machine.
const (
	EventLoad    = "LOAD"
	EventResolve = "RESOLVE"
	EventExecute = "EXECUTE"
	EventSucceed = "SUCCEED"
	EventFail    = "FAIL"
)

// machineContext is the statekit context of the run machine.
type machineContext struct {
	RunID string
}

// lifecycle tracks the runs of one Etc. A finished run may be followed by
// another one.
type lifecycle struct {
	mu      sync.RWMutex
	interp  *statekit.Interpreter[machineContext]
	lastErr error
}

func newLifecycle(runID string) (*lifecycle, error) {
	l := &lifecycle{}

	machine, err := statekit.NewMachine[machineContext]("etc-run").
		WithInitial(statekit.StateID(StateIdle)).
		WithContext(machineContext{RunID: runID}).
		WithAction("clearError", func(_ *machineContext, _ statekit.Event) {
			l.lastErr = nil
		}).
		WithAction("recordError", func(_ *machineContext, event statekit.Event) {
			if payload, ok := event.Payload.(map[string]interface{}); ok {
				if err, ok := payload["error"].(error); ok {
					l.lastErr = err
				}
			}
		}).
		State(statekit.StateID(StateIdle)).
		On(EventLoad).Target(statekit.StateID(StateLoading)).Done().
		State(statekit.StateID(StateLoading)).
		OnEntry("clearError").
		On(EventResolve).Target(statekit.StateID(StateResolving)).
		On(EventFail).Target(statekit.StateID(StateFailed)).Done().
		State(statekit.StateID(StateResolving)).
		On(EventExecute).Target(statekit.StateID(StateExecuting)).
		On(EventFail).Target(statekit.StateID(StateFailed)).Done().
		State(statekit.StateID(StateExecuting)).
		On(EventSucceed).Target(statekit.StateID(StateSucceeded)).
		On(EventFail).Target(statekit.StateID(StateFailed)).Done().
		State(statekit.StateID(StateSucceeded)).
		On(EventLoad).Target(statekit.StateID(StateLoading)).Done().
		State(statekit.StateID(StateFailed)).
		OnEntry("recordError").
		On(EventLoad).Target(statekit.StateID(StateLoading)).Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run state machine: %w", err)
	}

	l.interp = statekit.NewInterpreter(machine)
	l.interp.Start()
	return l, nil
}

func (l *lifecycle) send(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interp.Send(statekit.Event{Type: statekit.EventType(event)})
}

func (l *lifecycle) fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.interp.Send(statekit.Event{
		Type:    EventFail,
		Payload: map[string]interface{}{"error": err},
	})
}

func (l *lifecycle) state() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return State(l.interp.State().Value)
}

func (l *lifecycle) err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}
