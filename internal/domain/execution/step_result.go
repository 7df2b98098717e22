// Package execution runs resolved steps in order and stops at the first
// failure.
package execution

import (
	"time"

	"github.com/etc-dev/etc/internal/domain/compiler"
)

// Status is the outcome of one step.
type Status string

const (
	// StatusSucceeded means the runner returned code 0.
	StatusSucceeded Status = "succeeded"
	// StatusFailed means the runner returned a non-zero code or faulted.
	StatusFailed Status = "failed"
	// StatusNotRun means an earlier failure stopped the run first.
	StatusNotRun Status = "not-run"
)

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	name     compiler.StepName
	status   Status
	code     int
	err      error
	duration time.Duration
}

// NewStepResult creates a new StepResult.
func NewStepResult(name compiler.StepName, status Status, code int, err error) StepResult {
	return StepResult{
		name:   name,
		status: status,
		code:   code,
		err:    err,
	}
}

// Name returns the step that was executed.
func (r StepResult) Name() compiler.StepName {
	return r.name
}

// Status returns the final status of the step.
func (r StepResult) Status() Status {
	return r.status
}

// Code returns the exit code of the step.
func (r StepResult) Code() int {
	return r.code
}

// Error returns the runner fault, if any.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Success returns true if the step completed successfully.
func (r StepResult) Success() bool {
	return r.status == StatusSucceeded
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// Result is the outcome of a whole run.
type Result struct {
	// Code is the process exit code: 0, the failing step's code, or
	// ExitFailure.
	Code int
	// Steps holds one entry per resolved step, in order.
	Steps []StepResult
}

// Success returns true if every step succeeded.
func (r Result) Success() bool {
	return r.Code == ExitSuccess
}

// Failed returns the step that stopped the run.
func (r Result) Failed() (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Status() == StatusFailed {
			return s, true
		}
	}
	return StepResult{}, false
}

// Count returns how many steps ended with status.
func (r Result) Count(status Status) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status() == status {
			n++
		}
	}
	return n
}
