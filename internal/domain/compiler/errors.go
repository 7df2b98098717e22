package compiler

import (
	"fmt"
	"strings"
)

// Error codes for compiler operations.
const (
	ErrCodeConfigStructure = "CONFIG_STRUCTURE"
	ErrCodeStepInvalid     = "STEP_INVALID"
	ErrCodeStepDuplicate   = "STEP_DUPLICATE"
	ErrCodeRunnerNotFound  = "RUNNER_NOT_FOUND"
	ErrCodeStepFailed      = "STEP_FAILED"
)

// StepError represents a user-friendly compiler error with actionable suggestions.
type StepError struct {
	Code       string    // Error code for categorization
	Message    string    // User-friendly error message
	Directive  Directive // Directive of the offending entry, if known
	Step       string    // Step name or entry location, if known
	Suggestion string    // Actionable suggestion to fix the error
	Underlying error     // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *StepError) Error() string {
	var parts []string

	if e.Directive != "" {
		parts = append(parts, fmt.Sprintf("directive %q", e.Directive))
	}
	if e.Step != "" {
		parts = append(parts, fmt.Sprintf("step %q", e.Step))
	}

	msg := e.Message
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	if len(parts) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(parts, ", "), msg)
	}
	return msg
}

// Unwrap returns the underlying error for error chain support.
func (e *StepError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *StepError) Is(target error) bool {
	if t, ok := target.(*StepError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *StepError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Directive != "" {
		fmt.Fprintf(&b, "\n  Directive: %s", e.Directive)
	}
	if e.Step != "" {
		fmt.Fprintf(&b, "\n  Step: %s", e.Step)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying.Error())
	}

	return b.String()
}

// entryPath renders the document location of the step entry at index.
func entryPath(index int) string {
	return fmt.Sprintf("%s.%s[%d]", SectionKey, StepsKey, index)
}

// NewStructureError creates an error for a document with the wrong shape.
func NewStructureError(location, message string) *StepError {
	return &StepError{
		Code:       ErrCodeConfigStructure,
		Message:    message,
		Step:       location,
		Suggestion: "Declare steps as an array of tables: [[install.steps]] in TOML.",
	}
}

// NewMissingDirectiveError creates an error for an entry without a
// directive or name key.
func NewMissingDirectiveError(index int) *StepError {
	return &StepError{
		Code:       ErrCodeConfigStructure,
		Message:    fmt.Sprintf("step entry has neither %q nor %q", DirectiveKey, NameKey),
		Step:       entryPath(index),
		Suggestion: fmt.Sprintf("Add %s = \"system-packages\" (or another directive) to the entry.", DirectiveKey),
	}
}

// NewStepInvalidError wraps a runner validation failure.
func NewStepInvalidError(directive Directive, name StepName, err error) *StepError {
	return &StepError{
		Code:       ErrCodeStepInvalid,
		Message:    "invalid step configuration",
		Directive:  directive,
		Step:       name.String(),
		Suggestion: "Fix the step entry; no steps run until the configuration is valid.",
		Underlying: err,
	}
}

// NewStepDuplicateError creates an error for a step name that was already
// resolved.
func NewStepDuplicateError(name StepName) *StepError {
	return &StepError{
		Code:      ErrCodeStepDuplicate,
		Message:   "step name already resolved",
		Directive: name.Directive(),
		Step:      name.String(),
	}
}

// NewRunnerNotFoundError creates an error for a resolved step whose
// directive no runner accepts.
func NewRunnerNotFoundError(name StepName, directive Directive) *StepError {
	return &StepError{
		Code:      ErrCodeRunnerNotFound,
		Message:   "no runner for directive",
		Directive: directive,
		Step:      name.String(),
	}
}

// NewStepFailedError creates an error for a runner fault during execution.
func NewStepFailedError(name StepName, err error) *StepError {
	return &StepError{
		Code:       ErrCodeStepFailed,
		Message:    "step failed",
		Directive:  name.Directive(),
		Step:       name.String(),
		Underlying: err,
	}
}
