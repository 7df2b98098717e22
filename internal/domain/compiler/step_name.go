package compiler

import "fmt"

// StepName identifies a resolved step by the owning runner's primary
// directive and the step's position among resolved steps.
//
// The rendered form "{directive}-{order}" is for display and map keys in
// output only; it is never parsed back.
type StepName struct {
	directive Directive
	order     int
}

// NewStepName creates a StepName.
func NewStepName(directive Directive, order int) StepName {
	return StepName{directive: directive, order: order}
}

// Directive returns the runner's primary directive.
func (n StepName) Directive() Directive {
	return n.directive
}

// Order returns the zero-based position among resolved steps.
func (n StepName) Order() int {
	return n.order
}

// String renders the name as "{directive}-{order}".
func (n StepName) String() string {
	return fmt.Sprintf("%s-%d", n.directive, n.order)
}
