// Package wizard drives the multi-step registration flow: a pure gating
// machine over per-step completion flags, and a service orchestrating live
// form state, persistence, recovery, submission, and location autofill.
package wizard

import "fmt"

// Machine evaluates navigation rules for an N-step wizard. Decisions derive
// only from explicit server-confirmed completion flags, never from
// field-level validity: network validation is the single source of truth
// for progression.
type Machine struct {
	steps int
}

func NewMachine(steps int) (Machine, error) {
	if steps < 1 {
		return Machine{}, fmt.Errorf("step count must be at least 1")
	}
	return Machine{steps: steps}, nil
}

// Steps reports how many steps the wizard has.
func (m Machine) Steps() int {
	return m.steps
}

// Clamp forces step into the valid range 1..N.
func (m Machine) Clamp(step int) int {
	if step < 1 {
		return 1
	}
	if step > m.steps {
		return m.steps
	}
	return step
}

// IsFinal reports whether a successful submission of step ends the wizard.
func (m Machine) IsFinal(step int) bool {
	return step == m.steps
}

// CanAdvance reports whether step's completion is server-confirmed. The
// completed slice is indexed zero-based, steps are numbered from one.
func (m Machine) CanAdvance(step int, completed []bool) bool {
	if step < 1 || step > m.steps || step > len(completed) {
		return false
	}
	return completed[step-1]
}

// CanGoBack reports whether a previous step exists. Going back never
// requires completion.
func (m Machine) CanGoBack(step int) bool {
	return step > 1
}

// Next returns the step after step, or ErrStepNotCompleted when forward
// navigation is not confirmed. At the final step it stays put; leaving the
// wizard happens through submission, not navigation.
func (m Machine) Next(step int, completed []bool) (int, error) {
	if !m.CanAdvance(step, completed) {
		return step, fmt.Errorf("step %d: %w", step, ErrStepNotCompleted)
	}
	return m.Clamp(step + 1), nil
}

// Previous returns the step before step, clamped at the first.
func (m Machine) Previous(step int) int {
	return m.Clamp(step - 1)
}
