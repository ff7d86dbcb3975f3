package wizard

import "sync"

// Step identifies one screen of the order wizard.
type Step string

const (
	StepPhotoType    Step = "photo-type"
	StepUpload       Step = "upload"
	StepPackage      Step = "package"
	StepExtras       Step = "extras"
	StepSummary      Step = "summary"
	StepConfirmation Step = "confirmation"
)

// stepOrder is the fixed linear flow. Confirmation is terminal.
var stepOrder = []Step{
	StepPhotoType,
	StepUpload,
	StepPackage,
	StepExtras,
	StepSummary,
	StepConfirmation,
}

// StepState describes a step's position relative to the current one.
type StepState string

const (
	StateCompleted StepState = "completed"
	StateCurrent   StepState = "current"
	StateUpcoming  StepState = "upcoming"
)

func stepIndex(s Step) int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// Meta holds wizard navigation state, separate from order content so the two
// can be reset and tested independently. Advance does not check CanProceed;
// callers must gate on the validation layer first.
type Meta struct {
	mu      sync.Mutex
	current int
	history []Step
}

func NewMeta() *Meta {
	return &Meta{}
}

func (m *Meta) Current() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	return stepOrder[m.current]
}

// History returns the steps navigated through so far, oldest first.
func (m *Meta) History() []Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := make([]Step, len(m.history))
	copy(h, m.history)
	return h
}

// Advance moves to the next step and returns it. At the confirmation step it
// is a no-op; only Reset leaves the terminal step.
func (m *Meta) Advance() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current >= len(stepOrder)-1 {
		return stepOrder[m.current]
	}
	m.history = append(m.history, stepOrder[m.current])
	m.current++
	return stepOrder[m.current]
}

// Retreat moves back to the previously visited step. At the first step and at
// the confirmation step it is a no-op; only Reset leaves the terminal step.
func (m *Meta) Retreat() Step {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 || m.current >= len(stepOrder)-1 {
		return stepOrder[m.current]
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.current = stepIndex(prev)
	return stepOrder[m.current]
}

func (m *Meta) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = 0
	m.history = nil
}

// State reports whether step is completed, current, or upcoming relative to
// the navigation position.
func (m *Meta) State(step Step) StepState {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := stepIndex(step)
	switch {
	case idx < m.current:
		return StateCompleted
	case idx == m.current:
		return StateCurrent
	default:
		return StateUpcoming
	}
}

// Steps returns the wizard flow in order.
func Steps() []Step {
	steps := make([]Step, len(stepOrder))
	copy(steps, stepOrder)
	return steps
}
