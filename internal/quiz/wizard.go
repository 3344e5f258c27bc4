package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrUnanswered is returned when advancing past a step with no answer.
	ErrUnanswered = errors.New("current step has no answer")
	// ErrInvalidOption is returned when an answer is not one of the step's options.
	ErrInvalidOption = errors.New("invalid option")
	// ErrFinished is returned when answering after the last step.
	ErrFinished = errors.New("quiz already finished")
	// ErrInvalidState is returned when resuming at a position no Wizard could reach.
	ErrInvalidState = errors.New("invalid quiz state")
)

// State is a wizard's position, carried by clients between requests.
type State struct {
	Step    int      `json:"step"`
	Answers Response `json:"answers"`
}

// Wizard walks a respondent through the steps one at a time. Steps cannot be
// skipped: Next only advances once the current step is answered. A Wizard is
// not safe for concurrent use.
type Wizard struct {
	current  int
	response Response
}

// NewWizard starts a quiz at the first step.
func NewWizard() *Wizard {
	return &Wizard{}
}

// Resume rebuilds a Wizard at s. Every step before s.Step must hold an
// answer; any answer present must be one of its step's options.
func Resume(s State) (*Wizard, error) {
	if s.Step < 0 || s.Step > len(steps) {
		return nil, fmt.Errorf("%w: step %d", ErrInvalidState, s.Step)
	}
	for i, st := range steps {
		v := s.Answers.answer(st.ID)
		if v == "" {
			if i < s.Step {
				return nil, fmt.Errorf("%w: %s skipped", ErrInvalidState, st.ID)
			}
			continue
		}
		if !st.Has(v) {
			return nil, fmt.Errorf("%w %q for %s", ErrInvalidOption, v, st.ID)
		}
	}
	return &Wizard{current: s.Step, response: s.Answers}, nil
}

// State captures the position for a later Resume.
func (w *Wizard) State() State {
	return State{Step: w.current, Answers: w.response}
}

// Step returns the step awaiting an answer. ok is false once the quiz is done.
func (w *Wizard) Step() (step Step, ok bool) {
	if w.Done() {
		return Step{}, false
	}
	return steps[w.current], true
}

// Index is the zero-based position of the current step.
func (w *Wizard) Index() int { return w.current }

// Done reports whether every step has been answered and passed.
func (w *Wizard) Done() bool { return w.current >= len(steps) }

// Select records an answer for the current step without advancing.
func (w *Wizard) Select(value string) error {
	if w.Done() {
		return ErrFinished
	}
	s := steps[w.current]
	if !s.Has(value) {
		return fmt.Errorf("%w %q for %s", ErrInvalidOption, value, s.ID)
	}
	w.response.set(s.ID, value)
	return nil
}

// Next advances to the following step.
func (w *Wizard) Next() error {
	if w.Done() {
		return ErrFinished
	}
	if w.response.answer(steps[w.current].ID) == "" {
		return ErrUnanswered
	}
	w.current++
	return nil
}

// Back returns to the previous step, keeping its answer. It is a no-op on
// the first step.
func (w *Wizard) Back() {
	if w.current > 0 {
		w.current--
	}
}

// Restart clears all answers and returns to the first step.
func (w *Wizard) Restart() {
	w.current = 0
	w.response = Response{}
}

// Response returns the answers collected so far.
func (w *Wizard) Response() Response { return w.response }
