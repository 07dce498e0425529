package shell

import (
	"strings"

	"github.com/matzehuels/legalcanvas/pkg/suite"
)

// Phase is the coarse state of the application.
type Phase int

const (
	Idle Phase = iota
	Generating
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is the single application state. Its fields are only changed by
// [Reduce], so combinations such as a processing state that also carries an
// error cannot be constructed.
type State struct {
	phase     Phase
	input     string
	suite     *suite.Suite
	activeID  string
	hasActive bool
	message   string
}

// Phase returns the current phase.
func (s State) Phase() Phase { return s.phase }

// Input returns the contract text as last edited.
func (s State) Input() string { return s.input }

// Processing reports whether a generation is in flight.
func (s State) Processing() bool { return s.phase == Generating }

// Suite returns the generated suite, or nil outside [Ready].
func (s State) Suite() *suite.Suite { return s.suite }

// ActiveSheetID returns the selected sheet id. ok is false when no sheet is
// selected, including a ready suite with no sheets.
func (s State) ActiveSheetID() (id string, ok bool) { return s.activeID, s.hasActive }

// Message returns the user-facing error message in [Failed], or "".
func (s State) Message() string { return s.message }

// CanSubmit reports whether a Submit action would start a generation.
func (s State) CanSubmit() bool {
	return s.phase != Generating && strings.TrimSpace(s.input) != ""
}

// =============================================================================
// Actions
// =============================================================================

// Action is an event fed to [Reduce].
type Action interface{ action() }

// EditInput replaces the contract text. Allowed in every phase.
type EditInput struct{ Text string }

// Submit starts a generation for the current input.
type Submit struct{}

// Succeeded delivers a generated suite.
type Succeeded struct{ Suite *suite.Suite }

// FailedWith reports a failed generation with its user-facing message.
type FailedWith struct{ Message string }

// SelectSheet makes the sheet with ID active.
type SelectSheet struct{ ID string }

func (EditInput) action()   {}
func (Submit) action()      {}
func (Succeeded) action()   {}
func (FailedWith) action()  {}
func (SelectSheet) action() {}

// Reduce applies a to s and returns the next state. Actions that are not
// legal in the current phase return s unchanged:
//
//	Idle|Ready|Failed  --Submit (non-blank input)-->  Generating
//	Generating         --Succeeded-->                 Ready
//	Generating         --FailedWith-->                Failed
//	Ready              --SelectSheet (known id)-->    Ready
//
// EditInput only changes the input text and is accepted in every phase.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case EditInput:
		s.input = a.Text
		return s

	case Submit:
		if !s.CanSubmit() {
			return s
		}
		return State{phase: Generating, input: s.input}

	case Succeeded:
		if s.phase != Generating || a.Suite == nil {
			return s
		}
		next := State{phase: Ready, input: s.input, suite: a.Suite}
		if len(a.Suite.Sheets) > 0 {
			next.activeID, next.hasActive = a.Suite.Sheets[0].ID, true
		}
		return next

	case FailedWith:
		if s.phase != Generating {
			return s
		}
		return State{phase: Failed, input: s.input, message: a.Message}

	case SelectSheet:
		if s.phase != Ready {
			return s
		}
		if _, ok := s.suite.Sheet(a.ID); !ok {
			return s
		}
		s.activeID, s.hasActive = a.ID, true
		return s
	}
	return s
}
