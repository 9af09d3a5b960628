package lookup

import (
	"fmt"

	"github.com/muurk/buscacep/internal/address"
)

// Phase tags the active variant of State.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseFound
	PhaseNotFound
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseFound:
		return "found"
	case PhaseNotFound:
		return "not_found"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is what the screen renders. Only the fields belonging to Phase are
// meaningful: PostalCode for Loading, NotFound and Failed, Record for Found,
// Reason for Failed.
type State struct {
	Phase      Phase
	PostalCode string
	Record     address.Record
	Reason     error
}

// Idle is the state before any query, or after the input was cleared.
func Idle() State { return State{Phase: PhaseIdle} }

// Loading is a request in flight for code.
func Loading(code string) State { return State{Phase: PhaseLoading, PostalCode: code} }

// Found holds a valid record.
func Found(r address.Record) State {
	return State{Phase: PhaseFound, PostalCode: r.PostalCode, Record: r}
}

// NotFound is a miss for code.
func NotFound(code string) State { return State{Phase: PhaseNotFound, PostalCode: code} }

// Failed is a transport failure for code.
func Failed(code string, reason error) State {
	return State{Phase: PhaseFailed, PostalCode: code, Reason: reason}
}

// Terminal reports whether the state waits for the next user action.
func (s State) Terminal() bool {
	return s.Phase == PhaseFound || s.Phase == PhaseNotFound || s.Phase == PhaseFailed
}

func (s State) String() string {
	switch s.Phase {
	case PhaseIdle:
		return "idle"
	case PhaseFound:
		return "found(" + s.Record.PostalCode + ")"
	case PhaseFailed:
		return fmt.Sprintf("failed(%s: %v)", s.PostalCode, s.Reason)
	default:
		return s.Phase.String() + "(" + s.PostalCode + ")"
	}
}
