package lookup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/viacep"
)

var errLookupFailed = errors.New("lookup failed")

// Ticket identifies one issued lookup. Seq grows by one per Begin.
type Ticket struct {
	Seq        uint64
	PostalCode string
}

// Machine owns the input text and the lookup state for one screen session.
// It is not safe for concurrent use: the event loop that drives the screen is
// its only caller.
type Machine struct {
	input string
	state State
	last  *address.Record

	seq      uint64 // last ticket issued
	inflight uint64 // ticket whose result will be applied, 0 when none
}

// NewMachine returns a machine in the Idle state with empty input.
func NewMachine() *Machine {
	return &Machine{state: Idle()}
}

// Input returns the current input text.
func (m *Machine) Input() string { return m.input }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Last returns the last valid record, if one is held.
func (m *Machine) Last() (address.Record, bool) {
	if m.last == nil {
		return address.Record{}, false
	}
	return *m.last, true
}

// InFlight reports whether a result is still expected.
func (m *Machine) InFlight() bool { return m.inflight != 0 }

// Edit runs candidate through ApplyInput and reports whether it was accepted.
//
// An accepted edit always clears a finished result from display. Blank input
// returns to Idle, drops the last record and abandons any request in flight.
// A non-blank edit while Loading leaves the request running: it is still the
// latest one issued and its result will be applied.
func (m *Machine) Edit(candidate string) (string, bool) {
	next := ApplyInput(m.input, candidate)
	if next != candidate {
		return m.input, false
	}
	m.input = next

	switch {
	case isBlank(next):
		m.state = Idle()
		m.last = nil
		m.inflight = 0
	case m.state.Phase != PhaseLoading:
		m.state = Idle()
	}

	return m.input, true
}

// Begin moves to Loading for the current input and issues a ticket.
// Blank input issues nothing and reports false; the client must not be called.
func (m *Machine) Begin() (Ticket, bool) {
	if isBlank(m.input) {
		return Ticket{}, false
	}

	m.seq++
	m.inflight = m.seq
	m.state = Loading(m.input)

	return Ticket{Seq: m.seq, PostalCode: m.input}, true
}

// Resolve applies the outcome of ticket t. Results for any ticket other than
// the one in flight are discarded and Resolve reports false.
func (m *Machine) Resolve(t Ticket, out viacep.Outcome) bool {
	if t.Seq == 0 || t.Seq != m.inflight {
		return false
	}
	m.inflight = 0

	switch out.Kind {
	case viacep.OutcomeSuccess:
		if out.Record.Valid() {
			rec := out.Record
			m.state = Found(rec)
			m.last = &rec
		} else {
			m.state = NotFound(t.PostalCode)
		}
	case viacep.OutcomeEmptyBody:
		m.state = NotFound(t.PostalCode)
	case viacep.OutcomeTransportError:
		reason := out.Err
		if reason == nil {
			reason = errLookupFailed
		}
		m.state = Failed(t.PostalCode, reason)
	default:
		m.state = Failed(t.PostalCode, fmt.Errorf("%w: unknown outcome %s", errLookupFailed, out.Kind))
	}

	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
