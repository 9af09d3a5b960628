package lookup

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/logging"
	"github.com/muurk/buscacep/internal/viacep"
)

// Client performs one remote lookup. *viacep.Client satisfies it.
type Client interface {
	Lookup(ctx context.Context, postalCode string) viacep.Outcome
}

// Session is the state of one mounted search screen: input, lookup state,
// the request in flight and the records found so far. Create it when the
// screen mounts and Close it when the screen goes away.
//
// Edit, Search, Apply and Close must all be called from the one goroutine
// that drives the screen. Only the lookup itself runs elsewhere.
type Session struct {
	id      string
	client  Client
	timeout time.Duration
	log     *zap.Logger

	machine *Machine
	history *History
	current *Task
	closed  bool
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each lookup. Zero leaves only the client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistorySize sets how many found records are kept.
func WithHistorySize(n int) Option {
	return func(s *Session) { s.history = NewHistory(n) }
}

// NewSession creates a session in the Idle state.
func NewSession(client Client, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		client:  client,
		timeout: viacep.DefaultTimeout,
		log:     logging.Named("lookup"),
		machine: NewMachine(),
		history: NewHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Input returns the current input text.
func (s *Session) Input() string { return s.machine.Input() }

// State returns the state to render.
func (s *Session) State() State { return s.machine.State() }

// Last returns the last valid record, if one is held.
func (s *Session) Last() (address.Record, bool) { return s.machine.Last() }

// History returns the records found this session, newest first.
func (s *Session) History() []address.Record { return s.history.Records() }

// Edit applies a user edit and returns the text the input should now show.
// Clearing the input cancels the request in flight.
func (s *Session) Edit(candidate string) string {
	text, accepted := s.machine.Edit(candidate)
	if !accepted {
		s.log.Debug("Ignoring overlong input",
			zap.String("session", s.id),
			zap.Int("length", len(candidate)),
		)
		return text
	}
	if s.current != nil && !s.machine.InFlight() {
		s.current.Cancel()
		s.current = nil
	}
	return text
}

// Search starts a lookup for the current input. It reports false, without
// calling the client, when the input is blank or the session is closed.
// Starting a search cancels the previous one; its late result is discarded.
func (s *Session) Search(ctx context.Context) (*Task, bool) {
	if s.closed {
		return nil, false
	}

	ticket, ok := s.machine.Begin()
	if !ok {
		return nil, false
	}

	if s.current != nil {
		s.current.Cancel()
	}
	s.current = startTask(ctx, s.client, ticket, s.timeout)

	logging.LogLookupStarted(s.log, s.id, ticket.Seq, ticket.PostalCode)
	return s.current, true
}

// Apply feeds a finished task's result into the state machine. It reports
// false when the result was stale and left the state untouched.
func (s *Session) Apply(r Result) bool {
	if !s.machine.Resolve(r.Ticket, r.Outcome) {
		logging.LogStaleResult(s.log, s.id, r.Ticket.Seq, s.latestSeq())
		return false
	}
	if s.current != nil && s.current.Ticket == r.Ticket {
		s.current = nil
	}

	st := s.machine.State()
	if st.Phase == PhaseFound {
		s.history.Add(st.Record)
	}
	logging.LogLookupResolved(s.log, s.id, r.Ticket.Seq, r.Ticket.PostalCode, st.Phase.String(), st.Reason)

	return true
}

// Lookup runs a full search synchronously: Search, wait, Apply. It is the
// non-interactive path used by one-shot commands. The task is bound to ctx,
// so canceling ctx ends the wait with a Failed state.
func (s *Session) Lookup(ctx context.Context) State {
	task, ok := s.Search(ctx)
	if !ok {
		return s.State()
	}
	<-task.Done()
	res, _ := task.Result()
	s.Apply(res)
	return s.State()
}

// Close cancels any request in flight. A closed session starts no searches.
func (s *Session) Close() {
	if s.current != nil {
		s.current.Cancel()
		s.current = nil
	}
	s.closed = true
}

func (s *Session) latestSeq() uint64 {
	return s.machine.seq
}
