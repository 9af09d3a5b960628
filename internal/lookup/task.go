package lookup

import (
	"context"
	"time"

	"github.com/muurk/buscacep/internal/viacep"
)

// Result pairs an outcome with the ticket it answers.
type Result struct {
	Ticket  Ticket
	Outcome viacep.Outcome
}

// Task is one lookup running in the background. It resolves exactly once:
// with the client's outcome, or with a transport error if it is canceled or
// times out first.
type Task struct {
	Ticket Ticket

	done   chan struct{}
	result Result
	cancel context.CancelFunc
}

func startTask(parent context.Context, client Client, ticket Ticket, timeout time.Duration) *Task {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	t := &Task{
		Ticket: ticket,
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer cancel()

		// Buffered so the client goroutine never blocks if the task gave up on it.
		outcomes := make(chan viacep.Outcome, 1)
		go func() { outcomes <- client.Lookup(ctx, ticket.PostalCode) }()

		var out viacep.Outcome
		select {
		case out = <-outcomes:
		case <-ctx.Done():
			out = viacep.TransportError(viacep.NewNetworkError("lookup abandoned", ctx.Err()))
		}

		t.result = Result{Ticket: ticket, Outcome: out}
		close(t.done)
	}()

	return t
}

// Done is closed once the task has resolved.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the result if the task has resolved.
func (t *Task) Result() (Result, bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the task resolves or ctx is done.
func (t *Task) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Cancel abandons the request. The task still resolves, with a canceled
// transport error unless the client already answered.
func (t *Task) Cancel() { t.cancel() }
