package viacep

import (
	"fmt"

	"github.com/muurk/buscacep/internal/address"
)

// OutcomeKind tags the three results a lookup can produce.
type OutcomeKind int

const (
	// OutcomeSuccess carries a decoded record. The record may still be invalid.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeEmptyBody means the service answered but had nothing for the code.
	OutcomeEmptyBody
	// OutcomeTransportError means the exchange itself failed.
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmptyBody:
		return "empty_body"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of exactly one lookup request.
type Outcome struct {
	Kind   OutcomeKind
	Record address.Record // set for OutcomeSuccess
	Err    error          // set for OutcomeTransportError
}

// Success wraps a decoded record.
func Success(r address.Record) Outcome {
	return Outcome{Kind: OutcomeSuccess, Record: r}
}

// EmptyBody reports a miss.
func EmptyBody() Outcome {
	return Outcome{Kind: OutcomeEmptyBody}
}

// TransportError wraps a failed exchange.
func TransportError(err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Err: err}
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "success(" + o.Record.PostalCode + ")"
	case OutcomeTransportError:
		return fmt.Sprintf("transport_error(%v)", o.Err)
	default:
		return o.Kind.String()
	}
}
