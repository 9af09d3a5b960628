package ui

import (
	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/lookup"
	"github.com/muurk/buscacep/internal/urls"
	"github.com/muurk/buscacep/internal/viacep"
)

// RecordDetails lists the fields of r that have a value, in display order.
func RecordDetails(r address.Record) []Detail {
	fields := r.Fields()
	details := make([]Detail, 0, len(fields))
	for _, f := range fields {
		details = append(details, Detail{Key: f[0], Value: f[1]})
	}
	return details
}

// StateResult builds the result box for a terminal lookup state.
// Idle and Loading have no box and return nil.
func StateResult(st lookup.State) *Result {
	code := address.FormatPostalCode(st.PostalCode)

	switch st.Phase {
	case lookup.PhaseFound:
		return NewSuccessResult(address.FormatPostalCode(st.Record.PostalCode), RecordDetails(st.Record))
	case lookup.PhaseNotFound:
		return NewWarningResult(code, []Detail{
			{Key: "Result", Value: "No address is registered for this CEP"},
			{Key: "Check", Value: urls.CorreiosSearch},
		})
	case lookup.PhaseFailed:
		r := NewFailureResult(code, st.Reason, viacep.TroubleshootingHint(st.Reason))
		r.AddDetail("Problem", viacep.ShortMessage(st.Reason))
		return r
	default:
		return nil
	}
}
