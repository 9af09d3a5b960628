// Package viacep is a client for the ViaCEP postal-code directory.
//
// Lookup never returns an error value. Every exchange is folded into an
// Outcome:
//
//   - OutcomeSuccess: 2xx with a JSON object. The record may still be invalid
//     (blank fields); validating it is the caller's decision.
//   - OutcomeEmptyBody: 2xx with an empty or null body, an {"erro": true}
//     payload, or a 400/404 status.
//   - OutcomeTransportError: network failure, timeout, any other status, or a
//     body that is not directory JSON. Err is always an *Error.
//
// Usage:
//
//	client := viacep.NewClient()
//	client.SetTimeout(5 * time.Second)
//
//	out := client.Lookup(ctx, "01310930")
//	switch out.Kind {
//	case viacep.OutcomeSuccess:
//	    fmt.Println(out.Record.Summary())
//	case viacep.OutcomeEmptyBody:
//	    fmt.Println("not found")
//	case viacep.OutcomeTransportError:
//	    fmt.Println(viacep.ShortMessage(out.Err))
//	}
//
// Search queries by state, city and street and returns only valid records.
//
// A Client is safe for concurrent use. It does not log.
package viacep
