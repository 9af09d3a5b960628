// Package lookup implements the postal-code lookup flow behind the search
// screen.
//
// Three pieces compose it:
//
//   - ApplyInput bounds what the user types to MaxPostalCodeLength
//     characters, ignoring overlong edits.
//   - Machine owns the input text and the State the screen renders (Idle,
//     Loading, Found, NotFound, Failed) and moves between them on edits and
//     lookup results.
//   - Session is the explicit container for one mounted screen: it wires a
//     Machine to a Client, runs each lookup as a Task, and keeps the history
//     of records found.
//
// # Ordering
//
// Every search issues a Ticket with a sequence number one higher than the
// last. Only the result for the ticket still in flight is applied; anything
// older is discarded, so the latest search always wins. Clearing the input
// abandons the request in flight.
//
// # Usage
//
//	session := lookup.NewSession(viacep.NewClient(), lookup.WithTimeout(5*time.Second))
//	defer session.Close()
//
//	session.Edit("01310930")
//	task, ok := session.Search(ctx)
//	if ok {
//	    res, _ := task.Wait(ctx)
//	    session.Apply(res)
//	}
//	fmt.Println(session.State())
//
// # Failure
//
// The machine never fails. Transport problems become a Failed state carrying
// the reason; a valid response with blank fields, an empty body or a "not
// found" payload become NotFound. Neither is retried.
package lookup
