// Package tui implements the interactive postal-code search screen.
//
// The screen is a Bubble Tea program. Bubble Tea's event loop is the single
// thread that touches the lookup.Session: key presses become edits or
// searches, and each lookup runs as a command whose result comes back to
// Update as a message. Results for superseded searches are dropped by the
// session, so the screen always shows the latest one.
//
// # Layout
//
// Every screen is wrapped by RenderApplicationContainer: application header,
// the screen's content, and a footer with context-sensitive key help from
// bubbles/help.
//
// # Keys
//
//   - enter: search for the current input
//   - esc: clear the input and abandon any lookup in flight
//   - ctrl+c: quit
//
// Everything else edits the input. Edits that would make it longer than
// eight characters are ignored.
package tui
