// Package ui provides terminal output components for the buscacep CLI.
//
// This package uses Lipgloss to render one-shot command output. Unlike the
// interactive search screen in internal/tui, these components follow a
// "run once and exit" pattern: they render results but don't require user
// interaction.
//
// # Components
//
//   - Header: Command banner showing the operation and its parameters
//   - Result: Found, not-found and failure boxes, with troubleshooting tips
//   - Progress: Batch summary with a bar and one line per postal code
//   - Confirm: Yes/no prompt used before destructive config changes
//
// StateResult maps a terminal lookup.State onto the matching Result box, so
// commands and the search screen describe outcomes the same way.
//
// # Usage Pattern
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("CEP lookup", "buscacep lookup 01310930")
//	p.PrintState(session.Lookup(ctx))
//
// # Logging Integration
//
// This package expects logging to be controlled via the BUSCACEP_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly.
package ui
