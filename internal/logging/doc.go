// Package logging provides structured logging for buscacep.
//
// It wraps a package-level zap logger. Logging is silent unless a level is
// given, either through --log-level or the BUSCACEP_LOG_LEVEL environment
// variable, so the curated terminal output stays clean by default.
//
//	if err := logging.Initialize("debug", ""); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The interactive screen owns stdout, so when it runs with logging enabled
// the output should go to a file:
//
//	logging.Initialize("info", "/tmp/buscacep.log")
//
// Lookup sessions log through a named child logger:
//
//	logging.LogLookupStarted(log, sessionID, 3, "01310930")
//	logging.LogLookupResolved(log, sessionID, 3, "01310930", "found", nil)
//
// All functions are safe for concurrent use.
package logging
