// Package urls provides centralized constants for all documentation URLs used
// throughout the application.
//
// All user-facing URLs are defined here as exported constants and can be
// updated in a single location before release.
//
// Usage:
//
//	import "github.com/muurk/buscacep/internal/urls"
//
//	fmt.Printf("Report it at: %s\n", urls.Issues)
package urls
