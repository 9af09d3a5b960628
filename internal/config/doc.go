// Package config provides user configuration management for buscacep.
//
// This package manages a YAML configuration file holding the directory
// service settings (endpoint, timeout, client-side rate limit) and display
// preferences. Command-line flags override whatever the file says.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/buscacep/config.yaml or $HOME/.config/buscacep/config.yaml
//   - macOS: $HOME/.config/buscacep/config.yaml
//   - Windows: %LOCALAPPDATA%\buscacep\config.yaml
//
// BUSCACEP_CONFIG overrides the location on every platform.
//
// # File Format
//
//	version: 1
//	service:
//	  base_url: https://viacep.com.br/ws
//	  timeout: 10
//	  requests_per_second: 5
//	  burst: 5
//	preferences:
//	  output_format: detailed
//	  history_size: 10
//
// A missing file is not an error: Load returns the defaults above.
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := cfg.NewClient()
//
// # Thread Safety
//
// The global config uses sync.Once for safe initialization across goroutines.
// File writes are serialized by a mutex and are atomic (temp file + rename).
package config
