package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/lookup"
	"github.com/muurk/buscacep/internal/viacep"
)

// CurrentVersion is the only config file version this build reads.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version     int          `yaml:"version"`
	Service     *Service     `yaml:"service,omitempty"`
	Preferences *Preferences `yaml:"preferences,omitempty"`
}

// Service configures the postal-code directory client.
type Service struct {
	BaseURL           string  `yaml:"base_url"`                      // Directory endpoint, without the trailing /
	Timeout           int     `yaml:"timeout"`                       // Per-lookup timeout in seconds
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"` // 0 disables client-side limiting
	Burst             int     `yaml:"burst,omitempty"`
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	OutputFormat string `yaml:"output_format"` // detailed, compact or json
	HistorySize  int    `yaml:"history_size"`  // Records kept in the search screen history
}

func defaultService() *Service {
	return &Service{
		BaseURL:           viacep.DefaultBaseURL,
		Timeout:           int(viacep.DefaultTimeout / time.Second),
		RequestsPerSecond: 5,
		Burst:             5,
	}
}

func defaultPreferences() *Preferences {
	return &Preferences{
		OutputFormat: address.FormatDetailed,
		HistorySize:  lookup.DefaultHistorySize,
	}
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version:     CurrentVersion,
		Service:     defaultService(),
		Preferences: defaultPreferences(),
	}
}

// fillDefaults replaces missing sections and zero values with defaults.
func (c *Config) fillDefaults() {
	if c.Service == nil {
		c.Service = defaultService()
	}
	if c.Preferences == nil {
		c.Preferences = defaultPreferences()
	}

	def := defaultService()
	if c.Service.BaseURL == "" {
		c.Service.BaseURL = def.BaseURL
	}
	if c.Service.Timeout == 0 {
		c.Service.Timeout = def.Timeout
	}
	if c.Preferences.OutputFormat == "" {
		c.Preferences.OutputFormat = address.FormatDetailed
	}
	if c.Preferences.HistorySize == 0 {
		c.Preferences.HistorySize = lookup.DefaultHistorySize
	}
}

// Validate checks values that would otherwise fail at lookup time.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}

	if c.Service != nil {
		u, err := url.Parse(c.Service.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("service.base_url must be an http(s) URL, got %q", c.Service.BaseURL)
		}
		if c.Service.Timeout < 0 {
			return fmt.Errorf("service.timeout must not be negative, got %d", c.Service.Timeout)
		}
		if c.Service.RequestsPerSecond < 0 {
			return fmt.Errorf("service.requests_per_second must not be negative, got %v", c.Service.RequestsPerSecond)
		}
	}

	if c.Preferences != nil {
		if !address.IsValidFormat(c.Preferences.OutputFormat) {
			return fmt.Errorf("preferences.output_format must be one of %v, got %q", address.Formats, c.Preferences.OutputFormat)
		}
		if c.Preferences.HistorySize < 0 {
			return fmt.Errorf("preferences.history_size must not be negative, got %d", c.Preferences.HistorySize)
		}
	}

	return nil
}

// LookupTimeout returns the per-lookup timeout.
func (c *Config) LookupTimeout() time.Duration {
	if c.Service == nil || c.Service.Timeout <= 0 {
		return viacep.DefaultTimeout
	}
	return time.Duration(c.Service.Timeout) * time.Second
}

// NewClient builds a directory client from the service section.
func (c *Config) NewClient() *viacep.Client {
	svc := c.Service
	if svc == nil {
		svc = defaultService()
	}

	client := viacep.NewClientWithURL(svc.BaseURL)
	client.SetTimeout(c.LookupTimeout())
	client.SetRateLimit(svc.RequestsPerSecond, svc.Burst)
	return client
}
