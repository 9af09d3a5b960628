package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/config"
	"github.com/muurk/buscacep/internal/logging"
)

// Global flags
var (
	configPath   string
	baseURL      string
	timeoutSecs  int
	outputFormat string
	logLevel     string
	logFile      string
)

// cfg is the loaded configuration with flag overrides applied.
var cfg *config.Config

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default is the platform config directory)")
	flags.StringVar(&baseURL, "base-url", "", "Directory service URL (overrides config)")
	flags.IntVar(&timeoutSecs, "timeout", 0, "Lookup timeout in seconds (overrides config)")
	flags.StringVar(&outputFormat, "format", "", "Output format: detailed, compact, json (overrides config)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default silent)")
	flags.StringVar(&logFile, "log-file", "", "Write logs to this file instead of stdout")
}

// setup initializes logging and loads the configuration before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := setupLogging(cmd, args); err != nil {
		return err
	}

	loaded, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyOverrides(loaded); err != nil {
		return err
	}
	cfg = loaded

	logging.Debug("Configuration loaded",
		zap.String("base_url", cfg.Service.BaseURL),
		zap.Duration("timeout", cfg.LookupTimeout()),
		zap.String("format", cfg.Preferences.OutputFormat),
	)
	return nil
}

// logDestination keeps log lines off the screen while the search screen
// owns the terminal.
func logDestination(cmd *cobra.Command) string {
	if logFile != "" || !isInteractive(cmd) {
		return logFile
	}
	if logLevel == "" && os.Getenv(logging.LogLevelEnvVar) == "" {
		return ""
	}
	if env := os.Getenv(logging.LogFileEnvVar); env != "" {
		return env
	}
	return filepath.Join(os.TempDir(), "buscacep.log")
}

func isInteractive(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}

// setupLogging is the pre-run for commands that must work without a
// readable config file.
func setupLogging(cmd *cobra.Command, args []string) error {
	return logging.Initialize(logLevel, logDestination(cmd))
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// applyOverrides copies explicitly set flags over the file values.
func applyOverrides(c *config.Config) error {
	if baseURL != "" {
		c.Service.BaseURL = baseURL
	}
	if timeoutSecs < 0 {
		return fmt.Errorf("--timeout must not be negative, got %d", timeoutSecs)
	}
	if timeoutSecs > 0 {
		c.Service.Timeout = timeoutSecs
	}
	if outputFormat != "" {
		c.Preferences.OutputFormat = outputFormat
	}
	return c.Validate()
}

// resolvedConfigPath is the file config commands read and write.
func resolvedConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}

func currentFormat() string {
	if cfg == nil || cfg.Preferences == nil {
		return address.FormatDetailed
	}
	return cfg.Preferences.OutputFormat
}
