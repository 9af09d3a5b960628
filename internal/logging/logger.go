package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "BUSCACEP_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file instead of stdout.
const LogFileEnvVar = "BUSCACEP_LOG_FILE"

// Initialize creates a new logger with the specified level, writing to
// outputPath ("" means stdout). Empty arguments fall back to the
// BUSCACEP_LOG_LEVEL and BUSCACEP_LOG_FILE environment variables.
// If no level is set anywhere, logging is disabled (silent mode).
func Initialize(level, outputPath string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if outputPath == "" {
		outputPath = os.Getenv(LogFileEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if outputPath != "" {
		// No ANSI colours inside log files.
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.OutputPaths = []string{outputPath}
	}

	l, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l

	return nil
}

// InitializeFromEnv initializes the logger from the environment only.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// ParseLevel maps a level name to a zap level. Unknown names map to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Uninitialized means silent, so CLI output stays clean.
		logger = zap.NewNop()
	}
	return logger
}

// Named returns a child of the global logger for one component.
func Named(component string) *zap.Logger {
	return GetLogger().Named(component)
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogLookupStarted logs a lookup being dispatched for a session.
func LogLookupStarted(l *zap.Logger, sessionID string, seq uint64, postalCode string) {
	l.Info("Lookup started",
		zap.String("session", sessionID),
		zap.Uint64("seq", seq),
		zap.String("postal_code", postalCode),
	)
}

// LogLookupResolved logs the state a lookup result moved the session into.
func LogLookupResolved(l *zap.Logger, sessionID string, seq uint64, postalCode, phase string, reason error) {
	fields := []zap.Field{
		zap.String("session", sessionID),
		zap.Uint64("seq", seq),
		zap.String("postal_code", postalCode),
		zap.String("phase", phase),
	}
	if reason != nil {
		l.Warn("Lookup failed", append(fields, zap.Error(reason))...)
		return
	}
	l.Info("Lookup resolved", fields...)
}

// LogStaleResult logs a result that arrived after a newer lookup was issued.
func LogStaleResult(l *zap.Logger, sessionID string, seq, latest uint64) {
	l.Debug("Discarding stale lookup result",
		zap.String("session", sessionID),
		zap.Uint64("seq", seq),
		zap.Uint64("latest_seq", latest),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
