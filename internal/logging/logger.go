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
const LogLevelEnvVar = "LOGCONSOLE_LOG_LEVEL"

// LogFileEnvVar names the file logs are written to. The interactive
// console owns stdout, so file output is the normal case.
const LogFileEnvVar = "LOGCONSOLE_LOG_FILE"

// Initialize creates a new logger with the specified level writing to path.
// If level is empty, it checks LOGCONSOLE_LOG_LEVEL; if path is empty, it
// checks LOGCONSOLE_LOG_FILE and falls back to stderr.
// If no level is set anywhere, logging is disabled (silent mode).
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	output := "stderr"
	if path != "" {
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// InitializeFromEnv initializes the logger from LOGCONSOLE_LOG_LEVEL and
// LOGCONSOLE_LOG_FILE.
func InitializeFromEnv() error {
	return Initialize("", "")
}

// SetLogger replaces the global logger. Tests use this with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		// Fallback to silent logger if not initialized
		logger = zap.NewNop()
	}
	return logger
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

// LogDispatch logs an action dispatched to the server
func LogDispatch(action string, configType string) {
	Debug("Action dispatched",
		zap.String("action", action),
		zap.String("config_type", configType),
	)
}

// LogDispatchFailed logs a fire-and-forget action that failed. Screens never
// see these failures, so the log is the only place they surface.
func LogDispatchFailed(action string, configType string, err error) {
	Warn("Action failed",
		zap.String("action", action),
		zap.String("config_type", configType),
		zap.Error(err),
	)
}

// LogHTTPRequest logs an API request
func LogHTTPRequest(requestID string, method string, path string) {
	Debug("HTTP request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)
}

// LogHTTPResponse logs an API response
func LogHTTPResponse(requestID string, statusCode int, length int64) {
	Debug("HTTP response",
		zap.String("request_id", requestID),
		zap.Int("status_code", statusCode),
		zap.Int64("content_length", length),
	)
}

// LogStoreUpdate logs a snapshot published to a store
func LogStoreUpdate(storeName string, size int) {
	Debug("Store updated",
		zap.String("store", storeName),
		zap.Int("size", size),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
