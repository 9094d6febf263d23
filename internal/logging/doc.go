// Package logging provides structured logging for logconsole.
//
// This package wraps a global zap logger with convenience functions for the
// logging patterns used throughout the console. Logging is silent unless
// LOGCONSOLE_LOG_LEVEL is set, because the interactive console owns the
// terminal. Set LOGCONSOLE_LOG_FILE (or the log_file preference) to send
// output to a file while the TUI is running.
//
// # Log Levels
//
//   - Debug: HTTP requests/responses, dispatched actions, store updates
//   - Info: Startup, profile selection, live tail connection state
//   - Warn: Failed fire-and-forget actions, dropped live tail frames
//   - Error: Startup failures
//
// # Structured Logging
//
//	logging.Info("Live tail connected",
//	    zap.String("url", url),
//	    zap.String("query", query),
//	)
//
// # Specialized Logging
//
//	logging.LogDispatch("update", configType)
//	logging.LogDispatchFailed("list", configType, err)
//	logging.LogHTTPRequest(requestID, "GET", "/api/streams")
//	logging.LogStoreUpdate("inputs", len(inputs))
//
// # Configuration
//
//	if err := logging.Initialize("debug", "/tmp/logconsole.log"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Initialize and
// SetLogger must be called before other goroutines start logging.
package logging
