// Package config provides user configuration management for logconsole.
//
// This package manages a YAML-based configuration file that stores server
// profiles and console preferences. The configuration follows OS-specific
// conventions for storage location.
//
// # Configuration File Location
//
// LOGCONSOLE_CONFIG names the file directly. Otherwise it is config.yaml
// under $XDG_CONFIG_HOME/logconsole when that variable is set, or under the
// OS user config directory (os.UserConfigDir) joined with "logconsole".
//
// # Security
//
// IMPORTANT: This package NEVER stores server passwords or API tokens.
// They are read from the --password flag or LOGCONSOLE_PASSWORD.
//
// # Usage Example
//
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := registry.SetProfile("lab", &config.Profile{
//	    URL:      "http://graylog.lab:9000",
//	    Username: "admin",
//	}); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
