// Package ui provides the terminal styling and non-interactive output
// components shared by the logconsole commands.
//
// The interactive screens live in internal/tui; this package holds what
// both sides need: the lipgloss color palette and styles, terminal size
// detection, the ref-counted StyleSheet that screens acquire while
// mounted, and the Printer used by "run once and exit" commands such as
// `logconsole search` and `logconsole config set`.
//
// # Usage Pattern
//
//	p := ui.NewPrinter(os.Stdout)
//	p.PrintHeader("Search", "logconsole search", ui.Detail{Key: "Query", Value: q})
//	p.Println(table)
//	p.PrintSuccess("Search complete", ui.Detail{Key: "Results", Value: "42"})
//
// # Logging Integration
//
// This package expects logging to be controlled via the LOGCONSOLE_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, so the
// curated UI output is displayed cleanly.
package ui
