// Logconsole is a terminal console for Graylog-compatible log servers.
//
// It pages through search results, tails new messages live and edits the
// server's system configuration. Server profiles and preferences are kept
// in a YAML file in the user's config directory; passwords never are.
//
// Usage:
//
//	logconsole [command] [flags]
//
// Running without arguments launches the interactive console.
// See 'logconsole --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muurk/logconsole/internal/config"
	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logconsole",
	Short: "Terminal console for Graylog-compatible log servers",
	Long: `A terminal console for browsing and configuring log servers.

Pages through messages, follows new ones live, and edits the server's
system configuration panels.

If no command is specified, the interactive console will launch automatically.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runConsole,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

// initLogging picks the log file from the flag, the environment or the
// preferences, in that order.
func initLogging() error {
	path := logFile
	if path == "" && os.Getenv(logging.LogFileEnvVar) == "" {
		if registry, err := config.LoadRegistry(); err == nil && registry.Preferences != nil {
			path = registry.Preferences.LogFile
		}
	}
	return logging.Initialize(logLevel, path)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logconsole %s\n", version.Get())
	},
}
