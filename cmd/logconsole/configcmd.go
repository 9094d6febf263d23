package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muurk/logconsole/internal/apiclient"
	"github.com/muurk/logconsole/internal/config"
	"github.com/muurk/logconsole/internal/mapsconfig"
	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/panels"
	"github.com/muurk/logconsole/internal/plugin"
	"github.com/muurk/logconsole/internal/ui"
)

var (
	assumeYes     bool
	noVerify      bool
	verifyRetries int
)

// configAliases are the short names accepted for config types.
var configAliases = map[string]string{
	"searches":           model.SearchesClusterConfig,
	"message-processors": model.MessageProcessorsConfig,
	"sidecar":            model.SidecarConfig,
	"events":             model.EventsConfig,
	"urlwhitelist":       model.URLWhiteListConfig,
	"customization":      model.CustomizationConfig,
	"geoip":              mapsconfig.ConfigType,
}

// configPanels are the panel factories used to parse edits, per type.
var configPanels = map[string]plugin.Factory{
	model.SearchesClusterConfig:   panels.Searches,
	model.MessageProcessorsConfig: panels.MessageProcessors,
	model.SidecarConfig:           panels.Sidecar,
	model.EventsConfig:            panels.Events,
	model.URLWhiteListConfig:      panels.URLWhitelist,
	model.CustomizationConfig:     panels.Customization,
	mapsconfig.ConfigType:         mapsconfig.NewPanel,
}

// resolveConfigType accepts an alias or a full config type.
func resolveConfigType(name string) (string, error) {
	if full, ok := configAliases[strings.ToLower(name)]; ok {
		return full, nil
	}
	if _, ok := configPanels[name]; ok {
		return name, nil
	}
	return "", fmt.Errorf("unknown config type %q (known: %s)", name, strings.Join(aliasNames(), ", "))
}

func aliasNames() []string {
	names := make([]string, 0, len(configAliases))
	for n := range configAliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// applyAssignments edits cur with field=value pairs through the type's
// panel, returning the new config and the changed fields.
func applyAssignments(configType string, cur model.Config, assignments []string) (model.Config, []ui.Detail, error) {
	factory, ok := configPanels[configType]
	if !ok {
		return nil, nil, fmt.Errorf("config type %q is not editable", configType)
	}

	next := cur
	var changes []ui.Detail
	for _, a := range assignments {
		field, raw, ok := strings.Cut(a, "=")
		if !ok || field == "" {
			return nil, nil, fmt.Errorf("invalid assignment %q (want field=value)", a)
		}

		var updated model.Config
		panel := factory(plugin.Props{
			Config:       next,
			UpdateConfig: func(cfg model.Config) { updated = cfg },
		})
		before := panel.Value(field)
		if err := panel.Edit(field, raw); err != nil {
			return nil, nil, err
		}
		next = updated
		changes = append(changes, ui.Detail{Key: field, Value: before + " → " + panels.FormatValue(next[field])})
	}
	return next, changes, nil
}

func configDetails(cfg model.Config) []ui.Detail {
	details := make([]ui.Detail, 0, len(cfg))
	for _, k := range cfg.Keys() {
		details = append(details, ui.Detail{Key: k, Value: panels.FormatValue(cfg[k])})
	}
	return details
}

// configCmd groups the config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change server system configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show [type]",
	Short: "Show a configuration resource, or all of them",
	Example: `  # Every resource
  logconsole config show

  # Just the search configuration
  logconsole config show searches`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <type> <field>=<value>...",
	Short: "Change fields of a configuration resource",
	Long: `Change one or more fields of a configuration resource.

Values keep the JSON kind of the current value. Lists are comma
separated or a JSON array; objects are JSON.`,
	Example: `  # Limit query time ranges to 30 days
  logconsole config set searches query_time_range_limit=P30D

  # Enable the badge without prompting
  logconsole config set customization badge_enable=true badge_text=PROD --yes`,
	Args: cobra.MinimumNArgs(2),
	RunE: runConfigSet,
}

func init() {
	configSetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Apply without confirmation")
	configSetCmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip reading the configuration back after the update")
	configSetCmd.Flags().IntVar(&verifyRetries, "retries", 3, "Read-back attempts before reporting a mismatch")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	conn, err := resolveConnection()
	if err != nil {
		return err
	}
	client := conn.client()
	printer := ui.NewPrinter(cmd.OutOrStdout())

	var types []string
	if len(args) == 1 {
		t, err := resolveConfigType(args[0])
		if err != nil {
			return err
		}
		types = []string{t}
	} else {
		for _, alias := range aliasNames() {
			types = append(types, configAliases[alias])
		}
	}

	for _, t := range types {
		cfg, err := client.Config(cmd.Context(), t)
		switch {
		case apiclient.IsNotFound(err):
			printer.PrintSuccess(t, ui.Detail{Key: "Status", Value: panels.NotSet})
		case err != nil:
			printer.PrintError(t, err, []string{apiclient.GetTroubleshootingHint(err)})
			if len(types) == 1 {
				return fmt.Errorf("failed to load %s: %w", t, err)
			}
		default:
			printer.PrintSuccess(t, configDetails(cfg)...)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	configType, err := resolveConfigType(args[0])
	if err != nil {
		return err
	}
	conn, err := resolveConnection()
	if err != nil {
		return err
	}
	client := conn.client()
	printer := ui.NewPrinter(cmd.OutOrStdout())

	cur, err := client.Config(cmd.Context(), configType)
	switch {
	case apiclient.IsNotFound(err):
		// nothing stored server-side yet, so the edit creates the resource
		cur = model.Config{}
	case err != nil:
		return fmt.Errorf("failed to load %s: %w", configType, err)
	}

	next, changes, err := applyAssignments(configType, cur, args[1:])
	if err != nil {
		return err
	}

	if !assumeYes && !ui.Confirm(os.Stdin, cmd.OutOrStdout(), configType, changes) {
		printer.Println("Aborted.")
		return nil
	}

	if noVerify {
		saved, err := client.UpdateConfig(cmd.Context(), configType, next)
		if err != nil {
			printer.PrintError("Update failed", err, []string{apiclient.GetTroubleshootingHint(err)})
			return fmt.Errorf("update failed: %w", err)
		}
		printer.PrintSuccess("Configuration updated", configDetails(saved)...)
		conn.touch()
		return nil
	}

	opts := apiclient.DefaultVerificationOptions()
	opts.MaxRetries = verifyRetries
	result := client.UpdateAndVerify(cmd.Context(), configType, next, opts)
	if !result.Success {
		printer.PrintError("Update not confirmed", result.Error, result.Mismatches)
		return fmt.Errorf("configuration not applied: %w", result.Error)
	}
	printer.PrintSuccess("Configuration updated and verified", append(configDetails(result.Actual),
		ui.Detail{Key: "Attempts", Value: fmt.Sprintf("%d", result.Attempts)})...)
	conn.touch()
	return nil
}

// profileCmd groups the profile subcommands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage saved server profiles",
}

var profileAddCmd = &cobra.Command{
	Use:     "add <name> <url>",
	Short:   "Save a server profile",
	Example: `  logconsole profile add prod https://graylog.example.com --user admin`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if err := registry.SetProfile(args[0], &config.Profile{
			URL:      args[1],
			Username: username,
			Insecure: insecure,
		}); err != nil {
			return err
		}
		if err := registry.Save(); err != nil {
			return err
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Profile saved",
			ui.Detail{Key: "Name", Value: args[0]},
			ui.Detail{Key: "URL", Value: registry.GetProfile(args[0]).URL},
			ui.Detail{Key: "Active", Value: registry.ActiveProfile},
		)
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Make a profile the default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if err := registry.UseProfile(args[0]); err != nil {
			return err
		}
		if err := registry.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Active profile: %s\n", ui.SuccessMarker, args[0])
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		names := registry.ProfileNames()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No profiles saved. Use 'logconsole profile add <name> <url>'.")
			return nil
		}
		for _, name := range names {
			marker := " "
			if name == registry.ActiveProfile {
				marker = "*"
			}
			p := registry.GetProfile(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", marker, name, p.URL)
		}
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileListCmd)
	rootCmd.AddCommand(profileCmd)
}
