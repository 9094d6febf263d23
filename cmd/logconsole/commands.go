package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/logconsole/internal/actions"
	"github.com/muurk/logconsole/internal/apiclient"
	"github.com/muurk/logconsole/internal/config"
	"github.com/muurk/logconsole/internal/discovery"
	"github.com/muurk/logconsole/internal/livetail"
	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/mapsconfig"
	"github.com/muurk/logconsole/internal/messagelist"
	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/plugin"
	"github.com/muurk/logconsole/internal/refresh"
	"github.com/muurk/logconsole/internal/tui"
	"github.com/muurk/logconsole/internal/ui"
	"github.com/muurk/logconsole/internal/urls"
)

// PasswordEnvVar supplies the server password when --password is not set.
const PasswordEnvVar = "LOGCONSOLE_PASSWORD"

// Connection and display flags
var (
	serverURL   string
	username    string
	password    string
	profileName string
	insecure    bool
	pageSize    int
	fields      []string
	refreshSecs int
	liveTail    bool
	logLevel    string
	logFile     string
	scanTimeout int
	searchRange time.Duration
	searchPage  int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server base URL (overrides the profile)")
	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "Username")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Password or API token (default $"+PasswordEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Server profile to use (default: active profile)")
	rootCmd.PersistentFlags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: preferences, then stderr)")

	rootCmd.Flags().IntVar(&pageSize, "page-size", 0, "Messages per page (default: preferences)")
	rootCmd.Flags().StringSliceVar(&fields, "fields", nil, "Message table columns (default: preferences)")
	rootCmd.Flags().IntVar(&refreshSecs, "refresh", -1, "Auto-refresh interval in seconds, 0 disables (default: preferences)")
	rootCmd.Flags().BoolVar(&liveTail, "tail", false, "Stream new messages over websocket")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(searchCmd)
}

// connection is a resolved server endpoint.
type connection struct {
	profile  string
	url      string
	username string
	password string
	insecure bool
	prefs    *config.Preferences
	registry *config.Registry
}

// resolveConnection combines flags, the environment and the selected profile.
func resolveConnection() (*connection, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	conn := &connection{
		registry: registry,
		prefs:    registry.Preferences,
		url:      serverURL,
		username: username,
		password: password,
		insecure: insecure,
	}

	name := profileName
	if name == "" {
		name = registry.ActiveProfile
	}
	if p := registry.GetProfile(name); p != nil {
		conn.profile = name
		if conn.url == "" {
			conn.url = p.URL
		}
		if conn.username == "" {
			conn.username = p.Username
		}
		conn.insecure = conn.insecure || p.Insecure
	} else if profileName != "" {
		return nil, fmt.Errorf("unknown profile %q (see 'logconsole profile list')", profileName)
	}

	if conn.url == "" {
		return nil, fmt.Errorf("no server configured: pass --server or run 'logconsole profile add' (see %s)", urls.GettingStarted)
	}
	if conn.password == "" {
		conn.password = os.Getenv(PasswordEnvVar)
	}
	return conn, nil
}

func (c *connection) client() *apiclient.Client {
	client := apiclient.NewClient(c.url)
	client.SetAuth(c.username, c.password)
	client.SetInsecure(c.insecure)
	return client
}

// touch records that the profile was used.
func (c *connection) touch() {
	if c.profile == "" {
		return
	}
	c.registry.TouchProfile(c.profile)
	if err := c.registry.Save(); err != nil {
		logging.Warn("Failed to save profile usage", zap.Error(err))
	}
}

func (c *connection) pageSize() int {
	if pageSize > 0 {
		return pageSize
	}
	return c.prefs.PageSize
}

func (c *connection) fields() []string {
	if len(fields) > 0 {
		return fields
	}
	return c.prefs.SelectedFields
}

func (c *connection) refreshInterval() time.Duration {
	secs := c.prefs.RefreshInterval
	if refreshSecs >= 0 {
		secs = refreshSecs
	}
	return time.Duration(secs) * time.Second
}

// searchLimit is how many records a refresh fetches for paging.
func searchLimit(size int) int {
	return size * 10
}

func runConsole(cmd *cobra.Command, args []string) error {
	conn, err := resolveConnection()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := conn.client()
	stores := actions.NewStores(conn.fields())
	dispatcher := actions.NewDispatcher(ctx, client, stores)
	defer dispatcher.Close()

	limit := searchLimit(conn.pageSize())
	search := func(query string) {
		dispatcher.Search(apiclient.SearchRequest{Query: query, Limit: limit})
	}
	auto := refresh.NewController(conn.refreshInterval(), func() {
		search(stores.View.Snapshot().ActiveQuery)
	})

	plugins := plugin.NewRegistry()
	mapsconfig.Register(plugins)

	bridge := &tui.Bridge{}
	app := tui.NewAppModel(tui.Options{
		Stores:      stores,
		Actions:     dispatcher,
		AutoRefresh: auto,
		Plugins:     plugins,
		Search:      search,
		Notify:      bridge.Send,
		PageSize:    conn.pageSize(),
		ServerURL:   conn.url,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	bridge.Attach(p)

	dispatcher.Bootstrap()
	search(stores.View.Snapshot().ActiveQuery)
	auto.Start()
	defer auto.Stop()

	if liveTail || conn.prefs.LiveTail {
		tail, err := livetail.New(conn.url, "*", stores.Records, auto)
		if err != nil {
			return err
		}
		tail.SetAuth(conn.username, conn.password)
		go func() {
			if err := tail.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn("Live tail stopped", zap.Error(err))
			}
		}()
	}

	final, err := p.Run()
	if m, ok := final.(tui.AppModel); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	conn.touch()
	return nil
}

// scanCmd discovers servers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for log servers on the network",
	Long: `Scan for log servers using mDNS/DNS-SD discovery.

Servers that announce themselves with the _graylog._tcp service type are
listed with their API address and any TXT metadata.`,
	Example: `  # Scan for 5 seconds (default)
  logconsole scan

  # Longer scan for busy networks
  logconsole scan --timeout 15`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Scan timeout in seconds")
}

func runScan(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())
	printer.PrintHeader("Server discovery", "logconsole scan",
		ui.Detail{Key: "Service", Value: discovery.ServiceType},
		ui.Detail{Key: "Timeout", Value: fmt.Sprintf("%ds", scanTimeout)},
	)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	servers, err := scanner.ScanWithContext(cmd.Context())
	if err != nil {
		printer.PrintError("Scan failed", err, []string{"Check that multicast traffic is allowed on this network"})
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(servers) == 0 {
		printer.PrintError("No servers found", errors.New("no announcements received"), []string{
			"Ensure the server advertises " + discovery.ServiceType,
			"Try increasing --timeout for slower networks",
			"Use --server to connect to a known address",
			"See " + urls.ServerDiscovery,
		})
		return nil
	}

	for _, s := range servers {
		details := []ui.Detail{
			{Key: "URL", Value: s.BaseURL()},
			{Key: "Host", Value: s.Hostname},
		}
		if v := s.Version(); v != "" {
			details = append(details, ui.Detail{Key: "Version", Value: v})
		}
		printer.PrintSuccess(s.Instance, details...)
	}
	printer.Println("Use 'logconsole profile add <name> <url>' to save a server")
	return nil
}

// searchCmd prints one page of search results
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Print one page of messages",
	Long: `Run a search and print one page of the message table.

The query uses the server's search syntax and defaults to "*".`,
	Example: `  # Latest messages
  logconsole search

  # Errors from the last hour, second page
  logconsole search 'level:3' --range 1h --page 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().DurationVar(&searchRange, "range", 0, "Look-back window (0 searches all time)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Page to print")
	searchCmd.Flags().IntVar(&pageSize, "page-size", 0, "Messages per page (default: preferences)")
	searchCmd.Flags().StringSliceVar(&fields, "fields", nil, "Columns to print (default: preferences)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	conn, err := resolveConnection()
	if err != nil {
		return err
	}

	query := "*"
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		query = args[0]
	}

	size := conn.pageSize()
	client := conn.client()
	res, err := client.Search(cmd.Context(), apiclient.SearchRequest{
		Query:  query,
		Range:  searchRange,
		Limit:  size,
		Offset: (searchPage - 1) * size,
	})
	printer := ui.NewPrinter(cmd.OutOrStdout())
	if err != nil {
		printer.PrintError(apiclient.GetShortErrorMessage(err), err, []string{apiclient.GetTroubleshootingHint(err)})
		return fmt.Errorf("search failed: %w", err)
	}

	printer.PrintHeader("Search", "logconsole search",
		ui.Detail{Key: "Server", Value: conn.url},
		ui.Detail{Key: "Query", Value: query},
		ui.Detail{Key: "Results", Value: fmt.Sprintf("%d", res.TotalResults)},
	)

	// The server already returned the requested page.
	table := messagelist.BuildTable(messagelist.Props{
		Records:        res.Records,
		SelectedFields: conn.fields(),
		PageSize:       size,
	}, 1, nil)
	printer.Println(renderTable(table))
	conn.touch()
	return nil
}

// renderTable renders a table as plain text lines.
func renderTable(t messagelist.Table) string {
	if len(t.Rows) == 0 {
		return ui.MutedStyle.Render(messagelist.NoMessages)
	}

	header := []string{messagelist.Cell(t.Timestamp.Name, t.Timestamp.Width)}
	for _, c := range t.Columns {
		header = append(header, messagelist.Cell(c.Name, c.Width))
	}
	lines := []string{ui.TableHeaderStyle.Render(strings.Join(header, " "))}

	for _, r := range t.Rows {
		cells := []string{messagelist.Cell(messagelist.FormatTimestamp(r.Record.Field(model.TimestampField), time.Local), t.Timestamp.Width)}
		for _, c := range t.Columns {
			cells = append(cells, messagelist.Cell(r.Fields[c.Name], c.Width))
		}
		lines = append(lines, strings.Join(cells, " "))
		if t.ShowMessageRow {
			lines = append(lines, "  "+ui.MutedStyle.Render(fmt.Sprint(r.Record.Field(model.MessageField))))
		}
	}
	return strings.Join(lines, "\n")
}
