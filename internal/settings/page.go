package settings

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/panels"
	"github.com/muurk/logconsole/internal/permissions"
	"github.com/muurk/logconsole/internal/plugin"
	"github.com/muurk/logconsole/internal/poll"
	"github.com/muurk/logconsole/internal/store"
	"github.com/muurk/logconsole/internal/ui"
)

// URLWhitelistReadPermission gates the URL whitelist panel.
const URLWhitelistReadPermission = "urlwhitelist:read"

// DefaultPollInterval is how often readiness is checked while loading.
const DefaultPollInterval = 100 * time.Millisecond

// Actions are the fire-and-forget loads and updates the page dispatches.
type Actions interface {
	List(configType string)
	ListMessageProcessorsConfig()
	ListWhiteListConfig()
	Update(configType string, cfg model.Config)
	UpdateMessageProcessorsConfig(cfg model.Config)
	UpdateWhitelist(cfg model.Config)
}

// Deps wires the page to its collaborators.
type Deps struct {
	Configs store.Source[model.Configurations]
	User    store.Source[model.CurrentUser]
	Actions Actions
	Plugins *plugin.Registry
	Styles  *ui.StyleSheet

	// Notify posts a message to the running program.
	Notify func(tea.Msg)

	PollInterval time.Duration
	Readiness    Readiness
}

// LoadedMsg is sent once every required configuration is known.
type LoadedMsg struct{}

// ConfigsChangedMsg is sent when the configuration store changes.
type ConfigsChangedMsg struct{}

// builtin is a configuration panel the page always offers.
type builtin struct {
	ConfigType string
	Factory    plugin.Factory
	Permission string
}

var builtins = []builtin{
	{ConfigType: model.SearchesClusterConfig, Factory: panels.Searches},
	{ConfigType: model.MessageProcessorsConfig, Factory: panels.MessageProcessors},
	{ConfigType: model.SidecarConfig, Factory: panels.Sidecar},
	{ConfigType: model.EventsConfig, Factory: panels.Events},
	{ConfigType: model.URLWhiteListConfig, Factory: panels.URLWhitelist, Permission: URLWhitelistReadPermission},
	{ConfigType: model.CustomizationConfig, Factory: panels.Customization},
}

// keyMap defines key bindings for the settings page
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Cancel key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Edit, k.Cancel}}
}

// Page is the settings aggregator screen. It loads every configuration
// resource on mount and shows a spinner until the required ones are
// known.
type Page struct {
	deps Deps

	required  []string
	permitted map[string]bool
	task      *poll.Task
	loaded    atomic.Bool
	unsub     func()
	progress  *ui.LoadProgress

	cursor  int
	editing bool
	status  string

	Width  int
	Height int

	Spinner spinner.Model
	Input   textinput.Model
	Help    help.Model
	Keys    keyMap
}

// New creates a settings page. Nothing is loaded until Mount.
func New(deps Deps) *Page {
	if deps.PollInterval <= 0 {
		deps.PollInterval = DefaultPollInterval
	}
	if deps.Readiness == nil {
		deps.Readiness = ExactMembership
	}
	if deps.Styles == nil {
		deps.Styles = NewStyleSheet()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.SpinnerStyle

	in := textinput.New()
	in.CharLimit = 1024
	in.Width = 50

	return &Page{
		deps:    deps,
		Spinner: s,
		Input:   in,
		Help:    help.New(),
		Keys: keyMap{
			Up: key.NewBinding(
				key.WithKeys("up", "k"),
				key.WithHelp("↑/k", "up"),
			),
			Down: key.NewBinding(
				key.WithKeys("down", "j"),
				key.WithHelp("↓/j", "down"),
			),
			Edit: key.NewBinding(
				key.WithKeys("enter"),
				key.WithHelp("enter", "edit"),
			),
			Cancel: key.NewBinding(
				key.WithKeys("esc"),
				key.WithHelp("esc", "cancel"),
			),
		},
	}
}

// Mount requests every configuration resource the user may read, acquires
// the style sheet and starts the readiness poll.
func (p *Page) Mount() tea.Cmd {
	p.Unmount()
	p.loaded.Store(false)
	p.cursor, p.editing, p.status = 0, false, ""

	var granted []string
	if p.deps.User != nil {
		granted = p.deps.User.Snapshot().Permissions
	}

	p.required = nil
	p.permitted = make(map[string]bool, len(builtins))
	var titles []string
	for _, b := range builtins {
		if b.Permission != "" && !permissions.IsPermitted(granted, b.Permission) {
			continue
		}
		p.permitted[b.ConfigType] = true
		p.required = append(p.required, b.ConfigType)
		titles = append(titles, b.Factory(plugin.Props{}).Title())
		p.load(b.ConfigType)
	}
	for _, c := range p.deps.Plugins.Exports(plugin.SystemConfigurations) {
		p.load(c.ConfigType)
	}
	p.progress = ui.NewLoadProgress("Loading configuration", titles)

	p.deps.Styles.Use()

	if p.deps.Configs != nil {
		notify := p.deps.Notify
		p.unsub = p.deps.Configs.Subscribe(func(model.Configurations) {
			if notify != nil {
				notify(ConfigsChangedMsg{})
			}
		})
	}

	required := p.Required()
	p.task = poll.NewTask(p.deps.PollInterval, func() bool { return !p.check(required) })
	p.task.Start()

	return p.Spinner.Tick
}

// Unmount stops the readiness poll and releases the style sheet. It is
// safe to call on a page that is not mounted.
func (p *Page) Unmount() {
	if p.task == nil {
		return
	}
	p.task.Stop()
	p.task = nil
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	p.deps.Styles.Unuse()
}

func (p *Page) load(configType string) {
	if p.deps.Actions == nil {
		return
	}
	switch configType {
	case model.MessageProcessorsConfig:
		p.deps.Actions.ListMessageProcessorsConfig()
	case model.URLWhiteListConfig:
		p.deps.Actions.ListWhiteListConfig()
	default:
		p.deps.Actions.List(configType)
	}
}

// check reports whether every required configuration is known, flipping
// the page to loaded the first time it is.
func (p *Page) check(required []string) bool {
	if p.deps.Configs == nil {
		return false
	}
	known := p.deps.Configs.Snapshot().Configs
	if !p.deps.Readiness(known, required) {
		return false
	}
	if p.loaded.CompareAndSwap(false, true) {
		logging.Debug("settings loaded")
		if p.deps.Notify != nil {
			p.deps.Notify(LoadedMsg{})
		}
	}
	return true
}

// Loaded reports whether the page has left the loading state.
func (p *Page) Loaded() bool {
	return p.loaded.Load()
}

// Required returns the configuration types the page waits for.
func (p *Page) Required() []string {
	return append([]string(nil), p.required...)
}

// Permitted reports whether the user may see the panel for configType.
func (p *Page) Permitted(configType string) bool {
	return p.permitted[configType]
}

// GetConfig returns the stored value for configType, or fallback when it
// has not been loaded.
func (p *Page) GetConfig(configType string, fallback model.Config) model.Config {
	if p.deps.Configs == nil {
		return fallback
	}
	if cfg, ok := p.deps.Configs.Snapshot().Get(configType); ok {
		return cfg
	}
	return fallback
}

// ConfigFor is GetConfig with the per-type default: an empty config for
// customization and nil otherwise.
func (p *Page) ConfigFor(configType string) model.Config {
	var fallback model.Config
	if configType == model.CustomizationConfig {
		fallback = model.Config{}
	}
	return p.GetConfig(configType, fallback)
}

// BuildUpdateHandler returns the callback that dispatches a new value for
// configType.
func (p *Page) BuildUpdateHandler(configType string) func(model.Config) {
	return func(cfg model.Config) {
		if p.deps.Actions == nil {
			return
		}
		switch configType {
		case model.MessageProcessorsConfig:
			p.deps.Actions.UpdateMessageProcessorsConfig(cfg)
		case model.URLWhiteListConfig:
			p.deps.Actions.UpdateWhitelist(cfg)
		default:
			p.deps.Actions.Update(configType, cfg)
		}
	}
}

func (p *Page) props(configType string) plugin.Props {
	return plugin.Props{
		Config:       p.ConfigFor(configType),
		UpdateConfig: p.BuildUpdateHandler(configType),
	}
}

// BuiltinPanels returns the panels for the built-in resources the user
// may see, in display order.
func (p *Page) BuiltinPanels() []plugin.Panel {
	var out []plugin.Panel
	for _, b := range builtins {
		if !p.permitted[b.ConfigType] {
			continue
		}
		out = append(out, b.Factory(p.props(b.ConfigType)))
	}
	return out
}

// PluginPanels instantiates every contributed panel.
func (p *Page) PluginPanels() []plugin.Panel {
	var out []plugin.Panel
	for _, c := range p.deps.Plugins.Exports(plugin.SystemConfigurations) {
		out = append(out, c.Factory(p.props(c.ConfigType)))
	}
	return out
}

// PluginRows lays the plugin panels out two per row. An odd final row is
// padded with a nil cell.
func (p *Page) PluginRows() [][]plugin.Panel {
	return pairs(p.PluginPanels())
}

func pairs(ps []plugin.Panel) [][]plugin.Panel {
	var rows [][]plugin.Panel
	for i := 0; i < len(ps); i += 2 {
		if i+1 < len(ps) {
			rows = append(rows, []plugin.Panel{ps[i], ps[i+1]})
		} else {
			rows = append(rows, []plugin.Panel{ps[i], nil})
		}
	}
	return rows
}

// entry is one editable field on the page.
type entry struct {
	panel plugin.Panel
	field string
}

func (p *Page) entries() []entry {
	var out []entry
	all := append(p.BuiltinPanels(), p.PluginPanels()...)
	for _, panel := range all {
		for _, f := range panel.Fields() {
			out = append(out, entry{panel: panel, field: f})
		}
	}
	return out
}

// Update handles messages and updates the page
func (p *Page) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.Width = msg.Width
		p.Height = msg.Height
		return nil

	case spinner.TickMsg:
		if p.Loaded() || p.task == nil {
			return nil
		}
		var cmd tea.Cmd
		p.Spinner, cmd = p.Spinner.Update(msg)
		return cmd

	case LoadedMsg, ConfigsChangedMsg:
		return nil

	case tea.KeyMsg:
		if !p.Loaded() {
			return nil
		}
		if p.editing {
			return p.updateEditor(msg)
		}
		return p.updateNormalMode(msg)
	}
	return nil
}

func (p *Page) updateNormalMode(msg tea.KeyMsg) tea.Cmd {
	entries := p.entries()
	switch {
	case key.Matches(msg, p.Keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.Keys.Down):
		if p.cursor < len(entries)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.Keys.Edit):
		if p.cursor >= len(entries) {
			return nil
		}
		e := entries[p.cursor]
		value := e.panel.Value(e.field)
		if value == panels.NotSet {
			value = ""
		}
		p.Input.SetValue(value)
		p.Input.CursorEnd()
		p.editing = true
		p.status = ""
		return p.Input.Focus()
	}
	return nil
}

func (p *Page) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.Keys.Cancel):
		p.editing = false
		p.Input.Blur()
		return nil
	case key.Matches(msg, p.Keys.Edit):
		entries := p.entries()
		p.editing = false
		p.Input.Blur()
		if p.cursor >= len(entries) {
			return nil
		}
		e := entries[p.cursor]
		if err := e.panel.Edit(e.field, p.Input.Value()); err != nil {
			p.status = ui.FailureMarker + " " + err.Error()
			return nil
		}
		p.status = ui.SuccessMarker + " Saved " + e.field
		return nil
	}

	var cmd tea.Cmd
	p.Input, cmd = p.Input.Update(msg)
	return cmd
}

// Editing reports whether a field editor is open.
func (p *Page) Editing() bool {
	return p.editing
}

// HelpView renders the key help line.
func (p *Page) HelpView() string {
	return p.Help.View(p.Keys)
}
