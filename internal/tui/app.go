package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/muurk/logconsole/internal/actions"
	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/messagelist"
	"github.com/muurk/logconsole/internal/plugin"
	"github.com/muurk/logconsole/internal/settings"
	"github.com/muurk/logconsole/internal/ui"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenMessages Screen = "messages"
	ScreenSettings Screen = "settings"
)

// Actions is everything the screens dispatch.
type Actions interface {
	settings.Actions
	messagelist.InputsRefresher
}

// AutoRefresh is the shared pause state of auto-refresh and the live tail.
type AutoRefresh interface {
	Pause()
	Toggle()
	Paused() bool
}

// Options configures the application model.
type Options struct {
	Stores      *actions.Stores
	Actions     Actions
	AutoRefresh AutoRefresh
	Plugins     *plugin.Registry
	Search      func(query string)
	Notify      func(tea.Msg)

	PageSize    int
	Fields      []string
	ServerURL   string
	StartScreen Screen
}

// appKeyMap defines the global key bindings
type appKeyMap struct {
	Switch key.Binding
	Pause  key.Binding
	Search key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Switch, k.Pause, k.Search, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Switch, k.Pause, k.Search, k.Quit}}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	CurrentScreen  Screen
	PreviousScreen Screen

	Messages messagelist.Model
	Settings *settings.Page

	autoRefresh AutoRefresh
	search      func(query string)
	serverURL   string
	initCmd     tea.Cmd

	searching   bool
	SearchInput textinput.Model

	Width  int
	Height int

	Help help.Model
	Keys appKeyMap
}

// NewAppModel creates the application and mounts the start screen.
func NewAppModel(opts Options) AppModel {
	s := opts.Stores
	if s == nil {
		s = actions.NewStores(opts.Fields)
	}

	var inputs messagelist.InputsRefresher
	var settingsActions settings.Actions
	if opts.Actions != nil {
		inputs = opts.Actions
		settingsActions = opts.Actions
	}
	var pauser messagelist.AutoRefresh
	if opts.AutoRefresh != nil {
		pauser = opts.AutoRefresh
	}

	var widget *messagelist.WidgetConfig
	if len(opts.Fields) > 0 {
		widget = &messagelist.WidgetConfig{Fields: opts.Fields}
	}

	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "source:web* AND level:3"
	in.CharLimit = 512

	m := AppModel{
		Messages: messagelist.New(messagelist.Deps{
			Sources: messagelist.Sources{
				Records:        s.Records,
				Inputs:         s.Inputs,
				Nodes:          s.Nodes,
				Streams:        s.Streams,
				Configurations: s.Configurations,
				CurrentUser:    s.CurrentUser,
				SelectedFields: s.SelectedFields,
				View:           s.View,
				FieldTypes:     s.FieldTypes,
			},
			Inputs:      inputs,
			AutoRefresh: pauser,
			Notify:      opts.Notify,
			PageSize:    opts.PageSize,
			Config:      widget,
		}),
		Settings: settings.New(settings.Deps{
			Configs: s.Configurations,
			User:    s.CurrentUser,
			Actions: settingsActions,
			Plugins: opts.Plugins,
			Notify:  opts.Notify,
		}),
		autoRefresh: opts.AutoRefresh,
		search:      opts.Search,
		serverURL:   opts.ServerURL,
		SearchInput: in,
		Help:        help.New(),
		Keys: appKeyMap{
			Switch: key.NewBinding(
				key.WithKeys("tab"),
				key.WithHelp("tab", "switch screen"),
			),
			Pause: key.NewBinding(
				key.WithKeys("p"),
				key.WithHelp("p", "pause/resume"),
			),
			Search: key.NewBinding(
				key.WithKeys("/"),
				key.WithHelp("/", "search"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
	}

	start := opts.StartScreen
	if start == "" {
		start = ScreenMessages
	}
	m.CurrentScreen = start
	m.initCmd = m.mount(start)
	return m
}

// Init mounts the start screen and re-reads the stores once, picking up
// results that landed before the program started receiving messages.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, resync)
}

func resync() tea.Msg {
	return messagelist.StoreChangedMsg{}
}

func (m *AppModel) mount(screen Screen) tea.Cmd {
	logging.Debug("Mounting screen", zap.String("screen", string(screen)))
	switch screen {
	case ScreenMessages:
		m.Messages.Mount()
	case ScreenSettings:
		return m.Settings.Mount()
	}
	return nil
}

func (m *AppModel) unmount(screen Screen) {
	switch screen {
	case ScreenMessages:
		m.Messages.Unmount()
	case ScreenSettings:
		m.Settings.Unmount()
	}
}

// Close unmounts the active screen.
func (m *AppModel) Close() {
	m.unmount(m.CurrentScreen)
}

func (m AppModel) screenSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.Width - chromeWidth, Height: m.Height - chromeHeight}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		size := m.screenSize()
		m.Messages, _ = m.Messages.Update(size)
		m.Settings.Update(size)
		m.SearchInput.Width = size.Width - 4
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.CurrentScreen == ScreenSettings && m.Settings.Editing() {
			break
		}
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Switch):
			return m.transitionTo(m.otherScreen())
		case key.Matches(msg, m.Keys.Pause):
			if m.autoRefresh != nil {
				m.autoRefresh.Toggle()
			}
			return m, nil
		case key.Matches(msg, m.Keys.Search):
			if m.CurrentScreen == ScreenMessages && m.search != nil {
				m.searching = true
				m.SearchInput.SetValue("")
				return m, m.SearchInput.Focus()
			}
		}
	}

	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.CurrentScreen {
	case ScreenMessages:
		m.Messages, cmd = m.Messages.Update(msg)
	case ScreenSettings:
		cmd = m.Settings.Update(msg)
	}
	return m, cmd
}

func (m AppModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.SearchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.SearchInput.Blur()
		query := strings.TrimSpace(m.SearchInput.Value())
		if query == "" {
			query = "*"
		}
		m.search(query)
		m.Messages.ChangePage(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

func (m AppModel) otherScreen() Screen {
	if m.CurrentScreen == ScreenMessages {
		return ScreenSettings
	}
	return ScreenMessages
}

// transitionTo unmounts the current screen and mounts screen
func (m AppModel) transitionTo(screen Screen) (tea.Model, tea.Cmd) {
	if screen == m.CurrentScreen {
		return m, nil
	}
	m.unmount(m.CurrentScreen)
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen
	return m, m.mount(screen)
}

// Searching reports whether the search prompt is open.
func (m AppModel) Searching() bool {
	return m.searching
}

func (m AppModel) tabBar() string {
	tabs := []struct {
		screen Screen
		label  string
	}{
		{ScreenMessages, "Messages"},
		{ScreenSettings, "Settings"},
	}

	var cells []string
	for _, t := range tabs {
		if t.screen == m.CurrentScreen {
			cells = append(cells, activeTabStyle.Render(t.label))
		} else {
			cells = append(cells, inactiveTabStyle.Render(t.label))
		}
	}

	state := liveStyle.Render("● live")
	if m.autoRefresh != nil && m.autoRefresh.Paused() {
		state = pausedStyle.Render("⏸ paused")
	}
	cells = append(cells, "  ", state)
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m AppModel) helpText() string {
	var bindings []key.Binding
	switch m.CurrentScreen {
	case ScreenMessages:
		bindings = append(bindings, m.Messages.Keys.ShortHelp()...)
	case ScreenSettings:
		bindings = append(bindings, m.Settings.Keys.ShortHelp()...)
	}
	bindings = append(bindings, m.Keys.ShortHelp()...)
	return m.Help.ShortHelpView(bindings)
}

// View renders the current screen
func (m AppModel) View() string {
	var content string
	switch m.CurrentScreen {
	case ScreenMessages:
		content = m.Messages.View()
		if m.searching {
			content = m.SearchInput.View() + "\n" + content
		}
	case ScreenSettings:
		content = m.Settings.View()
	default:
		content = ui.MutedStyle.Render("Unknown screen")
	}

	if m.Width == 0 || m.Height == 0 {
		return m.tabBar() + "\n" + content
	}
	return RenderApplicationContainer(m.serverURL, m.tabBar()+"\n"+content, m.helpText(), m.Width, m.Height)
}
