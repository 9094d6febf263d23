package messagelist

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/logconsole/internal/collections"
	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/store"
)

// InputsRefresher requests a fresh inputs list.
type InputsRefresher interface {
	RefreshInputsList()
}

// AutoRefresh is the periodic refresh the viewer suspends while a record
// is being inspected.
type AutoRefresh interface {
	Pause()
}

// Sources are the stores the viewer observes.
type Sources struct {
	Records        store.Source[model.SearchResult]
	Inputs         store.Source[model.InputList]
	Nodes          store.Source[model.NodeList]
	Streams        store.Source[model.StreamList]
	Configurations store.Source[model.Configurations]
	CurrentUser    store.Source[model.CurrentUser]
	SelectedFields store.Source[model.SelectedFields]
	View           store.Source[model.View]
	FieldTypes     store.Source[model.FieldTypes]
}

// WidgetConfig overrides store values for an embedded viewer.
type WidgetConfig struct {
	Fields []string
}

// Deps wires the viewer to its collaborators.
type Deps struct {
	Sources     Sources
	Inputs      InputsRefresher
	AutoRefresh AutoRefresh

	// Notify posts a message to the running program. Store changes are
	// delivered through it as StoreChangedMsg.
	Notify func(tea.Msg)

	PageSize int
	Config   *WidgetConfig
}

// StoreChangedMsg tells the viewer to re-read its sources.
type StoreChangedMsg struct{}

// keyMap defines key bindings for the record viewer
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Prev   key.Binding
	Next   key.Binding
	First  key.Binding
	Last   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Prev, k.Next}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Prev, k.Next, k.First, k.Last},
	}
}

// snapshot is the store state the viewer renders from.
type snapshot struct {
	result       model.SearchResult
	inputs       map[string]model.Input
	nodes        map[string]model.Node
	streams      map[string]model.Stream
	searchConfig model.Config
	user         model.CurrentUser
	location     *time.Location
	selected     []string
	view         model.View
	fieldTypes   []model.FieldDescriptor
}

// Model is the paginated record viewer screen.
type Model struct {
	deps Deps

	page     int
	cursor   int
	expanded *collections.OrderedSet[string]
	unsubs   []func()

	data snapshot

	Width  int
	Height int

	Paginator paginator.Model
	Viewport  viewport.Model
	Help      help.Model
	Keys      keyMap
}

// New creates a viewer. It observes nothing until Mount is called.
func New(deps Deps) Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "page %d of %d"

	keys := keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "details"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first page"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last page"),
		),
	}

	return Model{
		deps:      deps,
		page:      1,
		expanded:  collections.NewOrderedSet[string](),
		Paginator: p,
		Viewport:  viewport.New(80, 20),
		Help:      help.New(),
		Keys:      keys,
	}
}

// Mount resets the page and expansion set, subscribes to the sources and
// requests a fresh inputs list.
func (m *Model) Mount() {
	m.Unmount()
	m.page = 1
	m.cursor = 0
	m.expanded = collections.NewOrderedSet[string]()

	notify := m.deps.Notify
	changed := func() {
		if notify != nil {
			notify(StoreChangedMsg{})
		}
	}
	s := m.deps.Sources
	m.unsubs = append(m.unsubs,
		subscribe(s.Records, changed),
		subscribe(s.Inputs, changed),
		subscribe(s.Nodes, changed),
		subscribe(s.Streams, changed),
		subscribe(s.Configurations, changed),
		subscribe(s.CurrentUser, changed),
		subscribe(s.SelectedFields, changed),
		subscribe(s.View, changed),
		subscribe(s.FieldTypes, changed),
	)

	if m.deps.Inputs != nil {
		m.deps.Inputs.RefreshInputsList()
	}
	m.Sync()
}

// Unmount drops all subscriptions.
func (m *Model) Unmount() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}

func subscribe[T any](src store.Source[T], fn func()) func() {
	if src == nil {
		return func() {}
	}
	return src.Subscribe(func(T) { fn() })
}

func snapshotOf[T any](src store.Source[T]) T {
	var zero T
	if src == nil {
		return zero
	}
	return src.Snapshot()
}

// Sync re-reads every source.
func (m *Model) Sync() {
	s := m.deps.Sources

	d := snapshot{
		result:     snapshotOf(s.Records),
		inputs:     collections.IndexBy(snapshotOf(s.Inputs).Inputs, func(i model.Input) string { return i.ID }),
		nodes:      collections.IndexBy(snapshotOf(s.Nodes).Nodes, func(n model.Node) string { return n.NodeID }),
		streams:    collections.IndexBy(snapshotOf(s.Streams).Streams, func(st model.Stream) string { return st.ID }),
		user:       snapshotOf(s.CurrentUser),
		selected:   snapshotOf(s.SelectedFields).Fields,
		view:       snapshotOf(s.View),
		fieldTypes: snapshotOf(s.FieldTypes).Fields,
	}
	if cfg, ok := snapshotOf(s.Configurations).Get(model.SearchesClusterConfig); ok {
		d.searchConfig = cfg
	}
	d.location = time.UTC
	if d.user.Timezone != "" {
		if loc, err := time.LoadLocation(d.user.Timezone); err == nil {
			d.location = loc
		} else {
			logging.Debug("unknown user timezone, using UTC")
		}
	}
	m.data = d

	m.Paginator.PerPage = m.pageSize()
	m.Paginator.SetTotalPages(len(d.result.Records))
	m.clampCursor()
}

func (m Model) pageSize() int {
	if m.deps.PageSize > 0 {
		return m.deps.PageSize
	}
	return DefaultPageSize
}

// SelectedFields returns the effective field selection. A widget config
// override replaces the store value.
func (m Model) SelectedFields() []string {
	if m.deps.Config != nil {
		return m.deps.Config.Fields
	}
	return m.data.selected
}

// Props returns the table input for the current state.
func (m Model) Props() Props {
	return Props{
		Records:        m.data.result.Records,
		SelectedFields: m.SelectedFields(),
		Fields:         m.data.fieldTypes,
		PageSize:       m.pageSize(),
	}
}

// Table builds the current page.
func (m Model) Table() Table {
	return BuildTable(m.Props(), m.page, m.expanded)
}

// Page returns the current 1-based page.
func (m Model) Page() int {
	return m.page
}

// Expanded reports whether the record with key is expanded.
func (m Model) Expanded(key string) bool {
	return m.expanded.Contains(key)
}

// ChangePage sets the current page. The value is not validated.
func (m *Model) ChangePage(n int) {
	m.page = n
	m.cursor = 0
	if n >= 1 {
		m.Paginator.Page = n - 1
	}
}

// ToggleDetail expands or collapses the record with key. Expanding pauses
// auto-refresh; collapsing leaves it alone.
func (m *Model) ToggleDetail(key string) {
	if m.expanded.Delete(key) {
		return
	}
	m.expanded.Add(key)
	if m.deps.AutoRefresh != nil {
		m.deps.AutoRefresh.Pause()
	}
}

func (m *Model) clampCursor() {
	start, end := PageWindow(len(m.data.result.Records), m.page, m.pageSize())
	n := end - start
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init initializes the viewer
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StoreChangedMsg:
		m.Sync()

	case tea.KeyMsg:
		total := TotalPages(len(m.data.result.Records), m.pageSize())
		switch {
		case key.Matches(msg, m.Keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.Keys.Down):
			m.cursor++
			m.clampCursor()
		case key.Matches(msg, m.Keys.Toggle):
			t := m.Table()
			if m.cursor < len(t.Rows) {
				m.ToggleDetail(t.Rows[m.cursor].Key)
			}
		case key.Matches(msg, m.Keys.Prev):
			if m.page > 1 {
				m.ChangePage(m.page - 1)
			}
		case key.Matches(msg, m.Keys.Next):
			if m.page < total {
				m.ChangePage(m.page + 1)
			}
		case key.Matches(msg, m.Keys.First):
			m.ChangePage(1)
		case key.Matches(msg, m.Keys.Last):
			m.ChangePage(total)
		}
	}

	return m, nil
}

// HelpView renders the key help line.
func (m Model) HelpView() string {
	return m.Help.View(m.Keys)
}
