package messagelist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/muurk/logconsole/internal/actions"
	"github.com/muurk/logconsole/internal/model"
)

type countingRefresher struct{ calls int }

func (r *countingRefresher) RefreshInputsList() { r.calls++ }

type countingPauser struct{ calls int }

func (p *countingPauser) Pause() { p.calls++ }

func sourcesFrom(s *actions.Stores) Sources {
	return Sources{
		Records:        s.Records,
		Inputs:         s.Inputs,
		Nodes:          s.Nodes,
		Streams:        s.Streams,
		Configurations: s.Configurations,
		CurrentUser:    s.CurrentUser,
		SelectedFields: s.SelectedFields,
		View:           s.View,
		FieldTypes:     s.FieldTypes,
	}
}

func newTestModel(t *testing.T, n int) (Model, *actions.Stores, *countingRefresher, *countingPauser) {
	t.Helper()
	stores := actions.NewStores([]string{"source", "message"})
	stores.Records.Set(model.SearchResult{Records: records(n), TotalResults: n})

	refresher := &countingRefresher{}
	pauser := &countingPauser{}
	m := New(Deps{
		Sources:     sourcesFrom(stores),
		Inputs:      refresher,
		AutoRefresh: pauser,
		PageSize:    3,
	})
	m.Width, m.Height = 120, 40
	m.Mount()
	t.Cleanup(m.Unmount)
	return m, stores, refresher, pauser
}

func TestMountRefreshesInputsOnce(t *testing.T) {
	_, _, refresher, _ := newTestModel(t, 3)
	if refresher.calls != 1 {
		t.Errorf("RefreshInputsList calls = %d, want 1", refresher.calls)
	}
}

func TestToggleDetailPausesOnlyOnExpand(t *testing.T) {
	m, _, _, pauser := newTestModel(t, 3)
	k := "graylog_0-m0"

	m.ToggleDetail(k)
	if !m.Expanded(k) {
		t.Fatal("record not expanded after first toggle")
	}
	if pauser.calls != 1 {
		t.Errorf("Pause calls after expand = %d, want 1", pauser.calls)
	}

	m.ToggleDetail(k)
	if m.Expanded(k) {
		t.Error("record still expanded after second toggle")
	}
	if pauser.calls != 1 {
		t.Errorf("Pause calls after collapse = %d, want 1", pauser.calls)
	}

	m.ToggleDetail(k)
	if pauser.calls != 2 {
		t.Errorf("Pause calls after re-expand = %d, want 2", pauser.calls)
	}
}

func TestExpansionSurvivesPageChangeAndResetsOnMount(t *testing.T) {
	m, _, _, _ := newTestModel(t, 9)
	k := "graylog_0-m0"

	m.ToggleDetail(k)
	m.ChangePage(2)
	m.ChangePage(1)
	if !m.Expanded(k) {
		t.Error("expansion lost across page change")
	}

	m.Mount()
	if m.Expanded(k) {
		t.Error("expansion kept across remount")
	}
	if m.Page() != 1 {
		t.Errorf("Page() after remount = %d, want 1", m.Page())
	}
}

func TestChangePageIsNotValidated(t *testing.T) {
	m, _, _, _ := newTestModel(t, 5)

	m.ChangePage(99)
	if m.Page() != 99 {
		t.Errorf("Page() = %d, want 99", m.Page())
	}
	if rows := len(m.Table().Rows); rows != 0 {
		t.Errorf("len(Rows) = %d, want 0", rows)
	}
	if !strings.Contains(m.View(), NoMessages) {
		t.Errorf("View() = %q, want %q", m.View(), NoMessages)
	}
}

func TestViewWithoutRecords(t *testing.T) {
	m := New(Deps{})
	m.Mount()
	defer m.Unmount()
	if got := m.View(); !strings.Contains(got, NoMessages) {
		t.Errorf("View() = %q, want %q", got, NoMessages)
	}
}

func TestStoreChangesAreDelivered(t *testing.T) {
	stores := actions.NewStores(nil)
	var got []tea.Msg
	m := New(Deps{
		Sources: sourcesFrom(stores),
		Notify:  func(msg tea.Msg) { got = append(got, msg) },
	})
	m.Mount()

	stores.Records.Set(model.SearchResult{Records: records(2)})
	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	m, _ = m.Update(got[0])
	if rows := len(m.Table().Rows); rows != 2 {
		t.Errorf("len(Rows) after update = %d, want 2", rows)
	}

	m.Unmount()
	stores.Records.Set(model.SearchResult{})
	if len(got) != 1 {
		t.Errorf("notifications after Unmount = %d, want 1", len(got))
	}
}

func TestWidgetConfigOverridesSelectedFields(t *testing.T) {
	stores := actions.NewStores([]string{"source", "message"})
	m := New(Deps{
		Sources: sourcesFrom(stores),
		Config:  &WidgetConfig{Fields: []string{"level"}},
	})
	m.Mount()
	defer m.Unmount()

	table := m.Table()
	if len(table.Columns) != 1 || table.Columns[0].Name != "level" {
		t.Errorf("Columns = %+v, want [level]", table.Columns)
	}
	if table.ShowMessageRow {
		t.Error("ShowMessageRow = true, want false")
	}
}

func TestKeysToggleAndPage(t *testing.T) {
	m, _, _, pauser := newTestModel(t, 7)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Expanded("graylog_0-m1") {
		t.Error("second row not expanded")
	}
	if pauser.calls != 1 {
		t.Errorf("Pause calls = %d, want 1", pauser.calls)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Page() != 3 {
		t.Errorf("Page() = %d, want 3", m.Page())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Page() != 2 {
		t.Errorf("Page() = %d, want 2", m.Page())
	}
}

func TestDetailResolvesInputNodeAndStreams(t *testing.T) {
	m, stores, _, _ := newTestModel(t, 0)
	stores.Inputs.Set(model.InputList{Inputs: []model.Input{{ID: "in1", Title: "Syslog UDP"}}})
	stores.Nodes.Set(model.NodeList{Nodes: []model.Node{{NodeID: "n1", Hostname: "graylog-1"}}})
	stores.Streams.Set(model.StreamList{Streams: []model.Stream{{ID: "s1", Title: "All messages"}}})
	stores.Records.Set(model.SearchResult{Records: []model.Record{{
		Index: "graylog_0",
		ID:    "abc",
		Fields: map[string]any{
			"timestamp":        "2024-03-01T10:00:00.000Z",
			"source":           "host-a",
			"gl2_source_input": "in1",
			"gl2_source_node":  "n1",
			"streams":          []any{"s1"},
		},
	}}})
	m.Sync()
	m.ToggleDetail("graylog_0-abc")

	view := m.View()
	for _, want := range []string{"Syslog UDP on graylog-1", "All messages", "host-a"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestAnalysisDisabledFieldsHaveNoTypeHint(t *testing.T) {
	m, stores, _, _ := newTestModel(t, 1)
	stores.FieldTypes.Set(model.FieldTypes{Fields: []model.FieldDescriptor{
		{Name: "source", Type: model.FieldTypeString},
	}})
	stores.Configurations.Set(model.Configurations{}.With(model.SearchesClusterConfig, model.Config{
		"analysis_disabled_fields": []any{"source"},
	}))
	m.Sync()

	header := m.header(m.Table())
	if strings.Contains(header, "(str)") {
		t.Errorf("header = %q, want no type hint for source", header)
	}

	stores.Configurations.Set(model.Configurations{})
	m.Sync()
	if header := m.header(m.Table()); !strings.Contains(header, "(str)") {
		t.Errorf("header = %q, want type hint for source", header)
	}
}

func TestFormatTimestamp(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	got := FormatTimestamp("2024-03-01T10:00:00.000Z", loc)
	if got != "2024-03-01 11:00:00.000" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "2024-03-01 11:00:00.000")
	}
	if got := FormatTimestamp("yesterday", loc); got != "yesterday" {
		t.Errorf("FormatTimestamp(unparsable) = %q, want it unchanged", got)
	}
}

func TestCellTruncates(t *testing.T) {
	got := Cell("a very long source name", 8)
	if w := len([]rune(got)); w != 8 {
		t.Errorf("Cell width = %d, want 8", w)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Cell() = %q, want ellipsis", got)
	}
}
