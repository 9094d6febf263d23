package messagelist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/ui"
)

// NoMessages is shown when there is nothing to display.
const NoMessages = "No messages found"

// chromeLines is the number of lines above the scrolling body.
const chromeLines = 3

// displayTimestamp is the layout timestamps are rendered with.
const displayTimestamp = "2006-01-02 15:04:05.000"

// Cell renders v as a single line truncated to width cells.
func Cell(v any, width int) string {
	s := strings.Join(strings.Fields(formatValue(v)), " ")
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// FormatTimestamp renders an RFC 3339 timestamp in loc. Values that do
// not parse are returned as they are.
func FormatTimestamp(v any, loc *time.Location) string {
	s := formatValue(v)
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(displayTimestamp)
}

// analysisDisabled reports whether the search config turns off analysis
// for field.
func (m Model) analysisDisabled(field string) bool {
	list, ok := m.data.searchConfig["analysis_disabled_fields"].([]any)
	if !ok {
		return false
	}
	for _, f := range list {
		if s, ok := f.(string); ok && s == field {
			return true
		}
	}
	return false
}

func (m Model) header(t Table) string {
	cells := []string{
		"  ",
		ui.TableHeaderStyle.Render(runewidth.FillRight(t.Timestamp.Name, t.Timestamp.Width)),
	}
	for _, c := range t.Columns {
		label := c.Name
		if !m.analysisDisabled(c.Name) {
			label += " (" + c.Type.Short() + ")"
		}
		cells = append(cells, ui.TableHeaderStyle.Render(Cell(label, c.Width)))
	}
	return strings.Join(cells, " ")
}

func (m Model) renderRow(t Table, r Row, selected bool) []string {
	marker := ui.CollapsedMarker
	if r.Expanded {
		marker = ui.ExpandedMarker
	}

	cells := []string{
		marker + " ",
		runewidth.FillRight(FormatTimestamp(r.Record.Field(model.TimestampField), m.data.location), t.Timestamp.Width),
	}
	for _, c := range t.Columns {
		cells = append(cells, Cell(r.Fields[c.Name], c.Width))
	}

	style := ui.TableCellStyle
	if selected {
		style = ui.SelectedRowStyle
	}
	lines := []string{style.Render(strings.Join(cells, " "))}

	if t.ShowMessageRow {
		width := m.Width - 4
		if width < 20 {
			width = 20
		}
		lines = append(lines, "  "+ui.MutedStyle.Render(Cell(r.Record.Field(model.MessageField), width)))
	}

	if r.Expanded {
		lines = append(lines, m.renderDetail(r)...)
	}
	return lines
}

func (m Model) renderDetail(r Row) []string {
	indent := "    "
	kv := func(k, v string) string {
		return indent + ui.DetailKeyStyle.Render(k+":") + " " + ui.ResultValueStyle.Render(v)
	}

	lines := []string{kv("ID", r.Record.ID), kv("Index", r.Record.Index)}

	if id, ok := r.Record.Field(model.SourceInputField).(string); ok {
		received := id
		if in, ok := m.data.inputs[id]; ok {
			received = in.Title
		}
		if nodeID, ok := r.Record.Field(model.SourceNodeField).(string); ok {
			if n, ok := m.data.nodes[nodeID]; ok {
				received += " on " + n.Hostname
			} else {
				received += " on " + nodeID
			}
		}
		lines = append(lines, kv("Received by", received))
	}

	if ids, ok := r.Record.Field(model.StreamsField).([]any); ok && len(ids) > 0 {
		titles := make([]string, 0, len(ids))
		for _, id := range ids {
			s := formatValue(id)
			if st, ok := m.data.streams[s]; ok {
				s = st.Title
			}
			titles = append(titles, s)
		}
		lines = append(lines, kv("Routed into streams", strings.Join(titles, ", ")))
	}

	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := formatValue(r.Fields[name])
		if name == model.TimestampField {
			v = FormatTimestamp(r.Fields[name], m.data.location)
		}
		lines = append(lines, kv(name, v))
	}
	return lines
}

// View renders the viewer.
func (m Model) View() string {
	t := m.Table()
	if len(m.data.result.Records) == 0 || len(t.Rows) == 0 {
		return ui.MutedStyle.Render(NoMessages)
	}

	var body []string
	cursorLine, cursorHeight := 0, 1
	for i, r := range t.Rows {
		lines := m.renderRow(t, r, i == m.cursor)
		if i == m.cursor {
			cursorLine, cursorHeight = len(body), len(lines)
		}
		body = append(body, lines...)
	}

	vp := m.Viewport
	vp.Width = m.Width
	height := m.Height - chromeLines
	if height < 1 {
		height = len(body)
	}
	vp.Height = height
	vp.SetContent(strings.Join(body, "\n"))
	if cursorLine < vp.YOffset {
		vp.SetYOffset(cursorLine)
	} else if bottom := cursorLine + cursorHeight; bottom > vp.YOffset+vp.Height {
		vp.SetYOffset(bottom - vp.Height)
	}

	status := fmt.Sprintf("%s · %d messages", m.Paginator.View(), len(m.data.result.Records))
	if q := m.data.view.ActiveQuery; q != "" {
		status += " · query: " + q
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.MutedStyle.Render(status),
		m.header(t),
		ui.RenderHorizontalDivider(m.Width, "─"),
		vp.View(),
	)
}
