package settings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logconsole/internal/panels"
	"github.com/muurk/logconsole/internal/plugin"
	"github.com/muurk/logconsole/internal/ui"
)

// LoadingText is shown next to the spinner while loading.
const LoadingText = "Loading Configuration Panel..."

// Style sheet entries
const (
	styleSection  = "section"
	styleSelected = "selected"
	styleStatus   = "status"
	styleLoading  = "loading"
)

// NewStyleSheet returns the page's style sheet.
func NewStyleSheet() *ui.StyleSheet {
	return ui.NewStyleSheet(func() map[string]lipgloss.Style {
		return map[string]lipgloss.Style{
			styleSection: lipgloss.NewStyle().
				Foreground(ui.PrimaryColor).
				Bold(true).
				MarginTop(1),
			styleSelected: lipgloss.NewStyle().
				Foreground(ui.SuccessColor).
				Bold(true),
			styleStatus: lipgloss.NewStyle().
				Foreground(ui.MutedColor),
			styleLoading: lipgloss.NewStyle().
				Foreground(ui.PrimaryColor).
				Padding(1, 2),
		}
	})
}

func (p *Page) width() int {
	if p.Width > 0 {
		return p.Width
	}
	return ui.MaxContentWidth
}

// View renders the page.
func (p *Page) View() string {
	if !p.Loaded() {
		return p.loadingView()
	}

	width := p.width()
	half := width/2 - 1

	var sections []string
	sections = append(sections, p.renderRows(pairs(append(p.BuiltinPanels(), panels.Decorators())), half))

	if rows := p.PluginRows(); len(rows) > 0 {
		sections = append(sections,
			p.deps.Styles.Style(styleSection).Render("Plugins"),
			p.renderRows(rows, half))
	}

	sections = append(sections, p.editorView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p *Page) loadingView() string {
	var b strings.Builder
	b.WriteString(p.deps.Styles.Style(styleLoading).Render(p.Spinner.View() + " " + LoadingText))
	if p.progress != nil && p.deps.Configs != nil {
		known := p.deps.Configs.Snapshot()
		for i, configType := range p.required {
			_, ok := known.Get(configType)
			p.progress.SetLoaded(p.progress.Items[i].Name, ok)
		}
		b.WriteString("\n")
		b.WriteString(p.progress.SetWidth(p.width()).Render())
	}
	return b.String()
}

func (p *Page) renderRows(rows [][]plugin.Panel, width int) string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row))
		for _, panel := range row {
			if panel == nil {
				cells = append(cells, lipgloss.NewStyle().Width(width).Render(""))
				continue
			}
			cells = append(cells, panel.View(width))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

func (p *Page) editorView() string {
	entries := p.entries()
	if len(entries) == 0 {
		return ""
	}
	if p.cursor >= len(entries) {
		p.cursor = len(entries) - 1
	}
	e := entries[p.cursor]

	line := p.deps.Styles.Style(styleSelected).Render(ui.CollapsedMarker+" "+e.panel.Title()+" › "+e.field) + " "
	if p.editing {
		line += p.Input.View()
	} else {
		line += e.panel.Value(e.field)
	}

	lines := []string{p.deps.Styles.Style(styleSection).Render("Edit"), line}
	if p.status != "" {
		lines = append(lines, p.deps.Styles.Style(styleStatus).Render(p.status))
	}
	return strings.Join(lines, "\n")
}
