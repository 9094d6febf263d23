package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

var (
	progressLabelStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	itemLoadedStyle    = lipgloss.NewStyle().Foreground(SuccessColor)
	itemPendingStyle   = lipgloss.NewStyle().Foreground(MutedColor)
)

// PendingMarker marks items that have not arrived yet
const PendingMarker = "○"

// LoadItem is one resource being waited for
type LoadItem struct {
	Name   string
	Loaded bool
}

// LoadProgress shows how many of a fixed set of resources have arrived,
// as a bar and a checklist.
type LoadProgress struct {
	Label string
	Items []LoadItem
	bar   progress.Model
}

// NewLoadProgress creates a progress display for the named items
func NewLoadProgress(label string, names []string) *LoadProgress {
	items := make([]LoadItem, len(names))
	for i, name := range names {
		items[i] = LoadItem{Name: name}
	}
	return &LoadProgress{
		Label: label,
		Items: items,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
		),
	}
}

// SetWidth sizes the bar for the available width
func (p *LoadProgress) SetWidth(width int) *LoadProgress {
	barWidth := width - 20 // Leave room for percentage and count
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	p.bar.Width = barWidth
	return p
}

// SetLoaded marks an item as arrived or not
func (p *LoadProgress) SetLoaded(name string, loaded bool) {
	for i := range p.Items {
		if p.Items[i].Name == name {
			p.Items[i].Loaded = loaded
			return
		}
	}
}

// Loaded returns the number of arrived items
func (p *LoadProgress) Loaded() int {
	n := 0
	for _, it := range p.Items {
		if it.Loaded {
			n++
		}
	}
	return n
}

// Percent returns the arrived fraction in [0, 1]
func (p *LoadProgress) Percent() float64 {
	if len(p.Items) == 0 {
		return 1
	}
	return float64(p.Loaded()) / float64(len(p.Items))
}

// Render returns the styled progress display
func (p *LoadProgress) Render() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(progressLabelStyle.Render(p.Label))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(fmt.Sprintf("%s  %3.0f%%  [%d/%d]",
		p.bar.ViewAs(p.Percent()), p.Percent()*100, p.Loaded(), len(p.Items))))

	for _, it := range p.Items {
		b.WriteString("\n  ")
		if it.Loaded {
			b.WriteString(itemLoadedStyle.Render(SuccessMarker + " " + it.Name))
		} else {
			b.WriteString(itemPendingStyle.Render(PendingMarker + " " + it.Name))
		}
	}

	return b.String()
}

// String implements fmt.Stringer
func (p *LoadProgress) String() string {
	return p.Render()
}
