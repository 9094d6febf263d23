package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared by the CLI output and the interactive screens.
var (
	PrimaryColor = lipgloss.Color("#7D56F4")
	SuccessColor = lipgloss.Color("#43BF6D")
	ErrorColor   = lipgloss.Color("#FF5555")
	WarningColor = lipgloss.Color("#FFA500") // paused auto-refresh
	MutedColor   = lipgloss.Color("#626262")
	TextColor    = lipgloss.Color("#FFFFFF")
)

const (
	MinTerminalWidth = 60
	MaxContentWidth  = 160
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Command header box
var (
	HeaderTitleStyle      = fg(TextColor).Bold(true).PaddingLeft(2)
	HeaderCommandStyle    = fg(MutedColor).PaddingLeft(2)
	HeaderParamKeyStyle   = fg(MutedColor).PaddingLeft(2)
	HeaderParamValueStyle = fg(TextColor)
)

// Result boxes
var (
	SuccessTitleStyle         = fg(SuccessColor).Bold(true)
	ErrorTitleStyle           = fg(ErrorColor).Bold(true)
	ErrorMessageStyle         = fg(ErrorColor)
	ResultKeyStyle            = fg(MutedColor).Width(15)
	ResultValueStyle          = fg(TextColor)
	TroubleshootingTitleStyle = fg(MutedColor).Bold(true)
	TroubleshootingItemStyle  = fg(MutedColor)
)

// Message table
var (
	TableHeaderStyle = fg(PrimaryColor).Bold(true)
	TableCellStyle   = fg(TextColor)
	SelectedRowStyle = fg(SuccessColor).Bold(true)
	MutedStyle       = fg(MutedColor)
	DetailKeyStyle   = fg(PrimaryColor)
	SpinnerStyle     = fg(PrimaryColor)
)

const (
	SuccessMarker   = "✓"
	FailureMarker   = "✗"
	ExpandedMarker  = "▾"
	CollapsedMarker = "▸"
)

// clampWidth keeps a terminal width inside the supported range.
func clampWidth(width int) int {
	return max(MinTerminalWidth, min(width, MaxContentWidth))
}

// GetTerminalWidth returns the stdout width, clamped, or MinTerminalWidth
// when stdout is not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth
	}
	return clampWidth(width)
}

// HeaderBorderStyle is the rounded frame around command headers.
func HeaderBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2)
}

// ResultBoxStyle is the double frame around success and failure results.
func ResultBoxStyle(width int, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2)
}

// TroubleshootingBoxStyle frames hints nested inside a failure box.
func TroubleshootingBoxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width-8).
		Padding(0, 1)
}

// RenderHorizontalDivider repeats char across width cells.
func RenderHorizontalDivider(width int, char string) string {
	return fg(PrimaryColor).Render(strings.Repeat(char, max(width, 0)))
}
