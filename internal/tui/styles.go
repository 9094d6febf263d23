package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/muurk/logconsole/internal/ui"
	"github.com/muurk/logconsole/internal/version"
)

// Application branding constants
const (
	AppName   = "LOGCONSOLE"
	GitHubURL = "github.com/muurk/logconsole"
)

// chromeHeight is the number of lines the container and tab bar use.
const chromeHeight = 7

// chromeWidth is the number of columns the container border uses.
const chromeWidth = 4

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Background(ui.PrimaryColor).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(ui.MutedColor).
				Padding(0, 1)

	liveStyle = lipgloss.NewStyle().
			Foreground(ui.SuccessColor)

	pausedStyle = lipgloss.NewStyle().
			Foreground(ui.WarningColor).
			Bold(true)
)

// BuildHeaderContent creates header content with app name, version and
// the server being browsed.
func BuildHeaderContent(server string) string {
	left := lipgloss.NewStyle().
		Foreground(ui.TextColor).
		Bold(true).
		Render(AppName + " v" + version.Version)

	right := server
	if right == "" {
		right = GitHubURL
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", ui.MutedStyle.Render(right))
}

// RenderApplicationContainer wraps a screen in the application frame:
// a header, the content, and a footer with help text, inside a border
// that fills the terminal.
func RenderApplicationContainer(server, content, footerText string, terminalWidth, terminalHeight int) string {
	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth-chromeWidth).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth-chromeWidth).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - chromeWidth)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(server)),
		contentStyle.Render(content),
		footerStyle.Render(ui.MutedStyle.Render(footerText)),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}
