package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Accent  = lipgloss.Color("#e07a5f")
	Surface = lipgloss.Color("#1d3557")
	Text    = lipgloss.Color("#f1faee")
	Subtle  = lipgloss.Color("#a8b2c1")

	Green  = lipgloss.Color("#81b29a")
	Amber  = lipgloss.Color("#f2cc8f")
	Blue   = lipgloss.Color("#7fb7e0")
	Danger = Accent
)

const barWidth = 80

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(Text).Background(Accent).Padding(0, 1).Width(barWidth)
	FooterStyle = lipgloss.NewStyle().Foreground(Subtle).Background(Surface).Padding(0, 1).Width(barWidth)

	TextStyle  = lipgloss.NewStyle().Foreground(Text)
	MutedStyle = lipgloss.NewStyle().Foreground(Subtle)
	KeyStyle   = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	// Tree rows
	CursorStyle     = lipgloss.NewStyle().Foreground(Surface).Background(Accent).Bold(true)
	SelectedStyle   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	DeselectedStyle = lipgloss.NewStyle().Foreground(Danger).Bold(true)
	RenameStyle     = lipgloss.NewStyle().Foreground(Blue)
)

// FormatKeybinding renders "key description" for the footer
func FormatKeybinding(key, description string) string {
	return KeyStyle.Render(key) + " " + MutedStyle.Render(description)
}

// FormatHeader renders the title bar
func FormatHeader(title string) string {
	return HeaderStyle.Render(title)
}

// FormatFooter renders keybindings on the bottom bar
func FormatFooter(keybindings ...string) string {
	return FooterStyle.Render(strings.Join(keybindings, "  "))
}

// Command output markers
var (
	okMarker   = lipgloss.NewStyle().Foreground(Green).SetString("[OK]")
	warnMarker = lipgloss.NewStyle().Foreground(Amber).SetString("[WARN]")
	failMarker = lipgloss.NewStyle().Foreground(Danger).SetString("[FAIL]")
)

func FormatStatusOK(message string) string   { return okMarker.String() + " " + message }
func FormatStatusWarn(message string) string { return warnMarker.String() + " " + message }
func FormatStatusFail(message string) string { return failMarker.String() + " " + message }
