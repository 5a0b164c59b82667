package ui

import "github.com/charmbracelet/lipgloss"

const banner = `█▀▄▀█ █▀▀ █▀▄ █ ▄▀█ █▀ █▀█ █▀█ ▀█▀
█ ▀ █ ██▄ █▄▀ █ █▀█ ▄█ █▄█ █▀▄  █ `

// FormatASCIIHeader renders the mediasort banner
func FormatASCIIHeader() string {
	return lipgloss.NewStyle().Foreground(Accent).Bold(true).Render(banner)
}
