package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nomadcxx/mediasort/internal/media"
	"github.com/Nomadcxx/mediasort/internal/reporter"
)

// Model represents the review TUI state
type Model struct {
	report     reporter.Report
	rows       []Row
	cursor     int
	viewport   viewport.Model
	ready      bool
	width      int
	height     int
	dirty      bool
	shouldSave bool
}

// NewModel creates a review model over a report
func NewModel(report reporter.Report) Model {
	return Model{
		report: report,
		rows:   Flatten(BuildTree(report.Containers)),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.refresh()
			return m, nil

		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			m.refresh()
			return m, nil

		case " ":
			if n := m.current(); n != nil {
				toggle(n.Files())
				m.dirty = true
			}
			m.refresh()
			return m, nil

		case "a":
			if n := m.current(); n != nil {
				if c := containerOf(n); c != nil {
					toggle(c.MediaFiles)
					m.dirty = true
				}
			}
			m.refresh()
			return m, nil

		case "enter", "s":
			m.shouldSave = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-4) // Leave room for header/footer
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 4
		}
		m.refresh()
		return m, nil
	}

	// Handle viewport updates (scrolling)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	status := fmt.Sprintf("%d/%d selected", m.report.Selected(), m.report.TotalFiles)
	if m.dirty {
		status += " (unsaved)"
	}

	header := FormatHeader("MEDIASORT REVIEW  " + status)
	footer := FormatFooter(
		FormatKeybinding("↑↓", "Navigate"),
		FormatKeybinding("Space", "Toggle"),
		FormatKeybinding("A", "Toggle Group"),
		FormatKeybinding("Enter", "Save"),
		FormatKeybinding("Esc", "Exit"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		footer,
	)
}

// Report returns the report with the current selection
func (m Model) Report() reporter.Report {
	return m.report
}

// ShouldSave returns true if the user asked to keep their selection
func (m Model) ShouldSave() bool {
	return m.shouldSave
}

// Cursor returns the index of the highlighted row
func (m Model) Cursor() int {
	return m.cursor
}

// Rows returns the visible tree rows
func (m Model) Rows() []Row {
	return m.rows
}

func (m Model) current() *Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

// containerOf finds the container for a row: the file's own container, or
// the one shared by every file below a group row
func containerOf(n *Node) *media.MediaContainer {
	if n.IsFile() {
		return n.Container
	}
	var found *media.MediaContainer
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		if n.IsFile() {
			if found == nil {
				found = n.Container
			}
			return found == n.Container
		}
		for _, c := range n.Children {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	if !walk(n) {
		return nil
	}
	return found
}

// toggle deselects files when all are selected and selects them otherwise
func toggle(files []*media.MediaFile) {
	all := true
	for _, f := range files {
		if !f.Selected {
			all = false
			break
		}
	}
	for _, f := range files {
		f.Selected = !all
	}
}

// refresh re-renders the tree and keeps the cursor in view
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTree())

	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.viewport.Height > 0 && m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) renderTree() string {
	if len(m.rows) == 0 {
		return MutedStyle.Render("No media files in this report.")
	}

	var sb strings.Builder
	for i, row := range m.rows {
		line := strings.Repeat("  ", row.Depth) + renderNode(row.Node)
		if i == m.cursor {
			line = CursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func renderNode(n *Node) string {
	if !n.IsFile() {
		files := n.Files()
		selected := 0
		for _, f := range files {
			if f.Selected {
				selected++
			}
		}
		return TextStyle.Render(n.Label) + " " + MutedStyle.Render(fmt.Sprintf("(%d/%d)", selected, len(files)))
	}

	check := DeselectedStyle.Render("[ ]")
	if n.File.Selected {
		check = SelectedStyle.Render("[x]")
	}
	return check + " " + TextStyle.Render(n.File.FileName) + MutedStyle.Render(" -> ") + RenameStyle.Render(n.File.Rename)
}
