package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the feed pane above the footer, padded to the terminal size.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	layout := m.calculateLayout()
	footerRows := m.height - layout.PaneHeight

	parts := make([]string, 0, 2)
	if pane := m.renderPane(layout); pane != "" {
		parts = append(parts, pane)
	}
	parts = append(parts, m.renderStatus(m.width, footerRows))
	return padBlock(lipgloss.JoinVertical(lipgloss.Left, parts...), m.width, m.height)
}

func (m *Model) renderPane(layout LayoutDimensions) string {
	innerWidth := max(0, layout.PaneWidth-feedPane.GetHorizontalFrameSize())
	innerHeight := max(0, layout.PaneHeight-feedPane.GetVerticalFrameSize())
	if innerWidth == 0 || innerHeight == 0 {
		return ""
	}

	var body string
	switch {
	case m.starting:
		body = m.spinner.View() + " Filling..."
	case m.engine == nil:
		body = mutedStyle.Render("Nothing to show")
	default:
		body = m.viewport.View()
	}
	content := strings.Join([]string{
		titleStyle.Render(truncate(m.sourceTitle(), innerWidth)),
		padBlock(body, innerWidth, max(0, innerHeight-1)),
	}, "\n")
	return feedPane.
		Width(layout.PaneWidth - feedPane.GetHorizontalBorderSize()).
		Height(layout.PaneHeight - feedPane.GetVerticalBorderSize()).
		Render(content)
}

func (m *Model) sourceTitle() string {
	if m.cfg.Synthetic {
		return "vscroll · synthetic feed"
	}
	return "vscroll · " + m.cfg.NotesDir
}
