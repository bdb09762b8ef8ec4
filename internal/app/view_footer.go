package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	style := statusStyle
	if m.statusIsError {
		style = errorStatus
	}
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, style.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs the footer segments into at most rowLimit rows of
// width columns. fit is false when something had to be cut.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	window := m.statusWindowSegments()

	segments := make([]string, 0, len(help)+len(window)+1)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}
	if len(window) > 0 {
		segments = append(segments, "Window: "+window[0])
		segments = append(segments, window[1:]...)
	}
	if m.status != "" {
		segments = append(segments, "Status: "+m.status)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	return []string{
		m.primaryActionKey(actionLineDown, "j") + "/" + m.primaryActionKey(actionLineUp, "k") + " line",
		m.primaryActionKey(actionPageDown, "PgDn") + "/" + m.primaryActionKey(actionPageUp, "PgUp") + " page",
		m.primaryActionKey(actionHalfDown, "Ctrl+D") + "/" + m.primaryActionKey(actionHalfUp, "Ctrl+U") + " half",
		m.primaryActionKey(actionRestart, "g") + " restart",
		m.primaryActionKey(actionQuit, "q") + " quit",
	}
}

// statusWindowSegments describes the engine: the materialized span, the
// kind of the top visible item, the last scroll direction, the content
// height, the scroll position and the lifecycle state.
func (m *Model) statusWindowSegments() []string {
	if m.engine == nil {
		return nil
	}
	state := m.engine.State()
	if m.starting {
		return []string{state.String()}
	}
	items := m.engine.Items()
	if len(items) == 0 {
		return []string{state.String()}
	}
	segments := []string{fmt.Sprintf("items %d..%d", items[0].Index, items[len(items)-1].Index)}
	pos := m.engine.ScrollPosition()
	for _, it := range items {
		if it.Bottom() <= pos {
			continue
		}
		if kind, ok := it.Metadata.(string); ok {
			segments = append(segments, "top "+kind)
		}
		break
	}
	return append(segments,
		m.engine.Direction().String(),
		fmt.Sprintf("content %d", m.engine.ContentHeight()),
		fmt.Sprintf("scroll %d", pos),
		state.String(),
	)
}
