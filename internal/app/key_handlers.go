package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKey dispatches a key press through the keybinding table.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(1, m.viewport.Height)
	switch m.actionForKey(msg.String()) {
	case actionQuit:
		m.Close()
		return m, tea.Quit
	case actionLineUp:
		m.scrollBy(-1)
	case actionLineDown:
		m.scrollBy(1)
	case actionPageUp:
		m.scrollBy(-page)
	case actionPageDown:
		m.scrollBy(page)
	case actionHalfUp:
		m.scrollBy(-max(1, page/2))
	case actionHalfDown:
		m.scrollBy(max(1, page/2))
	case actionRestart:
		m.setStatus("Restarted at the initial item")
		return m, m.rebuildEngine(m.cfg.InitialIndex)
	}
	return m, nil
}

// handleMouse scrolls on wheel events.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-WheelRows)
	case tea.MouseButtonWheelDown:
		m.scrollBy(WheelRows)
	}
	return m, nil
}

// scrollBy moves the viewport by delta rows, one row per engine event, so
// every sentinel crossing triggers its own recycling step. Movement stops
// at the top of the content and, once the last index is materialized, at
// the bottom of a bounded feed.
func (m *Model) scrollBy(delta int) {
	if !m.ready() || delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step, delta = -1, -delta
	}
	ctx := context.Background()
	for i := 0; i < delta; i++ {
		next := m.engine.ScrollPosition() + step
		if next < 0 {
			break
		}
		if limit, ok := m.scrollLimit(); ok && next > limit {
			break
		}
		if _, err := m.engine.Scroll(ctx, next); err != nil {
			m.setStatusError("Scroll failed", err, "position", next)
			break
		}
	}
	m.syncViewport()
}

// scrollLimit returns the last scroll position when the window holds the
// final index of a bounded feed. Before that, scrolling past the content
// is what pulls the next item in.
func (m *Model) scrollLimit() (int, bool) {
	if m.bounds == nil {
		return 0, false
	}
	items := m.engine.Items()
	if len(items) == 0 {
		return 0, true
	}
	back := items[len(items)-1]
	if back.Index < m.bounds.Max {
		return 0, false
	}
	return max(0, back.Bottom()-m.engine.ViewportHeight()), true
}

// syncViewport draws the rows visible at the engine's scroll position.
func (m *Model) syncViewport() {
	if !m.ready() {
		return
	}
	m.viewport.SetContent(m.surface.Compose(m.engine.ScrollPosition(), m.viewport.Height))
}
