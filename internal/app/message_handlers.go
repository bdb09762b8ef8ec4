package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// handleSpinnerTick updates the spinner animation state.
func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// handleWindowResize recomputes the layout. A new viewport size needs a new
// engine: the width changes wrapping and so every item's height. The first
// visible item stays at the top.
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	prevWidth, prevHeight := m.viewport.Width, m.viewport.Height
	layout := m.calculateLayout()
	if m.engine != nil && layout.ViewportWidth == prevWidth && layout.ViewportHeight == prevHeight {
		return m, nil
	}
	anchor := m.frontVisibleIndex()
	m.applyLayout(layout)
	return m, m.rebuildEngine(anchor)
}
