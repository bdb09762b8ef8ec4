// Package app is the terminal host for the scroller: it owns one engine per
// viewport size, turns key and mouse input into row-by-row scroll events and
// draws the visible rows of the terminal surface.
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/vscroll/internal/config"
	"github.com/treykane/vscroll/internal/feed"
	"github.com/treykane/vscroll/internal/scroller"
	"github.com/treykane/vscroll/internal/termsurface"
)

// Model holds the Bubble Tea state for the UI.
type Model struct {
	cfg config.Config
	src feed.Source

	// Engine state. engine, surface and measurer belong to the start command
	// until the matching engineStartedMsg arrives.
	engine   *scroller.Engine
	surface  *termsurface.Surface
	measurer *scroller.Probe
	startSeq int
	starting bool
	anchor   int
	bounds   *scroller.Bounds

	viewport viewport.Model
	spinner  spinner.Model

	status        string
	statusIsError bool

	width  int
	height int

	keyForAction map[string][]string
	keyToAction  map[string]string
}

// New prepares a model over src. Nothing is rendered until the first window
// size message.
func New(cfg config.Config, src feed.Source) *Model {
	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		cfg:      cfg,
		src:      src,
		anchor:   cfg.InitialIndex,
		viewport: viewport.New(0, 0),
		spinner:  spin,
		status:   "Ready",
	}
	m.loadKeybindings(cfg)
	return m
}

// Init starts the spinner shown while an engine is filling.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case engineStartedMsg:
		return m.handleEngineStarted(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// Close disposes the current engine.
func (m *Model) Close() {
	if m.engine != nil {
		m.engine.Dispose()
	}
}
