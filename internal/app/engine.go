package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/vscroll/internal/feed"
	"github.com/treykane/vscroll/internal/scroller"
	"github.com/treykane/vscroll/internal/termsurface"
)

// ErrNoOverlap is returned when the configured index range and the source's
// range share no index.
var ErrNoOverlap = errors.New("configured index range does not overlap the source")

// engineStartedMsg reports the end of an engine's fill. seq is compared to
// the model's startSeq to drop results for engines replaced in the meantime.
type engineStartedMsg struct {
	seq int
	err error
}

// rebuildEngine disposes the current engine and starts a new one for the
// current viewport, filling from anchor. The fill runs in a command so the
// spinner keeps turning; the model leaves the engine alone until
// engineStartedMsg arrives.
func (m *Model) rebuildEngine(anchor int) tea.Cmd {
	if m.engine != nil {
		m.engine.Dispose()
		m.engine = nil
		m.surface = nil
		m.measurer = nil
	}
	m.startSeq++
	m.starting = false
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return nil
	}

	surface := termsurface.New(m.viewport.Width)
	renderer, opts, err := m.engineSetup(m.viewport.Width, m.viewport.Height)
	if err != nil {
		m.setStatusError("Cannot configure scroller", err)
		return nil
	}
	opts.InitialIndex = anchor
	m.bounds = opts.Bounds
	// Measurements wait for the surface's layout pass, which reports back
	// off the update loop; Dispose detaches the measurer and drops a
	// pending one.
	measurer := scroller.NewProbe(surface)
	surface.OnLayout(measurer.LayoutSettled)
	measurer.Attach()
	engine, err := scroller.New(renderer, surface, measurer, opts)
	if err != nil {
		m.setStatusError("Cannot create scroller", err, "anchor", anchor)
		return nil
	}

	m.engine = engine
	m.surface = surface
	m.measurer = measurer
	m.anchor = anchor
	m.starting = true
	seq := m.startSeq
	return func() tea.Msg {
		return engineStartedMsg{seq: seq, err: engine.Start(context.Background())}
	}
}

// engineSetup builds the renderer and options for a width x height
// viewport. A finite source supplies bounds, narrowed by the configured
// range; an infinite one renders any index unless a range is configured.
func (m *Model) engineSetup(width, height int) (scroller.Renderer, scroller.Options, error) {
	opts := m.cfg.EngineOptions(width, height)
	r := feed.NewRenderer(m.src, width, m.cfg.GlamourStyle)

	srcBounds, cfgBounds := m.src.Bounds(), m.cfg.Bounds()
	switch {
	case srcBounds != nil && cfgBounds != nil:
		b := scroller.Bounds{Min: max(srcBounds.Min, cfgBounds.Min), Max: min(srcBounds.Max, cfgBounds.Max)}
		if b.Min > b.Max {
			return nil, opts, fmt.Errorf("%w: [%d, %d] and [%d, %d]", ErrNoOverlap,
				cfgBounds.Min, cfgBounds.Max, srcBounds.Min, srcBounds.Max)
		}
		opts.Bounds = &b
		return r, opts, nil
	case srcBounds != nil:
		opts.Bounds = srcBounds
		return r, opts, nil
	case cfgBounds != nil:
		opts.Bounds = cfgBounds
		return r, opts, nil
	default:
		return feed.Bounded(r, func(int) bool { return true }), opts, nil
	}
}

func (m *Model) handleEngineStarted(msg engineStartedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.startSeq {
		return m, nil
	}
	m.starting = false
	if msg.err != nil {
		m.setStatusError("Scroller failed to start", msg.err, "anchor", m.anchor)
		m.engine.Dispose()
		m.engine = nil
		m.surface = nil
		m.measurer = nil
		return m, nil
	}
	m.syncViewport()
	return m, nil
}

// ready reports whether the engine is idle and owned by the update loop.
func (m *Model) ready() bool {
	return m.engine != nil && !m.starting && m.engine.State() == scroller.StateIdle
}

// frontVisibleIndex returns the index of the first item at least partly in
// view, used to keep the reader's place across rebuilds.
func (m *Model) frontVisibleIndex() int {
	if !m.ready() {
		return m.anchor
	}
	pos := m.engine.ScrollPosition()
	for _, it := range m.engine.Items() {
		if it.Bottom() > pos {
			return it.Index
		}
	}
	return m.anchor
}
