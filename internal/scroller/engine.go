// Package scroller implements a virtual-scrolling windowing engine.
//
// The engine keeps a small contiguous window of materialized items for an
// unbounded, ordered sequence of variable-height items. It drives four steps:
//
//   - Fill materializes enough items from the initial index to cover the
//     viewport, measuring them in doubling batches.
//   - MaintainBuffer adds sentinel items past both edges of the window.
//   - Scroll tracks the viewport position and decides when a sentinel has
//     been crossed.
//   - Recycling evicts the item on the trailing edge and materializes one
//     new item on the leading edge, keeping the window size constant.
//
// Rendering, layout and measurement belong to the host and are reached
// through the Renderer, Container and Measurer interfaces.
//
// Methods other than Dispose must be called from a single goroutine. Dispose
// may be called from anywhere and abandons a pending measurement.
package scroller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/treykane/vscroll/internal/deque"
	"github.com/treykane/vscroll/internal/logging"
)

// Engine owns the window for one viewport.
type Engine struct {
	opts      Options
	renderer  Renderer
	reuser    Reuser
	bounder   Bounder
	annotator Annotator
	container Container
	measurer  Measurer
	log       *slog.Logger

	window *deque.Deque[*Item]
	gate   gate
	state  atomic.Int32

	life   context.Context
	cancel context.CancelFunc

	direction      Direction
	contentHeight  int
	previousScroll int
	currentScroll  int

	// Lengths of the sentinel runs at the front and back of the window.
	leadingRun  int
	trailingRun int
}

// New validates the options and returns an engine in the uninitialized
// state. Nothing is rendered until Start.
func New(r Renderer, c Container, m Measurer, opts Options) (*Engine, error) {
	if r == nil {
		return nil, ErrNoRenderer
	}
	if c == nil {
		return nil, ErrNoContainer
	}
	if m == nil && opts.CellHeight == 0 {
		return nil, ErrNoMeasurer
	}
	reuser, _ := r.(Reuser)
	bounder, _ := r.(Bounder)
	annotator, _ := r.(Annotator)
	opts, err := opts.withDefaults(bounder)
	if err != nil {
		return nil, fmt.Errorf("invalid scroller options: %w", err)
	}

	life, cancel := context.WithCancel(context.Background())
	e := &Engine{
		opts:      opts,
		renderer:  r,
		reuser:    reuser,
		bounder:   bounder,
		annotator: annotator,
		container: c,
		measurer:  m,
		log:       logging.New("scroller"),
		window:    deque.New[*Item](),
		gate:      newGate(),
		life:      life,
		cancel:    cancel,
		direction: Down,
	}
	return e, nil
}

// Start runs the initial fill followed by buffer maintenance and leaves the
// engine idle. A failed start is not retried; dispose the engine.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.gate.acquire(ctx); err != nil {
		return err
	}
	defer e.gate.release()

	switch e.State() {
	case StateDisposed:
		return ErrDisposed
	case StateUninitialized:
	default:
		return ErrAlreadyStarted
	}

	ctx, done := e.opContext(ctx)
	defer done()

	e.setState(StateFilling)
	if err := e.fill(ctx); err != nil {
		return e.fail(err)
	}
	if err := e.maintainBuffer(ctx); err != nil {
		return e.fail(err)
	}
	e.setState(StateIdle)
	e.log.Debug("engine started", "items", e.window.Len(), "content_height", e.contentHeight, "scroll", e.currentScroll)
	return nil
}

// MaintainBuffer tops the sentinel runs up to the configured buffer size. It
// is a no-op when both edges already hold enough sentinels or are bounded.
func (e *Engine) MaintainBuffer(ctx context.Context) error {
	if !e.gate.tryAcquire() {
		return ErrBusy
	}
	defer e.gate.release()
	if err := e.requireIdle(); err != nil {
		return err
	}

	ctx, done := e.opContext(ctx)
	defer done()
	return e.disposedOr(e.maintainBuffer(ctx))
}

// Dispose cancels any pending measurement, detaches every materialized item
// and releases the window. It is safe to call more than once.
func (e *Engine) Dispose() {
	if State(e.state.Swap(int32(StateDisposed))) == StateDisposed {
		return
	}
	e.cancel()

	// Wait for an in-flight step to observe the cancellation.
	_ = e.gate.acquire(context.Background())
	defer e.gate.release()

	e.window.ForEach(func(_ int, it *Item) bool {
		e.container.Detach(it.Handle)
		return false
	}, false)
	e.window.Clear()
	if d, ok := e.measurer.(interface{ Detach() }); ok {
		d.Detach()
	}
	e.log.Debug("engine disposed")
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Items returns a copy of the window, front to back.
func (e *Engine) Items() []Item {
	out := make([]Item, 0, e.window.Len())
	e.window.ForEach(func(_ int, it *Item) bool {
		out = append(out, *it)
		return false
	}, false)
	return out
}

// Len returns the number of materialized items.
func (e *Engine) Len() int {
	return e.window.Len()
}

// ScrollPosition is the engine's view of the viewport offset, including any
// compensation applied by fill or recycling.
func (e *Engine) ScrollPosition() int {
	return e.currentScroll
}

// ContentHeight is the total height of the scrollable content.
func (e *Engine) ContentHeight() int {
	return e.contentHeight
}

// Direction returns the direction of the last handled scroll.
func (e *Engine) Direction() Direction {
	return e.direction
}

// ViewportHeight returns the configured viewport height.
func (e *Engine) ViewportHeight() int {
	return e.opts.ViewportHeight
}

func (e *Engine) setState(s State) {
	// Never leave the disposed state.
	for {
		cur := e.state.Load()
		if State(cur) == StateDisposed {
			return
		}
		if e.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

func (e *Engine) disposed() bool {
	return e.State() == StateDisposed
}

func (e *Engine) requireIdle() error {
	switch e.State() {
	case StateIdle:
		return nil
	case StateUninitialized:
		return ErrNotStarted
	case StateDisposed:
		return ErrDisposed
	default:
		return ErrBusy
	}
}

// fail reports err from a failed start. A failure caused by Dispose is
// reported as ErrDisposed.
func (e *Engine) fail(err error) error {
	err = e.disposedOr(err)
	if !errors.Is(err, ErrDisposed) {
		e.log.Error("engine start failed", "error", err)
	}
	return err
}

func (e *Engine) disposedOr(err error) error {
	if err != nil && e.disposed() {
		return ErrDisposed
	}
	return err
}

// opContext ties a step's context to the engine lifetime so Dispose cancels
// a pending measurement.
func (e *Engine) opContext(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(e.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (e *Engine) metadata(index int) any {
	if e.annotator == nil {
		return nil
	}
	return e.annotator.Metadata(index)
}

func (e *Engine) canRender(index int) bool {
	if e.bounder != nil {
		return e.bounder.CanRenderAt(index)
	}
	return e.opts.Bounds.Contains(index)
}

// span lists up to n renderable indices from start, stepping by step. It
// stops at the first index the bounds reject and reports the truncation.
func (e *Engine) span(start, n, step int) (indices []int, truncated bool) {
	indices = make([]int, 0, max(n, 0))
	for i := 0; i < n; i++ {
		idx := start + i*step
		if !e.canRender(idx) {
			return indices, true
		}
		indices = append(indices, idx)
	}
	return indices, false
}

// shift moves every item down by delta rows and places them again.
func (e *Engine) shift(delta int) {
	if delta == 0 {
		return
	}
	e.window.ForEach(func(_ int, it *Item) bool {
		it.Top += delta
		e.container.Place(it.Handle, it.Top, it.Height)
		return false
	}, false)
}

func (e *Engine) setScroll(pos int) {
	e.currentScroll = pos
	e.container.SetScrollPosition(pos)
}

func (e *Engine) growContent(height int) {
	if height <= e.contentHeight {
		return
	}
	e.contentHeight = height
	e.container.SetContentHeight(height)
}

// restampSentinels flags the leading and trailing runs after the window
// moved by one item.
func (e *Engine) restampSentinels() {
	n := e.window.Len()
	e.window.ForEach(func(i int, it *Item) bool {
		it.Sentinel = i < e.leadingRun || i >= n-e.trailingRun
		return false
	}, false)
}
