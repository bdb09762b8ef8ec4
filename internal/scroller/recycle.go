package scroller

import (
	"context"
	"fmt"
)

// recycle extends the window by one item in dir: front-1 above the front
// when moving up, back+1 below the back when moving down.
//
// The item on the opposite edge is evicted and its resource serves the new
// item only when that edge's sentinel run is full and the item lies wholly
// outside the viewport. Otherwise the window grows by a freshly rendered
// item and the run on the opposite edge gains a sentinel, so a window that
// started against a bound builds its buffer back up and never drops a
// visible row. When the new index cannot be rendered the edge has been
// reached and nothing changes.
func (e *Engine) recycle(ctx context.Context, dir Direction, speed int) (bool, error) {
	front, _ := e.window.PeekFront()
	back, _ := e.window.PeekBack()

	newIndex := front.Index - 1
	if dir == Down {
		newIndex = back.Index + 1
	}
	if !e.canRender(newIndex) {
		e.log.Debug("edge reached", "direction", dir, "index", newIndex)
		return false, nil
	}

	var victim *Item
	if e.window.Len() > 1 {
		viewTop, viewBottom := e.currentScroll, e.currentScroll+e.opts.ViewportHeight
		if dir == Up && e.trailingRun >= e.opts.BufferSize && back.Top >= viewBottom {
			victim = back
		}
		if dir == Down && e.leadingRun >= e.opts.BufferSize && front.Bottom() <= viewTop {
			victim = front
		}
	}

	e.setState(StateRecycling)
	defer e.setState(StateIdle)

	var (
		it     *Item
		handle Handle
		height int
		err    error
	)
	if victim != nil {
		handle, height, err = e.refill(ctx, victim.Index, newIndex, victim.Handle)
	} else {
		handle, height, err = e.materialize(ctx, newIndex)
	}
	if err != nil {
		return false, e.disposedOr(err)
	}
	if e.disposed() {
		return false, ErrDisposed
	}

	evicted := "none"
	anchorTop, anchorBottom := front.Top, back.Bottom()
	if victim != nil {
		evicted = fmt.Sprint(victim.Index)
		if dir == Up {
			e.window.PopBack()
		} else {
			e.window.PopFront()
		}
		e.container.Detach(victim.Handle)
		it = victim
		it.Sentinel = false
	} else {
		it = &Item{}
		if dir == Up {
			e.trailingRun = min(e.trailingRun+1, e.opts.BufferSize)
		} else {
			e.leadingRun = min(e.leadingRun+1, e.opts.BufferSize)
		}
	}
	it.Index = newIndex
	it.Height = height
	it.Handle = handle
	it.Metadata = e.metadata(newIndex)

	if dir == Up {
		it.Top = anchorTop - height
		e.window.PushFront(it)
		e.container.Attach(handle, 0)
		e.container.Place(handle, it.Top, it.Height)
		if overflow := -it.Top; overflow > 0 {
			e.shift(overflow)
			e.growContent(e.contentHeight + overflow)
			e.setScroll(e.currentScroll + overflow)
		}
	} else {
		it.Top = anchorBottom
		e.window.PushBack(it)
		e.container.Attach(handle, e.window.Len()-1)
		e.container.Place(handle, it.Top, it.Height)
		e.growContent(it.Bottom())
	}
	e.restampSentinels()

	e.log.Debug("recycled",
		"direction", dir, "evicted", evicted, "index", newIndex,
		"height", height, "items", e.window.Len(), "speed", speed, "scroll", e.currentScroll)
	return true, nil
}

// refill gives the evicted handle content for newIndex, reusing it in place
// when the renderer allows it and rendering and measuring it otherwise.
func (e *Engine) refill(ctx context.Context, prevIndex, newIndex int, h Handle) (Handle, int, error) {
	if e.reuser != nil && e.reuser.ShouldReuse(prevIndex, newIndex) {
		reused, err := e.reuser.Reuse(newIndex, h)
		if err != nil {
			return nil, 0, fmt.Errorf("reuse index %d for %d: %w", prevIndex, newIndex, err)
		}
		if reused == nil {
			reused = h
		}
		return reused, e.settledHeight(reused), nil
	}

	if err := e.renderer.Render(newIndex, h); err != nil {
		return nil, 0, fmt.Errorf("render index %d: %w", newIndex, err)
	}
	heights, err := e.measure(ctx, []Handle{h})
	if err != nil {
		return nil, 0, err
	}
	return h, heights[0], nil
}

// materialize renders newIndex into a fresh handle when nothing can be
// evicted.
func (e *Engine) materialize(ctx context.Context, newIndex int) (Handle, int, error) {
	h := e.container.NewHandle()
	if err := e.renderer.Render(newIndex, h); err != nil {
		return nil, 0, fmt.Errorf("render index %d: %w", newIndex, err)
	}
	heights, err := e.measure(ctx, []Handle{h})
	if err != nil {
		return nil, 0, err
	}
	return h, heights[0], nil
}
