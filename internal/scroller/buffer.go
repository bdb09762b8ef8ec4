package scroller

import "context"

// maintainBuffer adds sentinels past both edges until each edge has
// BufferSize of them or reaches its bound.
//
// Items at the back that already reach into the visible area count toward
// the trailing run, so a fill that just covers the viewport needs no extra
// trailing items. Leading sentinels are stacked upward from the front; when
// they reach above the content origin every item and the scroll position
// move down by the overflow, keeping the visible content in place.
func (e *Engine) maintainBuffer(ctx context.Context) error {
	want := e.opts.BufferSize
	leading := e.countLeading()
	trailing := e.countTrailing()

	front, _ := e.window.PeekFront()
	indices, _ := e.span(front.Index-1, want-leading, -1)
	lead, err := e.createBatch(ctx, indices, true, front.Top, true)
	if err != nil {
		return err
	}

	back, _ := e.window.PeekBack()
	indices, _ = e.span(back.Index+1, want-trailing, 1)
	trail, err := e.createBatch(ctx, indices, false, back.Bottom(), true)
	if err != nil {
		return err
	}

	for _, it := range lead.items {
		e.window.PushFront(it)
		e.container.Attach(it.Handle, 0)
	}
	for _, it := range trail.items {
		e.window.PushBack(it)
		e.container.Attach(it.Handle, e.window.Len()-1)
		e.container.Place(it.Handle, it.Top, it.Height)
	}
	e.leadingRun = leading + len(lead.items)
	e.trailingRun = trailing + len(trail.items)

	last, _ := e.window.PeekBack()
	e.growContent(last.Bottom())

	newFront, _ := e.window.PeekFront()
	if overflow := -newFront.Top; overflow > 0 {
		e.shift(overflow)
		e.growContent(e.contentHeight + overflow)
		e.setScroll(e.currentScroll + overflow)
		e.previousScroll = e.currentScroll
	} else {
		for _, it := range lead.items {
			e.container.Place(it.Handle, it.Top, it.Height)
		}
	}

	if len(lead.items) > 0 || len(trail.items) > 0 {
		e.log.Debug("buffer maintained",
			"leading_added", len(lead.items), "trailing_added", len(trail.items),
			"leading_run", e.leadingRun, "trailing_run", e.trailingRun,
			"scroll", e.currentScroll)
	}
	return nil
}

// countLeading returns the length of the sentinel run at the front.
func (e *Engine) countLeading() int {
	n := 0
	e.window.ForEach(func(_ int, it *Item) bool {
		if !it.Sentinel || n >= e.opts.BufferSize {
			return true
		}
		n++
		return false
	}, false)
	return n
}

// countTrailing scans from the back for items serving as trailing
// sentinels. Items that are not flagged yet but start within the visible
// area are promoted. The scan stops at the first item that neither is a
// sentinel nor starts within the viewport.
func (e *Engine) countTrailing() int {
	limit := e.currentScroll + e.opts.ViewportHeight
	n := 0
	e.window.ForEach(func(_ int, it *Item) bool {
		if n >= e.opts.BufferSize {
			return true
		}
		if !it.Sentinel {
			if it.Top > limit {
				return true
			}
			it.Sentinel = true
		}
		n++
		return false
	}, true)
	return n
}
