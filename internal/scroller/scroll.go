package scroller

import "context"

// Scroll records a new viewport position and runs at most one recycling
// step when the sentinel on the edge being approached has been crossed.
//
// Changes smaller than the scroll threshold are ignored and do not update
// the direction; they accumulate until they reach it. While another step is
// in flight the event is dropped and ErrBusy is returned.
//
// recycled reports whether the window changed. Recycling at the top may
// shift the content, so the host should read ScrollPosition afterwards and
// scroll to it.
func (e *Engine) Scroll(ctx context.Context, pos int) (recycled bool, err error) {
	if !e.gate.tryAcquire() {
		e.log.Debug("scroll dropped while busy", "position", pos)
		return false, ErrBusy
	}
	defer e.gate.release()
	if err := e.requireIdle(); err != nil {
		return false, err
	}

	e.currentScroll = pos
	delta := pos - e.previousScroll
	if abs(delta) < e.opts.ScrollThreshold {
		return false, nil
	}
	if delta < 0 {
		e.direction = Up
	} else {
		e.direction = Down
	}
	speed := scrollSpeed(pos, e.previousScroll)

	defer func() {
		e.previousScroll = e.currentScroll
	}()

	if !e.sentinelCrossed(e.direction) {
		return false, nil
	}

	ctx, done := e.opContext(ctx)
	defer done()
	return e.recycle(ctx, e.direction, speed)
}

// nearestSentinel returns the item guarding the edge being approached: the
// front when moving up and the back when moving down. The edge item heads
// that edge's sentinel run; when the run is empty, as against a bound, it
// still serves as the trigger so the run can be rebuilt.
func (e *Engine) nearestSentinel(dir Direction) *Item {
	var (
		it *Item
		ok bool
	)
	if dir == Up {
		it, ok = e.window.PeekFront()
	} else {
		it, ok = e.window.PeekBack()
	}
	if !ok {
		return nil
	}
	return it
}

// sentinelCrossed reports whether the viewport has reached the trailing
// boundary of the nearest sentinel. Moving up, the sentinel's bottom has
// come into view. Moving down, the sentinel's bottom is above the bottom of
// the viewport.
func (e *Engine) sentinelCrossed(dir Direction) bool {
	s := e.nearestSentinel(dir)
	if s == nil {
		return false
	}
	if dir == Up {
		return s.Bottom() >= e.currentScroll
	}
	return s.Bottom() <= e.currentScroll+e.opts.ViewportHeight
}

// scrollSpeed estimates how fast the viewport moves. It is reserved for
// sizing multi-item recycling batches and currently always reports 1.
func scrollSpeed(current, previous int) int {
	_, _ = current, previous
	return 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
