package scroller

import "context"

// fill materializes the items covering the viewport from the initial index.
//
// Each round renders and measures a batch starting at the initial index. A
// batch that falls short of the viewport is discarded and retried at double
// the size. A batch cut short by the bounds is final: growing it cannot add
// items past the bound.
func (e *Engine) fill(ctx context.Context) error {
	size := e.opts.firstBatchSize()
	for {
		indices, truncated := e.span(e.opts.InitialIndex, size, 1)
		if len(indices) == 0 {
			return ErrInvalidInitialIndex
		}
		b, err := e.createBatch(ctx, indices, false, 0, false)
		if err != nil {
			return err
		}
		if truncated || b.height >= e.opts.ViewportHeight || size >= maxBatchSize {
			if !truncated && b.height < e.opts.ViewportHeight {
				e.log.Warn("fill stopped at batch limit", "batch", size, "height", b.height)
			}
			e.commitFill(b)
			return nil
		}
		e.log.Debug("fill batch too short", "batch", size, "height", b.height, "viewport", e.opts.ViewportHeight)
		size *= 2
	}
}

func (e *Engine) commitFill(b batch) {
	for i, it := range b.items {
		e.window.PushBack(it)
		e.container.Attach(it.Handle, i)
		e.container.Place(it.Handle, it.Top, it.Height)
	}
	e.contentHeight = max(e.opts.ViewportHeight, b.height)
	e.container.SetContentHeight(e.contentHeight)
	e.log.Debug("fill committed", "items", len(b.items), "height", b.height)
}
