package scroller

import (
	"context"
	"fmt"
)

// batch is a group of items rendered and measured in one layout pass. The
// items are not attached to the container yet.
type batch struct {
	items  []*Item
	height int
}

// createBatch renders indices into fresh handles and measures them
// together. Items are stacked downward from top, or upward from top when
// reverse is set; in that case indices must be in descending order so each
// item lands directly above the previous one.
func (e *Engine) createBatch(ctx context.Context, indices []int, reverse bool, top int, sentinel bool) (batch, error) {
	if len(indices) == 0 {
		return batch{}, nil
	}
	handles := make([]Handle, len(indices))
	for i, idx := range indices {
		if err := ctx.Err(); err != nil {
			return batch{}, err
		}
		h := e.container.NewHandle()
		if err := e.renderer.Render(idx, h); err != nil {
			return batch{}, fmt.Errorf("render index %d: %w", idx, err)
		}
		handles[i] = h
	}

	heights, err := e.measure(ctx, handles)
	if err != nil {
		return batch{}, err
	}
	if e.disposed() {
		return batch{}, ErrDisposed
	}

	b := batch{items: make([]*Item, len(indices))}
	for i, idx := range indices {
		h := heights[i]
		if reverse {
			top -= h
		}
		b.items[i] = &Item{Index: idx, Height: h, Top: top, Sentinel: sentinel, Handle: handles[i], Metadata: e.metadata(idx)}
		if !reverse {
			top += h
		}
		b.height += h
	}
	return b, nil
}

// measure returns the settled heights of handles. A fixed cell height skips
// the measurement surface entirely.
func (e *Engine) measure(ctx context.Context, handles []Handle) ([]int, error) {
	if e.opts.CellHeight > 0 {
		heights := make([]int, len(handles))
		for i := range heights {
			heights[i] = e.opts.CellHeight
		}
		return heights, nil
	}
	heights, err := e.measurer.Measure(ctx, handles)
	if err != nil {
		return nil, fmt.Errorf("measure %d items: %w", len(handles), err)
	}
	if len(heights) != len(handles) {
		return nil, fmt.Errorf("%w: got %d for %d items", ErrMeasureMismatch, len(heights), len(handles))
	}
	for i, h := range heights {
		if h < 0 {
			return nil, fmt.Errorf("measure item %d: negative height %d", i, h)
		}
	}
	return heights, nil
}

// settledHeight reads the height of a handle the surface has already laid
// out, as after Reuse.
func (e *Engine) settledHeight(h Handle) int {
	if e.opts.CellHeight > 0 {
		return e.opts.CellHeight
	}
	return max(0, e.container.Height(h))
}
