package scroller

import "fmt"

const (
	// DefaultBatchSize is the number of items requested by the first fill batch.
	DefaultBatchSize = 10
	// DefaultBufferSize is the number of sentinels kept past each edge.
	DefaultBufferSize = 1
	// DefaultScrollThreshold is the smallest position change that counts as
	// a scroll. Smaller changes are treated as jitter.
	DefaultScrollThreshold = 1

	// maxBatchSize stops fill from doubling forever when items measure zero
	// rows on an unbounded source.
	maxBatchSize = 4096
)

// Bounds is an inclusive range of renderable indices.
type Bounds struct {
	Min int
	Max int
}

// Contains reports whether index lies within the range.
func (b Bounds) Contains(index int) bool {
	return b.Min <= index && index <= b.Max
}

// Options configures an Engine. Zero sizes select the defaults.
type Options struct {
	InitialIndex int
	// Bounds limits the renderable indices. Leave nil when the renderer
	// implements Bounder.
	Bounds *Bounds

	ViewportHeight int
	ViewportWidth  int

	BatchSize  int
	BufferSize int

	// CellHeight fixes every item's height and skips measurement.
	CellHeight int
	// EstimatedCellHeight sizes the first fill batch.
	EstimatedCellHeight int

	ScrollThreshold int
}

// withDefaults validates o and fills in default sizes. bounder reports
// whether the renderer brings its own CanRenderAt.
func (o Options) withDefaults(bounder Bounder) (Options, error) {
	if o.ViewportHeight <= 0 || o.ViewportWidth <= 0 {
		return o, fmt.Errorf("%w: got %dx%d", ErrInvalidViewport, o.ViewportWidth, o.ViewportHeight)
	}
	switch {
	case o.Bounds == nil && bounder == nil:
		return o, ErrNoBounds
	case o.Bounds != nil && bounder != nil:
		return o, ErrConflictingBounds
	case o.Bounds != nil && o.Bounds.Min > o.Bounds.Max:
		return o, fmt.Errorf("%w: [%d, %d]", ErrInvalidBounds, o.Bounds.Min, o.Bounds.Max)
	}
	if o.CellHeight != 0 && o.EstimatedCellHeight != 0 {
		return o, ErrConflictingCellHeight
	}
	if o.BatchSize < 0 || o.BufferSize < 0 || o.CellHeight < 0 || o.EstimatedCellHeight < 0 || o.ScrollThreshold < 0 {
		return o, ErrInvalidSize
	}

	eligible := bounder != nil && bounder.CanRenderAt(o.InitialIndex) ||
		o.Bounds != nil && o.Bounds.Contains(o.InitialIndex)
	if !eligible {
		return o, fmt.Errorf("%w: %d", ErrInvalidInitialIndex, o.InitialIndex)
	}

	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.BufferSize == 0 {
		o.BufferSize = DefaultBufferSize
	}
	if o.ScrollThreshold == 0 {
		o.ScrollThreshold = DefaultScrollThreshold
	}
	if o.Bounds != nil {
		b := *o.Bounds
		o.Bounds = &b
	}
	return o, nil
}

// firstBatchSize applies the cell height hint: enough items to cover the
// viewport if every item had the hinted height, never fewer than BatchSize.
func (o Options) firstBatchSize() int {
	hint := o.CellHeight
	if hint == 0 {
		hint = o.EstimatedCellHeight
	}
	if hint <= 0 {
		return o.BatchSize
	}
	return max(o.BatchSize, (o.ViewportHeight+hint-1)/hint)
}
