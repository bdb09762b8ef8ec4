package scroller

import (
	"context"
	"fmt"
	"testing"
)

// testCell is the resource handed out by testSurface.
type testCell struct {
	id     int
	index  int
	top    int
	height int
}

// testSurface is an in-memory Container and Measurer. Heights come from
// heightOf applied to the index last rendered into a cell.
type testSurface struct {
	heightOf func(index int) int

	nextID        int
	attached      []*testCell
	contentHeight int
	scroll        int

	renders      []int
	measureCalls int
	measured     []int
	measureErr   error
	shortMeasure bool
}

func newTestSurface(heightOf func(int) int) *testSurface {
	return &testSurface{heightOf: heightOf}
}

func fixedHeight(h int) func(int) int {
	return func(int) int { return h }
}

func (s *testSurface) NewHandle() Handle {
	s.nextID++
	return &testCell{id: s.nextID}
}

func (s *testSurface) Attach(h Handle, pos int) {
	c := h.(*testCell)
	pos = min(max(pos, 0), len(s.attached))
	s.attached = append(s.attached, nil)
	copy(s.attached[pos+1:], s.attached[pos:])
	s.attached[pos] = c
}

func (s *testSurface) Detach(h Handle) {
	c := h.(*testCell)
	for i, a := range s.attached {
		if a == c {
			s.attached = append(s.attached[:i], s.attached[i+1:]...)
			return
		}
	}
}

func (s *testSurface) Place(h Handle, top, height int) {
	c := h.(*testCell)
	c.top = top
	c.height = height
}

func (s *testSurface) Height(h Handle) int {
	return h.(*testCell).height
}

func (s *testSurface) SetContentHeight(height int) { s.contentHeight = height }

func (s *testSurface) SetScrollPosition(pos int) { s.scroll = pos }

func (s *testSurface) Measure(_ context.Context, handles []Handle) ([]int, error) {
	s.measureCalls++
	s.measured = append(s.measured, len(handles))
	if s.measureErr != nil {
		return nil, s.measureErr
	}
	heights := make([]int, len(handles))
	for i, h := range handles {
		heights[i] = h.(*testCell).height
	}
	if s.shortMeasure {
		heights = heights[:len(heights)-1]
	}
	return heights, nil
}

// testRenderer renders by recording the index and the height the cell will
// settle at.
type testRenderer struct {
	s      *testSurface
	failAt map[int]error
}

func (r *testRenderer) Render(index int, h Handle) error {
	if err := r.failAt[index]; err != nil {
		return err
	}
	c := h.(*testCell)
	c.index = index
	c.height = r.s.heightOf(index)
	r.s.renders = append(r.s.renders, index)
	return nil
}

// reusingRenderer adds the Reuser capability.
type reusingRenderer struct {
	*testRenderer
	allow  func(prev, next int) bool
	reused [][2]int
}

func (r *reusingRenderer) Reuse(newIndex int, h Handle) (Handle, error) {
	c := h.(*testCell)
	r.reused = append(r.reused, [2]int{c.index, newIndex})
	c.index = newIndex
	c.height = r.s.heightOf(newIndex)
	return h, nil
}

func (r *reusingRenderer) ShouldReuse(prev, next int) bool {
	return r.allow(prev, next)
}

// predicateRenderer adds the Bounder capability.
type predicateRenderer struct {
	*testRenderer
	can func(int) bool
}

func (r *predicateRenderer) CanRenderAt(index int) bool {
	return r.can(index)
}

// annotatingRenderer adds the Annotator capability.
type annotatingRenderer struct {
	*testRenderer
}

func (r *annotatingRenderer) Metadata(index int) any {
	return fmt.Sprintf("item %d", index)
}

func bounds(lo, hi int) *Bounds {
	return &Bounds{Min: lo, Max: hi}
}

func newTestEngine(t *testing.T, r Renderer, s *testSurface, opts Options) *Engine {
	t.Helper()
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = 300
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = 80
	}
	e, err := New(r, s, s, opts)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(e.Dispose)
	return e
}

func indices(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Index
	}
	return out
}

func tops(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Top
	}
	return out
}

func span(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}

// checkWindow asserts the ordering invariants and that the host holds the
// same cells, in the same order, at the same offsets.
func checkWindow(t *testing.T, e *Engine, s *testSurface) {
	t.Helper()
	items := e.Items()
	if len(items) != len(s.attached) {
		t.Fatalf("window has %d items, host has %d attached", len(items), len(s.attached))
	}
	for i, it := range items {
		c := s.attached[i]
		if it.Handle != Handle(c) {
			t.Fatalf("item %d (%v) is not the host cell at position %d", i, it, i)
		}
		if c.top != it.Top || c.height != it.Height || c.index != it.Index {
			t.Fatalf("host cell %d = {index %d top %d height %d}, window has %v", i, c.index, c.top, c.height, it)
		}
		if i == 0 {
			continue
		}
		prev := items[i-1]
		if it.Index != prev.Index+1 {
			t.Fatalf("indices not consecutive at %d: %v", i, fmt.Sprint(indices(items)))
		}
		if it.Top != prev.Bottom() {
			t.Fatalf("item %v does not start at bottom of %v", it, prev)
		}
	}
}

// checkCovered asserts that the materialized items span the whole viewport.
func checkCovered(t *testing.T, e *Engine) {
	t.Helper()
	items := e.Items()
	if len(items) == 0 {
		t.Fatal("window is empty")
	}
	top, bottom := e.ScrollPosition(), e.ScrollPosition()+e.ViewportHeight()
	front, back := items[0], items[len(items)-1]
	if front.Top > top || back.Bottom() < bottom {
		t.Fatalf("window %v..%v leaves rows of [%d, %d) uncovered", front, back, top, bottom)
	}
}
