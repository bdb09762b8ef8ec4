package scroller

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func filledEngine(t *testing.T, r Renderer, s *testSurface, opts Options) *Engine {
	t.Helper()
	e := newTestEngine(t, r, s, opts)
	if err := e.fill(context.Background()); err != nil {
		t.Fatalf("fill: %v", err)
	}
	e.setState(StateIdle)
	return e
}

func TestRecycleUpEvictsBackAndCompensatesScroll(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	e := startedEngine(t, &testRenderer{s: s}, s, Options{Bounds: bounds(-100, 100), ViewportHeight: 240})
	// Window -1..10 at scroll 30; items 8..10 sit wholly below the viewport.
	evicted := e.Items()[11].Handle
	calls := s.measureCalls

	recycled, err := e.recycle(context.Background(), Up, 1)
	if err != nil || !recycled {
		t.Fatalf("recycle: recycled=%v err=%v", recycled, err)
	}

	items := e.Items()
	if diff := cmp.Diff(span(-2, 9), indices(items)); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if items[0].Handle != evicted {
		t.Fatal("expected the evicted resource to serve the new front item")
	}
	if items[0].Top != 0 || items[1].Top != 30 {
		t.Fatalf("expected content shifted down by 30, got %v %v", items[0], items[1])
	}
	if e.ScrollPosition() != 60 || s.scroll != 60 {
		t.Fatalf("expected scroll corrected by 30, got engine %d host %d", e.ScrollPosition(), s.scroll)
	}
	if e.ContentHeight() != 390 {
		t.Fatalf("expected content height 390, got %d", e.ContentHeight())
	}
	if s.measureCalls != calls+1 || s.measured[len(s.measured)-1] != 1 {
		t.Fatalf("expected one single-item measurement, got calls=%d sizes=%v", s.measureCalls-calls, s.measured)
	}
	if e.State() != StateIdle {
		t.Fatalf("expected idle after recycling, got %v", e.State())
	}
	checkWindow(t, e, s)
}

func TestRecycleUpKeepsVisibleBack(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	e := filledEngine(t, &testRenderer{s: s}, s, Options{Bounds: bounds(-100, 100)})
	// Window 0..9 exactly covers the viewport, so nothing can be evicted.
	handles := make(map[Handle]bool)
	for _, it := range e.Items() {
		handles[it.Handle] = true
	}

	if _, err := e.recycle(context.Background(), Up, 1); err != nil {
		t.Fatalf("recycle: %v", err)
	}

	items := e.Items()
	if diff := cmp.Diff(span(-1, 9), indices(items)); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if handles[items[0].Handle] {
		t.Fatal("expected a fresh resource for the new front item")
	}
	if e.ScrollPosition() != 30 || e.ContentHeight() != 330 {
		t.Fatalf("expected scroll 30 and content 330, got %d and %d", e.ScrollPosition(), e.ContentHeight())
	}
	if !items[len(items)-1].Sentinel {
		t.Fatal("expected the back item to start the trailing run")
	}
	checkWindow(t, e, s)
	checkCovered(t, e)
}

func TestRecycleUpReusesResourceWithoutMeasuring(t *testing.T) {
	s := newTestSurface(func(i int) int {
		if i < 0 {
			return 45
		}
		return 30
	})
	r := &reusingRenderer{
		testRenderer: &testRenderer{s: s},
		allow:        func(prev, next int) bool { return prev == 10 && next == -2 },
	}
	e := startedEngine(t, r, s, Options{Bounds: bounds(-100, 100), ViewportHeight: 240})
	calls := s.measureCalls

	if _, err := e.recycle(context.Background(), Up, 1); err != nil {
		t.Fatalf("recycle: %v", err)
	}

	if diff := cmp.Diff([][2]int{{10, -2}}, r.reused); diff != "" {
		t.Fatalf("reuse calls mismatch (-want +got):\n%s", diff)
	}
	if s.measureCalls != calls {
		t.Fatalf("expected no measurement on reuse, got %d", s.measureCalls-calls)
	}
	front := e.Items()[0]
	if front.Index != -2 || front.Height != 45 {
		t.Fatalf("expected reused front with settled height 45, got %v", front)
	}
	if e.ScrollPosition() != 90 {
		t.Fatalf("expected scroll corrected by 45, got %d", e.ScrollPosition())
	}
	checkWindow(t, e, s)
}

func TestRecycleFallsBackToRenderWhenReuseDeclined(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	r := &reusingRenderer{
		testRenderer: &testRenderer{s: s},
		allow:        func(int, int) bool { return false },
	}
	e := startedEngine(t, r, s, Options{Bounds: bounds(-100, 100), ViewportHeight: 240})
	calls := s.measureCalls

	if _, err := e.recycle(context.Background(), Down, 1); err != nil {
		t.Fatalf("recycle: %v", err)
	}
	if len(r.reused) != 0 {
		t.Fatalf("expected no reuse, got %v", r.reused)
	}
	if s.measureCalls != calls+1 {
		t.Fatalf("expected a measurement, got %d", s.measureCalls-calls)
	}
}

func TestRecycleDownAppendsWithoutScrollCompensation(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	e := startedEngine(t, &testRenderer{s: s}, s, Options{Bounds: bounds(-100, 100), ViewportHeight: 240})
	evicted := e.Items()[0].Handle

	if _, err := e.recycle(context.Background(), Down, 1); err != nil {
		t.Fatalf("recycle: %v", err)
	}

	items := e.Items()
	if diff := cmp.Diff(span(0, 11), indices(items)); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if items[len(items)-1].Top != 360 || items[len(items)-1].Handle != evicted {
		t.Fatalf("expected the evicted resource at 360, got %v", items[len(items)-1])
	}
	if e.ScrollPosition() != 30 {
		t.Fatalf("expected scroll untouched, got %d", e.ScrollPosition())
	}
	if e.ContentHeight() != 390 {
		t.Fatalf("expected content to grow to 390, got %d", e.ContentHeight())
	}
	checkWindow(t, e, s)
}

func TestRecycleDownKeepsVisibleFront(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	e := startedEngine(t, &testRenderer{s: s}, s, Options{Bounds: bounds(0, 100)})
	// Nothing exists above index 0, so the leading run starts empty.
	if diff := cmp.Diff(span(0, 9), indices(e.Items())); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}

	if _, err := e.recycle(context.Background(), Down, 1); err != nil {
		t.Fatalf("recycle: %v", err)
	}

	items := e.Items()
	if diff := cmp.Diff(span(0, 10), indices(items)); diff != "" {
		t.Fatalf("expected the visible front to stay (-want +got):\n%s", diff)
	}
	if !items[0].Sentinel {
		t.Fatal("expected the front item to start the leading run")
	}
	if e.ScrollPosition() != 0 {
		t.Fatalf("expected scroll untouched, got %d", e.ScrollPosition())
	}
	checkWindow(t, e, s)
	checkCovered(t, e)
}

func TestRecycleHaltsAtBound(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	e := filledEngine(t, &testRenderer{s: s}, s, Options{Bounds: bounds(0, 100)})
	before := indices(e.Items())

	recycled, err := e.recycle(context.Background(), Up, 1)
	if err != nil {
		t.Fatalf("recycle: %v", err)
	}
	if recycled {
		t.Fatal("expected no recycling past the lower bound")
	}
	if diff := cmp.Diff(before, indices(e.Items())); diff != "" {
		t.Fatalf("window changed (-before +after):\n%s", diff)
	}
}

func TestRecycleRenderErrorLeavesWindow(t *testing.T) {
	boom := errors.New("boom")
	s := newTestSurface(fixedHeight(30))
	r := &testRenderer{s: s, failAt: map[int]error{10: boom}}
	e := filledEngine(t, r, s, Options{Bounds: bounds(0, 100)})

	if _, err := e.recycle(context.Background(), Down, 1); !errors.Is(err, boom) {
		t.Fatalf("expected render error, got %v", err)
	}
	if diff := cmp.Diff(span(0, 9), indices(e.Items())); diff != "" {
		t.Fatalf("window changed (-want +got):\n%s", diff)
	}
	checkWindow(t, e, s)
}

func TestRecycleKeepsSentinelRuns(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	e := newTestEngine(t, &testRenderer{s: s}, s, Options{Bounds: bounds(-100, 100), BufferSize: 2})
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	for _, dir := range []Direction{Down, Down, Up, Down, Up, Up, Up} {
		if _, err := e.recycle(context.Background(), dir, 1); err != nil {
			t.Fatalf("recycle %v: %v", dir, err)
		}
		items := e.Items()
		n := len(items)
		for i, it := range items {
			want := i < 2 || i >= n-2
			if it.Sentinel != want {
				t.Fatalf("after %v: item %d sentinel=%v, want %v", dir, i, it.Sentinel, want)
			}
		}
		checkWindow(t, e, s)
	}
}

func TestRecycleStampsMetadata(t *testing.T) {
	s := newTestSurface(fixedHeight(30))
	r := &annotatingRenderer{testRenderer: &testRenderer{s: s}}
	e := startedEngine(t, r, s, Options{Bounds: bounds(-100, 100), ViewportHeight: 240})

	for _, dir := range []Direction{Up, Down, Down} {
		if _, err := e.recycle(context.Background(), dir, 1); err != nil {
			t.Fatalf("recycle %v: %v", dir, err)
		}
	}
	for _, it := range e.Items() {
		if it.Metadata != fmt.Sprintf("item %d", it.Index) {
			t.Fatalf("item %v carries metadata %v", it, it.Metadata)
		}
	}
}
