package deque

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsUsable(t *testing.T) {
	var d Deque[int]
	require.True(t, d.Empty())

	d.PushBack(1)
	d.PushFront(0)

	front, ok := d.PeekFront()
	require.True(t, ok)
	assert.Equal(t, 0, front)
	back, ok := d.PeekBack()
	require.True(t, ok)
	assert.Equal(t, 1, back)
}

func TestEmptyOperationsReportMissing(t *testing.T) {
	d := New[string]()

	_, ok := d.PeekFront()
	assert.False(t, ok)
	_, ok = d.PeekBack()
	assert.False(t, ok)
	_, ok = d.PopFront()
	assert.False(t, ok)
	_, ok = d.PopBack()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestPushPopBothEnds(t *testing.T) {
	d := New[int]()
	for i := 0; i < 5; i++ {
		d.PushBack(i)
	}
	for i := 1; i <= 5; i++ {
		d.PushFront(-i)
	}
	require.Equal(t, []int{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4}, d.Slice())

	v, ok := d.PopFront()
	require.True(t, ok)
	assert.Equal(t, -5, v)
	v, ok = d.PopBack()
	require.True(t, ok)
	assert.Equal(t, 4, v)
	assert.Equal(t, 8, d.Len())
	assert.Equal(t, -4, d.At(0))
	assert.Equal(t, 3, d.At(7))
}

func TestGrowPreservesOrderAcrossWrap(t *testing.T) {
	d := New[int]()
	// Walk the head forward before forcing growth.
	for i := 0; i < 6; i++ {
		d.PushBack(i)
	}
	for i := 0; i < 4; i++ {
		_, _ = d.PopFront()
	}
	for i := 6; i < 20; i++ {
		d.PushBack(i)
	}
	want := make([]int, 0, 16)
	for i := 4; i < 20; i++ {
		want = append(want, i)
	}
	assert.Equal(t, want, d.Slice())
}

func TestSlidingWindowKeepsSize(t *testing.T) {
	d := New[int]()
	for i := 0; i < 10; i++ {
		d.PushBack(i)
	}
	for step := 0; step < 100; step++ {
		back, _ := d.PeekBack()
		_, _ = d.PopFront()
		d.PushBack(back + 1)
		require.Equal(t, 10, d.Len())
	}
	front, _ := d.PeekFront()
	back, _ := d.PeekBack()
	assert.Equal(t, 100, front)
	assert.Equal(t, 109, back)
}

func TestForEachEarlyExit(t *testing.T) {
	d := New[int]()
	for i := 0; i < 6; i++ {
		d.PushBack(i * 10)
	}

	var visited []int
	d.ForEach(func(_ int, v int) bool {
		visited = append(visited, v)
		return v == 20
	}, false)
	assert.Equal(t, []int{0, 10, 20}, visited)

	visited = nil
	var positions []int
	d.ForEach(func(i int, v int) bool {
		visited = append(visited, v)
		positions = append(positions, i)
		return v == 30
	}, true)
	assert.Equal(t, []int{50, 40, 30}, visited)
	assert.Equal(t, []int{5, 4, 3}, positions)
}

func TestForEachVisitsEverythingWithoutMatch(t *testing.T) {
	d := New[int]()
	d.PushBack(1)
	d.PushBack(2)
	count := 0
	d.ForEach(func(int, int) bool { count++; return false }, true)
	assert.Equal(t, 2, count)
}

func TestClear(t *testing.T) {
	d := New[*int]()
	x := 1
	d.PushBack(&x)
	d.PushFront(&x)
	d.Clear()
	assert.True(t, d.Empty())
	assert.Empty(t, d.Slice())
	d.PushBack(&x)
	assert.Equal(t, 1, d.Len())
}

func TestAtPanicsOutOfRange(t *testing.T) {
	d := New[int]()
	assert.Panics(t, func() { d.At(0) })
}
