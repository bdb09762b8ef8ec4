// Package deque adapts github.com/gammazero/deque to the window's needs:
// ok-reporting peeks and pops, and an ordered visit that can stop early.
//
// A Deque is not safe for concurrent use.
package deque

import (
	gdeque "github.com/gammazero/deque"
)

// Deque is a double-ended queue. The zero value is an empty deque ready to use.
type Deque[T any] struct {
	q gdeque.Deque[T]
}

// New returns an empty deque.
func New[T any]() *Deque[T] {
	return &Deque[T]{}
}

// Len returns the number of elements in the deque.
func (d *Deque[T]) Len() int {
	return d.q.Len()
}

// Empty reports whether the deque holds no elements.
func (d *Deque[T]) Empty() bool {
	return d.q.Len() == 0
}

// PushFront inserts v before the current front.
func (d *Deque[T]) PushFront(v T) {
	d.q.PushFront(v)
}

// PushBack inserts v after the current back.
func (d *Deque[T]) PushBack(v T) {
	d.q.PushBack(v)
}

// PopFront removes and returns the front element. ok is false when empty.
func (d *Deque[T]) PopFront() (v T, ok bool) {
	if d.q.Len() == 0 {
		return v, false
	}
	return d.q.PopFront(), true
}

// PopBack removes and returns the back element. ok is false when empty.
func (d *Deque[T]) PopBack() (v T, ok bool) {
	if d.q.Len() == 0 {
		return v, false
	}
	return d.q.PopBack(), true
}

// PeekFront returns the front element without removing it.
func (d *Deque[T]) PeekFront() (v T, ok bool) {
	if d.q.Len() == 0 {
		return v, false
	}
	return d.q.Front(), true
}

// PeekBack returns the back element without removing it.
func (d *Deque[T]) PeekBack() (v T, ok bool) {
	if d.q.Len() == 0 {
		return v, false
	}
	return d.q.Back(), true
}

// At returns the i-th element counted from the front. It panics when i is
// out of range, like a slice index.
func (d *Deque[T]) At(i int) T {
	return d.q.At(i)
}

// ForEach visits elements front to back, or back to front when reverse is
// set, and stops as soon as fn returns true. The position passed to fn is
// always counted from the front.
func (d *Deque[T]) ForEach(fn func(i int, v T) bool, reverse bool) {
	n := d.q.Len()
	if reverse {
		for i := n - 1; i >= 0; i-- {
			if fn(i, d.q.At(i)) {
				return
			}
		}
		return
	}
	for i := 0; i < n; i++ {
		if fn(i, d.q.At(i)) {
			return
		}
	}
}

// Slice copies the elements into a new slice in front-to-back order.
func (d *Deque[T]) Slice() []T {
	out := make([]T, d.q.Len())
	for i := range out {
		out[i] = d.q.At(i)
	}
	return out
}

// Clear removes every element.
func (d *Deque[T]) Clear() {
	d.q.Clear()
}
