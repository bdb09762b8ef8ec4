package scroller

import "fmt"

// Item describes one materialized entry of the window.
type Item struct {
	Index    int
	Height   int
	Top      int
	Sentinel bool
	Handle   Handle
	Metadata any
}

// Bottom is the offset just past the item.
func (it Item) Bottom() int {
	return it.Top + it.Height
}

func (it Item) String() string {
	s := ""
	if it.Sentinel {
		s = " sentinel"
	}
	return fmt.Sprintf("#%d[%d+%d%s]", it.Index, it.Top, it.Height, s)
}

// Direction is the direction of the last handled scroll.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// State is the engine lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateFilling
	StateIdle
	StateRecycling
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateFilling:
		return "filling"
	case StateIdle:
		return "idle"
	case StateRecycling:
		return "recycling"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}
