package scroller

import "context"

// Handle is an opaque reference to a visual resource owned by the render
// surface. The engine only passes it back to the surface.
type Handle any

// Renderer populates resources with content for a logical index. It is the
// only required capability. A Renderer may also implement Reuser, Bounder
// and Annotator; the engine detects those with type assertions.
type Renderer interface {
	Render(index int, h Handle) error
}

// Reuser repurposes an evicted resource in place instead of rendering it from
// scratch. ShouldReuse gates every attempt; Reuse may return a different
// handle, in which case the returned one is attached instead.
type Reuser interface {
	Reuse(newIndex int, h Handle) (Handle, error)
	ShouldReuse(prevIndex, newIndex int) bool
}

// Bounder decides which indices exist. Engines whose renderer is a Bounder
// must not be given Options.Bounds.
type Bounder interface {
	CanRenderAt(index int) bool
}

// Annotator supplies the metadata stored on an item each time it is
// materialized for an index, whether rendered fresh or reused.
type Annotator interface {
	Metadata(index int) any
}

// Measurer reports the settled height of each handle after one layout pass.
// Only one call may be in flight at a time.
type Measurer interface {
	Measure(ctx context.Context, handles []Handle) ([]int, error)
}

// Container is the host area items are attached to.
type Container interface {
	// NewHandle allocates an empty, detached resource.
	NewHandle() Handle
	// Attach inserts h at the given ordinal position among attached handles.
	Attach(h Handle, pos int)
	// Detach removes h from the container without destroying it.
	Detach(h Handle)
	// Place sets the offset and size of an attached handle.
	Place(h Handle, top, height int)
	// Height returns the settled height of a handle that the surface has
	// already laid out, such as one just returned by Reuse.
	Height(h Handle) int
	SetContentHeight(height int)
	SetScrollPosition(pos int)
}
