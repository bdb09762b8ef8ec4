package feed

import (
	"container/list"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/treykane/vscroll/internal/scroller"
	"github.com/treykane/vscroll/internal/termsurface"
)

// Renderer renders source items into termsurface cells. It implements
// scroller.Renderer, scroller.Reuser and scroller.Annotator.
type Renderer struct {
	src   Source
	width int
	style string
}

// NewRenderer returns a renderer that word-wraps at width using the named
// Glamour style. An empty style falls back to the environment.
func NewRenderer(src Source, width int, style string) *Renderer {
	return &Renderer{src: src, width: width, style: style}
}

// Source returns the item source.
func (r *Renderer) Source() Source { return r.src }

func (r *Renderer) Render(index int, h scroller.Handle) error {
	c, ok := h.(*termsurface.Cell)
	if !ok {
		return fmt.Errorf("render index %d: unexpected handle %T", index, h)
	}
	md, err := r.src.Markdown(index)
	if err != nil {
		return err
	}
	c.Set(r.src.Label(index), renderMarkdown(md, r.width, r.style))
	return nil
}

// Reuse re-renders the cell in place for newIndex.
func (r *Renderer) Reuse(newIndex int, h scroller.Handle) (scroller.Handle, error) {
	if err := r.Render(newIndex, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Metadata tags each item with its source kind.
func (r *Renderer) Metadata(index int) any {
	return r.src.Kind(index)
}

// ShouldReuse allows in-place reuse between items of the same kind.
func (r *Renderer) ShouldReuse(prev, next int) bool {
	return r.src.Kind(prev) == r.src.Kind(next)
}

type boundedRenderer struct {
	*Renderer
	can func(int) bool
}

func (b boundedRenderer) CanRenderAt(index int) bool { return b.can(index) }

// Bounded adds a render predicate to r, for sources without a fixed range.
func Bounded(r *Renderer, can func(index int) bool) scroller.Renderer {
	return boundedRenderer{Renderer: r, can: can}
}

var (
	// maxRendererCacheEntries bounds the number of Glamour renderers
	// retained across widths and styles.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
)

type rendererKey struct {
	width int
	style string
}

// renderMarkdown converts markdown to ANSI output wrapped at width. If
// Glamour fails the raw markdown is returned so the item still shows.
func renderMarkdown(content string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(width, style)
	if err != nil {
		feedLog.Error("create markdown renderer", "width", width, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		feedLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return out
}

// getRenderer returns a cached Glamour renderer for width and style,
// evicting the least recently used one past the limit. Glamour renderers
// are not safe for concurrent Render calls; all rendering happens on the
// engine's goroutine.
func getRenderer(width int, style string) (*glamour.TermRenderer, error) {
	key := rendererKey{width: width, style: resolveStyle(style)}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[key]; ok {
		if node, ok := rendererCacheNodes[key]; ok {
			rendererCacheOrder.MoveToBack(node)
		}
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(key.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[key] = renderer
	rendererCacheNodes[key] = rendererCacheOrder.PushBack(key)
	evictOldestRendererIfNeeded()
	return renderer, nil
}

func evictOldestRendererIfNeeded() {
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		key, _ := oldest.Value.(rendererKey)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, key)
		delete(rendererCacheNodes, key)
	}
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
}

// resolveStyle picks the Glamour style: the configured one, then
// VSCROLL_GLAMOUR_STYLE, then GLAMOUR_STYLE, then "dark".
func resolveStyle(style string) string {
	for _, s := range []string{style, os.Getenv("VSCROLL_GLAMOUR_STYLE"), os.Getenv("GLAMOUR_STYLE")} {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			return s
		}
	}
	return "dark"
}

// glamourStyleOption maps a style name to a renderer option. "auto" queries
// the terminal background; unknown names fall back to dark.
func glamourStyleOption(style string) glamour.TermRendererOption {
	switch style {
	case "auto":
		return glamour.WithAutoStyle()
	case "dark", "light", "notty":
		return glamour.WithStandardStyle(style)
	default:
		return glamour.WithStandardStyle("dark")
	}
}
