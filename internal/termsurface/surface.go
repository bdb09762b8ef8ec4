// Package termsurface is a terminal-backed scroller surface. Cells are laid
// out at the surface width with lipgloss, stacked at the offsets the engine
// assigns, and composed into the rows visible at a scroll position.
package termsurface

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/treykane/vscroll/internal/scroller"
)

var (
	cellStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Cell is the scroller handle for one item. Its content is laid out lazily
// the first time the surface needs its height.
type Cell struct {
	id      int
	label   string
	content string

	dirty  bool
	width  int
	lines  []string
	top    int
	height int
}

// Set replaces the cell's label and content. The cell is laid out again on
// the next measurement.
func (c *Cell) Set(label, content string) {
	c.label = label
	c.content = content
	c.dirty = true
}

// Label returns the plain-text header shown above the content.
func (c *Cell) Label() string { return c.label }

// Top returns the offset assigned by the last Place.
func (c *Cell) Top() int { return c.top }

// Surface implements scroller.Container and scroller.Sizer. Measurements
// go through a scroller.Probe staged on the surface. It is not safe for
// concurrent use.
type Surface struct {
	width    int
	nextID   int
	cells    []*Cell
	staged   []*Cell
	onLayout func()

	contentHeight int
	scroll        int
}

// New returns an empty surface that lays cells out at width columns.
func New(width int) *Surface {
	return &Surface{width: max(1, width)}
}

// Width returns the layout width.
func (s *Surface) Width() int { return s.width }

// ContentHeight returns the height last set by the engine.
func (s *Surface) ContentHeight() int { return s.contentHeight }

// ScrollPosition returns the position last set by the engine.
func (s *Surface) ScrollPosition() int { return s.scroll }

// Len returns the number of attached cells.
func (s *Surface) Len() int { return len(s.cells) }

// Cells returns the attached cells in stacking order.
func (s *Surface) Cells() []*Cell {
	return append([]*Cell(nil), s.cells...)
}

func (s *Surface) NewHandle() scroller.Handle {
	s.nextID++
	return &Cell{id: s.nextID, dirty: true}
}

func (s *Surface) Attach(h scroller.Handle, pos int) {
	c := h.(*Cell)
	pos = min(max(pos, 0), len(s.cells))
	s.cells = append(s.cells, nil)
	copy(s.cells[pos+1:], s.cells[pos:])
	s.cells[pos] = c
}

func (s *Surface) Detach(h scroller.Handle) {
	c := h.(*Cell)
	for i, a := range s.cells {
		if a == c {
			s.cells = append(s.cells[:i], s.cells[i+1:]...)
			return
		}
	}
}

func (s *Surface) Place(h scroller.Handle, top, height int) {
	c := h.(*Cell)
	c.top = top
	c.height = height
}

// Height lays the cell out if needed and returns its row count.
func (s *Surface) Height(h scroller.Handle) int {
	return s.layout(h.(*Cell))
}

func (s *Surface) SetContentHeight(height int) { s.contentHeight = height }

func (s *Surface) SetScrollPosition(pos int) { s.scroll = pos }

// OnLayout registers fn to run after each off-screen layout pass started by
// Stage. fn runs on its own goroutine, the way a terminal host reports that
// the next frame has been laid out; pass a scroller.Probe's LayoutSettled.
func (s *Surface) OnLayout(fn func()) { s.onLayout = fn }

// Stage lays out handles in the off-screen area used by scroller.Probe and
// then reports the pass to the OnLayout callback.
func (s *Surface) Stage(handles []scroller.Handle) {
	s.staged = s.staged[:0]
	for _, h := range handles {
		c := h.(*Cell)
		s.layout(c)
		s.staged = append(s.staged, c)
	}
	if len(handles) > 0 && s.onLayout != nil {
		go s.onLayout()
	}
}

// Staged returns the number of cells waiting in the off-screen area.
func (s *Surface) Staged() int { return len(s.staged) }

func (s *Surface) layout(c *Cell) int {
	if !c.dirty && c.width == s.width {
		return len(c.lines)
	}
	var b strings.Builder
	if c.label != "" {
		b.WriteString(labelStyle.Render(runewidth.Truncate(c.label, s.width, "…")))
		b.WriteByte('\n')
	}
	for i, line := range strings.Split(strings.Trim(c.content, "\n"), "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(fit(strings.TrimRight(line, " "), s.width))
	}
	rendered := cellStyle.Width(s.width).Render(b.String())
	c.lines = strings.Split(rendered, "\n")
	c.width = s.width
	c.dirty = false
	return lipgloss.Height(rendered)
}

// Compose returns the height rows starting at pos, one per line. Rows not
// covered by an attached cell are blank.
func (s *Surface) Compose(pos, height int) string {
	if height <= 0 {
		return ""
	}
	rows := make([]string, height)
	next := 0
	for r := range rows {
		row := pos + r
		for next < len(s.cells) && s.cells[next].top+s.cells[next].height <= row {
			next++
		}
		if next == len(s.cells) {
			break
		}
		c := s.cells[next]
		if row < c.top {
			continue
		}
		if line := row - c.top; line < len(c.lines) {
			rows[r] = fit(c.lines[line], s.width)
		}
	}
	return strings.Join(rows, "\n")
}

func fit(line string, width int) string {
	if lipgloss.Width(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "")
}
