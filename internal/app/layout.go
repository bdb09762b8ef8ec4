package app

// LayoutDimensions holds the sizes derived from the terminal size.
type LayoutDimensions struct {
	PaneWidth      int // feed pane including border and padding
	PaneHeight     int // terminal height minus the footer
	ViewportWidth  int // columns available to items
	ViewportHeight int // rows available to items, below the header row
}

// calculateLayout splits the terminal into the feed pane and the footer. The
// pane loses its frame and one header row to the viewport.
func (m *Model) calculateLayout() LayoutDimensions {
	paneHeight := max(0, m.height-m.footerHeightForWidth(m.width))
	return LayoutDimensions{
		PaneWidth:      m.width,
		PaneHeight:     paneHeight,
		ViewportWidth:  max(0, m.width-feedPane.GetHorizontalFrameSize()),
		ViewportHeight: max(0, paneHeight-feedPane.GetVerticalFrameSize()-1),
	}
}

// footerHeightForWidth prefers FooterMinRows and expands to FooterMaxRows
// when the footer segments do not fit.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout resizes the viewport widget.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight
}
