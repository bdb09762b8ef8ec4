package app

// Layout constants define the footer and scrolling geometry.
const (
	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3

	// WheelRows is how far one mouse wheel notch scrolls.
	WheelRows = 3
)
