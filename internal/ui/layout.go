package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100
)

// Table geometry.
const (
	// chromeLines counts the header, command bar, column header and footer.
	chromeLines = 4

	// gutterWidth is the marker column left of every row.
	gutterWidth = 2

	// MaxColumnWidth caps every column except the last one.
	MaxColumnWidth = 40

	// MinColumnWidth keeps narrow columns readable.
	MinColumnWidth = 4

	// HelpModalWidth is the width of the help overlay.
	HelpModalWidth = 44
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// FlashDuration is how long footer notices stay visible.
	FlashDuration = 3 * time.Second
)
