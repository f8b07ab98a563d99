package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// truncate shortens a string to the given cell width, adding an ellipsis if
// needed. Wide runes count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

// truncateMiddle shortens a string by removing cells from the middle,
// preserving both the beginning and end.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 2 {
		return runewidth.Truncate(value, limit, "")
	}
	keep := limit - runewidth.StringWidth(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	head := runewidth.Truncate(value, prefix, "")
	return head + ellipsis + tailCells(value, suffix)
}

// tailCells returns the longest suffix of s that fits in width cells.
func tailCells(s string, width int) string {
	runes := []rune(s)
	used := 0
	i := len(runes)
	for i > 0 {
		w := runewidth.RuneWidth(runes[i-1])
		if used+w > width {
			break
		}
		used += w
		i--
	}
	return string(runes[i:])
}

// fitCell truncates value to width cells and pads it to exactly width.
func fitCell(value string, width int) string {
	if width <= 0 {
		return ""
	}
	value = flattenCell(value)
	return runewidth.FillRight(runewidth.Truncate(value, width, ellipsis), width)
}

// flattenCell replaces control characters that would break a table row.
func flattenCell(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, value)
}

// cellWidth returns the display width of value once flattened.
func cellWidth(value string) int {
	return runewidth.StringWidth(flattenCell(value))
}
