package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logfold/internal/table"
)

// columnWidths sizes each column to its widest cell, header included.
// Every column but the last is capped at MaxColumnWidth.
func columnWidths(rows table.Frame) []int {
	names := rows.Columns()
	widths := make([]int, len(names))
	for i, name := range names {
		w := max(cellWidth(name), MinColumnWidth)
		values, _ := rows.Column(name)
		for _, v := range values {
			w = max(w, cellWidth(v))
		}
		if i < len(names)-1 {
			w = min(w, MaxColumnWidth)
		}
		widths[i] = w
	}
	return widths
}

// fitWidths shrinks the last column so a row fits in total cells.
func fitWidths(widths []int, total int) []int {
	out := slices.Clone(widths)
	if len(out) == 0 {
		return out
	}
	used := gutterWidth
	for _, w := range out[:len(out)-1] {
		used += w + 1
	}
	last := len(out) - 1
	out[last] = max(min(out[last], total-used), 0)
	return out
}

// renderColumnHeader renders the column names above the table body.
func (m Model) renderColumnHeader() string {
	styles := m.theme.Styles()
	widths := fitWidths(m.widths, m.width)
	names := m.rows.Columns()

	cells := make([]string, len(names))
	for i, name := range names {
		cells[i] = fitCell(name, widths[i])
	}
	line := strings.Repeat(" ", gutterWidth) + strings.Join(cells, " ")
	return styles.ColumnHeader.Width(m.width).MaxWidth(m.width).Render(line)
}

// renderTable renders the visible window of rows.
func (m Model) renderTable() string {
	height := m.bodyHeight()
	if m.rows.Len() == 0 {
		return m.renderEmpty(height)
	}

	styles := m.theme.Styles()
	widths := fitWidths(m.widths, m.width)
	matched := make(map[int]bool, len(m.matches))
	for _, pos := range m.matches {
		matched[pos] = true
	}

	lines := make([]string, 0, height)
	end := min(m.offset+height, m.rows.Len())
	for pos := m.offset; pos < end; pos++ {
		row := m.rows.Row(pos)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fitCell(v, widths[i])
		}

		gutter := "  "
		switch {
		case m.rows.Record(pos).Capture != nil:
			gutter = "▸ "
		case matched[pos]:
			gutter = "* "
		}
		line := gutter + strings.Join(cells, " ")

		style := m.rowStyle(pos)
		if pos == m.cursor {
			style = styles.Selected
		}
		lines = append(lines, style.Width(m.width).MaxWidth(m.width).Render(line))
	}

	bg := NewBgStyle(m.theme.Background)
	for len(lines) < height {
		lines = append(lines, bg.Spaces(m.width))
	}
	return strings.Join(lines, "\n")
}

// rowStyle resolves the display style of the row at pos.
func (m Model) rowStyle(pos int) lipgloss.Style {
	if pos < 0 || pos >= len(m.styles) {
		return m.theme.RowStyle(table.DefaultStyle())
	}
	return m.theme.RowStyle(m.styles[pos])
}

// renderEmpty fills the body when there is nothing to show.
func (m Model) renderEmpty(height int) string {
	styles := m.theme.Styles()
	msg := "No rows"
	switch {
	case m.snapshot.Busy:
		msg = "Reading log files..."
	case m.snapshot.LastError != nil && !m.snapshot.HasTable:
		msg = "Run failed: " + m.snapshot.LastError.Error()
	}
	block := lipgloss.Place(m.width, max(height, 1), lipgloss.Center, lipgloss.Center,
		styles.MutedText.Render(truncate(msg, m.width-4)))
	return block
}
