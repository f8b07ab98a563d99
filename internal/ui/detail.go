package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logfold/internal/table"
)

// openDetail shows the cursor row in the detail overlay. Collapsed headers
// show the rows folded under them; other rows show every field.
func (m *Model) openDetail() {
	stable, record, ok := m.selected()
	if !ok {
		return
	}

	var content string
	if record.Capture != nil {
		group, err := m.manager.Expand(stable)
		if err != nil {
			m.setFlash(err.Error(), true)
			return
		}
		m.detailTitle = fmt.Sprintf("Rows %d-%d (%d)", record.Capture.First, record.Capture.Last, group.Len())
		content = m.renderGroup(group)
	} else {
		m.detailTitle = fmt.Sprintf("Row %d", stable)
		content = m.renderFields(m.cursor, record)
	}

	m.showDetail = true
	m.detailViewport.SetContent(content)
	m.detailViewport.GotoTop()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Expand):
		m.showDetail = false
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// renderGroup lays out captured rows as an aligned table.
func (m Model) renderGroup(group table.Frame) string {
	widths := fitWidths(columnWidths(group), m.width)
	names := group.Columns()
	styles := m.theme.Styles()

	var b strings.Builder
	header := make([]string, len(names))
	for i, name := range names {
		header[i] = fitCell(name, widths[i])
	}
	b.WriteString(styles.AccentText.Bold(true).Render(strings.Repeat(" ", gutterWidth) + strings.Join(header, " ")))

	for pos := range group.Len() {
		row := group.Row(pos)
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fitCell(v, widths[i])
		}
		line := strings.Repeat(" ", gutterWidth) + strings.Join(cells, " ")
		b.WriteString("\n")
		b.WriteString(m.theme.RowStyle(table.ResolveStyle(group.Record(pos))).Render(line))
	}
	return b.String()
}

// renderFields lists every column of one row, then its metadata.
func (m Model) renderFields(pos int, record table.Record) string {
	styles := m.theme.Styles()
	names := m.rows.Columns()
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(16)
	valueWidth := max(m.width-18, 20)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(label.Render(truncate(name, 15)))
		b.WriteString(styles.Text.Width(valueWidth).Render(m.rows.Value(pos, name)))
		b.WriteString("\n")
	}

	categories := make([]string, 0, len(record.Categories))
	for category := range record.Categories {
		categories = append(categories, category)
	}
	slices.Sort(categories)
	for _, category := range categories {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Bold(true).Render(category))
		b.WriteString("\n")
		fields := record.Category(category)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			b.WriteString(label.Render(truncate(k, 15)))
			b.WriteString(styles.MutedText.Render(fields[k]))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderDetail renders the overlay in place of the table body.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	title := styles.DetailTitle.Width(m.width).Render(" " + m.detailTitle)
	m.detailViewport.Height = m.detailHeight()
	return title + "\n" + m.detailViewport.View()
}
