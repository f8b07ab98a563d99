package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logfold/internal/table"
)

// handleSearchKey feeds keys to the search input until it is confirmed or
// canceled.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		m.query = strings.TrimSpace(m.search.Value())
		if m.query == "" {
			m.clearSearch()
			return m, nil
		}
		m.findMatches()
		if len(m.matches) == 0 {
			m.setFlash("Pattern not found: "+m.query, true)
			return m, nil
		}
		m.jumpToMatch(m.firstMatchFrom(m.cursor))
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// findMatches collects the row positions containing the query. The collapsed
// view asks the manager; the full view is scanned here since the manager only
// searches live rows.
func (m *Model) findMatches() {
	m.matches = nil
	m.matchIdx = 0
	if m.query == "" {
		return
	}

	if m.view == table.Collapsed {
		for _, stable := range m.manager.Search(m.query) {
			if pos, ok := m.rows.Position(stable); ok {
				m.matches = append(m.matches, pos)
			}
		}
		return
	}

	needle := strings.ToLower(m.query)
	for pos := range m.rows.Len() {
		for _, v := range m.rows.Row(pos) {
			if strings.Contains(strings.ToLower(v), needle) {
				m.matches = append(m.matches, pos)
				break
			}
		}
	}
}

// firstMatchFrom returns the index of the first match at or after pos,
// wrapping to the first match.
func (m Model) firstMatchFrom(pos int) int {
	for i, p := range m.matches {
		if p >= pos {
			return i
		}
	}
	return 0
}

func (m *Model) stepMatch(delta int) {
	if len(m.matches) == 0 {
		return
	}
	n := len(m.matches)
	m.jumpToMatch(((m.matchIdx+delta)%n + n) % n)
}

func (m *Model) jumpToMatch(idx int) {
	if idx < 0 || idx >= len(m.matches) {
		return
	}
	m.matchIdx = idx
	m.cursor = m.matches[idx]
	m.scrollToCursor()
}

func (m *Model) clearSearch() {
	m.query = ""
	m.matches = nil
	m.matchIdx = 0
	m.search.SetValue("")
}

// searchStatus describes the active search for the footer.
func (m Model) searchStatus() string {
	if m.query == "" {
		return ""
	}
	if len(m.matches) == 0 {
		return fmt.Sprintf("/%s - no matches", m.query)
	}
	return fmt.Sprintf("/%s - %d/%d - n next, N previous", m.query, m.matchIdx+1, len(m.matches))
}
