package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logfold/internal/pipeline"
	"github.com/five82/logfold/internal/prefs"
	"github.com/five82/logfold/internal/table"
)

func newManager(t *testing.T) *pipeline.Manager {
	t.Helper()
	msgs, err := table.NewDataColumn(table.MessageColumn,
		[]string{"boot", "init", "error occurred", "retry", "done"})
	if err != nil {
		t.Fatalf("NewDataColumn: %v", err)
	}
	filter, err := table.NewCaptureColumn("Filter",
		[]table.Signal{table.Absent, table.Absent, table.Keep("error occurred"), table.Absent, table.Absent},
		"<Filtered {count} row(s)>")
	if err != nil {
		t.Fatalf("NewCaptureColumn: %v", err)
	}
	m := pipeline.NewManager()
	if err := m.AddColumns(msgs, filter); err != nil {
		t.Fatalf("AddColumns: %v", err)
	}
	if err := m.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return m
}

func newModel(t *testing.T, collapsed bool) Model {
	t.Helper()
	m := New(Options{
		Manager:   newManager(t),
		Prefs:     prefs.Prefs{Theme: "Nightfox", ClipboardDelimiter: "\t", ShowCollapsed: collapsed},
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m.copy = func(string) error { return nil }
	m.reload()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func cursorMessage(m Model) string {
	return m.rows.Value(m.cursor, table.MessageColumn)
}

func TestModel_LoadsCollapsedView(t *testing.T) {
	m := newModel(t, true)
	if m.rows.Len() != 3 {
		t.Fatalf("rows = %d, want 3", m.rows.Len())
	}
	if got := cursorMessage(m); got != "<Filtered 2 row(s)>" {
		t.Fatalf("first row = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, "error occurred") || !strings.Contains(view, "▸") {
		t.Fatalf("View() missing rows or header marker:\n%s", view)
	}
}

func TestModel_Navigation(t *testing.T) {
	m := newModel(t, true)

	m = press(t, m, "j")
	if got := cursorMessage(m); got != "error occurred" {
		t.Fatalf("after j cursor = %q", got)
	}
	m = press(t, m, "G")
	if m.cursor != 2 {
		t.Fatalf("after G cursor = %d, want 2", m.cursor)
	}
	m = press(t, m, "j")
	if m.cursor != 2 {
		t.Fatalf("cursor moved past the last row: %d", m.cursor)
	}
	m = press(t, m, "g")
	if m.cursor != 0 {
		t.Fatalf("after g cursor = %d, want 0", m.cursor)
	}
}

func TestModel_ToggleViewKeepsRowAndSavesPrefs(t *testing.T) {
	m := newModel(t, true)
	m = press(t, m, "j") // "error occurred", stable index 2

	m = press(t, m, "v")
	if m.view != table.Full || m.rows.Len() != 5 {
		t.Fatalf("toggle to full: view=%v rows=%d", m.view, m.rows.Len())
	}
	if got := cursorMessage(m); got != "error occurred" {
		t.Fatalf("cursor after toggle = %q, want error occurred", got)
	}

	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.ShowCollapsed {
		t.Fatalf("ShowCollapsed saved as true after switching to full view")
	}
}

func TestModel_ExpandHeader(t *testing.T) {
	m := newModel(t, true)
	m = press(t, m, "G", "enter")
	if !m.showDetail {
		t.Fatalf("detail not shown")
	}
	if m.detailTitle != "Rows 3-4 (2)" {
		t.Fatalf("detailTitle = %q", m.detailTitle)
	}
	if view := m.detailViewport.View(); !strings.Contains(view, "retry") || !strings.Contains(view, "done") {
		t.Fatalf("detail missing captured rows:\n%s", view)
	}

	m = press(t, m, "esc")
	if m.showDetail {
		t.Fatalf("esc did not close detail")
	}
}

func TestModel_CopyGroupAndRow(t *testing.T) {
	m := newModel(t, true)
	var copied []string
	m.copy = func(s string) error {
		copied = append(copied, s)
		return nil
	}

	m = press(t, m, "c", "j", "c")
	want := []string{"boot\ninit", "error occurred"}
	if len(copied) != len(want) {
		t.Fatalf("copied %d times, want %d", len(copied), len(want))
	}
	for i := range want {
		if copied[i] != want[i] {
			t.Fatalf("copy %d = %q, want %q", i, copied[i], want[i])
		}
	}

	m.copy = func(string) error { return errors.New("no clipboard") }
	m = press(t, m, "c")
	if !m.flashErr || !strings.Contains(m.flash, "no clipboard") {
		t.Fatalf("flash = %q (err=%v), want copy failure", m.flash, m.flashErr)
	}
}

func TestModel_Search(t *testing.T) {
	tests := []struct {
		name      string
		collapsed bool
		query     string
		want      []int
	}{
		{"collapsed uses live rows", true, "filtered", []int{0, 2}},
		{"full scans every row", false, "r", []int{2, 3}},
		{"no match", true, "absent", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t, tt.collapsed)
			m = press(t, m, "/")
			if !m.searching {
				t.Fatalf("search not started")
			}
			m = press(t, m, tt.query, "enter")
			if m.searching {
				t.Fatalf("search still active after enter")
			}
			if len(m.matches) != len(tt.want) {
				t.Fatalf("matches = %v, want %v", m.matches, tt.want)
			}
			for i := range tt.want {
				if m.matches[i] != tt.want[i] {
					t.Fatalf("matches = %v, want %v", m.matches, tt.want)
				}
			}
			if len(tt.want) > 0 && m.cursor != tt.want[0] {
				t.Fatalf("cursor = %d, want first match %d", m.cursor, tt.want[0])
			}
		})
	}
}

func TestModel_SearchNextWraps(t *testing.T) {
	m := newModel(t, true)
	m = press(t, m, "/", "filtered", "enter")
	m = press(t, m, "n")
	if m.cursor != 2 {
		t.Fatalf("after n cursor = %d, want 2", m.cursor)
	}
	m = press(t, m, "n")
	if m.cursor != 0 {
		t.Fatalf("n did not wrap: cursor = %d", m.cursor)
	}
	m = press(t, m, "N")
	if m.cursor != 2 {
		t.Fatalf("N did not wrap backwards: cursor = %d", m.cursor)
	}
	m = press(t, m, "esc")
	if m.query != "" || len(m.matches) != 0 {
		t.Fatalf("esc did not clear search")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m := newModel(t, true)
	m = press(t, m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	saved, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestModel_HelpClosesOnAnyKey(t *testing.T) {
	m := newModel(t, true)
	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("help not shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m = press(t, m, "j")
	if m.showHelp || m.cursor != 0 {
		t.Fatalf("key after help should only close it: showHelp=%v cursor=%d", m.showHelp, m.cursor)
	}
}
