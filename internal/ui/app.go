package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logfold/internal/pipeline"
	"github.com/five82/logfold/internal/prefs"
	"github.com/five82/logfold/internal/state"
	"github.com/five82/logfold/internal/table"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Manager   *pipeline.Manager
	Runner    *pipeline.Runner
	Store     *state.Store
	Prefs     prefs.Prefs
	PrefsPath string
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	manager   *pipeline.Manager
	runner    *pipeline.Runner
	store     *state.Store
	prefs     prefs.Prefs
	prefsPath string
	pollTick  time.Duration
	keys      keyMap
	copy      func(string) error

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot state.Snapshot
	loadedAt time.Time // LastCompleted of the run currently on screen
	view     table.View
	rows     table.Frame
	styles   []table.Style
	widths   []int

	// Table state
	cursor int
	offset int

	// Search state
	search    textinput.Model
	searching bool
	query     string
	matches   []int // row positions
	matchIdx  int

	// Detail overlay
	showDetail     bool
	detailTitle    string
	detailViewport viewport.Model

	// Help overlay
	showHelp bool

	// Footer notice
	flash      string
	flashErr   bool
	flashUntil time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	store := opts.Store
	if store == nil && opts.Runner != nil {
		store = opts.Runner.Store()
	}

	manager := opts.Manager
	if manager == nil {
		manager = pipeline.NewManager()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search rows"
	search.CharLimit = 256

	view := table.Full
	if opts.Prefs.ShowCollapsed {
		view = table.Collapsed
	}

	return Model{
		ctx:       ctx,
		manager:   manager,
		runner:    opts.Runner,
		store:     store,
		prefs:     opts.Prefs,
		prefsPath: opts.PrefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		copy:      clipboard.WriteAll,
		theme:     GetTheme(opts.Prefs.Theme),
		view:      view,
		search:    search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.detailHeight())
		}
		m.ready = true
		m.detailViewport.Width = msg.Width
		m.detailViewport.Height = m.detailHeight()
		m.search.Width = max(msg.Width-4, 10)
		m.scrollToCursor()
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		if !m.snapshot.LastCompleted.Equal(m.loadedAt) {
			m.loadedAt = m.snapshot.LastCompleted
			m.reload()
		}
		return m, nil

	case runDoneMsg:
		if msg.err != nil {
			m.setFlash("reload failed: "+msg.err.Error(), true)
		} else {
			m.setFlash("reloaded", false)
		}
		if m.store != nil {
			return m, fetchSnapshotCmd(m.store)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.showDetail {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleView):
		m.toggleView()
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		m.openDetail()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
		return m, nil

	case key.Matches(msg, m.keys.Rerun):
		return m, m.rerun()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextMatch):
		m.stepMatch(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.stepMatch(-1)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.clearSearch()
		return m, nil
	}

	m.handleNavigation(msg)
	return m, nil
}

// handleNavigation moves the cursor through the table.
func (m *Model) handleNavigation(msg tea.KeyMsg) {
	count := m.rows.Len()
	if count == 0 {
		return
	}
	page := max(m.bodyHeight(), 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = count - 1
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += page
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= page
	case key.Matches(msg, m.keys.HalfPageDown):
		m.cursor += max(page/2, 1)
	case key.Matches(msg, m.keys.HalfPageUp):
		m.cursor -= max(page/2, 1)
	default:
		return
	}
	m.cursor = clamp(m.cursor, 0, count-1)
	m.scrollToCursor()
}

// reload pulls the current view from the manager and keeps the cursor on the
// same stable row when it is still visible.
func (m *Model) reload() {
	selected := -1
	if m.cursor < m.rows.Len() {
		selected = m.rows.Index()[m.cursor]
	}

	rows, err := m.manager.Data(m.view)
	if err != nil {
		slog.Warn("load table failed", "error", err)
		return
	}
	styles, err := m.manager.Style(m.view)
	if err != nil {
		slog.Warn("load styles failed", "error", err)
		return
	}
	m.rows = rows
	m.styles = styles
	m.widths = columnWidths(rows)

	m.cursor = 0
	if pos, ok := rows.Position(selected); ok {
		m.cursor = pos
	}
	m.cursor = clamp(m.cursor, 0, max(rows.Len()-1, 0))
	if m.query != "" {
		m.findMatches()
	}
	m.scrollToCursor()
}

// toggleView switches between the collapsed and full views.
func (m *Model) toggleView() {
	if m.view == table.Collapsed {
		m.view = table.Full
	} else {
		m.view = table.Collapsed
	}
	m.prefs.ShowCollapsed = m.view == table.Collapsed
	m.savePrefs()
	m.reload()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		slog.Warn("save preferences failed", "path", m.prefsPath, "error", err)
	}
}

// selected returns the stable index and record of the cursor row.
func (m Model) selected() (int, table.Record, bool) {
	if m.cursor < 0 || m.cursor >= m.rows.Len() {
		return 0, table.Record{}, false
	}
	return m.rows.Index()[m.cursor], m.rows.Record(m.cursor), true
}

// copySelection copies the cursor row, or every row folded under a header,
// joined by the configured delimiter.
func (m *Model) copySelection() {
	stable, record, ok := m.selected()
	if !ok {
		return
	}
	delim := m.prefs.ClipboardDelimiter
	if delim == "" {
		delim = "\t"
	}

	var lines []string
	if record.Capture != nil {
		group, err := m.manager.Expand(stable)
		if err != nil {
			m.setFlash(err.Error(), true)
			return
		}
		for pos := range group.Len() {
			lines = append(lines, strings.Join(group.Row(pos), delim))
		}
	} else {
		lines = []string{strings.Join(m.rows.Row(m.cursor), delim)}
	}

	if err := m.copy(strings.Join(lines, "\n")); err != nil {
		m.setFlash("copy failed: "+err.Error(), true)
		return
	}
	m.setFlash(fmt.Sprintf("copied %d %s", len(lines), ternary(len(lines) == 1, "row", "rows")), false)
}

// rerun asks the runner for a fresh pass over the input files.
func (m *Model) rerun() tea.Cmd {
	if m.runner == nil {
		return nil
	}
	if m.snapshot.Busy {
		m.setFlash("a run is already in progress", true)
		return nil
	}
	m.setFlash("reloading...", false)
	return rerunCmd(m.ctx, m.runner)
}

func (m *Model) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashErr = isErr
	m.flashUntil = time.Now().Add(FlashDuration)
}

func (m Model) bodyHeight() int {
	return max(m.height-chromeLines, 0)
}

// detailHeight leaves room for the rule under the detail title.
func (m Model) detailHeight() int {
	return max(m.height-chromeLines-1, 1)
}

// scrollToCursor keeps the cursor row inside the visible window.
func (m *Model) scrollToCursor() {
	h := m.bodyHeight()
	if h <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	m.offset = clamp(m.offset, 0, max(m.rows.Len()-h, 0))
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type runDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func rerunCmd(ctx context.Context, runner *pipeline.Runner) tea.Cmd {
	return func() tea.Msg {
		done := make(chan error, 1)
		if err := runner.Start(ctx, func(err error) { done <- err }); err != nil {
			return runDoneMsg{err: err}
		}
		select {
		case err := <-done:
			return runDoneMsg{err: err}
		case <-ctx.Done():
			return runDoneMsg{err: ctx.Err()}
		}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
