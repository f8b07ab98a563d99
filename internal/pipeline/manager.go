package pipeline

import (
	"fmt"
	"slices"
	"sync"

	"github.com/five82/logfold/internal/table"
)

// Manager owns a table container, folds incoming columns into it and answers
// queries for the UI. Queries may run concurrently with Swap; mutations are
// expected from a single goroutine.
type Manager struct {
	mu       sync.RWMutex
	c        *table.Container
	captures []*table.CaptureColumn
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{c: table.NewContainer()}
}

// AddColumns folds a batch into the table: Data columns first, then
// Metadata, while Capture columns are queued for Finalize. The batch is
// checked up front so a rejected batch leaves the manager unchanged.
func (m *Manager) AddColumns(cols ...table.Column) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.check(cols); err != nil {
		return err
	}
	for _, col := range table.Order(cols) {
		if cc, ok := col.(*table.CaptureColumn); ok {
			m.captures = append(m.captures, cc)
			continue
		}
		if err := col.Process(m.c); err != nil {
			return fmt.Errorf("add %s column %q: %w", col.Kind(), col.Name(), err)
		}
	}
	return nil
}

// check validates a batch against the current row count without touching
// the container.
func (m *Manager) check(cols []table.Column) error {
	rows := -1
	if len(m.c.Columns()) > 0 {
		rows = m.c.Len(table.Full)
	}
	for _, col := range cols {
		if col == nil {
			return fmt.Errorf("add column: %w", table.ErrUnnamedColumn)
		}
		if col.Name() == "" {
			return fmt.Errorf("add %s column: %w", col.Kind(), table.ErrUnnamedColumn)
		}
		if col.Kind() != table.KindData {
			continue
		}
		if rows < 0 {
			rows = col.Len()
		}
		if col.Len() != rows {
			return fmt.Errorf("data column %q has %d rows, table has %d: %w", col.Name(), col.Len(), rows, table.ErrLengthMismatch)
		}
	}
	for _, col := range cols {
		if col.Kind() != table.KindMetadata {
			continue
		}
		if rows < 0 {
			return fmt.Errorf("metadata column %q: %w", col.Name(), table.ErrNoData)
		}
		if col.Len() != rows {
			return fmt.Errorf("metadata column %q has %d rows, table has %d: %w", col.Name(), col.Len(), rows, table.ErrLengthMismatch)
		}
	}
	return nil
}

// Finalize rebuilds the collapsed view from the full table and applies
// every queued capture in order. Calling it again yields the same view. On
// error the view is left uncollapsed.
func (m *Manager) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.c.ResetView()
	for _, cc := range m.captures {
		if err := cc.PostProcess(m.c); err != nil {
			m.c.ResetView()
			return fmt.Errorf("finalize: %w", err)
		}
	}
	return nil
}

// Erase drops the table and the capture queue.
func (m *Manager) Erase() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.c.Erase()
	m.captures = nil
}

// Swap replaces m's contents with other's. other must not be used afterwards.
func (m *Manager) Swap(other *Manager) {
	other.mu.Lock()
	c, captures := other.c, other.captures
	other.c, other.captures = table.NewContainer(), nil
	other.mu.Unlock()

	m.mu.Lock()
	m.c, m.captures = c, captures
	m.mu.Unlock()
}

// Len returns the row count of a view.
func (m *Manager) Len(view table.View) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Len(view)
}

// Columns returns the names of the Data columns followed by the Metadata
// columns currently joined.
func (m *Manager) Columns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Concat(m.c.Columns(), m.c.MetadataNames())
}

// DataColumns returns only the displayable Data column names.
func (m *Manager) DataColumns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Columns()
}

// Data returns rows of a view; rows are stable indices, none selects all.
func (m *Manager) Data(view table.View, rows ...int) (table.Frame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Data(view, rows...)
}

// Metadata returns the merged records of rows of a view.
func (m *Manager) Metadata(view table.View, rows ...int) ([]table.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Metadata(view, rows...)
}

// Style resolves the display style of rows of a view.
func (m *Manager) Style(view table.View, rows ...int) ([]table.Style, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Style(view, rows...)
}

// Search returns the stable indices of collapsed rows containing query.
func (m *Manager) Search(query string) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Search(query)
}

// Groups returns the group header indices in ascending order.
func (m *Manager) Groups() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Groups()
}

// Group returns a copy of the group keyed by header.
func (m *Manager) Group(header int) (*table.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Group(header)
}

// Expand returns the rows captured under header.
func (m *Manager) Expand(header int) (table.Frame, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Expand(header)
}
