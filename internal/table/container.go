package table

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// View selects which projection a query reads.
type View int

const (
	// Collapsed is the live view with capture groups applied.
	Collapsed View = iota
	// Full is the uncollapsed view holding every ingested row.
	Full
)

// Group is a run of rows folded into one header (or hidden entirely).
type Group struct {
	// Header is the stable index the group is keyed by: the visible header
	// row, or the first captured row when Hidden is set.
	Header int
	// Hidden groups have no row in the collapsed view; they are reachable
	// only through Groups.
	Hidden bool
	// Rows is the captured slice as it looked before the run was collapsed.
	Rows Frame
	// Nested holds groups whose header row was captured again by a later run.
	Nested []*Group
}

// Recoverable counts the original rows reachable by expanding g fully.
func (g *Group) Recoverable() int {
	n := g.Rows.Len() - len(g.Nested)
	for _, inner := range g.Nested {
		n += inner.Recoverable()
	}
	return n
}

func (g *Group) clone() *Group {
	out := &Group{Header: g.Header, Hidden: g.Hidden, Rows: g.Rows.clone()}
	for _, inner := range g.Nested {
		out.Nested = append(out.Nested, inner.clone())
	}
	return out
}

// Container owns the full table, its merged metadata, the live (collapsed)
// view and the capture groups. It is not safe for concurrent mutation.
type Container struct {
	base     Frame
	metaCols []*MetadataColumn
	live     Frame
	groups   map[int]*Group
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	return &Container{groups: make(map[int]*Group)}
}

// Erase drops all rows, columns and groups.
func (c *Container) Erase() {
	*c = Container{groups: make(map[int]*Group)}
}

// ResetView discards applied captures and restores the full view as the
// live one.
func (c *Container) ResetView() {
	c.live = c.base.clone()
	c.groups = make(map[int]*Group)
}

// Len returns the row count of a view.
func (c *Container) Len(view View) int {
	return c.frame(view).Len()
}

// Columns returns the data column names in display order.
func (c *Container) Columns() []string {
	return c.base.Columns()
}

// MetadataNames returns the names of the metadata columns merged so far.
func (c *Container) MetadataNames() []string {
	names := make([]string, len(c.metaCols))
	for i, col := range c.metaCols {
		names[i] = col.name
	}
	return names
}

func (c *Container) frame(view View) *Frame {
	if view == Full {
		return &c.base
	}
	return &c.live
}

// Data returns the requested rows of a view. No rows selects all of them;
// otherwise rows are stable indices and must all be present in the view.
func (c *Container) Data(view View, rows ...int) (Frame, error) {
	f := c.frame(view)
	positions, err := f.positions(rows)
	if err != nil {
		return Frame{}, err
	}
	return f.pick(positions), nil
}

// Metadata returns the merged records of the requested rows.
func (c *Container) Metadata(view View, rows ...int) ([]Record, error) {
	f := c.frame(view)
	positions, err := f.positions(rows)
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(positions))
	for i, pos := range positions {
		out[i] = f.meta[pos].Clone()
	}
	return out, nil
}

// Style resolves the display style of the requested rows.
func (c *Container) Style(view View, rows ...int) ([]Style, error) {
	f := c.frame(view)
	positions, err := f.positions(rows)
	if err != nil {
		return nil, err
	}
	out := make([]Style, len(positions))
	for i, pos := range positions {
		out[i] = ResolveStyle(f.meta[pos])
	}
	return out, nil
}

// Search returns the stable indices of live rows where any data column
// contains query, ignoring case.
func (c *Container) Search(query string) []int {
	needle := strings.ToLower(query)
	if needle == "" {
		return nil
	}
	var hits []int
	for pos, stable := range c.live.index {
		for _, name := range c.live.columns {
			if strings.Contains(strings.ToLower(c.live.cells[name][pos]), needle) {
				hits = append(hits, stable)
				break
			}
		}
	}
	return hits
}

// Groups returns the keys of all capture groups in ascending order.
func (c *Container) Groups() []int {
	return slices.Sorted(maps.Keys(c.groups))
}

// Group returns a copy of the group keyed by header.
func (c *Container) Group(header int) (*Group, error) {
	g, ok := c.groups[header]
	if !ok {
		return nil, fmt.Errorf("row %d: %w", header, ErrNoGroup)
	}
	return g.clone(), nil
}

// Expand returns the rows captured under header without changing the table.
func (c *Container) Expand(header int) (Frame, error) {
	g, ok := c.groups[header]
	if !ok {
		return Frame{}, fmt.Errorf("row %d: %w", header, ErrNoGroup)
	}
	return g.Rows.clone(), nil
}

func (c *Container) setData(name string, values []string) error {
	if err := c.base.setColumn(name, values); err != nil {
		return err
	}
	c.ResetView()
	return nil
}

func (c *Container) setMetadata(col *MetadataColumn) error {
	if len(c.base.columns) == 0 {
		return fmt.Errorf("metadata %q: %w", col.name, ErrNoData)
	}
	if col.Len() != c.base.Len() {
		return fmt.Errorf("metadata %q has %d rows, table has %d: %w", col.name, col.Len(), c.base.Len(), ErrLengthMismatch)
	}
	cols := slices.DeleteFunc(slices.Clone(c.metaCols), func(m *MetadataColumn) bool {
		return m.name == col.name
	})
	cols = append(cols, col)

	merged := make([]Record, c.base.Len())
	for row := range merged {
		var rec Record
		for _, m := range cols {
			rec = rec.Merge(m.Record(row))
		}
		merged[row] = rec
	}
	c.metaCols = cols
	c.base.meta = merged
	c.ResetView()
	return nil
}
