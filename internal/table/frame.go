package table

import (
	"fmt"
	"slices"
)

// Frame is a row-aligned set of named string columns plus one metadata record
// per row. Rows are identified by stable index and kept in ascending index
// order. Frames handed out by the package are copies.
type Frame struct {
	columns []string
	index   []int
	cells   map[string][]string
	meta    []Record
}

// NewFrame builds a frame from ordered column names and their values. Every
// column must have the same length; rows get stable indices 0..n-1.
func NewFrame(names []string, values [][]string) (Frame, error) {
	if len(names) != len(values) {
		return Frame{}, fmt.Errorf("frame has %d names for %d columns", len(names), len(values))
	}
	var f Frame
	for i, name := range names {
		if err := f.setColumn(name, values[i]); err != nil {
			return Frame{}, err
		}
	}
	return f, nil
}

// Len returns the number of rows.
func (f Frame) Len() int {
	return len(f.index)
}

// Columns returns the column names in display order.
func (f Frame) Columns() []string {
	return slices.Clone(f.columns)
}

// HasColumn reports whether a column exists.
func (f Frame) HasColumn(name string) bool {
	_, ok := f.cells[name]
	return ok
}

// Index returns the stable index of every row, in order.
func (f Frame) Index() []int {
	return slices.Clone(f.index)
}

// Column returns a copy of one column's values.
func (f Frame) Column(name string) ([]string, bool) {
	values, ok := f.cells[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// Value returns the cell at a row position, or "" when the column is absent.
func (f Frame) Value(pos int, name string) string {
	values, ok := f.cells[name]
	if !ok || pos < 0 || pos >= len(values) {
		return ""
	}
	return values[pos]
}

// Row returns the cells of one row position in column order.
func (f Frame) Row(pos int) []string {
	row := make([]string, len(f.columns))
	for i, name := range f.columns {
		row[i] = f.cells[name][pos]
	}
	return row
}

// Record returns a copy of the metadata at a row position.
func (f Frame) Record(pos int) Record {
	if pos < 0 || pos >= len(f.meta) {
		return Record{}
	}
	return f.meta[pos].Clone()
}

// Position maps a stable index to its row position in this frame.
func (f Frame) Position(stable int) (int, bool) {
	return slices.BinarySearch(f.index, stable)
}

func (f Frame) clone() Frame {
	out := Frame{
		columns: slices.Clone(f.columns),
		index:   slices.Clone(f.index),
		meta:    make([]Record, len(f.meta)),
	}
	if f.cells != nil {
		out.cells = make(map[string][]string, len(f.cells))
		for name, values := range f.cells {
			out.cells[name] = slices.Clone(values)
		}
	}
	for i, rec := range f.meta {
		out.meta[i] = rec.Clone()
	}
	return out
}

// pick returns a new frame holding the given row positions, in that order.
func (f Frame) pick(positions []int) Frame {
	out := Frame{
		columns: slices.Clone(f.columns),
		index:   make([]int, len(positions)),
		cells:   make(map[string][]string, len(f.cells)),
		meta:    make([]Record, len(positions)),
	}
	for name, values := range f.cells {
		col := make([]string, len(positions))
		for i, pos := range positions {
			col[i] = values[pos]
		}
		out.cells[name] = col
	}
	for i, pos := range positions {
		out.index[i] = f.index[pos]
		out.meta[i] = f.meta[pos].Clone()
	}
	return out
}

// positions resolves stable indices to row positions. An empty request
// selects every row.
func (f Frame) positions(rows []int) ([]int, error) {
	if len(rows) == 0 {
		all := make([]int, len(f.index))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	out := make([]int, len(rows))
	for i, stable := range rows {
		pos, ok := f.Position(stable)
		if !ok {
			return nil, fmt.Errorf("row %d: %w", stable, ErrRowOutOfRange)
		}
		out[i] = pos
	}
	return out, nil
}

// setColumn upserts a column. The first column defines the row set; a
// replaced column moves to the end of the column order.
func (f *Frame) setColumn(name string, values []string) error {
	if name == "" {
		return ErrUnnamedColumn
	}
	if len(f.columns) == 0 {
		f.index = make([]int, len(values))
		for i := range f.index {
			f.index[i] = i
		}
		f.meta = make([]Record, len(values))
		f.cells = make(map[string][]string)
	} else if len(values) != len(f.index) {
		return fmt.Errorf("column %q has %d rows, table has %d: %w", name, len(values), len(f.index), ErrLengthMismatch)
	}
	if _, ok := f.cells[name]; ok {
		f.columns = slices.DeleteFunc(f.columns, func(c string) bool { return c == name })
	}
	f.columns = append(f.columns, name)
	f.cells[name] = slices.Clone(values)
	return nil
}

// keep drops every row position not marked in keep.
func (f *Frame) keep(keep []bool) {
	n := 0
	for pos, ok := range keep {
		if !ok {
			continue
		}
		f.index[n] = f.index[pos]
		f.meta[n] = f.meta[pos]
		for _, values := range f.cells {
			values[n] = values[pos]
		}
		n++
	}
	f.index = f.index[:n]
	f.meta = f.meta[:n]
	for name, values := range f.cells {
		f.cells[name] = values[:n]
	}
}
