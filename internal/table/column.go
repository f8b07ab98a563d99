package table

import (
	"fmt"
	"slices"
)

// Kind identifies a column variant. Kinds are applied in ascending order
// within a batch: data first, then metadata, then captures.
type Kind int

const (
	KindData Kind = iota
	KindMetadata
	KindCapture
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindMetadata:
		return "metadata"
	case KindCapture:
		return "capture"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Column is one stage's contribution to the table.
//
// Process folds data and metadata columns into the container's full view.
// PostProcess runs after every Process call of the batch and applies
// captures to the live view.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	Process(c *Container) error
	PostProcess(c *Container) error
}

// DataColumn holds visible text values.
type DataColumn struct {
	name   string
	values []string
}

// NewDataColumn returns a data column over a copy of values.
func NewDataColumn(name string, values []string) (*DataColumn, error) {
	if name == "" {
		return nil, ErrUnnamedColumn
	}
	return &DataColumn{name: name, values: slices.Clone(values)}, nil
}

// NewDataColumnOf formats arbitrary values as strings.
func NewDataColumnOf[T any](name string, values []T) (*DataColumn, error) {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return NewDataColumn(name, out)
}

func (d *DataColumn) Name() string { return d.name }
func (d *DataColumn) Kind() Kind   { return KindData }
func (d *DataColumn) Len() int     { return len(d.values) }

// Values returns a copy of the column values.
func (d *DataColumn) Values() []string { return slices.Clone(d.values) }

// Process upserts the column by name.
func (d *DataColumn) Process(c *Container) error {
	return c.setData(d.name, d.values)
}

// PostProcess is a no-op for data columns.
func (d *DataColumn) PostProcess(*Container) error { return nil }

// MetadataColumn holds per-row annotations merged into each row's Record
// under {category: {name: value}}.
type MetadataColumn struct {
	name     string
	category string
	values   []string
}

// NewMetadataColumn returns a metadata column. An empty category selects
// GeneralCategory.
func NewMetadataColumn(name, category string, values []string) (*MetadataColumn, error) {
	if name == "" {
		return nil, ErrUnnamedColumn
	}
	if category == "" {
		category = GeneralCategory
	}
	return &MetadataColumn{name: name, category: category, values: slices.Clone(values)}, nil
}

func (m *MetadataColumn) Name() string     { return m.name }
func (m *MetadataColumn) Kind() Kind       { return KindMetadata }
func (m *MetadataColumn) Len() int         { return len(m.values) }
func (m *MetadataColumn) Category() string { return m.category }

// Record returns the wrapped contribution for one row.
func (m *MetadataColumn) Record(row int) Record {
	return NewRecord(m.category, m.name, m.values[row])
}

// Process merges the column into the container's metadata, replacing any
// earlier contribution of the same name.
func (m *MetadataColumn) Process(c *Container) error {
	return c.setMetadata(m)
}

// PostProcess is a no-op for metadata columns.
func (m *MetadataColumn) PostProcess(*Container) error { return nil }

// Signal is one row of a capture column. An absent signal marks the row as
// part of a run without naming it; a present signal either repeats the row's
// current Message (no change) or overrides the run's header text.
type Signal struct {
	Text    string
	Present bool
}

// Keep returns a present signal.
func Keep(text string) Signal { return Signal{Text: text, Present: true} }

// Absent is the continuation signal.
var Absent = Signal{}

// CaptureMode selects how captured runs are shown.
type CaptureMode int

const (
	// Summarize replaces a run with one header row.
	Summarize CaptureMode = iota
	// Hide removes a run from the view without a header.
	Hide
)

// CaptureColumn describes which rows of the live view collapse into groups.
type CaptureColumn struct {
	name     string
	signals  []Signal
	mode     CaptureMode
	template string
}

// NewCaptureColumn returns a summarizing capture column. template may contain
// "{count}"; when it is empty every run must carry an explicit override.
func NewCaptureColumn(name string, signals []Signal, template string) (*CaptureColumn, error) {
	if name == "" {
		return nil, ErrUnnamedColumn
	}
	return &CaptureColumn{name: name, signals: slices.Clone(signals), mode: Summarize, template: template}, nil
}

// NewHideColumn returns a capture column whose runs leave no header behind.
func NewHideColumn(name string, signals []Signal) (*CaptureColumn, error) {
	if name == "" {
		return nil, ErrUnnamedColumn
	}
	return &CaptureColumn{name: name, signals: slices.Clone(signals), mode: Hide}, nil
}

func (cc *CaptureColumn) Name() string      { return cc.name }
func (cc *CaptureColumn) Kind() Kind        { return KindCapture }
func (cc *CaptureColumn) Len() int          { return len(cc.signals) }
func (cc *CaptureColumn) Mode() CaptureMode { return cc.mode }
func (cc *CaptureColumn) Template() string  { return cc.template }

// Signals returns a copy of the per-row signals.
func (cc *CaptureColumn) Signals() []Signal { return slices.Clone(cc.signals) }

// Process is a no-op for capture columns.
func (cc *CaptureColumn) Process(*Container) error { return nil }

// PostProcess runs the collapse scan against the live view.
func (cc *CaptureColumn) PostProcess(c *Container) error {
	return c.capture(cc)
}

// Order sorts columns by kind, keeping the caller's order within a kind.
func Order(cols []Column) []Column {
	out := slices.Clone(cols)
	slices.SortStableFunc(out, func(a, b Column) int {
		return int(a.Kind()) - int(b.Kind())
	})
	return out
}
