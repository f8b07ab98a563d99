package table

import "maps"

// Reserved column, category and field names shared by stages and the UI.
const (
	MessageColumn   = "Message"
	FileColumn      = "File"
	TimestampColumn = "Timestamp"

	GeneralCategory = "General"

	ForegroundKey = "Foreground"
	BackgroundKey = "Background"
	FontStyleKey  = "FontStyle"
)

// Fields maps metadata names to values within one category.
type Fields map[string]string

// CaptureInfo annotates the header row of a collapsed run.
type CaptureInfo struct {
	First int // stable index of the first captured row
	Last  int // stable index of the last captured row
	Count int // rows folded into the header, header included
}

// Record is the merged metadata of a single row. Annotations are namespaced
// by category; Capture is set only on collapsed headers.
type Record struct {
	Categories map[string]Fields
	Capture    *CaptureInfo
}

// NewRecord returns a record holding a single category/name/value entry.
func NewRecord(category, name, value string) Record {
	return Record{Categories: map[string]Fields{category: {name: value}}}
}

// Get looks up a value by category and name.
func (r Record) Get(category, name string) (string, bool) {
	fields, ok := r.Categories[category]
	if !ok {
		return "", false
	}
	v, ok := fields[name]
	return v, ok
}

// Category returns a copy of one category's fields, or nil.
func (r Record) Category(category string) Fields {
	fields, ok := r.Categories[category]
	if !ok {
		return nil
	}
	return maps.Clone(fields)
}

// IsZero reports whether the record carries no annotations.
func (r Record) IsZero() bool {
	return len(r.Categories) == 0 && r.Capture == nil
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	out := Record{}
	if len(r.Categories) > 0 {
		out.Categories = make(map[string]Fields, len(r.Categories))
		for cat, fields := range r.Categories {
			out.Categories[cat] = maps.Clone(fields)
		}
	}
	if r.Capture != nil {
		info := *r.Capture
		out.Capture = &info
	}
	return out
}

// Merge deep-merges other on top of r and returns the result. Keys present in
// both records take other's value; everything else is kept from either side.
// Neither input is modified.
func (r Record) Merge(other Record) Record {
	out := r.Clone()
	for cat, fields := range other.Categories {
		if out.Categories == nil {
			out.Categories = make(map[string]Fields, len(other.Categories))
		}
		dst, ok := out.Categories[cat]
		if !ok {
			dst = make(Fields, len(fields))
			out.Categories[cat] = dst
		}
		maps.Copy(dst, fields)
	}
	if other.Capture != nil {
		info := *other.Capture
		out.Capture = &info
	}
	return out
}
