package table

import "errors"

// Errors returned by the table package. Callers match them with errors.Is;
// the returned errors carry column names and counts as context.
var (
	// ErrUnnamedColumn is returned when a column is built without a name.
	ErrUnnamedColumn = errors.New("column has no name")

	// ErrLengthMismatch is returned when a column's length differs from the
	// table's current row count.
	ErrLengthMismatch = errors.New("column length does not match row count")

	// ErrNoData is returned when metadata or captures arrive before any data
	// column has defined the row set.
	ErrNoData = errors.New("table has no data columns")

	// ErrNoMessageColumn is returned when a capture needs the Message column
	// and the table has none.
	ErrNoMessageColumn = errors.New("table has no Message column")

	// ErrMissingHeader is returned when a captured run has neither an explicit
	// override nor a replacement template. Rows are never hidden silently.
	ErrMissingHeader = errors.New("captured rows have no header text")

	// ErrRowOutOfRange is returned when a stable index is not part of the
	// requested view.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrNoGroup is returned when a row is not the header of a capture group.
	ErrNoGroup = errors.New("row is not a capture group header")
)
