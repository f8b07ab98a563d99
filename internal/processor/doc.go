// Package processor holds the pipeline stages that turn log files into
// table columns.
//
// Stages run in the order the app wires them:
//
//	Open   → Message (data), File (metadata), optional File (data)
//	Split  → one data column per pattern group, Timestamp, Message last
//	Filter → one capture column ("<Filtered N row(s)>" or hide)
//	Color  → Foreground / Background metadata
//
// Each stage reads the full table produced so far and never mutates it;
// the pipeline manager folds the returned columns in.
package processor
