// Package table implements the columnar log table and its collapse engine.
//
// # Columns
//
// Processing stages contribute three kinds of columns:
//
//   - DataColumn: visible text, upserted by name
//   - MetadataColumn: per-row annotations, wrapped as {category: {name: value}}
//     and deep-merged into each row's Record
//   - CaptureColumn: per-row Signals describing which rows of the live view
//     fold into a summary header
//
// Within a batch, data columns are applied first, then metadata, then
// captures (see Order).
//
// # Views
//
// A Container keeps two projections of the same rows. The Full view holds
// every ingested row; the Collapsed view is the live table after captures.
// Rows keep their stable index in both, so search results and group keys stay
// valid while the view changes.
//
// # Collapse scan
//
// A capture walks the live view once. A present signal equal to the row's
// Message closes any open run; a present signal that differs opens or extends
// a run and names its header; an absent signal opens or extends a run. When a
// run closes, its rows are snapshotted into a Group, every row except the
// header leaves the live view, and the header's Message becomes the override
// or the template with {count} replaced by the run length, header row
// included. A run with neither is rejected with ErrMissingHeader. Hide
// columns drop runs without a header and still keep the snapshot.
//
// # Styles
//
// ResolveStyle overlays the General category of a row's Record onto
// DefaultStyle. It runs per query; nothing is cached.
package table
