// Package pipeline turns stage output into a queryable table.
//
// A Manager wraps a table.Container. AddColumns folds each batch in kind
// order (Data, Metadata, then Capture) and queues Capture columns;
// Finalize rebuilds the collapsed view from the full table and replays the
// queue, so it can be called repeatedly with the same result.
//
// A Runner drives one run: it erases a scratch Manager, lets every Stage
// read the full table built so far and contribute columns, finalizes, and
// only then swaps the scratch contents into the shared Manager. A failing
// stage therefore leaves the previously displayed table in place. Progress
// and outcome are published to a state.Store; Start refuses a second run
// while one is in flight with ErrBusy.
package pipeline
