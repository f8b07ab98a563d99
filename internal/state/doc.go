// Package state provides thread-safe run status shared between the pipeline
// runner and the UI.
//
// # Overview
//
// A run executes on a worker goroutine while the UI keeps rendering. The
// Store is the coordination point: the runner writes, the UI reads.
//
//	Runner goroutine:              UI (bubbletea):
//	┌──────────────────┐           ┌──────────────────┐
//	│ store.Begin()    │           │                  │
//	│ store.SetStage() │──────────→│ store.Snapshot() │
//	│ store.Finish()   │  (mutex)  │ render status    │
//	└──────────────────┘           └──────────────────┘
//
// # Busy flag
//
// Begin is the only place a run is admitted. It checks and sets Busy under
// the write lock, so two concurrent starts cannot both succeed. Finish clears
// it again whether the run succeeded or not.
//
// # Finish semantics
//
//	store.Finish(counts, nil)
//	→ Counts replaced, HasTable = true
//	→ LastError = nil, ConsecutiveFailures = 0
//
//	store.Finish(counts, err)
//	→ Counts unchanged (the previous table is still displayed)
//	→ LastError = err, ConsecutiveFailures++
//
// Snapshot returns copies: Files is cloned and the error is rewrapped so
// callers never share mutable state with the store. The zero Store is ready
// to use.
package state
