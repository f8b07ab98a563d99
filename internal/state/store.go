package state

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Counts summarizes the table produced by a completed run.
type Counts struct {
	Rows    int // rows in the full view
	Visible int // rows in the collapsed view
	Groups  int
}

// Snapshot represents the latest run status available to the UI.
type Snapshot struct {
	Busy                bool
	RunID               string
	Stage               string // stage currently executing, empty when idle
	Files               []string
	Counts              Counts
	HasTable            bool
	StartedAt           time.Time
	LastCompleted       time.Time
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed runs
}

// IsStale returns true when the displayed table comes from an earlier run
// because the most recent one failed.
func (s Snapshot) IsStale() bool {
	return s.HasTable && s.ConsecutiveFailures > 0
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks a run as in flight. It reports false, leaving the snapshot
// untouched, when another run is already busy.
func (s *Store) Begin(runID string, files []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Busy {
		return false
	}
	now := time.Now()
	s.snapshot.Busy = true
	s.snapshot.RunID = runID
	s.snapshot.Stage = ""
	s.snapshot.Files = slices.Clone(files)
	s.snapshot.StartedAt = now
	s.snapshot.LastUpdated = now
	return true
}

// SetStage records the stage the current run is executing.
func (s *Store) SetStage(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Stage = name
	s.snapshot.LastUpdated = time.Now()
}

// Finish ends the current run. When err is non-nil the previous counts are
// kept but the error is recorded for visibility.
func (s *Store) Finish(counts Counts, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.snapshot.Busy = false
	s.snapshot.Stage = ""
	s.snapshot.LastUpdated = now
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Counts = counts
	s.snapshot.HasTable = true
	s.snapshot.LastError = nil
	s.snapshot.LastCompleted = now
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Files = slices.Clone(s.snapshot.Files)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
