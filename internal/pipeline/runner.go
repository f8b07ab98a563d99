package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/logfold/internal/logging"
	"github.com/five82/logfold/internal/state"
	"github.com/five82/logfold/internal/table"
)

// ErrBusy is returned when a run is requested while another is in flight.
var ErrBusy = errors.New("pipeline: run already in progress")

// Runner executes the stages against a scratch manager and publishes the
// result into the shared one only when every step succeeded.
type Runner struct {
	manager *Manager
	store   *state.Store
	stages  []Stage
	wg      sync.WaitGroup
}

// NewRunner returns a runner feeding m and reporting to store.
func NewRunner(m *Manager, store *state.Store, stages ...Stage) *Runner {
	if store == nil {
		store = &state.Store{}
	}
	return &Runner{manager: m, store: store, stages: stages}
}

// Store returns the status store the runner reports to.
func (r *Runner) Store() *state.Store { return r.store }

// Run performs one run synchronously.
func (r *Runner) Run(ctx context.Context) error {
	runID, err := r.begin()
	if err != nil {
		return err
	}
	return r.execute(ctx, runID)
}

// Start performs one run on a worker goroutine and calls done, if non-nil,
// with its result. It returns ErrBusy without starting when a run is already
// in flight.
func (r *Runner) Start(ctx context.Context, done func(error)) error {
	runID, err := r.begin()
	if err != nil {
		return err
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		err := r.execute(ctx, runID)
		if done != nil {
			done(err)
		}
	}()
	return nil
}

// Wait blocks until runs started with Start have returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) begin() (string, error) {
	var files []string
	for _, s := range r.stages {
		if src, ok := s.(Sourced); ok {
			files = append(files, src.Sources()...)
		}
	}
	runID := uuid.NewString()
	if !r.store.Begin(runID, files) {
		return "", ErrBusy
	}
	return runID, nil
}

func (r *Runner) execute(ctx context.Context, runID string) error {
	ctx = logging.WithRun(ctx, runID)
	logger := logging.FromContext(ctx)
	started := time.Now()
	logger.Info("run started", "stages", len(r.stages))

	scratch := NewManager()
	err := r.runStages(ctx, scratch)
	if err != nil {
		logger.Error("run failed", "error", err, "elapsed", time.Since(started))
		r.store.Finish(state.Counts{}, err)
		return err
	}

	counts := state.Counts{
		Rows:    scratch.Len(table.Full),
		Visible: scratch.Len(table.Collapsed),
		Groups:  len(scratch.Groups()),
	}
	r.manager.Swap(scratch)
	r.store.Finish(counts, nil)
	logger.Info("run completed",
		"rows", counts.Rows,
		"visible", counts.Visible,
		"groups", counts.Groups,
		"elapsed", time.Since(started),
	)
	return nil
}

func (r *Runner) runStages(ctx context.Context, scratch *Manager) error {
	scratch.Erase()
	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run canceled before %s: %w", stage.Name(), err)
		}
		r.store.SetStage(stage.Name())
		logger := logging.WithFields(ctx, "stage", stage.Name())
		started := time.Now()

		in, err := scratch.Data(table.Full)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
		cols, err := stage.Process(ctx, in)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
		if err := scratch.AddColumns(cols...); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
		logger.Debug("stage finished",
			"columns", len(cols),
			"rows", scratch.Len(table.Full),
			"elapsed", time.Since(started),
		)
	}
	r.store.SetStage("finalize")
	return scratch.Finalize()
}
