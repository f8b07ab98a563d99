package pipeline

import (
	"context"

	"github.com/five82/logfold/internal/table"
)

// Stage contributes columns to a run. in is the full (uncollapsed) table
// built by the stages before it. A nil or empty result contributes nothing.
type Stage interface {
	Name() string
	Process(ctx context.Context, in table.Frame) ([]table.Column, error)
}

// Sourced is implemented by stages that read files, so run status can name
// them.
type Sourced interface {
	Sources() []string
}

// StageFunc adapts a function to the Stage interface.
type StageFunc struct {
	Label string
	Fn    func(ctx context.Context, in table.Frame) ([]table.Column, error)
}

func (s StageFunc) Name() string { return s.Label }

func (s StageFunc) Process(ctx context.Context, in table.Frame) ([]table.Column, error) {
	return s.Fn(ctx, in)
}
