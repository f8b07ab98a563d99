package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/logfold/internal/pipeline"
	"github.com/five82/logfold/internal/table"
)

func writeLog(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// frame builds a full table from data columns given as name, values pairs.
func frame(t *testing.T, cols map[string][]string, order ...string) table.Frame {
	t.Helper()
	values := make([][]string, len(order))
	for i, name := range order {
		values[i] = cols[name]
	}
	f, err := table.NewFrame(order, values)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	return f
}

// runStages pushes stages through a manager the way the runner does and
// returns it finalized.
func runStages(t *testing.T, stages ...pipeline.Stage) *pipeline.Manager {
	t.Helper()
	m := pipeline.NewManager()
	if err := pipeline.NewRunner(m, nil, stages...).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return m
}

func visible(t *testing.T, m *pipeline.Manager) []string {
	t.Helper()
	f, err := m.Data(table.Collapsed)
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	values, _ := f.Column(table.MessageColumn)
	return values
}

func linesStage(lines ...string) pipeline.Stage {
	return pipeline.StageFunc{Label: "lines", Fn: func(context.Context, table.Frame) ([]table.Column, error) {
		col, err := table.NewDataColumn(table.MessageColumn, lines)
		if err != nil {
			return nil, err
		}
		return []table.Column{col}, nil
	}}
}
