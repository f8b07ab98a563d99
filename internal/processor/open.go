package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/five82/logfold/internal/logging"
	"github.com/five82/logfold/internal/logtail"
	"github.com/five82/logfold/internal/table"
)

// Location selects how the source file of each line is shown as a column.
type Location string

const (
	LocationNone  Location = "none"
	LocationFile  Location = "file"  // base name
	LocationShort Location = "short" // path relative to the files' common directory
	LocationFull  Location = "full"
)

// ParseLocation validates a configured location mode. Empty means none.
func ParseLocation(s string) (Location, error) {
	switch l := Location(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LocationNone, nil
	case LocationNone, LocationFile, LocationShort, LocationFull:
		return l, nil
	}
	return "", fmt.Errorf("source location %q: %w", s, ErrUnknownMode)
}

// OpenOptions configures the open stage.
type OpenOptions struct {
	Files     []string
	TailLines int // keep only the last N lines of each file; 0 reads everything
	Location  Location
	// Workers bounds concurrent file reads; 0 means one per file.
	Workers int
}

// Open reads log files into the Message column.
type Open struct {
	opts OpenOptions
}

// NewOpen returns an open stage.
func NewOpen(opts OpenOptions) *Open {
	opts.Files = slices.Clone(opts.Files)
	if opts.Location == "" {
		opts.Location = LocationNone
	}
	return &Open{opts: opts}
}

func (o *Open) Name() string { return "open" }

// Sources returns the configured files.
func (o *Open) Sources() []string { return slices.Clone(o.opts.Files) }

// Process ignores its input: it starts the table. Files are read
// concurrently and joined in configured order.
func (o *Open) Process(ctx context.Context, _ table.Frame) ([]table.Column, error) {
	if len(o.opts.Files) == 0 {
		return nil, nil
	}

	contents := make([][]string, len(o.opts.Files))
	g, gctx := errgroup.WithContext(ctx)
	if o.opts.Workers > 0 {
		g.SetLimit(o.opts.Workers)
	}
	for i, path := range o.opts.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := logtail.Read(path, o.opts.TailLines)
			if err != nil {
				return err
			}
			contents[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	labels := o.labels()
	var messages, files, shown []string
	for i, lines := range contents {
		messages = append(messages, lines...)
		for range lines {
			files = append(files, o.opts.Files[i])
			shown = append(shown, labels[i])
		}
	}
	logging.FromContext(ctx).Debug("files read", "files", len(o.opts.Files), "lines", len(messages))

	msg, err := table.NewDataColumn(table.MessageColumn, messages)
	if err != nil {
		return nil, err
	}
	src, err := table.NewMetadataColumn(table.FileColumn, table.GeneralCategory, files)
	if err != nil {
		return nil, err
	}
	cols := []table.Column{msg, src}
	if o.opts.Location != LocationNone {
		loc, err := table.NewDataColumn(table.FileColumn, shown)
		if err != nil {
			return nil, err
		}
		// File goes first so Message stays the last column.
		cols = []table.Column{loc, msg, src}
	}
	return cols, nil
}

// labels returns the displayed source name of each configured file.
func (o *Open) labels() []string {
	out := make([]string, len(o.opts.Files))
	mode := o.opts.Location
	if mode == LocationShort && len(o.opts.Files) < 2 {
		mode = LocationFile
	}
	var common string
	if mode == LocationShort {
		common = commonDir(o.opts.Files)
	}
	for i, path := range o.opts.Files {
		switch mode {
		case LocationFile:
			out[i] = filepath.Base(path)
		case LocationShort:
			rel, err := filepath.Rel(common, filepath.Clean(path))
			if err != nil {
				rel = path
			}
			out[i] = rel
		case LocationFull:
			out[i] = path
		}
	}
	return out
}

// commonDir returns the deepest directory containing every path.
func commonDir(paths []string) string {
	dir := filepath.Dir(filepath.Clean(paths[0]))
	for _, p := range paths[1:] {
		p = filepath.Clean(p)
		for !within(dir, p) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return dir
			}
			dir = parent
		}
	}
	return dir
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
