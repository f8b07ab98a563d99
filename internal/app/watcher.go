package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/five82/logfold/internal/pipeline"
)

const (
	defaultWatchInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// fileStamp identifies one version of a watched file.
type fileStamp struct {
	size    int64
	modTime time.Time
}

// StartWatcher launches a background goroutine that re-runs the pipeline
// whenever one of files changes size or modification time. A failed run is
// not repeated until the files change again; consecutive failures stretch the
// polling interval with exponential backoff. It returns immediately.
func StartWatcher(ctx context.Context, runner *pipeline.Runner, files []string, interval time.Duration) {
	if interval <= 0 {
		interval = defaultWatchInterval
	}
	go func() {
		last := stampFiles(files)
		for {
			wait := calculateBackoff(runner.Store().Snapshot().ConsecutiveFailures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}

			current := stampFiles(files)
			if !changed(last, current) {
				continue
			}
			if err := runner.Run(ctx); err != nil {
				if errors.Is(err, pipeline.ErrBusy) {
					// Another run owns the store; pick the change up next tick.
					continue
				}
				if ctx.Err() == nil {
					slog.Warn("reload after file change failed", "error", err)
				}
			}
			last = current
		}
	}()
}

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	backoff := interval
	for range failures {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// stampFiles records the current version of every readable file. Missing
// files are left out, so their reappearance counts as a change.
func stampFiles(files []string) map[string]fileStamp {
	stamps := make(map[string]fileStamp, len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stamps[path] = fileStamp{size: info.Size(), modTime: info.ModTime()}
	}
	return stamps
}

func changed(before, after map[string]fileStamp) bool {
	if len(before) != len(after) {
		return true
	}
	for path, stamp := range after {
		prev, ok := before[path]
		if !ok || prev.size != stamp.size || !prev.modTime.Equal(stamp.modTime) {
			return true
		}
	}
	return false
}
