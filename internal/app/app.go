package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/logfold/internal/config"
	"github.com/five82/logfold/internal/logging"
	"github.com/five82/logfold/internal/pipeline"
	"github.com/five82/logfold/internal/prefs"
	"github.com/five82/logfold/internal/processor"
	"github.com/five82/logfold/internal/state"
	"github.com/five82/logfold/internal/ui"
)

// ErrNoFiles is returned when neither the command line nor the config names
// a log file.
var ErrNoFiles = errors.New("no log files to open")

// Options configure the logfold application.
type Options struct {
	ConfigPath string
	PrefsPath  string   // empty uses default ~/.config/logfold/prefs.toml
	LogLevel   string   // overrides [log].level when set
	Files      []string // override [open].files when non-empty
	WatchEvery int      // seconds; zero disables reloading on file changes
}

// Run boots the logfold TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(opts.Files) > 0 {
		cfg.Open.Files = opts.Files
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if len(cfg.Open.Files) == 0 {
		return ErrNoFiles
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	logPath := cfg.Log.File
	if logPath == "" {
		logPath = prefs.LogPath(prefsPath)
	}
	logFile, err := logging.OpenFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logging.Setup(logFile, cfg.Log.Level, cfg.Log.Format)

	stages, err := BuildStages(cfg)
	if err != nil {
		return err
	}

	manager := pipeline.NewManager()
	store := &state.Store{}
	runner := pipeline.NewRunner(manager, store, stages...)
	defer runner.Wait()

	slog.Info("starting logfold", "files", len(cfg.Open.Files), "stages", len(stages))

	// First run happens in the background; the UI picks it up on completion.
	if err := runner.Start(ctx, nil); err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	if opts.WatchEvery > 0 {
		StartWatcher(ctx, runner, cfg.Open.Files, time.Duration(opts.WatchEvery)*time.Second)
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Manager:   manager,
		Runner:    runner,
		Store:     store,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		PollTick:  ui.DefaultUIInterval,
	})
}

// BuildStages turns a validated config into the processing chain:
// open, then split, filter and color when configured.
func BuildStages(cfg config.Config) ([]pipeline.Stage, error) {
	location, err := processor.ParseLocation(cfg.Open.SourceLocation)
	if err != nil {
		return nil, err
	}
	stages := []pipeline.Stage{processor.NewOpen(processor.OpenOptions{
		Files:     cfg.Open.Files,
		TailLines: cfg.Open.TailLines,
		Location:  location,
		Workers:   cfg.Open.Workers,
	})}

	if cfg.Split.Pattern != "" {
		split, err := processor.NewSplit(processor.SplitOptions{
			Pattern:         cfg.Split.Pattern,
			TimestampFormat: cfg.Split.TimestampFormat,
		})
		if err != nil {
			return nil, err
		}
		stages = append(stages, split)
	}

	if cfg.Filter.Enabled && len(cfg.Filter.Rules) > 0 {
		direction, err := processor.ParseContext(cfg.Filter.Context)
		if err != nil {
			return nil, err
		}
		rules := make([]processor.Rule, len(cfg.Filter.Rules))
		for i, r := range cfg.Filter.Rules {
			rules[i] = processor.Rule{Column: r.Column, Pattern: r.Pattern}
		}
		filter, err := processor.NewFilter(processor.FilterOptions{
			Rules:        rules,
			Context:      direction,
			ContextLines: cfg.Filter.ContextLines,
			KeepHidden:   cfg.Filter.KeepHidden,
		})
		if err != nil {
			return nil, err
		}
		stages = append(stages, filter)
	}

	if cfg.Color.Enabled && len(cfg.Color.Rules) > 0 {
		rules := make([]processor.ColorRule, len(cfg.Color.Rules))
		for i, r := range cfg.Color.Rules {
			rules[i] = processor.ColorRule{
				Column:     r.Column,
				Pattern:    r.Pattern,
				Foreground: r.Foreground,
				Background: r.Background,
			}
		}
		color, err := processor.NewColor(rules)
		if err != nil {
			return nil, err
		}
		stages = append(stages, color)
	}

	return stages, nil
}
