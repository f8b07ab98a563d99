// Package app is the composition root for logfold.
//
// Run loads the config and preferences, opens the diagnostic log, builds the
// processing stages and hands a pipeline.Manager, its Runner and the shared
// state.Store to the UI:
//
//	Run()
//	  ├─> config.Load() / Validate()   processing config, CLI overrides applied
//	  ├─> prefs.Load()                 theme, clipboard delimiter, start view
//	  ├─> logging.Setup()              slog to a file beside the preferences
//	  ├─> BuildStages()                open, split, filter, color
//	  ├─> Runner.Start()               first run, in the background
//	  ├─> StartWatcher()               optional reload on file changes
//	  └─> ui.Run()                     blocks until the user quits
//
// Configuration errors are fatal. Failed runs are not: they are logged and
// recorded in the store, and the previous table stays on screen.
package app
