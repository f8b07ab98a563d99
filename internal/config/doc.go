// Package config loads logfold's processing configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/logfold/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// String values are whitespace-trimmed and paths starting with ~ are
// expanded. Boolean and count fields that are absent keep their defaults,
// so `enabled = false` is distinguishable from a missing key.
//
// # TOML Format
//
//	[open]
//	files = ["~/logs/app.log"]
//	tail_lines = 0              # 0 reads whole files
//	source_location = "short"   # none | file | short | full
//
//	[split]
//	pattern = "<Date> <Time> <Level>"
//	timestamp_format = "<Date> <Time>"
//
//	[filter]
//	enabled = true
//	context = "both"            # none | before | after | both
//	context_lines = 5
//	keep_hidden = true
//
//	[[filter.rules]]
//	column = "Level"            # empty means Message
//	pattern = "ERROR|WARN"
//
//	[[color.rules]]
//	column = ""                 # empty means any column
//	pattern = "ERROR"
//	foreground = "#FF5555"
//	background = ""
//
//	[log]
//	level = "info"
//	format = "text"             # text | json
//	file = ""                   # empty: logfold.log beside prefs.toml
//
// Validate reports every problem at once (errors.Join) so a user can fix
// the file in one pass.
package config
