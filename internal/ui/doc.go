// Package ui provides the terminal table viewer for logfold.
//
// The UI is a Bubble Tea program that renders the table held by a
// pipeline.Manager. It polls the state.Store on a tick and reloads the table
// whenever a run completes, so runs started from the command line and runs
// started with the reload key are picked up the same way.
//
// # Views
//
// Two views of the same table are available and toggled with "v":
//
//   - Collapsed: capture groups are folded into header rows (marked "▸")
//   - Full: every ingested row in file order
//
// Enter on a header opens the rows folded under it; enter on any other row
// opens its fields and metadata.
//
// # Styling
//
// Row colors come from the General metadata category resolved by the table
// package. Unstyled rows use the theme's own text and surface colors. Themes
// and the active view are persisted to the preferences file.
package ui
