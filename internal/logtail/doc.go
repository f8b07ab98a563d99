// Package logtail reads log files line by line.
//
// Read either returns the whole file or, with a positive limit, only the
// last N lines. The tail mode keeps a ring buffer of maxLines entries so it
// makes a single pass and holds O(maxLines) lines in memory regardless of
// the file size:
//
//	lines, err := logtail.Read("/var/log/app.log", 400)
//
// The scanner accepts lines up to 1MB. Windows line endings are normalized.
// Unlike a tail viewer, a missing file is an error: the open stage cannot
// produce a table from a path that does not exist, and callers can test for
// it with errors.Is(err, os.ErrNotExist).
package logtail
