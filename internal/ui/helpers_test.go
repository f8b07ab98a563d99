package ui

import (
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/five82/logfold/internal/table"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   int64 // seconds
		want string
	}{
		{"negative", -5, "now"},
		{"subsecond", 0, "now"},
		{"seconds", 12, "12s"},
		{"minutes", 61, "1m"},
		{"hours", 2*60*60 + 10, "2h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := humanizeDuration(timeSeconds(tc.in))
			if got != tc.want {
				t.Fatalf("humanizeDuration(%d) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=2 = %q, want ab", got)
	}
	got := truncateMiddle("a/b/c/d/e", 7)
	if got == "a/b/c/d/e" {
		t.Fatalf("expected truncation")
	}
	if w := runewidth.StringWidth(got); w > 7 {
		t.Fatalf("got %q (%d cells), want <=7", got, w)
	}
	if got[0] != 'a' || got[len(got)-1] != 'e' {
		t.Fatalf("truncateMiddle = %q, want both ends kept", got)
	}
}

func TestFitCell(t *testing.T) {
	cases := []struct {
		name  string
		value string
		width int
		want  string
	}{
		{"pads", "ab", 4, "ab  "},
		{"exact", "abcd", 4, "abcd"},
		{"truncates", "abcdef", 4, "abc…"},
		{"flattens tabs", "a\tb", 3, "a b"},
		{"wide runes", "日本語", 4, "日… "},
		{"zero width", "abc", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fitCell(tc.value, tc.width)
			if got != tc.want {
				t.Fatalf("fitCell(%q, %d) = %q, want %q", tc.value, tc.width, got, tc.want)
			}
			if tc.width > 0 && runewidth.StringWidth(got) != tc.width {
				t.Fatalf("fitCell(%q, %d) width = %d", tc.value, tc.width, runewidth.StringWidth(got))
			}
		})
	}
}

func TestColumnWidths(t *testing.T) {
	long := make([]byte, MaxColumnWidth+10)
	for i := range long {
		long[i] = 'x'
	}
	frame, err := table.NewFrame(
		[]string{"File", "Message"},
		[][]string{{"a.log", string(long)}, {"short", "a much longer message"}},
	)
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	widths := columnWidths(frame)
	if widths[0] != MaxColumnWidth {
		t.Fatalf("first width = %d, want cap %d", widths[0], MaxColumnWidth)
	}
	if widths[1] != len("a much longer message") {
		t.Fatalf("last width = %d, want %d", widths[1], len("a much longer message"))
	}

	fitted := fitWidths(widths, 60)
	want := 60 - gutterWidth - MaxColumnWidth - 1
	if fitted[1] != want {
		t.Fatalf("fitted last width = %d, want %d", fitted[1], want)
	}
	if widths[1] != len("a much longer message") {
		t.Fatalf("fitWidths modified its input")
	}
}

func timeSeconds(sec int64) time.Duration {
	return time.Duration(sec) * time.Second
}
