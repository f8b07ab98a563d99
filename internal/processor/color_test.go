package processor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/five82/logfold/internal/table"
)

func TestColor_RulesAndDefaults(t *testing.T) {
	c, err := NewColor([]ColorRule{
		{Column: "", Pattern: "ERROR", Foreground: "#FF0000", Background: "#220000"},
		{Column: "Level", Pattern: "WARN", Foreground: "#FFAA00"},
		{Column: table.MessageColumn, Pattern: "disk", Background: "#0000FF"},
		{Column: "Missing", Pattern: ".", Foreground: "#123456"},
	})
	if err != nil {
		t.Fatalf("NewColor: %v", err)
	}
	levels, err := NewSplit(SplitOptions{Pattern: "<Level>"})
	if err != nil {
		t.Fatalf("NewSplit: %v", err)
	}

	m := runStages(t,
		linesStage("ERROR boom", "WARN disk slow", "all good"),
		levels,
		c,
	)

	styles, err := m.Style(table.Full)
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	want := []table.Style{
		{Foreground: "#FF0000", Background: "#220000", FontStyle: table.DefaultFontStyle},
		{Foreground: "#FFAA00", Background: "#0000FF", FontStyle: table.DefaultFontStyle},
		table.DefaultStyle(),
	}
	if !reflect.DeepEqual(styles, want) {
		t.Fatalf("styles = %+v, want %+v", styles, want)
	}
}

func TestColor_LaterRulesWin(t *testing.T) {
	c, err := NewColor([]ColorRule{
		{Pattern: "a", Foreground: "#111111"},
		{Pattern: "a", Foreground: "#222222"},
	})
	if err != nil {
		t.Fatalf("NewColor: %v", err)
	}
	in := frame(t, map[string][]string{table.MessageColumn: {"a"}}, table.MessageColumn)
	cols, err := c.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(cols) != 2 {
		t.Fatalf("columns = %d, want Foreground and Background", len(cols))
	}
	fg := cols[0].(*table.MetadataColumn)
	if v, _ := fg.Record(0).Get(table.GeneralCategory, table.ForegroundKey); v != "#222222" {
		t.Fatalf("Foreground = %q, want #222222", v)
	}
}

func TestColor_NoContribution(t *testing.T) {
	c, _ := NewColor(nil)
	if cols, err := c.Process(context.Background(), table.Frame{}); err != nil || cols != nil {
		t.Fatalf("Process(empty) = %v, %v, want nil", cols, err)
	}
	if _, err := NewColor([]ColorRule{{Pattern: "["}}); !errors.Is(err, ErrBadPattern) {
		t.Fatalf("NewColor error = %v, want ErrBadPattern", err)
	}
}
