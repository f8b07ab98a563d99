package table

import (
	"errors"
	"reflect"
	"testing"
)

func newLines(t *testing.T, lines ...string) *Container {
	t.Helper()
	c := NewContainer()
	apply(t, c, dataCol(t, MessageColumn, lines...))
	return c
}

func TestCapture_FilteredRunsAroundKeptRow(t *testing.T) {
	c := newLines(t, "a", "b", "error occurred", "d", "e")
	apply(t, c, captureCol(t, "<Filtered {count} row(s)>",
		Absent, Absent, Keep("error occurred"), Absent, Absent))

	want := []string{"<Filtered 2 row(s)>", "error occurred", "<Filtered 2 row(s)>"}
	if got := messages(t, c, Collapsed); !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
	if got := c.Groups(); !reflect.DeepEqual(got, []int{0, 3}) {
		t.Fatalf("Groups = %v, want [0 3]", got)
	}
	f, _ := c.Data(Collapsed)
	if got := f.Index(); !reflect.DeepEqual(got, []int{0, 2, 3}) {
		t.Fatalf("Index = %v, want [0 2 3]", got)
	}
}

func TestCapture_CountSubstitution(t *testing.T) {
	c := newLines(t, "a", "b", "c", "kept")
	apply(t, c, captureCol(t, "<Filtered {count} row(s)>", Absent, Absent, Absent, Keep("kept")))

	want := []string{"<Filtered 3 row(s)>", "kept"}
	if got := messages(t, c, Collapsed); !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
}

func TestCapture_CountIncludesEveryCapturedRow(t *testing.T) {
	c := newLines(t, "a", "kept", "x", "y", "z", "kept2")
	apply(t, c, captureCol(t, "<Filtered {count} row(s)>",
		Absent, Keep("kept"), Absent, Absent, Absent, Keep("kept2")))

	want := []string{"<Filtered 1 row(s)>", "kept", "<Filtered 3 row(s)>", "kept2"}
	if got := messages(t, c, Collapsed); !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
}

func TestCapture_OverrideNamesHeader(t *testing.T) {
	c := newLines(t, "a", "b", "c", "d")
	apply(t, c, captureCol(t, "unused", Absent, Keep("custom"), Absent, Keep("d")))

	if got, want := messages(t, c, Collapsed), []string{"custom", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
	if got := c.Groups(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Groups = %v, want [1]", got)
	}

	recs, err := c.Metadata(Collapsed, 1)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	info := recs[0].Capture
	if info == nil || *info != (CaptureInfo{First: 0, Last: 2, Count: 3}) {
		t.Fatalf("Capture = %+v, want {0 2 3}", info)
	}
	styles, _ := c.Style(Collapsed, 1)
	if styles[0].Foreground != HeaderForeground {
		t.Fatalf("header Foreground = %q, want %q", styles[0].Foreground, HeaderForeground)
	}
}

func TestCapture_LastOverrideWins(t *testing.T) {
	c := newLines(t, "a", "b", "c")
	apply(t, c, captureCol(t, "", Keep("first"), Keep("second"), Absent))

	if got, want := messages(t, c, Collapsed), []string{"second"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
	if got := c.Groups(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Groups = %v, want [1]", got)
	}
}

func TestCapture_MissingHeaderIsAtomic(t *testing.T) {
	c := newLines(t, "a", "b", "c", "d")
	col := captureCol(t, "", Keep("over"), Keep("b"), Absent, Keep("d"))

	err := col.PostProcess(c)
	if !errors.Is(err, ErrMissingHeader) {
		t.Fatalf("PostProcess error = %v, want ErrMissingHeader", err)
	}
	if got, want := messages(t, c, Collapsed), []string{"a", "b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want untouched %v", got, want)
	}
	if len(c.Groups()) != 0 {
		t.Fatalf("Groups = %v, want none", c.Groups())
	}
}

func TestCapture_MirrorSignalsChangeNothing(t *testing.T) {
	c := newLines(t, "a", "b", "c")
	for range 2 {
		apply(t, c, captureCol(t, "x", Keep("a"), Keep("b"), Keep("c")))
	}
	if got, want := messages(t, c, Collapsed), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
	if len(c.Groups()) != 0 {
		t.Fatalf("Groups = %v, want none", c.Groups())
	}
}

func TestCapture_HideLeavesNoHeader(t *testing.T) {
	c := newLines(t, "a", "b", "c", "d", "e")
	col, err := NewHideColumn("hide", []Signal{Absent, Keep("b"), Absent, Absent, Keep("e")})
	if err != nil {
		t.Fatalf("NewHideColumn: %v", err)
	}
	apply(t, c, col)

	if got, want := messages(t, c, Collapsed), []string{"b", "e"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
	if got := c.Groups(); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("Groups = %v, want [0 2]", got)
	}
	g, err := c.Group(2)
	if err != nil {
		t.Fatalf("Group(2): %v", err)
	}
	if !g.Hidden || g.Rows.Len() != 2 {
		t.Fatalf("Group(2) hidden=%v rows=%d, want hidden with 2 rows", g.Hidden, g.Rows.Len())
	}
	if got := conserved(c); got != 5 {
		t.Fatalf("conserved = %d, want 5", got)
	}
}

func TestCapture_NestedRunsConserveRows(t *testing.T) {
	c := newLines(t, "a", "b", "c", "d", "e", "f")
	apply(t, c, captureCol(t, "<{count}>",
		Absent, Absent, Keep("c"), Keep("d"), Absent, Keep("f")))
	if got, want := messages(t, c, Collapsed), []string{"<2>", "c", "d", "<1>", "f"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first pass = %v, want %v", got, want)
	}

	apply(t, c, captureCol(t, "outer {count}",
		Absent, Absent, Keep("d"), Keep("<1>"), Keep("f")))
	if got, want := messages(t, c, Collapsed), []string{"outer 2", "d", "<1>", "f"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("second pass = %v, want %v", got, want)
	}
	if got := c.Groups(); !reflect.DeepEqual(got, []int{0, 4}) {
		t.Fatalf("Groups = %v, want [0 4]", got)
	}

	outer, _ := c.Group(0)
	if len(outer.Nested) != 1 || outer.Nested[0].Header != 0 {
		t.Fatalf("outer.Nested = %+v, want the first-pass group", outer.Nested)
	}
	if got := outer.Recoverable(); got != 3 {
		t.Fatalf("outer.Recoverable = %d, want 3", got)
	}
	if got := conserved(c); got != 6 {
		t.Fatalf("conserved = %d, want 6", got)
	}
	if got, want := messages(t, c, Full), []string{"a", "b", "c", "d", "e", "f"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("full view = %v, want %v", got, want)
	}
}

func TestCapture_ExpandReturnsSnapshot(t *testing.T) {
	c := NewContainer()
	apply(t, c,
		dataCol(t, MessageColumn, "a", "b", "c"),
		metaCol(t, FileColumn, "", "x.log", "y.log", "z.log"),
		captureCol(t, "<{count}>", Absent, Absent, Keep("c")),
	)

	rows, err := c.Expand(0)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	values, _ := rows.Column(MessageColumn)
	if !reflect.DeepEqual(values, []string{"a", "b"}) {
		t.Fatalf("expanded = %v, want [a b]", values)
	}
	if v, _ := rows.Record(1).Get(GeneralCategory, FileColumn); v != "y.log" {
		t.Fatalf("expanded File = %q, want y.log", v)
	}
	if c.Len(Collapsed) != 2 {
		t.Fatalf("Expand changed the view: %d rows", c.Len(Collapsed))
	}
	if _, err := c.Expand(2); !errors.Is(err, ErrNoGroup) {
		t.Fatalf("Expand(2) error = %v, want ErrNoGroup", err)
	}
}

func TestCapture_Errors(t *testing.T) {
	empty := NewContainer()
	if err := captureCol(t, "x", Absent).PostProcess(empty); !errors.Is(err, ErrNoData) {
		t.Fatalf("empty container error = %v, want ErrNoData", err)
	}

	noMessage := NewContainer()
	apply(t, noMessage, dataCol(t, "Level", "info"))
	if err := captureCol(t, "x", Absent).PostProcess(noMessage); !errors.Is(err, ErrNoMessageColumn) {
		t.Fatalf("no Message error = %v, want ErrNoMessageColumn", err)
	}

	c := newLines(t, "a", "b")
	if err := captureCol(t, "x", Absent).PostProcess(c); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("short signals error = %v, want ErrLengthMismatch", err)
	}
}

func TestCapture_DataChangeResetsView(t *testing.T) {
	c := newLines(t, "a", "b")
	apply(t, c, captureCol(t, "x", Absent, Keep("b")))
	if c.Len(Collapsed) != 2 || len(c.Groups()) != 1 {
		t.Fatalf("capture did not apply: live=%d groups=%v", c.Len(Collapsed), c.Groups())
	}

	apply(t, c, dataCol(t, "Level", "i", "e"))
	if len(c.Groups()) != 0 {
		t.Fatalf("Groups = %v after data change, want none", c.Groups())
	}
	if got, want := messages(t, c, Collapsed), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("collapsed = %v, want %v", got, want)
	}
}
