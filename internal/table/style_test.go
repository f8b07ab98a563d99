package table

import "testing"

func TestResolveStyle_Defaults(t *testing.T) {
	got := ResolveStyle(Record{})
	want := Style{Foreground: "#000000", Background: "#FFFFFF", FontStyle: "normal"}
	if got != want {
		t.Fatalf("ResolveStyle(empty) = %+v, want %+v", got, want)
	}
}

func TestResolveStyle_OverlaysGeneralOnly(t *testing.T) {
	r := Record{Categories: map[string]Fields{
		GeneralCategory: {BackgroundKey: "#FF0000", "File": "a.log"},
		"Other":         {ForegroundKey: "#00FF00"},
	}}
	got := ResolveStyle(r)
	if got.Background != "#FF0000" {
		t.Fatalf("Background = %q, want #FF0000", got.Background)
	}
	if got.Foreground != DefaultForeground {
		t.Fatalf("Foreground = %q, want default %q", got.Foreground, DefaultForeground)
	}
}

func TestContainerStyle_ReflectsMetadataChanges(t *testing.T) {
	c := NewContainer()
	apply(t, c,
		dataCol(t, MessageColumn, "a", "b"),
		metaCol(t, ForegroundKey, "", "#111111", "#222222"),
	)
	styles, err := c.Style(Collapsed)
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if styles[1].Foreground != "#222222" {
		t.Fatalf("Foreground[1] = %q, want #222222", styles[1].Foreground)
	}

	apply(t, c, metaCol(t, ForegroundKey, "", "#333333", "#444444"))
	styles, err = c.Style(Collapsed, 1)
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if len(styles) != 1 || styles[0].Foreground != "#444444" {
		t.Fatalf("Style(1) = %+v, want Foreground #444444", styles)
	}
}
