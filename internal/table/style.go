package table

// Default style values applied when a row's metadata does not override them.
const (
	DefaultForeground = "#000000"
	DefaultBackground = "#FFFFFF"
	DefaultFontStyle  = "normal"

	// HeaderForeground dims collapsed header rows.
	HeaderForeground = "#808080"
)

// Style is the resolved display style of one row.
type Style struct {
	Foreground string
	Background string
	FontStyle  string
}

// DefaultStyle returns the style of a row without annotations.
func DefaultStyle() Style {
	return Style{
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		FontStyle:  DefaultFontStyle,
	}
}

// ResolveStyle overlays the General category of r onto DefaultStyle. Keys the
// record does not set keep their default.
func ResolveStyle(r Record) Style {
	s := DefaultStyle()
	general := r.Categories[GeneralCategory]
	if v, ok := general[ForegroundKey]; ok {
		s.Foreground = v
	}
	if v, ok := general[BackgroundKey]; ok {
		s.Background = v
	}
	if v, ok := general[FontStyleKey]; ok {
		s.FontStyle = v
	}
	return s
}
