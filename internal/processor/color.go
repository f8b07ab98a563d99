package processor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/five82/logfold/internal/table"
)

// ColorRule paints rows whose Column matches Pattern. An empty Column
// matches against every data column; an empty color leaves that side as is.
type ColorRule struct {
	Column     string
	Pattern    string
	Foreground string
	Background string
}

type compiledColor struct {
	ColorRule
	re *regexp.Regexp
}

// Color assigns Foreground and Background metadata by rule. Later rules win.
type Color struct {
	rules []compiledColor
}

// NewColor compiles the rules.
func NewColor(rules []ColorRule) (*Color, error) {
	c := &Color{}
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("color rule %d %q: %w: %v", i+1, r.Pattern, ErrBadPattern, err)
		}
		c.rules = append(c.rules, compiledColor{ColorRule: r, re: re})
	}
	return c, nil
}

func (c *Color) Name() string { return "color" }

func (c *Color) Process(_ context.Context, in table.Frame) ([]table.Column, error) {
	if in.Len() == 0 || !in.HasColumn(table.MessageColumn) {
		return nil, nil
	}

	fg := make([]string, in.Len())
	bg := make([]string, in.Len())
	for row := range fg {
		fg[row] = table.DefaultForeground
		bg[row] = table.DefaultBackground
	}

	for _, r := range c.rules {
		columns := in.Columns()
		if r.Column != "" {
			if !in.HasColumn(r.Column) {
				continue
			}
			columns = []string{r.Column}
		}
		for row := range fg {
			if !c.matches(r, in, row, columns) {
				continue
			}
			if r.Foreground != "" {
				fg[row] = r.Foreground
			}
			if r.Background != "" {
				bg[row] = r.Background
			}
		}
	}

	fgCol, err := table.NewMetadataColumn(table.ForegroundKey, table.GeneralCategory, fg)
	if err != nil {
		return nil, err
	}
	bgCol, err := table.NewMetadataColumn(table.BackgroundKey, table.GeneralCategory, bg)
	if err != nil {
		return nil, err
	}
	return []table.Column{fgCol, bgCol}, nil
}

func (c *Color) matches(r compiledColor, in table.Frame, row int, columns []string) bool {
	for _, name := range columns {
		if r.re.MatchString(in.Value(row, name)) {
			return true
		}
	}
	return false
}
