package processor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/five82/logfold/internal/logging"
	"github.com/five82/logfold/internal/table"
)

// FilteredTemplate is the header shown in place of hidden runs.
const FilteredTemplate = "<Filtered " + table.CountPlaceholder + " row(s)>"

// Context selects which neighbours of a matching row are shown with it.
type Context string

const (
	ContextNone   Context = "none"
	ContextBefore Context = "before"
	ContextAfter  Context = "after"
	ContextBoth   Context = "both"
)

// ParseContext validates a configured context direction. Empty means none.
func ParseContext(s string) (Context, error) {
	switch c := Context(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return ContextNone, nil
	case ContextNone, ContextBefore, ContextAfter, ContextBoth:
		return c, nil
	}
	return "", fmt.Errorf("context %q: %w", s, ErrUnknownMode)
}

// Rule matches Pattern against Column; an empty Column means Message.
type Rule struct {
	Column  string
	Pattern string
}

// FilterOptions configures the filter stage.
type FilterOptions struct {
	Rules        []Rule
	Context      Context
	ContextLines int
	// KeepHidden replaces hidden runs with a "<Filtered N row(s)>" header
	// instead of removing them from view.
	KeepHidden bool
}

type compiledRule struct {
	column string
	re     *regexp.Regexp
}

// Filter shows rows matching any rule and collapses the rest.
type Filter struct {
	rules      []compiledRule
	context    Context
	lines      int
	keepHidden bool
}

// NewFilter compiles the rules. Rules with neither column nor pattern are
// skipped.
func NewFilter(opts FilterOptions) (*Filter, error) {
	f := &Filter{
		context:    opts.Context,
		lines:      max(opts.ContextLines, 0),
		keepHidden: opts.KeepHidden,
	}
	if f.context == "" {
		f.context = ContextNone
	}
	for i, r := range opts.Rules {
		pattern := strings.TrimSpace(r.Pattern)
		if r.Column == "" && pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("filter rule %d %q: %w: %v", i+1, pattern, ErrBadPattern, err)
		}
		column := r.Column
		if column == "" {
			column = table.MessageColumn
		}
		f.rules = append(f.rules, compiledRule{column: column, re: re})
	}
	return f, nil
}

func (f *Filter) Name() string { return "filter" }

// Process emits one capture column: matching rows (and their context)
// repeat their Message, every other row is absent.
func (f *Filter) Process(ctx context.Context, in table.Frame) ([]table.Column, error) {
	if len(f.rules) == 0 || in.Len() == 0 {
		return nil, nil
	}
	messages, ok := in.Column(table.MessageColumn)
	if !ok {
		return nil, nil
	}

	show := make([]bool, in.Len())
	for _, r := range f.rules {
		values, ok := in.Column(r.column)
		if !ok {
			logging.FromContext(ctx).Warn("filter column not found, rule skipped", "column", r.column)
			continue
		}
		for row, v := range values {
			if !show[row] && r.re.MatchString(v) {
				show[row] = true
			}
		}
	}
	show = widen(show, f.context, f.lines)

	signals := make([]table.Signal, len(show))
	for row, ok := range show {
		if ok {
			signals[row] = table.Keep(messages[row])
		}
	}

	var (
		col *table.CaptureColumn
		err error
	)
	if f.keepHidden {
		col, err = table.NewCaptureColumn("Filter", signals, FilteredTemplate)
	} else {
		col, err = table.NewHideColumn("Filter", signals)
	}
	if err != nil {
		return nil, err
	}
	return []table.Column{col}, nil
}

// widen marks up to n rows before and/or after every shown row.
func widen(show []bool, dir Context, n int) []bool {
	if n <= 0 || dir == ContextNone {
		return show
	}
	out := make([]bool, len(show))
	for row, ok := range show {
		if !ok {
			continue
		}
		lo, hi := row, row
		if dir == ContextBefore || dir == ContextBoth {
			lo = max(row-n, 0)
		}
		if dir == ContextAfter || dir == ContextBoth {
			hi = min(row+n, len(show)-1)
		}
		for i := lo; i <= hi; i++ {
			out[i] = true
		}
	}
	return out
}
