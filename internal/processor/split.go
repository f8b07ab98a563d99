package processor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/five82/logfold/internal/table"
)

var (
	tagRE   = regexp.MustCompile(`<(.+?)>`)
	groupRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// SplitOptions configures the split stage.
type SplitOptions struct {
	// Pattern describes the line layout, e.g. "<Date> <Time> <Level>:<Message>".
	// Each <Name> matches one word; a space matches any run of whitespace.
	// A <Message> tag matches the rest of the line.
	Pattern string
	// TimestampFormat assembles a Timestamp column from groups, e.g.
	// "<Date> <Time>". The groups it names are folded into Timestamp.
	TimestampFormat string
}

// Split breaks the Message column into one column per pattern group.
type Split struct {
	re       *regexp.Regexp
	groups   []string
	tsFormat string
	tsTags   []string
}

// NewSplit compiles the pattern. An empty pattern yields a stage that
// contributes nothing.
func NewSplit(opts SplitOptions) (*Split, error) {
	pattern := strings.TrimSpace(opts.Pattern)
	s := &Split{tsFormat: strings.TrimSpace(opts.TimestampFormat)}
	if pattern == "" {
		return s, nil
	}

	var (
		expr strings.Builder
		seen = make(map[string]bool)
		last int
	)
	expr.WriteString("^")
	for _, loc := range tagRE.FindAllStringSubmatchIndex(pattern, -1) {
		expr.WriteString(literal(pattern[last:loc[0]]))
		name := pattern[loc[2]:loc[3]]
		if !groupRE.MatchString(name) {
			return nil, fmt.Errorf("split group %q: %w", name, ErrBadPattern)
		}
		if seen[name] {
			return nil, fmt.Errorf("split group %q used twice: %w", name, ErrBadPattern)
		}
		seen[name] = true
		if name == table.MessageColumn {
			fmt.Fprintf(&expr, `(?P<%s>.*)`, name)
		} else {
			fmt.Fprintf(&expr, `(?P<%s>\w+)`, name)
			s.groups = append(s.groups, name)
		}
		last = loc[1]
	}
	expr.WriteString(literal(pattern[last:]))

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("split pattern %q: %w: %v", pattern, ErrBadPattern, err)
	}
	s.re = re

	if s.tsFormat != "" {
		for _, m := range tagRE.FindAllStringSubmatch(s.tsFormat, -1) {
			s.tsTags = append(s.tsTags, m[1])
		}
		for _, tag := range s.tsTags {
			if !seen[tag] || tag == table.MessageColumn {
				// Timestamp needs every tag as a word group.
				s.tsTags = nil
				break
			}
		}
	}
	return s, nil
}

// literal quotes pattern text and lets spaces match any whitespace.
func literal(text string) string {
	parts := strings.Split(text, " ")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, `\s+`)
}

func (s *Split) Name() string { return "split" }

// Process emits the Timestamp column (when configured), the remaining
// group columns and finally the rewritten Message. Lines that do not match
// keep their text and get empty groups.
func (s *Split) Process(ctx context.Context, in table.Frame) ([]table.Column, error) {
	if s.re == nil || in.Len() == 0 {
		return nil, nil
	}
	messages, ok := in.Column(table.MessageColumn)
	if !ok {
		return nil, fmt.Errorf("split: %w", table.ErrNoMessageColumn)
	}

	names := s.re.SubexpNames()
	values := make(map[string][]string, len(s.groups))
	for _, g := range s.groups {
		values[g] = make([]string, len(messages))
	}
	rest := make([]string, len(messages))
	for row, line := range messages {
		m := s.re.FindStringSubmatchIndex(line)
		if m == nil {
			rest[row] = line
			continue
		}
		rest[row] = strings.TrimLeft(line[m[1]:], " \t")
		for i, name := range names {
			if name == "" || m[2*i] < 0 {
				continue
			}
			text := line[m[2*i]:m[2*i+1]]
			if name == table.MessageColumn {
				rest[row] = text
				continue
			}
			values[name][row] = text
		}
	}

	var cols []table.Column
	folded := make(map[string]bool, len(s.tsTags))
	if len(s.tsTags) > 0 {
		stamps := make([]string, len(messages))
		for row := range stamps {
			stamps[row] = s.timestamp(values, row)
		}
		col, err := table.NewDataColumn(table.TimestampColumn, stamps)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		for _, tag := range s.tsTags {
			folded[tag] = true
		}
	}
	for _, g := range s.groups {
		if folded[g] {
			continue
		}
		col, err := table.NewDataColumn(g, values[g])
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	msg, err := table.NewDataColumn(table.MessageColumn, rest)
	if err != nil {
		return nil, err
	}
	return append(cols, msg), nil
}

// timestamp renders the format for one row, or "" when any part is missing.
func (s *Split) timestamp(values map[string][]string, row int) string {
	missing := false
	out := tagRE.ReplaceAllStringFunc(s.tsFormat, func(tag string) string {
		v := values[tag[1:len(tag)-1]][row]
		if v == "" {
			missing = true
		}
		return v
	})
	if missing {
		return ""
	}
	return out
}
