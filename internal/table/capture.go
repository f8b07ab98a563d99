package table

import (
	"fmt"
	"strconv"
	"strings"
)

// CountPlaceholder is substituted with the run length in capture templates,
// the header row included.
const CountPlaceholder = "{count}"

type scanState int

const (
	idle scanState = iota
	capturing
)

// run is the collapse scan's state machine. Positions refer to the live view.
type run struct {
	state    scanState
	begin    int
	end      int
	header   int // -1 until an override names the header row
	override string
}

// extend adds pos to the current run, opening one when idle.
func (r *run) extend(pos int) {
	if r.state == idle {
		*r = run{state: capturing, begin: pos, header: -1}
	}
	r.end = pos
}

// name extends the run and records pos as its header. The last override of
// a run wins.
func (r *run) name(pos int, text string) {
	r.extend(pos)
	r.header = pos
	r.override = text
}

// close returns the finished span and resets to idle.
func (r *run) close() span {
	s := span{begin: r.begin, end: r.end, header: r.header, text: r.override}
	*r = run{}
	return s
}

type span struct {
	begin, end int
	header     int
	text       string
}

func (s span) size() int { return s.end - s.begin + 1 }

// capture collapses the runs described by cc in the live view. Runs are
// planned first so a configuration error leaves the view untouched.
func (c *Container) capture(cc *CaptureColumn) error {
	if len(c.base.columns) == 0 {
		return fmt.Errorf("capture %q: %w", cc.name, ErrNoData)
	}
	messages, ok := c.live.cells[MessageColumn]
	if !ok {
		return fmt.Errorf("capture %q: %w", cc.name, ErrNoMessageColumn)
	}
	if cc.Len() != c.live.Len() {
		return fmt.Errorf("capture %q has %d rows, view has %d: %w", cc.name, cc.Len(), c.live.Len(), ErrLengthMismatch)
	}

	spans, err := scan(messages, cc)
	if err != nil {
		return err
	}
	if len(spans) == 0 {
		return nil
	}

	keep := make([]bool, c.live.Len())
	for i := range keep {
		keep[i] = true
	}
	groups := make([]*Group, 0, len(spans))
	for _, s := range spans {
		groups = append(groups, c.fold(s, cc.mode, keep))
	}
	c.live.keep(keep)
	for _, g := range groups {
		c.groups[g.Header] = g
	}
	return nil
}

// scan walks the signals and returns every captured span with its final
// header text resolved.
func scan(messages []string, cc *CaptureColumn) ([]span, error) {
	var (
		r     run
		spans []span
	)
	finish := func() error {
		s := r.close()
		if cc.mode == Hide {
			spans = append(spans, s)
			return nil
		}
		if s.header < 0 {
			if cc.template == "" {
				return fmt.Errorf("capture %q rows %d-%d: %w", cc.name, s.begin, s.end, ErrMissingHeader)
			}
			s.header = s.begin
			s.text = strings.ReplaceAll(cc.template, CountPlaceholder, strconv.Itoa(s.size()))
		}
		spans = append(spans, s)
		return nil
	}

	for pos, sig := range cc.signals {
		switch {
		case sig.Present && sig.Text == messages[pos]:
			if r.state == capturing {
				if err := finish(); err != nil {
					return nil, err
				}
			}
		case sig.Present:
			r.name(pos, sig.Text)
		default:
			r.extend(pos)
		}
	}
	if r.state == capturing {
		if err := finish(); err != nil {
			return nil, err
		}
	}
	return spans, nil
}

// fold snapshots a span, marks its absorbed rows in keep and rewrites the
// header row in place. The snapshot is taken before any row of the span is
// modified.
func (c *Container) fold(s span, mode CaptureMode, keep []bool) *Group {
	positions := make([]int, 0, s.size())
	for pos := s.begin; pos <= s.end; pos++ {
		positions = append(positions, pos)
	}
	g := &Group{Rows: c.live.pick(positions), Hidden: mode == Hide}
	for _, pos := range positions {
		if inner, ok := c.groups[c.live.index[pos]]; ok {
			g.Nested = append(g.Nested, inner)
			delete(c.groups, inner.Header)
		}
	}

	if mode == Hide {
		g.Header = c.live.index[s.begin]
		for _, pos := range positions {
			keep[pos] = false
		}
		return g
	}

	g.Header = c.live.index[s.header]
	for _, pos := range positions {
		if pos != s.header {
			keep[pos] = false
		}
	}
	c.live.cells[MessageColumn][s.header] = s.text
	c.live.meta[s.header] = c.live.meta[s.header].Merge(Record{
		Categories: map[string]Fields{GeneralCategory: {
			ForegroundKey: HeaderForeground,
			BackgroundKey: DefaultBackground,
		}},
		Capture: &CaptureInfo{
			First: c.live.index[s.begin],
			Last:  c.live.index[s.end],
			Count: s.size(),
		},
	})
	return g
}
