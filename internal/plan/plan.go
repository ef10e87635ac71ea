// Package plan implements the traffic-signal phase evaluator (spec.md §4.1):
// a piecewise time-of-day schedule that answers "is the light green now,
// and if not, how long until green?"
package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a green-phase window [Start, End] in seconds within [0, Cycle);
// both ends count as green.
type Interval struct {
	Start float64
	End   float64
}

// Segment is one time-of-day slice of a signal's schedule.
type Segment struct {
	StartOfDay float64 // seconds since day start this segment begins
	Cycle      float64 // cycle length in seconds
	Offset     float64 // cumulative offset, modulo Cycle
	Greens     []Interval
}

// Plan is an ordered sequence of time-of-day segments (spec.md §3 "Plan").
// The day wraps: the last segment extends until the first segment's start
// plus 86400.
type Plan struct {
	Segments []Segment
}

// ErrBadFormat is returned when a plan string fails to parse (spec.md §7).
type ErrBadFormat struct{ Reason string }

func (e *ErrBadFormat) Error() string { return fmt.Sprintf("bad plan format: %s", e.Reason) }

// ErrNoMatchingSegment is returned by Status when no segment covers `now`.
var ErrNoMatchingSegment = fmt.Errorf("signal plan: no matching segment")

const daySeconds = 86400.0

// Parse accepts a single string containing one or more segment descriptors
// of the form "/HHMM/cycle/offset/pairList/" where pairList is a
// comma-separated list with an even number of integers g1s,g1e,g2s,g2e,...
// (spec.md §4.1).
func Parse(s string) (*Plan, error) {
	fields := strings.Split(strings.Trim(s, "/"), "/")
	if len(fields) == 0 || len(fields)%4 != 0 {
		return nil, &ErrBadFormat{Reason: fmt.Sprintf("expected a multiple of 4 fields, got %d", len(fields))}
	}

	var segments []Segment
	var cumOffset float64
	for i := 0; i+3 < len(fields); i += 4 {
		hhmm := fields[i]
		if len(hhmm) != 4 {
			return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad HHMM %q", hhmm)}
		}
		hh, err := strconv.Atoi(hhmm[:2])
		if err != nil {
			return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad hour in %q: %v", hhmm, err)}
		}
		mm, err := strconv.Atoi(hhmm[2:])
		if err != nil {
			return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad minute in %q: %v", hhmm, err)}
		}
		startOfDay := float64(hh*3600 + mm*60)

		cycle, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil || cycle <= 0 {
			return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad cycle %q", fields[i+1])}
		}

		rawOffset, err := strconv.ParseFloat(fields[i+2], 64)
		if err != nil {
			return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad offset %q", fields[i+2])}
		}
		cumOffset = modFloat(cumOffset+rawOffset, cycle)

		pairStrs := strings.Split(fields[i+3], ",")
		if len(pairStrs) < 2 || len(pairStrs)%2 != 0 {
			return nil, &ErrBadFormat{Reason: fmt.Sprintf("pair list %q has odd count", fields[i+3])}
		}
		var greens []Interval
		for p := 0; p+1 < len(pairStrs); p += 2 {
			gs, err := strconv.ParseFloat(pairStrs[p], 64)
			if err != nil {
				return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad green start %q", pairStrs[p])}
			}
			ge, err := strconv.ParseFloat(pairStrs[p+1], 64)
			if err != nil {
				return nil, &ErrBadFormat{Reason: fmt.Sprintf("bad green end %q", pairStrs[p+1])}
			}
			if ge <= gs {
				return nil, &ErrBadFormat{Reason: fmt.Sprintf("green end %.0f <= start %.0f", ge, gs)}
			}
			greens = append(greens, Interval{Start: gs, End: ge})
		}

		segments = append(segments, Segment{
			StartOfDay: startOfDay,
			Cycle:      cycle,
			Offset:     cumOffset,
			Greens:     greens,
		})
	}

	return &Plan{Segments: segments}, nil
}

func modFloat(v, m float64) float64 {
	r := v
	for r >= m {
		r -= m
	}
	for r < 0 {
		r += m
	}
	return r
}

// segmentBounds returns [start, nextStart) for segment i, with the last
// segment's nextStart set to segment 0's start + 86400.
func (p *Plan) segmentBounds(i int) (start, end float64) {
	start = p.Segments[i].StartOfDay
	if i+1 < len(p.Segments) {
		end = p.Segments[i+1].StartOfDay
	} else {
		end = p.Segments[0].StartOfDay + daySeconds
	}
	return start, end
}

// Status answers: 0 if green now, else seconds-until-next-green
// (spec.md §4.1).
func (p *Plan) Status(now float64) (float64, error) {
	sod := modFloat(now, daySeconds)

	for i := range p.Segments {
		start, end := p.segmentBounds(i)
		inRange := sod >= start && sod < end
		if !inRange && sod+daySeconds >= start && sod+daySeconds < end {
			inRange = true
		}
		if !inRange {
			continue
		}
		seg := p.Segments[i]
		target := modFloat(sod-seg.Offset, seg.Cycle)

		for _, g := range seg.Greens {
			if target >= g.Start && target <= g.End {
				return 0, nil
			}
		}

		best := -1.0
		for _, g := range seg.Greens {
			var dist float64
			if target < g.Start {
				dist = g.Start - target
			} else {
				dist = seg.Cycle - target + g.Start
			}
			if best < 0 || dist < best {
				best = dist
			}
		}
		return best, nil
	}

	return 0, ErrNoMatchingSegment
}
