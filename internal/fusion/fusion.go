// Package fusion consolidates temporally related availability segments
// into coarser spans according to a caller-chosen merge policy.
package fusion

import (
	"math"
	"time"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// Policy describes how segments within one grouping key are fused.
// The zero value is the pass-through policy: no fusion at all.
type Policy struct {
	Enabled bool
	// Tolerance is the maximum gap between two time-ordered segments for
	// them to still fuse. Zero means pure overlap/adjacency fusion.
	Tolerance time.Duration
	// IgnoreQuality widens groups to identity+samplerate.
	IgnoreQuality bool
	// IgnoreSampleRate widens groups to identity+quality.
	IgnoreSampleRate bool
}

// PolicyFrom derives the fusion policy from validated query options.
// A set mergegaps threshold enables fusion even without a merge name;
// mergegaps=0 behaves exactly like merge=overlap.
func PolicyFrom(opts models.QueryOptions) Policy {
	var p Policy
	switch opts.Merge {
	case models.MergeOverlap:
		p.Enabled = true
	case models.MergeSampleRate:
		p.Enabled = true
		p.IgnoreSampleRate = true
	case models.MergeQuality:
		p.Enabled = true
		p.IgnoreQuality = true
	}
	if opts.MergeGaps != nil {
		p.Enabled = true
		p.Tolerance = secondsToDuration(*opts.MergeGaps)
	}
	return p
}

// secondsToDuration converts a threshold in seconds to a Duration,
// saturating at the maximum representable value: any non-negative
// threshold must stay non-negative after conversion.
func secondsToDuration(s float64) time.Duration {
	d := math.Round(s * float64(time.Second))
	if d >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// groupState tracks the open span of one grouping key while the input is
// being scanned.
type groupState struct {
	span     models.AvailabilitySegment
	longest  time.Duration // extent of the longest contributor so far
	countAcc int64
	fused    bool
	emitted  []models.AvailabilitySegment
}

// Consolidate fuses temporally related segments within the same grouping
// key. The input must already be in compound-key order, which guarantees
// that each group's segments arrive with non-decreasing start times. The
// output keeps groups in the order they first appear and never reorders
// across groups.
//
// With a disabled policy the input is returned untouched: overlapping or
// adjacent segments are never merged unless the caller asked for it.
func Consolidate(segs []models.AvailabilitySegment, p Policy) []models.AvailabilitySegment {
	if !p.Enabled || len(segs) < 2 {
		return segs
	}

	groups := make(map[models.GroupingKey]*groupState)
	var order []models.GroupingKey

	for _, s := range segs {
		key := s.GroupKey(!p.IgnoreQuality, !p.IgnoreSampleRate)
		g, ok := groups[key]
		if !ok {
			groups[key] = open(s)
			order = append(order, key)
			continue
		}
		if gap := s.StartTime.Sub(g.span.EndTime); gap <= p.Tolerance {
			g.fuse(s)
		} else {
			g.close()
			g.reopen(s)
		}
	}

	out := make([]models.AvailabilitySegment, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.close()
		out = append(out, g.emitted...)
	}
	return out
}

func open(s models.AvailabilitySegment) *groupState {
	g := &groupState{}
	g.reopen(s)
	return g
}

// reopen seeds a fresh span from s, keeping spans already emitted for the
// group.
func (g *groupState) reopen(s models.AvailabilitySegment) {
	g.span = s
	g.longest = s.Duration()
	g.countAcc = countOf(s)
	g.fused = false
}

// fuse extends the open span with the next segment. The span's start never
// moves once opened; the end only grows. The longest contributing segment
// decides the span's reported quality, sample rate and status, with ties
// going to the earlier contributor.
func (g *groupState) fuse(s models.AvailabilitySegment) {
	g.fused = true
	if s.EndTime.After(g.span.EndTime) {
		g.span.EndTime = s.EndTime
	}
	if d := s.Duration(); d > g.longest {
		g.longest = d
		g.span.Quality = s.Quality
		g.span.SampleRate = s.SampleRate
		g.span.Status = s.Status
	}
	if s.LastUpdate.After(g.span.LastUpdate) {
		g.span.LastUpdate = s.LastUpdate
	}
	g.countAcc += countOf(s)
}

// close emits the open span. A span with a single contributor passes
// through unchanged, including its original count.
func (g *groupState) close() {
	if g.fused {
		g.span.Count = g.countAcc
	}
	g.emitted = append(g.emitted, g.span)
}

// countOf treats a missing count as one contributing record.
func countOf(s models.AvailabilitySegment) int64 {
	if s.Count > 0 {
		return s.Count
	}
	return 1
}

// Extent collapses every segment of each identity+quality+samplerate group
// into a single row spanning the group's earliest start and latest end,
// regardless of gaps. Groups keep first-appearance order.
func Extent(segs []models.AvailabilitySegment) []models.AvailabilitySegment {
	groups := make(map[models.GroupingKey]int)
	out := make([]models.AvailabilitySegment, 0)

	for _, s := range segs {
		key := s.GroupKey(true, true)
		i, ok := groups[key]
		if !ok {
			groups[key] = len(out)
			row := s
			row.Count = countOf(s)
			out = append(out, row)
			continue
		}
		row := &out[i]
		if s.StartTime.Before(row.StartTime) {
			row.StartTime = s.StartTime
		}
		if s.EndTime.After(row.EndTime) {
			row.EndTime = s.EndTime
		}
		if s.LastUpdate.After(row.LastUpdate) {
			row.LastUpdate = s.LastUpdate
		}
		row.Count += countOf(s)
	}
	return out
}
