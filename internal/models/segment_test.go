package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIdentityKey(t *testing.T) {
	a := AvailabilitySegment{Network: "NL", Station: "HGN", Location: "02", Channel: "BHZ", Quality: "D", SampleRate: 40}
	b := AvailabilitySegment{Network: "NL", Station: "HGN", Location: "02", Channel: "BHZ", Quality: "M", SampleRate: 100}

	assert.Equal(t, a.Identity(), b.Identity(), "identity ignores quality and sample rate")

	c := b
	c.Location = ""
	assert.NotEqual(t, a.Identity(), c.Identity())
}

func TestGroupKeyExtraction(t *testing.T) {
	s := AvailabilitySegment{Network: "NL", Station: "HGN", Location: "02", Channel: "BHZ", Quality: "D", SampleRate: 40}

	full := s.GroupKey(true, true)
	assert.Equal(t, "D", full.Quality)
	assert.Equal(t, 40.0, full.SampleRate)

	noQuality := s.GroupKey(false, true)
	assert.Empty(t, noQuality.Quality)
	assert.Equal(t, 40.0, noQuality.SampleRate)

	noRate := s.GroupKey(true, false)
	assert.Equal(t, "D", noRate.Quality)
	assert.Zero(t, noRate.SampleRate)

	// grouping keys are comparable map keys
	m := map[GroupingKey]bool{full: true}
	assert.True(t, m[s.GroupKey(true, true)])
}

func TestHasIdentity(t *testing.T) {
	s := AvailabilitySegment{Network: "NL", Station: "HGN", Channel: "BHZ"}
	assert.True(t, s.HasIdentity(), "empty location is a valid identity")

	for _, strip := range []func(*AvailabilitySegment){
		func(x *AvailabilitySegment) { x.Network = "" },
		func(x *AvailabilitySegment) { x.Station = "" },
		func(x *AvailabilitySegment) { x.Channel = "" },
	} {
		broken := s
		strip(&broken)
		assert.False(t, broken.HasIdentity())
	}
}

func TestCompareCompoundFieldOrder(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ref := AvailabilitySegment{
		Network: "NL", Station: "HGN", Location: "02", Channel: "BHZ",
		Quality: "D", SampleRate: 40,
		StartTime: base, EndTime: base.Add(time.Hour),
	}

	assert.Zero(t, CompareCompound(&ref, &ref))

	cases := []struct {
		name   string
		mutate func(*AvailabilitySegment)
	}{
		{"network", func(s *AvailabilitySegment) { s.Network = "ZZ" }},
		{"station", func(s *AvailabilitySegment) { s.Station = "ZZZZ" }},
		{"location", func(s *AvailabilitySegment) { s.Location = "99" }},
		{"channel", func(s *AvailabilitySegment) { s.Channel = "HHZ" }},
		{"start", func(s *AvailabilitySegment) { s.StartTime = s.StartTime.Add(time.Second) }},
		{"end", func(s *AvailabilitySegment) { s.EndTime = s.EndTime.Add(time.Second) }},
		{"quality", func(s *AvailabilitySegment) { s.Quality = "M" }},
		{"samplerate", func(s *AvailabilitySegment) { s.SampleRate = 100 }},
	}
	for _, tc := range cases {
		bigger := ref
		tc.mutate(&bigger)
		assert.Negative(t, CompareCompound(&ref, &bigger), "%s should sort ref first", tc.name)
		assert.Positive(t, CompareCompound(&bigger, &ref), "%s reversed", tc.name)
	}

	// earlier fields dominate later ones
	byTime := ref
	byTime.StartTime = base.Add(time.Hour)
	byQuality := ref
	byQuality.Quality = "R"
	assert.Negative(t, CompareCompound(&byQuality, &byTime), "start_time outranks quality")
}

func TestDuration(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	s := AvailabilitySegment{StartTime: base, EndTime: base.Add(time.Minute)}
	assert.Equal(t, time.Minute, s.Duration())

	malformed := AvailabilitySegment{StartTime: base.Add(time.Minute), EndTime: base}
	assert.Negative(t, malformed.Duration())
}
