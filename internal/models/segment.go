package models

import (
	"strings"
	"time"
)

// AvailabilitySegment represents one contiguous reported interval of data
// for one instrument channel.
type AvailabilitySegment struct {
	ID int64 `json:"-" db:"id"`

	// Stream identification (NSLC)
	Network  string `json:"network" db:"network"`
	Station  string `json:"station" db:"station"`
	Location string `json:"location" db:"location"` // may be empty
	Channel  string `json:"channel" db:"channel"`

	// Record attributes
	Quality    string  `json:"quality" db:"quality"`        // single-letter code, e.g. D, M, Q, R
	SampleRate float64 `json:"samplerate" db:"sample_rate"` // samples/second, may be fractional

	// Temporal bounds, UTC, microsecond resolution
	StartTime time.Time `json:"earliest" db:"start_time"`
	EndTime   time.Time `json:"latest" db:"end_time"`

	// Optional metadata
	LastUpdate time.Time `json:"updated,omitempty" db:"last_update"`
	Status     string    `json:"status,omitempty" db:"status"` // e.g. OPEN, CLOSED
	Count      int64     `json:"count,omitempty" db:"count"`   // contributing records when pre-aggregated upstream
}

// IdentityKey identifies one physical stream. Segments sharing this tuple
// belong to the same channel regardless of quality or sample rate.
type IdentityKey struct {
	Network  string
	Station  string
	Location string
	Channel  string
}

// GroupingKey is the identity key plus whichever of quality/sample rate the
// active merge policy holds fixed. Fields the policy ignores are left at
// their zero value so that map lookups collapse them into one group.
type GroupingKey struct {
	IdentityKey
	Quality    string
	SampleRate float64
}

// Identity returns the segment's identity key.
func (s *AvailabilitySegment) Identity() IdentityKey {
	return IdentityKey{
		Network:  s.Network,
		Station:  s.Station,
		Location: s.Location,
		Channel:  s.Channel,
	}
}

// GroupKey extracts the grouping key for consolidation. withQuality and
// withSampleRate select which attributes participate; the active merge
// policy drives both flags.
func (s *AvailabilitySegment) GroupKey(withQuality, withSampleRate bool) GroupingKey {
	k := GroupingKey{IdentityKey: s.Identity()}
	if withQuality {
		k.Quality = s.Quality
	}
	if withSampleRate {
		k.SampleRate = s.SampleRate
	}
	return k
}

// HasIdentity reports whether the required identity fields are present.
// Location may legitimately be empty.
func (s *AvailabilitySegment) HasIdentity() bool {
	return s.Network != "" && s.Station != "" && s.Channel != ""
}

// CompareCompound orders two segments by the single compound key
// (network, station, location, channel, start_time, end_time, quality,
// sample_rate), ascending. It returns a negative value when a sorts before
// b, zero when all eight fields tie, and a positive value otherwise.
//
// Listing the keys most-significant-first makes one pass equivalent to the
// historical three stable passes (quality/samplerate, then time, then NSLC):
// a stable multi-pass sort is decided by its last pass, refined by earlier
// passes only where the later keys tie.
func CompareCompound(a, b *AvailabilitySegment) int {
	if c := strings.Compare(a.Network, b.Network); c != 0 {
		return c
	}
	if c := strings.Compare(a.Station, b.Station); c != 0 {
		return c
	}
	if c := strings.Compare(a.Location, b.Location); c != 0 {
		return c
	}
	if c := strings.Compare(a.Channel, b.Channel); c != 0 {
		return c
	}
	if c := a.StartTime.Compare(b.StartTime); c != 0 {
		return c
	}
	if c := a.EndTime.Compare(b.EndTime); c != 0 {
		return c
	}
	if c := strings.Compare(a.Quality, b.Quality); c != 0 {
		return c
	}
	switch {
	case a.SampleRate < b.SampleRate:
		return -1
	case a.SampleRate > b.SampleRate:
		return 1
	}
	return 0
}

// Duration returns the segment's stated extent. Malformed segments with
// end before start yield a negative duration; callers treat them as
// zero-or-negative length rather than rejecting them.
func (s *AvailabilitySegment) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}
