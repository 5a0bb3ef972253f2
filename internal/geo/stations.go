// Package geo resolves station coordinates for geocsv enrichment and
// applies the optional radius filter to retrieved segments.
package geo

import (
	"github.com/golang/geo/s2"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used for arc-to-distance
// conversions.
const EarthRadiusMeters = 6371000.0

type stationKey struct {
	network string
	station string
}

// Index is an in-memory lookup of station coordinates keyed by
// network+station. Built once per request from the station table.
type Index struct {
	stations map[stationKey]models.Station
}

// NewIndex builds an index over the given station rows.
func NewIndex(stations []models.Station) *Index {
	ix := &Index{stations: make(map[stationKey]models.Station, len(stations))}
	for _, st := range stations {
		ix.stations[stationKey{st.Network, st.Station}] = st
	}
	return ix
}

// Locate returns the coordinates for a segment's stream, if known.
func (ix *Index) Locate(id models.IdentityKey) (models.Station, bool) {
	st, ok := ix.stations[stationKey{id.Network, id.Station}]
	return st, ok
}

// DistanceDegrees returns the great-circle distance between two points in
// degrees of arc.
func DistanceDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Degrees()
}

// DistanceMeters returns the great-circle distance between two points in
// meters.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// FilterWithinRadius keeps the segments whose station lies within maxDeg
// degrees of arc from the given point. Segments for stations missing from
// the index are dropped: without coordinates the constraint cannot be
// satisfied.
func (ix *Index) FilterWithinRadius(segs []models.AvailabilitySegment, lat, lon, maxDeg float64) []models.AvailabilitySegment {
	out := segs[:0]
	for _, s := range segs {
		st, ok := ix.Locate(s.Identity())
		if !ok {
			continue
		}
		if DistanceDegrees(lat, lon, st.Latitude, st.Longitude) <= maxDeg {
			out = append(out, s)
		}
	}
	return out
}
