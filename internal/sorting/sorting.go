// Package sorting imposes a deterministic total order on availability
// segments before consolidation and serialization.
package sorting

import (
	"sort"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// Sort orders segs in place according to the named ordering and returns
// the same slice. An empty name selects the full compound key. Unknown
// names fall back to the compound key as well; the params package rejects
// them before this point.
func Sort(segs []models.AvailabilitySegment, orderBy string) []models.AvailabilitySegment {
	switch orderBy {
	case models.OrderByLatestUpdate:
		byLastUpdate(segs, false)
	case models.OrderByLatestUpdateDesc:
		byLastUpdate(segs, true)
	case models.OrderByTimespanCount:
		byCount(segs, false)
	case models.OrderByTimespanCountDesc:
		byCount(segs, true)
	default:
		ByCompoundKey(segs)
	}
	return segs
}

// ByCompoundKey sorts by the single compound key (network, station,
// location, channel, start, end, quality, samplerate), ascending. The sort
// is stable so that segments identical in all eight keys keep their input
// order, which makes the result reproducible from the historical three-pass
// stable sort this key replaces.
func ByCompoundKey(segs []models.AvailabilitySegment) {
	sort.SliceStable(segs, func(i, j int) bool {
		return models.CompareCompound(&segs[i], &segs[j]) < 0
	})
}

// byLastUpdate orders by the update timestamp, breaking ties with the
// compound key so that the order stays total and deterministic.
func byLastUpdate(segs []models.AvailabilitySegment, desc bool) {
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := &segs[i], &segs[j]
		if !a.LastUpdate.Equal(b.LastUpdate) {
			if desc {
				return b.LastUpdate.Before(a.LastUpdate)
			}
			return a.LastUpdate.Before(b.LastUpdate)
		}
		return models.CompareCompound(a, b) < 0
	})
}

// byCount orders by the contributing-record count (extent mode), again
// falling back to the compound key on ties.
func byCount(segs []models.AvailabilitySegment, desc bool) {
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := &segs[i], &segs[j]
		if a.Count != b.Count {
			if desc {
				return b.Count < a.Count
			}
			return a.Count < b.Count
		}
		return models.CompareCompound(a, b) < 0
	})
}
