package sorting

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

func randomSegments(rng *rand.Rand, n int) []models.AvailabilitySegment {
	networks := []string{"NL", "NA", "GR", "FR", "IT"}
	stations := []string{"HGN", "SABA", "DBN", "G014", "TEST"}
	locations := []string{"", "00", "10"}
	channels := []string{"BHZ", "BHN", "BHE", "HHZ"}
	qualities := []string{"D", "M", "Q", "R"}
	rates := []float64{20, 40, 100}
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	segs := make([]models.AvailabilitySegment, n)
	for i := range segs {
		start := base.AddDate(0, 0, rng.Intn(365))
		segs[i] = models.AvailabilitySegment{
			Network:    networks[rng.Intn(len(networks))],
			Station:    stations[rng.Intn(len(stations))],
			Location:   locations[rng.Intn(len(locations))],
			Channel:    channels[rng.Intn(len(channels))],
			Quality:    qualities[rng.Intn(len(qualities))],
			SampleRate: rates[rng.Intn(len(rates))],
			StartTime:  start,
			EndTime:    start.Add(time.Duration(1+rng.Intn(48)) * time.Hour),
			LastUpdate: base.Add(time.Duration(rng.Intn(100000)) * time.Second),
			Count:      int64(rng.Intn(50)),
		}
	}
	return segs
}

// threePassSort is the historical ordering: three sequential stable sorts,
// (quality, samplerate) first, then (start, end), then NSLC. The final
// order is decided by the last pass, refined by the earlier ones where its
// keys tie.
func threePassSort(segs []models.AvailabilitySegment) {
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := &segs[i], &segs[j]
		if a.Quality != b.Quality {
			return a.Quality < b.Quality
		}
		return a.SampleRate < b.SampleRate
	})
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := &segs[i], &segs[j]
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		return a.EndTime.Before(b.EndTime)
	})
	sort.SliceStable(segs, func(i, j int) bool {
		a, b := &segs[i], &segs[j]
		if a.Network != b.Network {
			return a.Network < b.Network
		}
		if a.Station != b.Station {
			return a.Station < b.Station
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Channel < b.Channel
	})
}

// The single compound key must reproduce the three-pass order exactly, for
// any record set.
func TestCompoundKeyEquivalentToThreePasses(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{0, 1, 2, 10, 100, 2000} {
		segs := randomSegments(rng, n)

		compound := append([]models.AvailabilitySegment(nil), segs...)
		ByCompoundKey(compound)

		threePass := append([]models.AvailabilitySegment(nil), segs...)
		threePassSort(threePass)

		require.Equal(t, threePass, compound, "orders diverge for n=%d", n)
	}
}

func TestSortIsPermutationOfInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	segs := randomSegments(rng, 500)

	counts := make(map[models.AvailabilitySegment]int)
	for _, s := range segs {
		counts[s]++
	}

	ByCompoundKey(segs)
	for _, s := range segs {
		counts[s]--
	}
	for _, c := range counts {
		assert.Zero(t, c)
	}
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Sort(nil, ""))
	assert.Empty(t, Sort([]models.AvailabilitySegment{}, models.OrderByLatestUpdate))
}

func TestTieBreakFieldOrder(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(start time.Time, end time.Time, quality string, rate float64) models.AvailabilitySegment {
		return models.AvailabilitySegment{
			Network: "NL", Station: "HGN", Location: "02", Channel: "BHZ",
			Quality: quality, SampleRate: rate,
			StartTime: start, EndTime: end,
		}
	}

	segs := []models.AvailabilitySegment{
		mk(base.Add(time.Hour), base.Add(2*time.Hour), "D", 40),
		mk(base, base.Add(2*time.Hour), "R", 40),
		mk(base, base.Add(time.Hour), "M", 40),
		mk(base, base.Add(time.Hour), "D", 100),
		mk(base, base.Add(time.Hour), "D", 40),
	}
	ByCompoundKey(segs)

	// start_time dominates end_time, which dominates quality, which
	// dominates sample rate
	assert.Equal(t, "D", segs[0].Quality)
	assert.Equal(t, 40.0, segs[0].SampleRate)
	assert.Equal(t, "D", segs[1].Quality)
	assert.Equal(t, 100.0, segs[1].SampleRate)
	assert.Equal(t, "M", segs[2].Quality)
	assert.Equal(t, "R", segs[3].Quality)
	assert.True(t, segs[4].StartTime.Equal(base.Add(time.Hour)))
}

func TestOrderByLatestUpdate(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	segs := []models.AvailabilitySegment{
		{Network: "NL", Station: "A", Channel: "BHZ", StartTime: base, EndTime: base.Add(time.Hour), LastUpdate: base.Add(3 * time.Hour)},
		{Network: "NL", Station: "B", Channel: "BHZ", StartTime: base, EndTime: base.Add(time.Hour), LastUpdate: base.Add(time.Hour)},
		{Network: "NL", Station: "C", Channel: "BHZ", StartTime: base, EndTime: base.Add(time.Hour), LastUpdate: base.Add(2 * time.Hour)},
	}

	Sort(segs, models.OrderByLatestUpdate)
	assert.Equal(t, []string{"B", "C", "A"}, stationsOf(segs))

	Sort(segs, models.OrderByLatestUpdateDesc)
	assert.Equal(t, []string{"A", "C", "B"}, stationsOf(segs))
}

func TestOrderByTimespanCount(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	segs := []models.AvailabilitySegment{
		{Network: "NL", Station: "A", Channel: "BHZ", StartTime: base, EndTime: base.Add(time.Hour), Count: 9},
		{Network: "NL", Station: "B", Channel: "BHZ", StartTime: base, EndTime: base.Add(time.Hour), Count: 1},
	}

	Sort(segs, models.OrderByTimespanCount)
	assert.Equal(t, []string{"B", "A"}, stationsOf(segs))

	Sort(segs, models.OrderByTimespanCountDesc)
	assert.Equal(t, []string{"A", "B"}, stationsOf(segs))
}

func stationsOf(segs []models.AvailabilitySegment) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Station
	}
	return out
}
