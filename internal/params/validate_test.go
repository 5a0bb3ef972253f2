package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

func f(v float64) *float64 { return &v }

func TestMergeGapsValidation(t *testing.T) {
	assert.NoError(t, Validate(models.QueryOptions{}, false))
	assert.NoError(t, Validate(models.QueryOptions{MergeGaps: f(0.0)}, false))
	assert.NoError(t, Validate(models.QueryOptions{MergeGaps: f(1.5)}, false))

	err := Validate(models.QueryOptions{MergeGaps: f(-1.0)}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
	assert.Contains(t, err.Error(), "mergegaps")
}

func TestMergePolicyNames(t *testing.T) {
	for _, name := range []string{"", "overlap", "samplerate", "quality"} {
		assert.NoError(t, Validate(models.QueryOptions{Merge: name}, false), "merge=%q", name)
	}

	err := Validate(models.QueryOptions{Merge: "fuse"}, false)
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "merge", ve.Option)
}

func TestFormatNames(t *testing.T) {
	for _, name := range []string{"", "text", "json", "geocsv", "request"} {
		assert.NoError(t, Validate(models.QueryOptions{Format: name}, false), "format=%q", name)
	}
	assert.Error(t, Validate(models.QueryOptions{Format: "xml"}, false))
}

func TestOrderByNames(t *testing.T) {
	for _, name := range []string{"", "nslc_time_quality_samplerate", "latestupdate", "latestupdate_desc"} {
		assert.NoError(t, Validate(models.QueryOptions{OrderBy: name}, false), "orderby=%q", name)
	}

	// Span-count orderings only make sense in extent mode.
	assert.Error(t, Validate(models.QueryOptions{OrderBy: "timespancount"}, false))
	assert.NoError(t, Validate(models.QueryOptions{OrderBy: "timespancount"}, true))
	assert.NoError(t, Validate(models.QueryOptions{OrderBy: "timespancount_desc"}, true))
	assert.Error(t, Validate(models.QueryOptions{OrderBy: "bogus"}, true))
}

func TestLimitValidation(t *testing.T) {
	assert.NoError(t, Validate(models.QueryOptions{Limit: 0}, false))
	assert.NoError(t, Validate(models.QueryOptions{Limit: 1000}, false))

	err := Validate(models.QueryOptions{Limit: -1}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestGeoFilterValidation(t *testing.T) {
	assert.NoError(t, ValidateFilter(models.AvailabilityFilter{}))
	assert.NoError(t, ValidateFilter(models.AvailabilityFilter{
		Latitude: f(52.1), Longitude: f(5.18), MaxRadius: f(3),
	}))

	// The three radius options come as a unit.
	assert.Error(t, ValidateFilter(models.AvailabilityFilter{Latitude: f(52.1)}))
	assert.Error(t, ValidateFilter(models.AvailabilityFilter{
		Latitude: f(52.1), Longitude: f(5.18), MaxRadius: f(-1),
	}))
	assert.Error(t, ValidateFilter(models.AvailabilityFilter{
		Latitude: f(91), Longitude: f(5.18), MaxRadius: f(3),
	}))
	assert.Error(t, ValidateFilter(models.AvailabilityFilter{
		Latitude: f(52.1), Longitude: f(-181), MaxRadius: f(3),
	}))
}
