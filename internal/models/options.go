package models

import "time"

// Merge policy names recognized by the consolidation engine.
const (
	MergeNone       = ""           // pass-through, the default
	MergeOverlap    = "overlap"    // fuse overlapping/adjacent segments
	MergeSampleRate = "samplerate" // like overlap, ignoring sample-rate differences
	MergeQuality    = "quality"    // like overlap, ignoring quality differences
)

// Output format names recognized by the serialization engine.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatGeoCSV  = "geocsv"
	FormatRequest = "request"
)

// Order-by names. The default is the full compound key of CompareCompound.
const (
	OrderByNSLCTimeQualitySampleRate = "nslc_time_quality_samplerate"
	OrderByLatestUpdate              = "latestupdate"
	OrderByLatestUpdateDesc          = "latestupdate_desc"
	OrderByTimespanCount             = "timespancount"      // extent mode only
	OrderByTimespanCountDesc         = "timespancount_desc" // extent mode only
)

// QueryOptions carries the caller-supplied consolidation and formatting
// options consumed by the pipeline. Zero values mean "unset" and select the
// documented defaults; the params package validates the whole structure
// before any engine runs.
type QueryOptions struct {
	Merge          string   `form:"merge"`
	MergeGaps      *float64 `form:"mergegaps"` // seconds, nil = unset
	Format         string   `form:"format"`
	OrderBy        string   `form:"orderby"`
	ShowLastUpdate bool     `form:"showlastupdate"`
	Limit          int64    `form:"limit"`
}

// AvailabilityFilter represents the retrieval-side filter parameters.
// NSLC fields accept comma-separated glob patterns (* and ?).
type AvailabilityFilter struct {
	Network   string    `form:"network"`
	Station   string    `form:"station"`
	Location  string    `form:"location"`
	Channel   string    `form:"channel"`
	Quality   string    `form:"quality"`
	StartTime time.Time `form:"start" time_format:"2006-01-02T15:04:05" time_utc:"1"`
	EndTime   time.Time `form:"end" time_format:"2006-01-02T15:04:05" time_utc:"1"`

	// Optional geographic constraint resolved against the station table.
	Latitude  *float64 `form:"latitude"`
	Longitude *float64 `form:"longitude"`
	MaxRadius *float64 `form:"maxradius"` // degrees of arc
}

// Station is one row of the station coordinate table used for geographic
// filtering and geocsv enrichment.
type Station struct {
	Network   string  `json:"network" db:"network"`
	Station   string  `json:"station" db:"station"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
	Elevation float64 `json:"elevation" db:"elevation"` // meters
}
