// Package params validates caller-supplied query options before the
// availability pipeline runs. Validation is a pure check: it never mutates
// the options and it short-circuits the whole request on the first
// violation.
package params

import (
	"fmt"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// ValidationError reports one option violating a documented constraint.
type ValidationError struct {
	Option     string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Option, e.Constraint)
}

var mergePolicies = map[string]bool{
	models.MergeNone:       true,
	models.MergeOverlap:    true,
	models.MergeSampleRate: true,
	models.MergeQuality:    true,
}

var formats = map[string]bool{
	"":                   true, // unset selects text
	models.FormatText:    true,
	models.FormatJSON:    true,
	models.FormatGeoCSV:  true,
	models.FormatRequest: true,
}

var orderings = map[string]bool{
	"": true, // unset selects the full compound key
	models.OrderByNSLCTimeQualitySampleRate: true,
	models.OrderByLatestUpdate:              true,
	models.OrderByLatestUpdateDesc:          true,
}

var extentOrderings = map[string]bool{
	models.OrderByTimespanCount:     true,
	models.OrderByTimespanCountDesc: true,
}

// Validate checks the options consumed by the consolidation and
// serialization engines. extent widens the set of accepted orderby values
// to the span-count orderings, which are meaningless for individual
// segments.
func Validate(opts models.QueryOptions, extent bool) error {
	if opts.MergeGaps != nil && *opts.MergeGaps < 0 {
		return &ValidationError{Option: "mergegaps", Constraint: "must be non-negative"}
	}
	if !mergePolicies[opts.Merge] {
		return &ValidationError{Option: "merge", Constraint: "must be one of overlap, samplerate, quality"}
	}
	if !formats[opts.Format] {
		return &ValidationError{Option: "format", Constraint: "must be one of text, json, geocsv, request"}
	}
	if !orderings[opts.OrderBy] && !(extent && extentOrderings[opts.OrderBy]) {
		return &ValidationError{Option: "orderby", Constraint: "is not a recognized ordering"}
	}
	if opts.Limit < 0 {
		return &ValidationError{Option: "limit", Constraint: "must be non-negative"}
	}
	return nil
}

// ValidateFilter checks the retrieval-side geographic constraint. The three
// radius options come as a unit; latitude and longitude must be sensible
// degrees.
func ValidateFilter(f models.AvailabilityFilter) error {
	geoSet := 0
	for _, p := range []*float64{f.Latitude, f.Longitude, f.MaxRadius} {
		if p != nil {
			geoSet++
		}
	}
	if geoSet != 0 && geoSet != 3 {
		return &ValidationError{Option: "maxradius", Constraint: "requires latitude, longitude and maxradius together"}
	}
	if f.MaxRadius != nil && *f.MaxRadius < 0 {
		return &ValidationError{Option: "maxradius", Constraint: "must be non-negative"}
	}
	if f.Latitude != nil && (*f.Latitude < -90 || *f.Latitude > 90) {
		return &ValidationError{Option: "latitude", Constraint: "must be between -90 and 90"}
	}
	if f.Longitude != nil && (*f.Longitude < -180 || *f.Longitude > 180) {
		return &ValidationError{Option: "longitude", Constraint: "must be between -180 and 180"}
	}
	return nil
}
