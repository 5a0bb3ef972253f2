package service

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/orfeus-data/availability-backend-go/internal/fusion"
	"github.com/orfeus-data/availability-backend-go/internal/geo"
	"github.com/orfeus-data/availability-backend-go/internal/models"
	"github.com/orfeus-data/availability-backend-go/internal/params"
	"github.com/orfeus-data/availability-backend-go/internal/render"
	"github.com/orfeus-data/availability-backend-go/internal/sorting"
)

// SegmentSource retrieves raw availability segments. Satisfied by
// repository.AvailabilityRepository.
type SegmentSource interface {
	GetSegments(filter models.AvailabilityFilter, maxRows int64) ([]models.AvailabilitySegment, error)
}

// StationSource retrieves station coordinates. Satisfied by
// repository.StationRepository.
type StationSource interface {
	GetStations() ([]models.Station, error)
}

// AvailabilityService runs the transformation pipeline: validate options,
// retrieve rows, drop malformed records, apply the geographic constraint,
// order, consolidate and prepare the renderer.
type AvailabilityService struct {
	segments SegmentSource
	stations StationSource
	maxRows  int64
}

// NewAvailabilityService creates a new availability service. maxRows caps
// retrieval independently of any caller-supplied limit.
func NewAvailabilityService(segments SegmentSource, stations StationSource, maxRows int64) *AvailabilityService {
	return &AvailabilityService{segments: segments, stations: stations, maxRows: maxRows}
}

// Result is a prepared response: the final segment order plus the renderer
// that streams it. Nothing is rendered until WriteTo pulls it through.
type Result struct {
	Segments []models.AvailabilitySegment
	Skipped  int // malformed rows dropped with a warning
	renderer render.Renderer
}

// ContentType returns the response content type for the chosen format.
func (r *Result) ContentType() string {
	return r.renderer.ContentType()
}

// WriteTo streams the rendered response record by record.
func (r *Result) WriteTo(w io.Writer) error {
	return render.Stream(w, r.renderer, r.Segments)
}

// Query prepares a /query response: every matching segment, consolidated
// according to the merge options.
func (s *AvailabilityService) Query(filter models.AvailabilityFilter, opts models.QueryOptions) (*Result, error) {
	return s.run(filter, opts, false)
}

// Extent prepares an /extent response: one aggregated row per
// channel+quality+samplerate group.
func (s *AvailabilityService) Extent(filter models.AvailabilityFilter, opts models.QueryOptions) (*Result, error) {
	return s.run(filter, opts, true)
}

func (s *AvailabilityService) run(filter models.AvailabilityFilter, opts models.QueryOptions, extent bool) (*Result, error) {
	if err := params.Validate(opts, extent); err != nil {
		return nil, err
	}
	if err := params.ValidateFilter(filter); err != nil {
		return nil, err
	}

	segs, err := s.segments.GetSegments(filter, s.maxRows)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve availability: %w", err)
	}

	segs, skipped := dropMalformed(segs)

	// The station index is only needed for the radius constraint and for
	// geocsv coordinate columns.
	var index *geo.Index
	needGeo := filter.MaxRadius != nil || opts.Format == models.FormatGeoCSV
	if needGeo {
		stations, err := s.stations.GetStations()
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve stations: %w", err)
		}
		index = geo.NewIndex(stations)
	}
	if filter.MaxRadius != nil {
		segs = index.FilterWithinRadius(segs, *filter.Latitude, *filter.Longitude, *filter.MaxRadius)
	}

	// Consolidation assumes compound-key order; a non-default orderby is
	// applied to the consolidated output afterwards.
	sorting.ByCompoundKey(segs)
	if extent {
		segs = fusion.Extent(segs)
	} else {
		segs = fusion.Consolidate(segs, fusion.PolicyFrom(opts))
	}
	if opts.OrderBy != "" && opts.OrderBy != models.OrderByNSLCTimeQualitySampleRate {
		sorting.Sort(segs, opts.OrderBy)
	}
	if opts.Limit > 0 && int64(len(segs)) > opts.Limit {
		segs = segs[:opts.Limit]
	}

	ropts := render.Options{
		ShowLastUpdate: opts.ShowLastUpdate || extent,
		Created:        time.Now(),
	}
	if opts.Format == models.FormatGeoCSV && index != nil {
		ropts.Locate = index.Locate
	}

	return &Result{
		Segments: segs,
		Skipped:  skipped,
		renderer: render.New(opts.Format, ropts),
	}, nil
}

// dropMalformed skips rows missing required identity fields. Data-quality
// problems in individual rows must not take down the response for the
// rest, so this warns and continues instead of failing.
func dropMalformed(segs []models.AvailabilitySegment) ([]models.AvailabilitySegment, int) {
	out := segs[:0]
	skipped := 0
	for _, s := range segs {
		if !s.HasIdentity() {
			skipped++
			continue
		}
		out = append(out, s)
	}
	if skipped > 0 {
		log.Printf("Skipped %d malformed availability rows missing identity fields", skipped)
	}
	return out, skipped
}
