// Package render turns an ordered, consolidated segment sequence into one
// of the supported output formats. Renderers write one output unit per
// segment so arbitrarily large result sets never require materializing the
// rendered response in memory. They never re-sort or re-group: input order
// is final.
package render

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// Locator resolves station coordinates for geocsv enrichment. A nil
// Locator renders the geographic columns empty.
type Locator func(models.IdentityKey) (models.Station, bool)

// Options configures a renderer.
type Options struct {
	ShowLastUpdate bool
	Created        time.Time // stamped into structured headers
	Locate         Locator
}

// Renderer produces one output format incrementally: a header, one unit
// per segment, and a trailer.
type Renderer interface {
	ContentType() string
	Begin(w io.Writer) error
	Write(w io.Writer, s *models.AvailabilitySegment) error
	End(w io.Writer) error
}

// New returns the renderer for the named format. The empty name selects
// text. The params package guarantees the name is recognized.
func New(format string, opts Options) Renderer {
	switch format {
	case models.FormatJSON:
		return &jsonRenderer{opts: opts}
	case models.FormatGeoCSV:
		return &geoCSVRenderer{opts: opts}
	case models.FormatRequest:
		return &requestRenderer{}
	default:
		return &textRenderer{opts: opts}
	}
}

// Stream renders the whole sequence to w, record by record.
func Stream(w io.Writer, r Renderer, segs []models.AvailabilitySegment) error {
	if err := r.Begin(w); err != nil {
		return err
	}
	for i := range segs {
		if err := r.Write(w, &segs[i]); err != nil {
			return err
		}
	}
	return r.End(w)
}

// Timestamp renders an instant in the convention shared by every format:
// UTC, microsecond precision, explicit Z suffix.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}

// SampleRate renders a sample rate the shortest way that still marks it as
// a real number, so 200 samples/second reads "200.0" and 0.0166 stays
// "0.0166".
func SampleRate(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
