package render

import (
	"fmt"
	"io"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// requestRenderer produces dataselect request lines: no header, one
// "NET STA LOC CHA START END" line per segment, with an empty location
// rendered as the conventional "--" placeholder.
type requestRenderer struct{}

func (r *requestRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *requestRenderer) Begin(io.Writer) error { return nil }

func (r *requestRenderer) Write(w io.Writer, s *models.AvailabilitySegment) error {
	loc := s.Location
	if loc == "" {
		loc = "--"
	}
	_, err := fmt.Fprintf(w, "%s %s %s %s %s %s\n",
		s.Network, s.Station, loc, s.Channel,
		Timestamp(s.StartTime), Timestamp(s.EndTime))
	return err
}

func (r *requestRenderer) End(io.Writer) error { return nil }
