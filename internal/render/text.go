package render

import (
	"fmt"
	"io"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// textRenderer produces the line-oriented plaintext format: a single
// comment-prefixed header line followed by one space-delimited data line
// per segment, fields in canonical order.
type textRenderer struct {
	opts Options
}

func (r *textRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func (r *textRenderer) Begin(w io.Writer) error {
	header := "#Network Station Location Channel Quality SampleRate Earliest Latest"
	if r.opts.ShowLastUpdate {
		header += " Updated"
	}
	_, err := fmt.Fprintln(w, header)
	return err
}

func (r *textRenderer) Write(w io.Writer, s *models.AvailabilitySegment) error {
	line := fmt.Sprintf("%s %s %s %s %s %s %s %s",
		s.Network, s.Station, s.Location, s.Channel,
		s.Quality, SampleRate(s.SampleRate),
		Timestamp(s.StartTime), Timestamp(s.EndTime))
	if r.opts.ShowLastUpdate && !s.LastUpdate.IsZero() {
		line += " " + Timestamp(s.LastUpdate)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func (r *textRenderer) End(io.Writer) error { return nil }
