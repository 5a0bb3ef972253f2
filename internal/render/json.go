package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// jsonRenderer produces a structured document: a small metadata header and
// a "datasources" array holding one ordered field-mapping per segment.
// Records are encoded one at a time so the document streams.
type jsonRenderer struct {
	opts  Options
	wrote bool
}

// jsonRecord pins the field order and the shared timestamp convention.
type jsonRecord struct {
	Network    string  `json:"network"`
	Station    string  `json:"station"`
	Location   string  `json:"location"`
	Channel    string  `json:"channel"`
	Quality    string  `json:"quality"`
	SampleRate float64 `json:"samplerate"`
	Earliest   string  `json:"earliest"`
	Latest     string  `json:"latest"`
	Updated    string  `json:"updated,omitempty"`
	Count      int64   `json:"timespanCount,omitempty"`
}

func (r *jsonRenderer) ContentType() string { return "application/json" }

func (r *jsonRenderer) Begin(w io.Writer) error {
	_, err := fmt.Fprintf(w, "{\"created\":%q,\"version\":\"1.0\",\"datasources\":[",
		Timestamp(r.opts.Created))
	return err
}

func (r *jsonRenderer) Write(w io.Writer, s *models.AvailabilitySegment) error {
	rec := jsonRecord{
		Network:    s.Network,
		Station:    s.Station,
		Location:   s.Location,
		Channel:    s.Channel,
		Quality:    s.Quality,
		SampleRate: s.SampleRate,
		Earliest:   Timestamp(s.StartTime),
		Latest:     Timestamp(s.EndTime),
		Count:      s.Count,
	}
	if r.opts.ShowLastUpdate && !s.LastUpdate.IsZero() {
		rec.Updated = Timestamp(s.LastUpdate)
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode segment: %w", err)
	}
	if r.wrote {
		if _, err := io.WriteString(w, ","); err != nil {
			return err
		}
	}
	r.wrote = true
	_, err = w.Write(b)
	return err
}

func (r *jsonRenderer) End(w io.Writer) error {
	_, err := io.WriteString(w, "]}\n")
	return err
}
