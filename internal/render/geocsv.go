package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// geoCSVRenderer produces the pipe-delimited GeoCSV 2.0 hybrid: the same
// canonical fields as the text format plus station coordinate columns when
// a Locator is configured.
type geoCSVRenderer struct {
	opts Options
}

func (r *geoCSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (r *geoCSVRenderer) Begin(w io.Writer) error {
	names := []string{"Network", "Station", "Location", "Channel", "Quality", "SampleRate", "Earliest", "Latest"}
	units := []string{"unitless", "unitless", "unitless", "unitless", "unitless", "hertz", "ISO_8601", "ISO_8601"}
	types := []string{"string", "string", "string", "string", "string", "float", "datetime", "datetime"}
	if r.opts.ShowLastUpdate {
		names = append(names, "Updated")
		units = append(units, "ISO_8601")
		types = append(types, "datetime")
	}
	if r.opts.Locate != nil {
		names = append(names, "Latitude", "Longitude", "Elevation")
		units = append(units, "degrees_north", "degrees_east", "meters")
		types = append(types, "float", "float", "float")
	}

	_, err := fmt.Fprintf(w, "#dataset: GeoCSV 2.0\n#delimiter: |\n#field_unit: %s\n#field_type: %s\n%s\n",
		strings.Join(units, "|"), strings.Join(types, "|"), strings.Join(names, "|"))
	return err
}

func (r *geoCSVRenderer) Write(w io.Writer, s *models.AvailabilitySegment) error {
	fields := []string{
		s.Network, s.Station, s.Location, s.Channel,
		s.Quality, SampleRate(s.SampleRate),
		Timestamp(s.StartTime), Timestamp(s.EndTime),
	}
	if r.opts.ShowLastUpdate {
		// unset updates keep the column, empty
		updated := ""
		if !s.LastUpdate.IsZero() {
			updated = Timestamp(s.LastUpdate)
		}
		fields = append(fields, updated)
	}
	if r.opts.Locate != nil {
		// Unknown stations keep the columns, empty.
		if st, ok := r.opts.Locate(s.Identity()); ok {
			fields = append(fields,
				strconv.FormatFloat(st.Latitude, 'f', -1, 64),
				strconv.FormatFloat(st.Longitude, 'f', -1, 64),
				strconv.FormatFloat(st.Elevation, 'f', -1, 64))
		} else {
			fields = append(fields, "", "", "")
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(fields, "|"))
	return err
}

func (r *geoCSVRenderer) End(io.Writer) error { return nil }
