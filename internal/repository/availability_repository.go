package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/orfeus-data/availability-backend-go/internal/database"
	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// AvailabilityRepository handles database operations for availability
// segments.
type AvailabilityRepository struct {
	db *sql.DB
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db *sql.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const availabilityColumns = `network, station, location, channel, quality, sample_rate,
	start_time, end_time, last_update, status, count`

// GetSegments retrieves the raw, unordered segments matching the filter.
// NSLC filters accept comma-separated glob patterns; the time window keeps
// any segment overlapping [start, end). The returned sequence carries no
// ordering guarantee; the pipeline sorts it.
func (r *AvailabilityRepository) GetSegments(filter models.AvailabilityFilter, maxRows int64) ([]models.AvailabilitySegment, error) {
	query := "SELECT " + availabilityColumns + " FROM availability"

	var conditions []string
	var args []interface{}

	addPatterns := func(column, value string) {
		if value == "" {
			return
		}
		cond, condArgs := patternCondition(column, value)
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
	}
	addPatterns("network", filter.Network)
	addPatterns("station", filter.Station)
	addPatterns("location", filter.Location)
	addPatterns("channel", filter.Channel)
	addPatterns("quality", filter.Quality)

	if !filter.StartTime.IsZero() {
		conditions = append(conditions, "end_time > ?")
		args = append(args, filter.StartTime.UnixMicro())
	}
	if !filter.EndTime.IsZero() {
		conditions = append(conditions, "start_time < ?")
		args = append(args, filter.EndTime.UnixMicro())
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if maxRows > 0 {
		query += " LIMIT ?"
		args = append(args, maxRows)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability: %w", err)
	}
	defer rows.Close()

	var segments []models.AvailabilitySegment
	for rows.Next() {
		var s models.AvailabilitySegment
		var start, end, updated int64
		err := rows.Scan(
			&s.Network, &s.Station, &s.Location, &s.Channel,
			&s.Quality, &s.SampleRate,
			&start, &end, &updated, &s.Status, &s.Count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		s.StartTime = time.UnixMicro(start).UTC()
		s.EndTime = time.UnixMicro(end).UTC()
		if updated != 0 {
			s.LastUpdate = time.UnixMicro(updated).UTC()
		}
		segments = append(segments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segments: %w", err)
	}

	return segments, nil
}

// InsertSegments bulk-inserts availability rows in one transaction.
func (r *AvailabilityRepository) InsertSegments(segments []models.AvailabilitySegment) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT INTO availability
			(network, station, location, channel, quality, sample_rate,
			 start_time, end_time, last_update, status, count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, s := range segments {
			var updated int64
			if !s.LastUpdate.IsZero() {
				updated = s.LastUpdate.UnixMicro()
			}
			_, err := stmt.Exec(
				s.Network, s.Station, s.Location, s.Channel,
				s.Quality, s.SampleRate,
				s.StartTime.UnixMicro(), s.EndTime.UnixMicro(),
				updated, s.Status, s.Count,
			)
			if err != nil {
				return fmt.Errorf("failed to insert segment %s.%s.%s.%s: %w",
					s.Network, s.Station, s.Location, s.Channel, err)
			}
		}
		return nil
	})
}

// patternCondition builds a WHERE condition for one comma-separated list of
// NSLC patterns. Patterns containing * or ? use sqlite GLOB matching;
// the conventional "--" placeholder selects the empty location.
func patternCondition(column, value string) (string, []interface{}) {
	patterns := strings.Split(value, ",")
	parts := make([]string, 0, len(patterns))
	args := make([]interface{}, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "--" {
			p = ""
		}
		if strings.ContainsAny(p, "*?") {
			parts = append(parts, column+" GLOB ?")
		} else {
			parts = append(parts, column+" = ?")
		}
		args = append(args, p)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}
