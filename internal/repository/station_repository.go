package repository

import (
	"database/sql"
	"fmt"

	"github.com/orfeus-data/availability-backend-go/internal/database"
	"github.com/orfeus-data/availability-backend-go/internal/models"
)

// StationRepository handles database operations for station coordinates.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// GetStations returns every station coordinate row.
func (r *StationRepository) GetStations() ([]models.Station, error) {
	rows, err := r.db.Query("SELECT network, station, latitude, longitude, elevation FROM stations")
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(&st.Network, &st.Station, &st.Latitude, &st.Longitude, &st.Elevation); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stations: %w", err)
	}
	return stations, nil
}

// UpsertStations inserts or replaces station coordinate rows in one
// transaction.
func (r *StationRepository) UpsertStations(stations []models.Station) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`INSERT OR REPLACE INTO stations
			(network, station, latitude, longitude, elevation)
			VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, st := range stations {
			if _, err := stmt.Exec(st.Network, st.Station, st.Latitude, st.Longitude, st.Elevation); err != nil {
				return fmt.Errorf("failed to upsert station %s.%s: %w", st.Network, st.Station, err)
			}
		}
		return nil
	})
}
