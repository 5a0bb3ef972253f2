package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents one schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Timestamps are stored as INTEGER microseconds since the Unix epoch so
// that overlap comparisons stay exact at the service's microsecond
// resolution.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_availability",
		SQL: `
			CREATE TABLE IF NOT EXISTS availability (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				network TEXT NOT NULL,
				station TEXT NOT NULL,
				location TEXT NOT NULL DEFAULT '',
				channel TEXT NOT NULL,
				quality TEXT NOT NULL DEFAULT '',
				sample_rate REAL NOT NULL DEFAULT 0,
				start_time INTEGER NOT NULL,
				end_time INTEGER NOT NULL,
				last_update INTEGER NOT NULL DEFAULT 0,
				status TEXT NOT NULL DEFAULT '',
				count INTEGER NOT NULL DEFAULT 0
			);
			CREATE INDEX IF NOT EXISTS idx_availability_nslc
				ON availability(network, station, location, channel);
			CREATE INDEX IF NOT EXISTS idx_availability_window
				ON availability(start_time, end_time);
		`,
	},
	{
		Version: 2,
		Name:    "create_stations",
		SQL: `
			CREATE TABLE IF NOT EXISTS stations (
				network TEXT NOT NULL,
				station TEXT NOT NULL,
				latitude REAL NOT NULL,
				longitude REAL NOT NULL,
				elevation REAL NOT NULL DEFAULT 0,
				PRIMARY KEY (network, station)
			);
		`,
	},
}

// Migrate applies all pending migrations in version order.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}
	return nil
}
