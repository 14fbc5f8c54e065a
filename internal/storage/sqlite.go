// Package storage provides the SQLite-backed expedition journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-outpost/internal/game"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Record is a journaled expedition.
type Record struct {
	game.Expedition
	RecordedAt time.Time
}

// Stats contains aggregated statistics over all expeditions.
type Stats struct {
	Count         int
	TotalSteps    int64
	TotalBumps    int64
	TotalDuration time.Duration
	Longest       time.Duration
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Expedition times are stored as unix milliseconds.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS expeditions (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			width REAL NOT NULL,
			height REAL NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			bumps INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL,
			recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_expeditions_started ON expeditions(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveExpedition implements game.ExpeditionSaver.
func (s *Store) SaveExpedition(e game.Expedition) error {
	if e.ID == "" {
		return errors.New("storage: expedition has no id")
	}

	_, err := s.db.Exec(
		`INSERT INTO expeditions
		 (id, seed, width, height, steps, bumps, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Params.Seed,
		e.Params.Width,
		e.Params.Height,
		e.Steps,
		e.Bumps,
		e.StartedAt.UnixMilli(),
		e.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save expedition %s: %w", e.ID, err)
	}
	return nil
}

// Ensure Store implements ExpeditionSaver
var _ game.ExpeditionSaver = (*Store)(nil)

const selectExpedition = `SELECT id, seed, width, height, steps, bumps, started_at, ended_at, recorded_at
		 FROM expeditions`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		r                  Record
		params             world.EmbarkParams
		startedAt, endedAt int64
		recordedAt         any
	)
	err := row.Scan(
		&r.ID,
		&params.Seed,
		&params.Width,
		&params.Height,
		&r.Steps,
		&r.Bumps,
		&startedAt,
		&endedAt,
		&recordedAt,
	)
	if err != nil {
		return Record{}, err
	}

	r.Params = params
	r.StartedAt = time.UnixMilli(startedAt)
	r.EndedAt = time.UnixMilli(endedAt)
	r.RecordedAt = parseDatetime(recordedAt)
	return r, nil
}

// parseDatetime handles both time.Time and string DATETIME values.
func parseDatetime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentExpeditions retrieves the most recently started expeditions.
func (s *Store) RecentExpeditions(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		selectExpedition+`
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query expeditions: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ExpeditionByID retrieves an expedition by its id.
// Returns nil if no such expedition exists.
func (s *Store) ExpeditionByID(id string) (*Record, error) {
	r, err := scanRecord(s.db.QueryRow(selectExpedition+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query expedition: %w", err)
	}
	return &r, nil
}

// Stats retrieves aggregated statistics over all expeditions.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var totalMs, longestMs int64
	var lastStarted sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(steps), 0),
		        COALESCE(SUM(bumps), 0),
		        COALESCE(SUM(ended_at - started_at), 0),
		        COALESCE(MAX(ended_at - started_at), 0),
		        MAX(started_at)
		 FROM expeditions`,
	).Scan(&stats.Count, &stats.TotalSteps, &stats.TotalBumps, &totalMs, &longestMs, &lastStarted)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.TotalDuration = time.Duration(totalMs) * time.Millisecond
	stats.Longest = time.Duration(longestMs) * time.Millisecond
	if lastStarted.Valid {
		stats.LastPlayed = time.UnixMilli(lastStarted.Int64)
	}

	return stats, nil
}

// ClearExpeditions deletes every journaled expedition.
func (s *Store) ClearExpeditions() error {
	_, err := s.db.Exec("DELETE FROM expeditions")
	if err != nil {
		return fmt.Errorf("storage: cannot clear expeditions: %w", err)
	}
	return nil
}
