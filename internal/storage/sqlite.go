// Package storage provides SQLite-based persistence for the run log.
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

	"github.com/vovakirdan/rigidbox/internal/core"
)

// Run sources recorded in the log.
const (
	SourceTUI      = "tui"
	SourceSSH      = "ssh"
	SourceHeadless = "headless"
)

// Store manages the SQLite database connection for the run log.
type Store struct {
	db *sql.DB
}

// RunEntry is a single recorded simulation run.
type RunEntry struct {
	ID          int64
	SceneID     string
	Source      string
	Seed        int64
	Ticks       uint64
	Bodies      int
	Contacts    int
	EnergyStart float64
	EnergyEnd   float64
	Corrupted   bool
	Duration    time.Duration
	CreatedAt   time.Time
}

// SceneStats aggregates every run of one scene.
type SceneStats struct {
	SceneID       string
	Runs          int
	TotalTicks    int64
	TotalContacts int64
	Corrupted     int
	LastRun       time.Time
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			bodies INTEGER NOT NULL DEFAULT 0,
			contacts INTEGER NOT NULL DEFAULT 0,
			energy_start REAL NOT NULL DEFAULT 0,
			energy_end REAL NOT NULL DEFAULT 0,
			corrupted INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(source string, sum core.RunSummary, duration time.Duration) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (scene_id, source, seed, ticks, bodies, contacts, energy_start, energy_end, corrupted, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.SceneID,
		source,
		sum.Seed,
		int64(sum.Ticks), //#nosec G115 -- tick counts stay far below MaxInt64
		sum.Bodies,
		sum.Contacts,
		sum.EnergyStart,
		sum.EnergyEnd,
		sum.Corrupted,
		duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest runs, newest first. An empty sceneID
// matches every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, source, seed, ticks, bodies, contacts,
		        energy_start, energy_end, corrupted, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var (
			e          RunEntry
			ticks      int64
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(
			&e.ID,
			&e.SceneID,
			&e.Source,
			&e.Seed,
			&ticks,
			&e.Bodies,
			&e.Contacts,
			&e.EnergyStart,
			&e.EnergyEnd,
			&e.Corrupted,
			&durationMS,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// SceneStats retrieves aggregated statistics for one scene.
func (s *Store) SceneStats(sceneID string) (*SceneStats, error) {
	stats := &SceneStats{SceneID: sceneID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(contacts), 0), COALESCE(SUM(corrupted), 0)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.TotalTicks, &stats.TotalContacts, &stats.Corrupted)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scene stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scene_id = ? ORDER BY id DESC LIMIT 1`,
		sceneID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// AllSceneStats retrieves statistics for every scene that has been run.
func (s *Store) AllSceneStats() (map[string]*SceneStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), SUM(ticks), SUM(contacts), SUM(corrupted), MAX(created_at)
		 FROM runs
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scene stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SceneStats)
	for rows.Next() {
		var st SceneStats
		var lastRun any
		if err := rows.Scan(&st.SceneID, &st.Runs, &st.TotalTicks, &st.TotalContacts, &st.Corrupted, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs of the given scene.
func (s *Store) ClearRuns(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the driver's string form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
