// Package storage records finished pilot episodes in SQLite.
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
)

// Store manages the SQLite database connection for episode results.
type Store struct {
	db *sql.DB
}

// Episode is one finished run of the pilot against an environment.
type Episode struct {
	ID         int64
	EnvID      string
	Seed       int64
	Score      int
	Ticks      int
	LivesLost  int
	Fires      int
	Turns      int
	Thrusts    int
	Idles      int
	EvadeTicks int
	CreatedAt  time.Time
}

// EvadeRatio is the share of ticks spent evading.
func (e Episode) EvadeRatio() float64 {
	if e.Ticks == 0 {
		return 0
	}
	return float64(e.EvadeTicks) / float64(e.Ticks)
}

// EnvStats contains aggregated statistics for one environment.
type EnvStats struct {
	EnvID      string
	Episodes   int
	HighScore  int
	AvgScore   float64
	AvgTicks   float64
	TotalFires int64
	LastPlayed time.Time
}

const episodeColumns = `id, env_id, seed, score, ticks, lives_lost, fires, turns,
	thrusts, idles, evade_ticks, created_at`

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
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			env_id TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			lives_lost INTEGER NOT NULL DEFAULT 0,
			fires INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			thrusts INTEGER NOT NULL DEFAULT 0,
			idles INTEGER NOT NULL DEFAULT 0,
			evade_ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_env_id ON episodes(env_id);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(env_id, score DESC);
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

// SaveEpisode records a finished episode and returns its ID.
func (s *Store) SaveEpisode(e Episode) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (env_id, seed, score, ticks, lives_lost, fires, turns, thrusts, idles, evade_ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.EnvID, e.Seed, e.Score, e.Ticks, e.LivesLost,
		e.Fires, e.Turns, e.Thrusts, e.Idles, e.EvadeTicks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopEpisodes retrieves the best N episodes for the given environment.
// Results are ordered by score descending.
func (s *Store) TopEpisodes(envID string, limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE env_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		envID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

// RecentEpisodes retrieves the latest episodes across all environments.
func (s *Store) RecentEpisodes(limit int) ([]Episode, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent episodes: %w", err)
	}
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]Episode, error) {
	defer rows.Close()

	var episodes []Episode
	for rows.Next() {
		var e Episode
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.EnvID, &e.Seed, &e.Score, &e.Ticks, &e.LivesLost,
			&e.Fires, &e.Turns, &e.Thrusts, &e.Idles, &e.EvadeTicks, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given environment.
// Returns 0 if no episodes exist.
func (s *Store) HighScore(envID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM episodes WHERE env_id = ?",
		envID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearEpisodes deletes all episodes for the given environment.
func (s *Store) ClearEpisodes(envID string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE env_id = ?", envID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// EnvStats retrieves aggregated statistics for one environment.
func (s *Store) EnvStats(envID string) (*EnvStats, error) {
	stats := &EnvStats{EnvID: envID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(AVG(ticks), 0), COALESCE(SUM(fires), 0)
		 FROM episodes WHERE env_id = ?`,
		envID,
	).Scan(&stats.Episodes, &stats.HighScore, &stats.AvgScore, &stats.AvgTicks, &stats.TotalFires)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get env stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM episodes WHERE env_id = ? ORDER BY id DESC LIMIT 1`,
		envID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
