// Package storage provides the SQLite round journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// The journal records how each round went (outcome, duration, accuracy).
// It is deliberately not a leaderboard: there are no ranking queries.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// DefaultPath is where the journal lives unless --db says otherwise.
const DefaultPath = "~/.asteroids/journal.db"

// Store manages the SQLite database connection for the round journal.
type Store struct {
	db *sql.DB
}

// Round is a single journal record.
type Round struct {
	ID                 int64
	GameID             string
	Outcome            string
	Ticks              int
	ShotsFired         int
	AsteroidsDestroyed int
	Wave               int
	CreatedAt          time.Time
}

// Stats aggregates the journal for one game.
type Stats struct {
	Rounds             int
	Wins               int
	Losses             int
	ShotsFired         int
	AsteroidsDestroyed int
	Ticks              int
}

// Accuracy is the share of shots that destroyed an asteroid, in [0, 1].
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.AsteroidsDestroyed) / float64(s.ShotsFired)
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			shots_fired INTEGER NOT NULL DEFAULT 0,
			asteroids_destroyed INTEGER NOT NULL DEFAULT 0,
			wave INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_game_id ON rounds(game_id, id DESC);
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

// SaveRound records a finished round for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(gameID string, sum core.RoundSummary) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (game_id, outcome, ticks, shots_fired, asteroids_destroyed, wave)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, sum.Outcome, sum.Ticks, sum.ShotsFired, sum.AsteroidsDestroyed, sum.Wave,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRounds retrieves the latest rounds for the given game, newest first.
// An empty gameID selects every game.
func (s *Store) RecentRounds(gameID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, outcome, ticks, shots_fired, asteroids_destroyed, wave, created_at
		 FROM rounds
		 WHERE ? = '' OR game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Outcome, &r.Ticks, &r.ShotsFired,
			&r.AsteroidsDestroyed, &r.Wave, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// RoundStats aggregates every round of the given game.
// An empty gameID aggregates every game.
func (s *Store) RoundStats(gameID string) (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'won'), 0),
		        COALESCE(SUM(outcome = 'lost'), 0),
		        COALESCE(SUM(shots_fired), 0),
		        COALESCE(SUM(asteroids_destroyed), 0),
		        COALESCE(SUM(ticks), 0)
		 FROM rounds
		 WHERE ? = '' OR game_id = ?`,
		gameID, gameID,
	).Scan(&st.Rounds, &st.Wins, &st.Losses, &st.ShotsFired, &st.AsteroidsDestroyed, &st.Ticks)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query round stats: %w", err)
	}
	return st, nil
}

// ClearRounds removes all rounds for the given game.
// An empty gameID clears the whole journal.
func (s *Store) ClearRounds(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE ? = '' OR game_id = ?", gameID, gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
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
