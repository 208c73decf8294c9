// Package storage provides persistence for the best score.
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

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// ErrNegativeScore is returned when asked to persist a score below zero.
var ErrNegativeScore = errors.New("storage: negative score")

// Backend is a best-score store bound to a single game.
type Backend interface {
	flappy.BestStore
	ResetBest() error
	Close() error
}

// Store manages the SQLite database connection for best-score persistence.
type Store struct {
	db *sql.DB
}

// BestScore is the persisted best score of one game.
type BestScore struct {
	GameID    string
	Score     int
	UpdatedAt time.Time
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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
		CREATE TABLE IF NOT EXISTS best_scores (
			game_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL CHECK (score >= 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// Best returns the best score for the given game.
// A game with no record has a zero score and zero UpdatedAt.
func (s *Store) Best(gameID string) (BestScore, error) {
	best := BestScore{GameID: gameID}
	var updatedAt any

	err := s.db.QueryRow(
		"SELECT score, updated_at FROM best_scores WHERE game_id = ?",
		gameID,
	).Scan(&best.Score, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return best, nil
	}
	if err != nil {
		return best, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	best.UpdatedAt = parseTime(updatedAt)
	return best, nil
}

// SaveBest replaces the best score for the given game.
// The caller decides whether the score beats the previous one.
func (s *Store) SaveBest(gameID string, score int) error {
	if score < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeScore, score)
	}

	_, err := s.db.Exec(
		`INSERT INTO best_scores (game_id, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
		   score = excluded.score,
		   updated_at = excluded.updated_at`,
		gameID, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// ResetBest deletes the best score for the given game.
func (s *Store) ResetBest(gameID string) error {
	_, err := s.db.Exec("DELETE FROM best_scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot reset best score: %w", err)
	}
	return nil
}

// ForGame returns a Backend that reads and writes the given game's record.
func (s *Store) ForGame(gameID string) *GameStore {
	return &GameStore{store: s, gameID: gameID}
}

// GameStore adapts Store to flappy.BestStore for one game.
type GameStore struct {
	store  *Store
	gameID string
}

// LoadBest returns the persisted best score, or 0 if it cannot be read.
func (g *GameStore) LoadBest() int {
	best, err := g.store.Best(g.gameID)
	if err != nil {
		return 0
	}
	return best.Score
}

// SaveBest persists a new best score.
func (g *GameStore) SaveBest(best int) error {
	return g.store.SaveBest(g.gameID, best)
}

// ResetBest deletes the persisted best score.
func (g *GameStore) ResetBest() error {
	return g.store.ResetBest(g.gameID)
}

// Close closes the underlying database.
func (g *GameStore) Close() error {
	return g.store.Close()
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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

// Ensure both stores implement Backend
var (
	_ Backend = (*GameStore)(nil)
	_ Backend = (*FileStore)(nil)
)
