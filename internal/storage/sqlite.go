// Package storage provides SQLite-based persistence for solved puzzles.
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

// Store manages the SQLite database connection for solve records.
type Store struct {
	db *sql.DB
}

// SolveRecord is one finished puzzle attempt.
type SolveRecord struct {
	ID        int64
	SessionID string
	PuzzleID  string
	Folds     int
	Undos     int
	Duration  time.Duration
	CreatedAt time.Time
}

// PuzzleStats aggregates the solves of one puzzle.
type PuzzleStats struct {
	PuzzleID   string
	Solves     int
	BestFolds  int
	FewestUndo int
	LastSolved time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			puzzle_id TEXT NOT NULL,
			folds INTEGER NOT NULL,
			undos INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_puzzle_id ON solves(puzzle_id);
		CREATE INDEX IF NOT EXISTS idx_solves_best ON solves(puzzle_id, folds ASC, duration_ms ASC);
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

// SaveSolve records a solved puzzle and returns the row ID.
func (s *Store) SaveSolve(r SolveRecord) (int64, error) {
	if r.PuzzleID == "" {
		return 0, errors.New("storage: solve without puzzle id")
	}

	result, err := s.db.Exec(
		`INSERT INTO solves (session_id, puzzle_id, folds, undos, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		r.SessionID, r.PuzzleID, r.Folds, r.Undos, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestSolves retrieves the best N solves for a puzzle: fewest folds first,
// then fastest.
func (s *Store) BestSolves(puzzleID string, limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, puzzle_id, folds, undos, duration_ms, created_at
		 FROM solves
		 WHERE puzzle_id = ?
		 ORDER BY folds ASC, duration_ms ASC, id ASC
		 LIMIT ?`,
		puzzleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var records []SolveRecord
	for rows.Next() {
		var r SolveRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.PuzzleID, &r.Folds, &r.Undos, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// BestFolds returns the fewest folds anyone solved the puzzle in.
// Returns 0 if it was never solved.
func (s *Store) BestFolds(puzzleID string) (int, error) {
	var folds sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(folds) FROM solves WHERE puzzle_id = ?",
		puzzleID,
	).Scan(&folds)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best folds: %w", err)
	}

	if !folds.Valid {
		return 0, nil
	}
	return int(folds.Int64), nil
}

// Stats retrieves aggregated statistics for every solved puzzle, keyed by
// puzzle ID.
func (s *Store) Stats() (map[string]*PuzzleStats, error) {
	rows, err := s.db.Query(
		`SELECT puzzle_id, COUNT(*), MIN(folds), MIN(undos), MAX(created_at)
		 FROM solves
		 GROUP BY puzzle_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get puzzle stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PuzzleStats)
	for rows.Next() {
		var st PuzzleStats
		var last any
		if err := rows.Scan(&st.PuzzleID, &st.Solves, &st.BestFolds, &st.FewestUndo, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSolved = parseTime(last)
		stats[st.PuzzleID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SolvedPuzzles lists the IDs of puzzles solved at least once, sorted.
func (s *Store) SolvedPuzzles() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT puzzle_id FROM solves ORDER BY puzzle_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solved puzzles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ids, nil
}

// ClearSolves deletes all solves for the given puzzle.
func (s *Store) ClearSolves(puzzleID string) error {
	_, err := s.db.Exec("DELETE FROM solves WHERE puzzle_id = ?", puzzleID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the driver's string form.
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
