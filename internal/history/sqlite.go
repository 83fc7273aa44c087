package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps every attempt in a single-file database so a parent
// can look back over weeks of practice.
type SQLiteStore struct {
	db *sql.DB
}

func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			game TEXT NOT NULL,
			ref_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_created_at ON attempts(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_game ON attempts(game)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("history: migrate: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) RecordAttempt(ctx context.Context, a Attempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	correct := 0
	if a.Correct {
		correct = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attempts (id, game, ref_id, level, correct, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Game, a.RefID, a.Level, correct, a.DurationMS, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("history: insert attempt: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Summaries(ctx context.Context, since time.Time) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT game, COUNT(*), SUM(correct), AVG(duration_ms)
		 FROM attempts
		 WHERE created_at >= ?
		 GROUP BY game
		 ORDER BY game`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			correct sql.NullInt64
			avg     sql.NullFloat64
		)
		if err := rows.Scan(&sum.Game, &sum.Attempts, &correct, &avg); err != nil {
			return nil, fmt.Errorf("history: scan summary: %w", err)
		}
		sum.Correct = int(correct.Int64)
		sum.AvgDurationMS = avg.Float64
		if sum.Attempts > 0 {
			sum.Accuracy = float64(sum.Correct) / float64(sum.Attempts)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
