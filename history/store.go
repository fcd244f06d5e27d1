// Package history persists finished games in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	finished_at      INTEGER NOT NULL,
	score            INTEGER NOT NULL,
	rounds           INTEGER NOT NULL,
	hits             INTEGER NOT NULL,
	misses           INTEGER NOT NULL,
	best_reaction_ms INTEGER NOT NULL,
	mean_reaction_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS games_score_idx ON games (score DESC);
`

// ErrNoGames is returned by Best when nothing has been recorded yet
var ErrNoGames = errors.New("no games recorded")

// Record is one finished game
type Record struct {
	FinishedAt   time.Time
	Score        int64
	Rounds       int
	Hits         int
	Misses       int
	BestReaction time.Duration
	MeanReaction time.Duration
}

// Store persists game records in SQLite
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite history store and creates its schema
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts one finished game
func (s *Store) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if rec.Score < 0 || rec.Hits < 0 || rec.Misses < 0 || rec.Rounds < rec.Hits+rec.Misses {
		return fmt.Errorf("inconsistent record: score %d, %d rounds, %d hits, %d misses",
			rec.Score, rec.Rounds, rec.Hits, rec.Misses)
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO games (finished_at, score, rounds, hits, misses, best_reaction_ms, mean_reaction_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		toMillis(rec.FinishedAt), rec.Score, rec.Rounds, rec.Hits, rec.Misses,
		rec.BestReaction.Milliseconds(), rec.MeanReaction.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	return nil
}

// Best returns the highest scoring game, earliest first on ties
func (s *Store) Best(ctx context.Context) (Record, error) {
	rows, err := s.query(ctx, `ORDER BY score DESC, finished_at ASC LIMIT 1`)
	if err != nil {
		return Record{}, err
	}
	if len(rows) == 0 {
		return Record{}, ErrNoGames
	}
	return rows[0], nil
}

// Recent returns up to limit games, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	return s.query(ctx, fmt.Sprintf(`ORDER BY finished_at DESC, id DESC LIMIT %d`, limit))
}

func (s *Store) query(ctx context.Context, tail string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT finished_at, score, rounds, hits, misses, best_reaction_ms, mean_reaction_ms FROM games `+tail)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec            Record
			finishedAt     int64
			bestMs, meanMs int64
		)
		if err := rows.Scan(&finishedAt, &rec.Score, &rec.Rounds, &rec.Hits, &rec.Misses, &bestMs, &meanMs); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		rec.FinishedAt = fromMillis(finishedAt)
		rec.BestReaction = time.Duration(bestMs) * time.Millisecond
		rec.MeanReaction = time.Duration(meanMs) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return out, nil
}
