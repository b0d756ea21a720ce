package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    seed NUMERIC(20, 0) NOT NULL,
    map_name TEXT NOT NULL DEFAULT '',
    map_digest TEXT NOT NULL,
    steps BIGINT NOT NULL DEFAULT 0,
    outcome TEXT NOT NULL DEFAULT 'none',
    score INTEGER NOT NULL DEFAULT 0,
    trajectory_digest TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_runs_seed_map ON runs(seed, map_digest);
`

const runColumns = `id, seed::TEXT, map_name, map_digest, steps, outcome, score, trajectory_digest, created_at`

// PostgresStore implements RunStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// SaveRun inserts a run record.
func (s *PostgresStore) SaveRun(ctx context.Context, run *RunRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, seed, map_name, map_digest, steps, outcome, score, trajectory_digest, created_at)
		 VALUES ($1, $2::TEXT::NUMERIC, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, fmt.Sprint(run.Seed), run.MapName, run.MapDigest, run.Steps,
		run.Outcome, run.Score, run.TrajectoryDigest, run.CreatedAt)
	return err
}

// FindRun looks up a run by ID.
func (s *PostgresStore) FindRun(ctx context.Context, id string) (*RunRecord, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+runColumns+` FROM runs WHERE id = $1`, id)
	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return run, err
}

// ListBySeed returns the runs recorded for a seed and map, newest first.
func (s *PostgresStore) ListBySeed(ctx context.Context, seed uint64, mapDigest string) ([]*RunRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE seed = $1::TEXT::NUMERIC AND map_digest = $2
		 ORDER BY created_at DESC`, fmt.Sprint(seed), mapDigest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanRun(row pgx.Row) (*RunRecord, error) {
	var run RunRecord
	var seed string
	err := row.Scan(&run.ID, &seed, &run.MapName, &run.MapDigest, &run.Steps,
		&run.Outcome, &run.Score, &run.TrajectoryDigest, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Sscan(seed, &run.Seed); err != nil {
		return nil, fmt.Errorf("scan seed %q: %w", seed, err)
	}
	return &run, nil
}
