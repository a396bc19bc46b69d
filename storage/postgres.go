package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"propscout/models"
)

// PostgresStore mirrors run history into a shared Postgres database. It
// is optional: when no DATABASE_URL is configured the SQLite store runs
// alone.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS search_runs (
		id UUID PRIMARY KEY,
		kind TEXT NOT NULL,
		city TEXT,
		max_price DOUBLE PRECISION,
		category TEXT,
		property_type TEXT,
		model TEXT,
		started_at TIMESTAMPTZ,
		finished_at TIMESTAMPTZ,
		status TEXT,
		records_found INTEGER DEFAULT 0,
		digest TEXT,
		error TEXT
	)`

	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpsertRun(ctx context.Context, run *models.SearchRun) error {
	query := `
		INSERT INTO search_runs (
			id, kind, city, max_price, category, property_type, model,
			started_at, finished_at, status, records_found, digest, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			finished_at = EXCLUDED.finished_at,
			status = EXCLUDED.status,
			records_found = EXCLUDED.records_found,
			digest = EXCLUDED.digest,
			error = EXCLUDED.error`

	_, err := s.pool.Exec(ctx, query,
		run.ID, run.Kind, run.City, run.MaxPrice, run.Category, run.PropertyType,
		run.Model, run.StartedAt, run.FinishedAt, run.Status, run.RecordsFound,
		run.Digest, run.Error,
	)
	if err != nil {
		return fmt.Errorf("upsert run: %w", err)
	}
	return nil
}

func (s *PostgresStore) RecentRuns(ctx context.Context, limit int) ([]models.SearchRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, kind, city, max_price, category, property_type, model,
		       started_at, finished_at, status, records_found, digest, error
		FROM search_runs
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.SearchRun
	for rows.Next() {
		var run models.SearchRun
		if err := rows.Scan(
			&run.ID, &run.Kind, &run.City, &run.MaxPrice, &run.Category,
			&run.PropertyType, &run.Model, &run.StartedAt, &run.FinishedAt,
			&run.Status, &run.RecordsFound, &run.Digest, &run.Error,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
