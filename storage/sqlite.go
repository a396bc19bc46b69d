package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"propscout/models"
)

// SQLiteStore holds operational data: run history and saved watches.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS search_runs (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		city TEXT,
		max_price REAL,
		category TEXT,
		property_type TEXT,
		model TEXT,
		started_at DATETIME,
		finished_at DATETIME,
		status TEXT,
		records_found INTEGER DEFAULT 0,
		digest TEXT,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_search_runs_started ON search_runs(started_at);

	CREATE TABLE IF NOT EXISTS watches (
		id TEXT PRIMARY KEY,
		city TEXT NOT NULL,
		max_price REAL,
		category TEXT,
		property_type TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_run_at DATETIME,
		enabled BOOLEAN DEFAULT TRUE
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveRun(run *models.SearchRun) error {
	_, err := s.db.Exec(`
		INSERT INTO search_runs (
			id, kind, city, max_price, category, property_type, model,
			started_at, finished_at, status, records_found, digest, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			status = excluded.status,
			records_found = excluded.records_found,
			digest = excluded.digest,
			error = excluded.error`,
		run.ID, run.Kind, run.City, run.MaxPrice, run.Category, run.PropertyType,
		run.Model, run.StartedAt, run.FinishedAt, run.Status, run.RecordsFound,
		run.Digest, run.Error,
	)
	return err
}

func (s *SQLiteStore) RecentRuns(limit int) ([]models.SearchRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, kind, city, max_price, category, property_type, model,
		       started_at, finished_at, status, records_found, digest, error
		FROM search_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.SearchRun
	for rows.Next() {
		var run models.SearchRun
		var finished sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.Kind, &run.City, &run.MaxPrice, &run.Category,
			&run.PropertyType, &run.Model, &run.StartedAt, &finished,
			&run.Status, &run.RecordsFound, &run.Digest, &run.Error,
		); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			run.FinishedAt = &t
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *SQLiteStore) RunCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM search_runs`).Scan(&count)
	return count, err
}

// PruneRuns deletes run rows that started before the cutoff and reports
// how many were removed.
func (s *SQLiteStore) PruneRuns(before time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM search_runs WHERE started_at < ?`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) AddWatch(w *models.Watch) error {
	_, err := s.db.Exec(`
		INSERT INTO watches (id, city, max_price, category, property_type, created_at, enabled)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Query.City, w.Query.MaxPrice, w.Query.Category, w.Query.Type,
		w.CreatedAt, w.Enabled,
	)
	return err
}

func (s *SQLiteStore) ListWatches(enabledOnly bool) ([]models.Watch, error) {
	query := `
		SELECT id, city, max_price, category, property_type, created_at, last_run_at, enabled
		FROM watches`
	if enabledOnly {
		query += ` WHERE enabled`
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watches []models.Watch
	for rows.Next() {
		var w models.Watch
		var lastRun sql.NullTime
		if err := rows.Scan(
			&w.ID, &w.Query.City, &w.Query.MaxPrice, &w.Query.Category,
			&w.Query.Type, &w.CreatedAt, &lastRun, &w.Enabled,
		); err != nil {
			return nil, err
		}
		if lastRun.Valid {
			t := lastRun.Time
			w.LastRunAt = &t
		}
		watches = append(watches, w)
	}

	return watches, rows.Err()
}

func (s *SQLiteStore) TouchWatch(id string, at time.Time) error {
	_, err := s.db.Exec(`UPDATE watches SET last_run_at = ? WHERE id = ?`, at, id)
	return err
}

func (s *SQLiteStore) SetWatchEnabled(id string, enabled bool) error {
	_, err := s.db.Exec(`UPDATE watches SET enabled = ? WHERE id = ?`, enabled, id)
	return err
}
