package models

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusNoData    RunStatus = "no_data"
)

// RunKind distinguishes the two agent operations in run history.
type RunKind string

const (
	RunKindProperties RunKind = "properties"
	RunKindTrends     RunKind = "trends"
)

// SearchRun is one recorded agent invocation: the query it ran, how it
// ended, and the digest it produced.
type SearchRun struct {
	ID           string     `json:"id" db:"id"`
	Kind         RunKind    `json:"kind" db:"kind"`
	City         string     `json:"city" db:"city"`
	MaxPrice     float64    `json:"max_price" db:"max_price"`
	Category     string     `json:"category" db:"category"`
	PropertyType string     `json:"property_type" db:"property_type"`
	Model        string     `json:"model" db:"model"`
	StartedAt    time.Time  `json:"started_at" db:"started_at"`
	FinishedAt   *time.Time `json:"finished_at" db:"finished_at"`
	Status       RunStatus  `json:"status" db:"status"`
	RecordsFound int        `json:"records_found" db:"records_found"`
	Digest       string     `json:"digest" db:"digest"`
	Error        string     `json:"error" db:"error"`
}

// Watch is a saved search re-run by the scheduler.
type Watch struct {
	ID        string      `json:"id" db:"id"`
	Query     SearchQuery `json:"query"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	LastRunAt *time.Time  `json:"last_run_at" db:"last_run_at"`
	Enabled   bool        `json:"enabled" db:"enabled"`
}
