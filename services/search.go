package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"propscout/agent"
	"propscout/models"
	"propscout/storage"
)

// SearchService wraps the session agent with run recording. It also
// serializes agent use: overlapping calls against one agent are
// undefined, so every operation takes the service lock.
type SearchService struct {
	mu      sync.Mutex
	agent   *agent.Agent
	store   *storage.SQLiteStore
	pgStore *storage.PostgresStore
}

func NewSearchService(a *agent.Agent, store *storage.SQLiteStore) *SearchService {
	return &SearchService{agent: a, store: store}
}

// SetPostgres enables mirroring run history into the shared store.
func (s *SearchService) SetPostgres(pg *storage.PostgresStore) {
	s.pgStore = pg
}

// ReplaceAgent swaps in a new agent after a model change. The old agent
// is discarded wholesale, never reconfigured.
func (s *SearchService) ReplaceAgent(a *agent.Agent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agent = a
}

// Search runs one property search, records the run, and returns it with
// the digest filled in. The returned error is the agent's: transport
// failures and malformed provider records; a no-data outcome is a
// completed run, not an error.
func (s *SearchService) Search(ctx context.Context, query models.SearchQuery) (*models.SearchRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := s.newRun(models.RunKindProperties, query)
	s.record(ctx, run)

	digest, err := s.agent.FindProperties(ctx, query)
	s.finishRun(ctx, run, digest, err)
	if err != nil {
		return run, err
	}
	return run, nil
}

// Trends runs the locality-trend extraction for a city and records it.
func (s *SearchService) Trends(ctx context.Context, city string) (*models.SearchRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := s.newRun(models.RunKindTrends, models.SearchQuery{City: city})
	s.record(ctx, run)

	digest, err := s.agent.GetLocationTrends(ctx, city)
	s.finishRun(ctx, run, digest, err)
	if err != nil {
		return run, err
	}
	return run, nil
}

func (s *SearchService) AddWatch(query models.SearchQuery) (*models.Watch, error) {
	watch := &models.Watch{
		ID:        uuid.NewString(),
		Query:     query,
		CreatedAt: time.Now().UTC(),
		Enabled:   true,
	}
	if err := s.store.AddWatch(watch); err != nil {
		return nil, err
	}
	return watch, nil
}

// RunWatches re-executes every enabled watch. Individual failures are
// logged and do not stop the sweep.
func (s *SearchService) RunWatches(ctx context.Context) error {
	watches, err := s.store.ListWatches(true)
	if err != nil {
		return err
	}

	for _, w := range watches {
		log.Printf("Watch %s: searching %s", w.ID, w.Query.City)
		if _, err := s.Search(ctx, w.Query); err != nil {
			log.Printf("Watch %s failed: %v", w.ID, err)
		}
		if err := s.store.TouchWatch(w.ID, time.Now().UTC()); err != nil {
			log.Printf("Error updating watch %s: %v", w.ID, err)
		}
	}

	return nil
}

func (s *SearchService) newRun(kind models.RunKind, query models.SearchQuery) *models.SearchRun {
	return &models.SearchRun{
		ID:           uuid.NewString(),
		Kind:         kind,
		City:         query.City,
		MaxPrice:     query.MaxPrice,
		Category:     query.Category,
		PropertyType: query.Type,
		Model:        s.agent.Model(),
		StartedAt:    time.Now().UTC(),
		Status:       models.RunStatusRunning,
	}
}

func (s *SearchService) finishRun(ctx context.Context, run *models.SearchRun, digest string, err error) {
	now := time.Now().UTC()
	run.FinishedAt = &now
	run.Digest = digest

	switch {
	case err != nil:
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
	case digest == agent.NoDataMessage:
		run.Status = models.RunStatusNoData
	default:
		run.Status = models.RunStatusCompleted
		if run.Kind == models.RunKindProperties {
			run.RecordsFound = strings.Count(digest, "\n---\n")
		}
	}

	s.record(ctx, run)
}

func (s *SearchService) record(ctx context.Context, run *models.SearchRun) {
	if err := s.store.SaveRun(run); err != nil {
		log.Printf("Error saving run %s: %v", run.ID, err)
	}
	if s.pgStore != nil {
		if err := s.pgStore.UpsertRun(ctx, run); err != nil {
			log.Printf("Error mirroring run %s to Postgres: %v", run.ID, err)
		}
	}
}

// RecentRuns exposes run history for the API and CLI.
func (s *SearchService) RecentRuns(limit int) ([]models.SearchRun, error) {
	return s.store.RecentRuns(limit)
}

// Watches exposes saved watches for the API.
func (s *SearchService) Watches() ([]models.Watch, error) {
	return s.store.ListWatches(false)
}
