// Package agent implements the property-search session agent: one
// configuration (model choice, credentials) bound to one extraction
// client, exposing the two public search operations. Agents are replaced
// wholesale on model change, never reconfigured in place, and callers
// are expected to serialize invocations against a single agent.
package agent

import (
	"context"

	"propscout/config"
	"propscout/extract"
	"propscout/httputil"
	"propscout/models"
	"propscout/schema"
)

type Agent struct {
	cfg     *config.Config
	extract *extract.Client
}

func New(cfg *config.Config, clients *httputil.Clients) *Agent {
	return &Agent{
		cfg: cfg,
		extract: extract.NewClient(
			cfg.Firecrawl.BaseURL,
			cfg.Firecrawl.APIKey,
			cfg.Model.ID,
			clients.Extract,
		),
	}
}

// Model reports the chat-model ID this agent was configured with.
func (a *Agent) Model() string {
	return a.cfg.Model.ID
}

// FindProperties runs one listing search and returns the formatted
// digest. A response with no usable payload comes back as the no-data
// sentinel string, not an error; transport failures and malformed
// records are returned as errors.
func (a *Agent) FindProperties(ctx context.Context, query models.SearchQuery) (string, error) {
	req := a.buildPropertyRequest(query)

	resp, err := a.extract.Extract(ctx, req)
	if err != nil {
		return "", err
	}

	return FormatProperties(resp)
}

// GetLocationTrends issues the locality price-trend extraction for a
// city. The request is real (cost and latency apply) but its structured
// payload is not yet consumed: the returned text is a fixed placeholder,
// and downstream consumers must not treat it as extracted data.
func (a *Agent) GetLocationTrends(ctx context.Context, city string) (string, error) {
	req := a.buildTrendsRequest(city)

	if _, err := a.extract.Extract(ctx, req); err != nil {
		return "", err
	}

	return TrendsPlaceholder, nil
}

func (a *Agent) buildTrendsRequest(city string) models.ExtractionRequest {
	return models.ExtractionRequest{
		URLs:   []string{expandTemplate(a.cfg.Sources.TrendsTemplate, CityToken(city))},
		Prompt: "Extract price trends data for ALL major localities in the city.",
		Schema: schema.LocationCollection(),
	}
}
