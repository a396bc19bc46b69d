package httputil

import (
	"net/http"
	"time"

	"propscout/config"
)

type Clients struct {
	Extract *http.Client // extraction provider API
}

// NewClients builds the shared HTTP clients. The extraction call can run
// a multi-page crawl provider-side, so its timeout is generous.
func NewClients(cfg *config.FirecrawlConfig) *Clients {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Clients{
		Extract: &http.Client{Timeout: timeout},
	}
}
