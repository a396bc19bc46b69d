package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"propscout/httputil"
	"propscout/models"
)

// fakeProvider serves canned extract responses and captures requests.
func fakeProvider(t *testing.T, response interface{}) (*httptest.Server, *map[string]interface{}) {
	t.Helper()
	var captured map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/extract" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)

	return srv, &captured
}

func newTestAgent(t *testing.T, baseURL string) *Agent {
	t.Helper()
	cfg := testConfig()
	cfg.Firecrawl.BaseURL = baseURL
	return New(cfg, httputil.NewClients(&cfg.Firecrawl))
}

func TestFindPropertiesEndToEnd(t *testing.T) {
	response := models.ExtractionResponse{
		Success: true,
		Data: map[string]interface{}{
			"properties": []interface{}{
				map[string]interface{}{
					"building_name":    "Skyline Towers",
					"property_type":    "Flat",
					"location_address": "Bandra West",
					"price":            "2.1 Cr",
					"description":      "2BHK sea view",
				},
			},
		},
		Status:    "completed",
		ExpiresAt: "2026-01-01T00:00:00Z",
	}
	srv, captured := fakeProvider(t, response)

	a := newTestAgent(t, srv.URL)
	digest, err := a.FindProperties(context.Background(), models.SearchQuery{
		City:     "Mumbai",
		MaxPrice: 2.5,
		Category: models.CategoryResidential,
		Type:     models.TypeFlat,
	})
	if err != nil {
		t.Fatalf("FindProperties failed: %v", err)
	}

	for _, want := range []string{"Skyline Towers", "Bandra West", "Flat", "2.1 Cr", "2BHK sea view"} {
		if !strings.Contains(digest, want) {
			t.Fatalf("digest missing %q:\n%s", want, digest)
		}
	}

	urls, ok := (*captured)["urls"].([]interface{})
	if !ok || len(urls) != 3 {
		t.Fatalf("expected 3 urls in request, got %v", (*captured)["urls"])
	}
	for _, u := range urls {
		if !strings.Contains(u.(string), "mumbai") {
			t.Fatalf("request URL missing city token: %v", u)
		}
	}
	if _, ok := (*captured)["schema"]; !ok {
		t.Fatal("request missing schema")
	}

	agentField, ok := (*captured)["agent"].(map[string]interface{})
	if !ok || agentField["model"] != "o3-mini" {
		t.Fatalf("expected model binding in request, got %v", (*captured)["agent"])
	}
}

func TestFindPropertiesNoData(t *testing.T) {
	srv, _ := fakeProvider(t, models.ExtractionResponse{
		Success: true,
		Data:    map[string]interface{}{},
		Status:  "completed",
	})

	a := newTestAgent(t, srv.URL)
	digest, err := a.FindProperties(context.Background(), models.SearchQuery{City: "Mumbai"})
	if err != nil {
		t.Fatalf("expected recovered outcome, got error: %v", err)
	}
	if digest != NoDataMessage {
		t.Fatalf("expected sentinel, got %q", digest)
	}
}

func TestGetLocationTrendsAlwaysPlaceholder(t *testing.T) {
	// Even a rich trends payload must not leak into the output while
	// the formatter is a stub.
	srv, captured := fakeProvider(t, models.ExtractionResponse{
		Success: true,
		Data: map[string]interface{}{
			"locations": []interface{}{
				map[string]interface{}{
					"location":         "Bandra",
					"price_per_sqft":   45000.0,
					"percent_increase": 8.5,
					"rental_yield":     3.1,
				},
			},
		},
		Status: "completed",
	})

	a := newTestAgent(t, srv.URL)
	out, err := a.GetLocationTrends(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("GetLocationTrends failed: %v", err)
	}
	if out != TrendsPlaceholder {
		t.Fatalf("expected placeholder, got %q", out)
	}
	if strings.Contains(out, "Bandra") {
		t.Fatalf("trend data leaked into output: %q", out)
	}

	urls, ok := (*captured)["urls"].([]interface{})
	if !ok || len(urls) != 1 {
		t.Fatalf("expected 1 trends URL, got %v", (*captured)["urls"])
	}
}

func TestFindPropertiesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "payment required", http.StatusPaymentRequired)
	}))
	t.Cleanup(srv.Close)

	a := newTestAgent(t, srv.URL)
	_, err := a.FindProperties(context.Background(), models.SearchQuery{City: "Mumbai"})
	if err == nil {
		t.Fatal("expected error from provider rejection")
	}
}
