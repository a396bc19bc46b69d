// Package extract is the client for the external LLM-guided
// web-extraction provider. Each call is a single synchronous, metered
// network round trip: no retries, no local fan-out across URLs, no
// partial-result assembly.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"propscout/models"
)

// StatusError is returned when the provider answers with a non-2xx
// status, so callers can tell a provider rejection from a transport
// failure.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("extract failed %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewClient binds one provider endpoint, API key and chat-model ID. The
// model rides along in each request for the provider's analysis step;
// this layer never calls the model directly.
func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  httpClient,
	}
}

// Extract runs one extraction. Transport errors and provider rejections
// come back as errors; a 2xx answer is decoded into the response
// envelope whether or not its payload turns out to be usable.
func (c *Client) Extract(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResponse, error) {
	payload := map[string]interface{}{
		"urls":   req.URLs,
		"prompt": req.Prompt,
		"schema": req.Schema,
		"agent": map[string]interface{}{
			"model": c.model,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal extract request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extract request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var envelope models.ExtractionResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode extract response: %w", err)
	}

	return &envelope, nil
}
