package models

// ExtractionRequest is the typed input for one provider extract call.
// Built fresh per call and never persisted.
type ExtractionRequest struct {
	URLs   []string               `json:"urls"`
	Prompt string                 `json:"prompt"`
	Schema map[string]interface{} `json:"schema"`
}

// ExtractionResponse is the provider's response envelope. Data is
// best-effort schema conformance only: the provider promises the shape,
// not exact keys, so consumers must validate before use.
type ExtractionResponse struct {
	Success   bool                   `json:"success"`
	Data      map[string]interface{} `json:"data"`
	Status    string                 `json:"status"`
	ExpiresAt string                 `json:"expiresAt"`
}
