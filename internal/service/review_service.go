package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/validation"
)

// ReviewClient forwards source text to the external code review service.
// The remote is treated as opaque: one blocking call, no retries, any error
// surfaces as a generic failure.
type ReviewClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewReviewClient creates a client for the review service at baseURL.
func NewReviewClient(baseURL, apiKey string) *ReviewClient {
	return &ReviewClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type reviewRequest struct {
	SourceCode string `json:"source_code"`
}

type reviewResponse struct {
	Message string `json:"message"`
	Data    string `json:"data"`
}

// Review posts the source text to {baseURL}/review-code and returns the
// remote response's data field.
func (c *ReviewClient) Review(ctx context.Context, req domain.ReviewSnippetRequest) (string, error) {
	if err := validation.ValidateReviewSnippet(&req); err != nil {
		return "", err
	}
	body, err := json.Marshal(reviewRequest{SourceCode: req.SourceCode})
	if err != nil {
		return "", fmt.Errorf("marshal review request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/review-code", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build review request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-API-Key", c.apiKey)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call review service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("review service returned %d", resp.StatusCode)
	}
	var out reviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode review response: %w", err)
	}
	return out.Data, nil
}
