package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mailtriage/internal/model"
	"mailtriage/pkg/metrics"
	"mailtriage/pkg/trace"
)

// Client calls the external AI extraction endpoint. The endpoint is
// best-effort: any of the returned fields may be empty or garbage, and the
// caller must validate them all.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second, // keep the worker from hanging on a stuck endpoint
		},
	}
}

type Request struct {
	EmailID string `json:"email_id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Extract posts the email body to the extraction endpoint and returns the
// four candidate fields.
func (c *Client) Extract(ctx context.Context, req Request) (*model.Extraction, error) {
	start := time.Now()

	ex, err := c.extract(ctx, req)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.RecordExtractionLatency(status, time.Since(start))

	return ex, err
}

func (c *Client) extract(ctx context.Context, req Request) (*model.Extraction, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if traceID := trace.FromContext(ctx); traceID != "" {
		httpReq.Header.Set(trace.HeaderName(), traceID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		// retryable
		return nil, fmt.Errorf("extraction service 5xx: %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service error: %d", resp.StatusCode)
	}

	var ex model.Extraction
	if err := json.NewDecoder(resp.Body).Decode(&ex); err != nil {
		return nil, err
	}
	return &ex, nil
}
