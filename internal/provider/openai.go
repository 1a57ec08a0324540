package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
)

const openAIBaseURL = "https://api.openai.com"

// ErrMissingAPIKey is returned before any network call when a cloud client
// has no credential.
var ErrMissingAPIKey = errors.New("api key is required for cloud providers")

// OpenAIClient talks to the OpenAI chat completions API with bearer auth.
// The wire dialect is the same SSE delta stream LM Studio speaks.
type OpenAIClient struct {
	BaseURL string
	Model   string
	APIKey  string

	HTTPClient *http.Client
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{BaseURL: openAIBaseURL, Model: model, APIKey: apiKey}
}

func (c *OpenAIClient) httpClient(timeout bool) *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	if timeout {
		return &http.Client{Timeout: generateTimeout}
	}
	return &http.Client{Timeout: cloudProbeTimeout}
}

// Probe lists models as a lightweight authenticated round trip; it never runs
// a full generation.
func (c *OpenAIClient) Probe(ctx context.Context) (bool, string) {
	if c.APIKey == "" {
		return false, ErrMissingAPIKey.Error()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/models", nil)
	if err != nil {
		return false, err.Error()
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.httpClient(false).Do(req)
	if err != nil {
		return false, fmt.Sprintf("connection failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("api returned status %d", resp.StatusCode)
	}
	return true, "connected to OpenAI"
}

func (c *OpenAIClient) Stream(ctx context.Context, req Request) iter.Seq[Fragment] {
	if c.APIKey == "" {
		return errorSeq(ErrMissingAPIKey)
	}
	return func(yield func(Fragment) bool) {
		payload := map[string]any{
			"model":    c.Model,
			"messages": buildMessages(req),
			"stream":   true,
		}
		body, err := json.Marshal(payload)
		if err != nil {
			yield(Fragment{Err: err})
			return
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			yield(Fragment{Err: err})
			return
		}
		httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient(true).Do(httpReq)
		if err != nil {
			yield(Fragment{Err: fmt.Errorf("connection failed: %w", err)})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			yield(Fragment{Err: readAPIError(resp)})
			return
		}
		streamOpenAIDialect(resp.Body, yield)
	}
}
