package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"strings"
)

// LMStudioClient talks to a local LM Studio server over its OpenAI-compatible
// API: SSE chat completions, /v1/models for probing.
type LMStudioClient struct {
	BaseURL string
	Model   string

	HTTPClient *http.Client
}

func NewLMStudioClient(baseURL, model string) *LMStudioClient {
	if baseURL == "" {
		baseURL = "http://localhost:1234"
	}
	if model == "" {
		model = "default"
	}
	return &LMStudioClient{BaseURL: strings.TrimSuffix(baseURL, "/"), Model: model}
}

func (c *LMStudioClient) httpClient(timeout bool) *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	if timeout {
		return &http.Client{Timeout: generateTimeout}
	}
	return &http.Client{Timeout: probeTimeout}
}

func (c *LMStudioClient) Probe(ctx context.Context) (bool, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/models", nil)
	if err != nil {
		return false, err.Error()
	}
	resp, err := c.httpClient(false).Do(req)
	if err != nil {
		return false, fmt.Sprintf("connection failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Sprintf("server returned status %d", resp.StatusCode)
	}
	return true, "connected to LM Studio"
}

func (c *LMStudioClient) Stream(ctx context.Context, req Request) iter.Seq[Fragment] {
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
