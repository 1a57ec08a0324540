package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strings"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com"
	anthropicVersion   = "2023-06-01"
	anthropicKeyPrefix = "sk-ant-"
	anthropicMaxTokens = 4096
)

// AnthropicClient talks to the Anthropic messages API. Streaming events carry
// a type discriminator; only text_delta payloads contribute output.
type AnthropicClient struct {
	BaseURL string
	Model   string
	APIKey  string

	HTTPClient *http.Client
}

func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{BaseURL: anthropicBaseURL, Model: model, APIKey: apiKey}
}

func (c *AnthropicClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: generateTimeout}
}

// Probe validates the credential shape only. Anthropic has no cheap list
// endpoint, so no network round trip happens here.
func (c *AnthropicClient) Probe(ctx context.Context) (bool, string) {
	if c.APIKey == "" {
		return false, ErrMissingAPIKey.Error()
	}
	if !strings.HasPrefix(c.APIKey, anthropicKeyPrefix) {
		return false, "invalid api key format"
	}
	return true, "Anthropic api key format valid"
}

// anthropicEvent is the discriminated SSE payload; fields beyond the
// content_block_delta shape are ignored.
type anthropicEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
}

func (c *AnthropicClient) Stream(ctx context.Context, req Request) iter.Seq[Fragment] {
	if c.APIKey == "" {
		return errorSeq(ErrMissingAPIKey)
	}
	return func(yield func(Fragment) bool) {
		messages := make([]Turn, 0, len(req.History)+1)
		messages = append(messages, req.History...)
		messages = append(messages, Turn{Role: "user", Content: req.Message})
		payload := map[string]any{
			"model":      c.Model,
			"max_tokens": anthropicMaxTokens,
			"messages":   messages,
			"stream":     true,
		}
		if req.System != "" {
			payload["system"] = req.System
		}
		body, err := json.Marshal(payload)
		if err != nil {
			yield(Fragment{Err: err})
			return
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/messages", bytes.NewReader(body))
		if err != nil {
			yield(Fragment{Err: err})
			return
		}
		httpReq.Header.Set("x-api-key", c.APIKey)
		httpReq.Header.Set("anthropic-version", anthropicVersion)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient().Do(httpReq)
		if err != nil {
			yield(Fragment{Err: fmt.Errorf("connection failed: %w", err)})
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			yield(Fragment{Err: readAPIError(resp)})
			return
		}

		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var ev anthropicEvent
			if err := json.Unmarshal([]byte(line[len("data: "):]), &ev); err != nil {
				slog.Debug("skipping malformed stream line", "err", err)
				continue
			}
			if ev.Type != "content_block_delta" || ev.Delta.Type != "text_delta" {
				continue
			}
			if ev.Delta.Text != "" {
				if !yield(Fragment{Text: ev.Delta.Text}) {
					return
				}
			}
		}
		if err := sc.Err(); err != nil {
			yield(Fragment{Err: fmt.Errorf("read stream: %w", err)})
		}
	}
}
