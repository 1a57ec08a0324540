package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"net/http"
	"strings"
)

// OllamaClient talks to a local Ollama server. The chat endpoint streams
// newline-delimited JSON objects; /api/tags lists installed models.
type OllamaClient struct {
	BaseURL string
	Model   string

	// HTTPClient overrides the default transport, used by tests.
	HTTPClient *http.Client
}

func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaClient{BaseURL: strings.TrimSuffix(baseURL, "/"), Model: model}
}

func (c *OllamaClient) httpClient(timeout bool) *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	if timeout {
		return &http.Client{Timeout: generateTimeout}
	}
	return &http.Client{Timeout: probeTimeout}
}

type ollamaTags struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Probe checks the server is up and reports the first few installed models.
func (c *OllamaClient) Probe(ctx context.Context) (bool, string) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, fmt.Sprintf("connection failed: %v", err)
	}
	if len(models) > 5 {
		models = models[:5]
	}
	return true, "connected. models: " + strings.Join(models, ", ")
}

// ListModels returns the names of models installed on the server.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient(false).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	var tags ollamaTags
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

type ollamaChunk struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Stream posts a chat request and yields content fragments as NDJSON lines
// arrive. Malformed lines are skipped; transport failures end the stream with
// one error fragment.
func (c *OllamaClient) Stream(ctx context.Context, req Request) iter.Seq[Fragment] {
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
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat", bytes.NewReader(body))
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
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
			yield(Fragment{Err: fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))})
			return
		}

		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			var chunk ollamaChunk
			if err := json.Unmarshal(line, &chunk); err != nil {
				slog.Debug("skipping malformed stream line", "err", err)
				continue
			}
			if chunk.Message.Content != "" {
				if !yield(Fragment{Text: chunk.Message.Content}) {
					return
				}
			}
		}
		if err := sc.Err(); err != nil {
			yield(Fragment{Err: fmt.Errorf("read stream: %w", err)})
		}
	}
}
