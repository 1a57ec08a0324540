package provider

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// chatDelta is the streaming chunk shape shared by LM Studio and OpenAI.
type chatDelta struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// apiErrorBody is the JSON error envelope returned on non-200 responses.
type apiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// readAPIError drains a non-200 response body and extracts the error message,
// falling back to the HTTP status when the body is not the expected JSON.
func readAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var e apiErrorBody
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return fmt.Errorf("api error: %s", e.Error.Message)
	}
	return fmt.Errorf("server returned status %d", resp.StatusCode)
}

// streamOpenAIDialect decodes an OpenAI-style SSE body: lines prefixed
// "data: ", each a JSON delta with choices[0].delta.content, terminated by a
// literal [DONE]. Malformed lines are skipped. Returns false if the caller
// stopped pulling.
func streamOpenAIDialect(body io.Reader, yield func(Fragment) bool) bool {
	sc := bufio.NewScanner(body)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := line[len("data: "):]
		if data == "[DONE]" {
			return true
		}
		var chunk chatDelta
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			slog.Debug("skipping malformed stream line", "err", err)
			continue
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			if !yield(Fragment{Text: text}) {
				return false
			}
		}
	}
	if err := sc.Err(); err != nil {
		yield(Fragment{Err: fmt.Errorf("read stream: %w", err)})
	}
	return true
}
