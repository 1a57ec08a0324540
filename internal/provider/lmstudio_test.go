package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLMStudioStreamRoundTrip(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"Hel"}}]}

data: {"choices":[{"delta":{"content":"lo"}}]}

data: [DONE]
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewLMStudioClient(srv.URL, "")
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "Hello" {
		t.Errorf("got %q, want %q", got, "Hello")
	}
}

func TestLMStudioStreamStopsAtDone(t *testing.T) {
	body := `data: {"choices":[{"delta":{"content":"a"}}]}

data: [DONE]

data: {"choices":[{"delta":{"content":"after done"}}]}
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewLMStudioClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}

func TestLMStudioStreamSkipsNonDataLines(t *testing.T) {
	body := `event: message
: keep-alive comment
data: {"choices":[{"delta":{"content":"x"}}]}
data: definitely not json
data: {"choices":[]}
data: [DONE]
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewLMStudioClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "x" {
		t.Errorf("got %q, want %q", got, "x")
	}
}

func TestLMStudioStreamJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"model not loaded"}}`))
	}))
	defer srv.Close()

	c := NewLMStudioClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	_, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err == nil {
		t.Fatal("want error fragment")
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("error %q should carry the api message", err)
	}
}

func TestLMStudioStreamNonJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewLMStudioClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	_, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err == nil {
		t.Fatal("want error fragment")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q should fall back to the status code", err)
	}
}

func TestLMStudioProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"id":"default"}]}`))
	}))
	defer srv.Close()

	c := NewLMStudioClient(srv.URL, "")
	c.HTTPClient = srv.Client()
	if ok, msg := c.Probe(context.Background()); !ok {
		t.Fatalf("probe failed: %s", msg)
	}
}

func TestLMStudioDefaults(t *testing.T) {
	c := NewLMStudioClient("", "")
	if c.BaseURL != "http://localhost:1234" {
		t.Errorf("base url = %q", c.BaseURL)
	}
	if c.Model != "default" {
		t.Errorf("model = %q", c.Model)
	}
}
