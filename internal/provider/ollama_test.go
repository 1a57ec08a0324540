package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func collect(t *testing.T, seq func(func(Fragment) bool)) (string, error) {
	t.Helper()
	var b strings.Builder
	var streamErr error
	for frag := range seq {
		if frag.Err != nil {
			streamErr = frag.Err
			continue
		}
		b.WriteString(frag.Text)
	}
	return b.String(), streamErr
}

func TestOllamaStreamRoundTrip(t *testing.T) {
	body := `{"message":{"content":"Hel"}}
{"message":{"content":"lo "}}
{"message":{"content":"world"}}
{"done":true}
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:4b")
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "Hello world" {
		t.Errorf("got %q, want %q", got, "Hello world")
	}
}

func TestOllamaStreamSkipsMalformedLines(t *testing.T) {
	body := `{"message":{"content":"a"}}
this is not json
{"message":{"content":"b"}}
{"message":{"content":"c"}}
`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "abc" {
		t.Errorf("got %q, want %q", got, "abc")
	}
}

func TestOllamaStreamNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "missing")
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err == nil {
		t.Fatal("want error fragment for non-200 response")
	}
	if got != "" {
		t.Errorf("unexpected text %q", got)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error %q does not mention the status", err)
	}
}

func TestOllamaStreamAbandonment(t *testing.T) {
	body := strings.Repeat(`{"message":{"content":"x"}}`+"\n", 100)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	n := 0
	for frag := range c.Stream(context.Background(), Request{Message: "hi"}) {
		if frag.Err != nil {
			t.Fatalf("stream error: %v", frag.Err)
		}
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("pulled %d fragments, want 3", n)
	}
}

func TestOllamaProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[{"name":"gemma3:4b"},{"name":"llama3:8b"}]}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "gemma3:4b")
	c.HTTPClient = srv.Client()
	ok, msg := c.Probe(context.Background())
	if !ok {
		t.Fatalf("probe failed: %s", msg)
	}
	if !strings.Contains(msg, "gemma3:4b") {
		t.Errorf("probe message %q does not list models", msg)
	}
}

func TestOllamaProbeConnectionRefused(t *testing.T) {
	c := NewOllamaClient("http://127.0.0.1:1", "m")
	ok, msg := c.Probe(context.Background())
	if ok {
		t.Fatal("probe must fail against a closed port")
	}
	if msg == "" {
		t.Error("probe failure needs a reason")
	}
}

func TestOllamaListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"models":[{"name":"a"},{"name":"b"}]}`))
	}))
	defer srv.Close()

	c := NewOllamaClient(srv.URL, "m")
	c.HTTPClient = srv.Client()
	models, err := c.ListModels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 2 || models[0] != "a" || models[1] != "b" {
		t.Errorf("models = %v", models)
	}
}
