package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIStreamRequiresKey(t *testing.T) {
	c := NewOpenAIClient("", "gpt-4o-mini")
	c.HTTPClient = &http.Client{Transport: failingTransport{t}}

	var frags []Fragment
	for frag := range c.Stream(context.Background(), Request{Message: "hi"}) {
		frags = append(frags, frag)
	}
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want exactly 1", len(frags))
	}
	if !errors.Is(frags[0].Err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", frags[0].Err)
	}
}

func TestOpenAIProbeRequiresKey(t *testing.T) {
	c := NewOpenAIClient("", "gpt-4o-mini")
	c.HTTPClient = &http.Client{Transport: failingTransport{t}}
	if ok, _ := c.Probe(context.Background()); ok {
		t.Fatal("probe without a key must fail")
	}
}

// failingTransport fails the test if any request is attempted.
type failingTransport struct{ t *testing.T }

func (f failingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.t.Errorf("unexpected network request to %s", r.URL)
	return nil, errors.New("no network in this test")
}

func TestOpenAIStreamSendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test-123" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte("data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n\ndata: [DONE]\n"))
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test-123", "gpt-4o-mini")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	got, err := collect(t, c.Stream(context.Background(), Request{Message: "hi"}))
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "ok" {
		t.Errorf("got %q", got)
	}
}

func TestOpenAIProbeRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("probe must authenticate")
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-test-123", "gpt-4o-mini")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	if ok, msg := c.Probe(context.Background()); !ok {
		t.Fatalf("probe failed: %s", msg)
	}
}

func TestOpenAIProbeBadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewOpenAIClient("sk-wrong", "gpt-4o-mini")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	ok, msg := c.Probe(context.Background())
	if ok {
		t.Fatal("probe with a rejected key must fail")
	}
	if msg == "" {
		t.Error("probe failure needs a reason")
	}
}
