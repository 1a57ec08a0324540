// Package gateway owns the AI backend configuration and hands out one
// adapter at a time behind a single probe/generate entry point.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/accesstwin/accesstwin-go/internal/provider"
)

// Kind distinguishes local backends from cloud ones. Cloud backends are
// additionally gated on the two consent flags.
type Kind string

const (
	KindLocal Kind = "local"
	KindCloud Kind = "cloud"
)

// Provider names the concrete backend integration.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderLMStudio  Provider = "lmstudio"
	ProviderGGUF      Provider = "gguf"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config is the complete backend configuration. It is mutated only through
// Configure and SetConsent; callers serialize configuration changes.
type Config struct {
	Kind     Kind
	Provider Provider
	Model    string
	BaseURL  string
	APIKey   string

	ConsentInstitutional bool
	ConsentData          bool
}

var (
	// ErrNotConfigured is yielded when generate/probe runs before Configure.
	ErrNotConfigured = errors.New("no AI backend configured")
	// ErrConsentRequired is yielded when a cloud backend is selected but
	// consent has not been granted. No network call is made in that case.
	ErrConsentRequired = errors.New("cloud AI requires both consent acknowledgements")
)

// Gateway is the facade over the provider adapters. Exactly one adapter is
// live at a time; Configure discards the previous one. It is not safe to
// reconfigure concurrently with an in-flight stream.
type Gateway struct {
	cfg    Config
	client provider.Client
}

func New() *Gateway {
	return &Gateway{}
}

// Configure validates cfg, builds the matching adapter, and replaces any
// prior one.
func (g *Gateway) Configure(cfg Config) error {
	client, err := makeClient(cfg)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.client = client
	return nil
}

// SetConsent records the two cloud-consent acknowledgements.
func (g *Gateway) SetConsent(institutional, data bool) {
	g.cfg.ConsentInstitutional = institutional
	g.cfg.ConsentData = data
}

// ConsentGranted reports whether both consent flags are set.
func (g *Gateway) ConsentGranted() bool {
	return g.cfg.ConsentInstitutional && g.cfg.ConsentData
}

// Config returns a copy of the current configuration.
func (g *Gateway) Config() Config {
	return g.cfg
}

// Probe checks connectivity of the configured backend. It never fails
// out-of-band; an unconfigured gateway is (false, reason).
func (g *Gateway) Probe(ctx context.Context) (bool, string) {
	if g.client == nil {
		return false, ErrNotConfigured.Error()
	}
	return g.client.Probe(ctx)
}

// Generate streams a response for message. System and history are passed
// through to the adapter unchanged. Configuration and consent failures are
// reported synchronously as a single error fragment before any I/O.
func (g *Gateway) Generate(ctx context.Context, message, system string, history []provider.Turn) iter.Seq[provider.Fragment] {
	if g.client == nil {
		return oneErr(ErrNotConfigured)
	}
	if g.cfg.Kind == KindCloud && !g.ConsentGranted() {
		return oneErr(ErrConsentRequired)
	}
	return g.client.Stream(ctx, provider.Request{Message: message, System: system, History: history})
}

func oneErr(err error) iter.Seq[provider.Fragment] {
	return func(yield func(provider.Fragment) bool) {
		yield(provider.Fragment{Err: err})
	}
}

// makeClient builds the adapter for cfg. The provider set is closed: the
// five variants below are the only ones.
func makeClient(cfg Config) (provider.Client, error) {
	switch cfg.Kind {
	case KindLocal:
		switch cfg.Provider {
		case ProviderOllama:
			return provider.NewOllamaClient(cfg.BaseURL, cfg.Model), nil
		case ProviderLMStudio:
			return provider.NewLMStudioClient(cfg.BaseURL, cfg.Model), nil
		case ProviderGGUF:
			return provider.NewGGUFClient(cfg.Model)
		}
	case KindCloud:
		switch cfg.Provider {
		case ProviderOpenAI:
			return provider.NewOpenAIClient(cfg.APIKey, cfg.Model), nil
		case ProviderAnthropic:
			return provider.NewAnthropicClient(cfg.APIKey, cfg.Model), nil
		}
	}
	return nil, fmt.Errorf("unsupported backend: %s/%s", cfg.Kind, cfg.Provider)
}
