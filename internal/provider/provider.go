package provider

import (
	"context"
	"iter"
	"time"
)

// Turn is one prior exchange in a conversation, caller-owned.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single generation request.
type Request struct {
	Message string
	System  string
	History []Turn
}

// Fragment is one element of a response stream. Either Text is set, or Err
// carries a terminal failure. Partial output already emitted stays valid when
// a trailing error fragment arrives.
type Fragment struct {
	Text string
	Err  error
}

// Client is the uniform contract every backend implements.
//
// Probe reports reachability and never fails out-of-band: a broken backend is
// (false, reason). Stream returns a lazy, finite, non-restartable sequence of
// fragments; breaking out of the range releases the underlying connection or
// engine state. Hard errors arrive as a trailing error fragment.
type Client interface {
	Probe(ctx context.Context) (bool, string)
	Stream(ctx context.Context, req Request) iter.Seq[Fragment]
}

const (
	probeTimeout      = 5 * time.Second
	cloudProbeTimeout = 10 * time.Second
	generateTimeout   = 120 * time.Second
)

// buildMessages flattens system prompt, history, and the user message into the
// chat-message list shared by the Ollama and OpenAI-compatible dialects.
func buildMessages(req Request) []Turn {
	msgs := make([]Turn, 0, len(req.History)+2)
	if req.System != "" {
		msgs = append(msgs, Turn{Role: "system", Content: req.System})
	}
	msgs = append(msgs, req.History...)
	msgs = append(msgs, Turn{Role: "user", Content: req.Message})
	return msgs
}

// errorSeq yields exactly one error fragment.
func errorSeq(err error) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		yield(Fragment{Err: err})
	}
}
