// Package llm holds the chat-completion clients the extraction pipeline talks
// to. Each client is a single blocking round-trip to one backend; fallback
// across backends lives in the extract package, not here.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyCompletion is returned when a backend answers with no usable text.
var ErrEmptyCompletion = errors.New("llm: empty completion from model")

// Client is one chat-completion backend.
type Client interface {
	// Name identifies the backend for logs and metrics.
	Name() string
	// Complete sends the prompt and returns the raw completion text. No
	// parsing happens here; whatever the model said comes back verbatim.
	Complete(ctx context.Context, prompt string) (string, error)
}

// systemPreamble is sent as the system message on chat-style backends.
const systemPreamble = "You are a cyber threat intelligence analyst. Respond with JSON only."
