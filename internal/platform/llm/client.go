// Package llm provides the client for the external reasoning service. The
// service is treated as an opaque text/vision completion interface: callers
// hand it instructions and get raw text back, with no retry, batching, or
// streaming semantics.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the reasoning service call itself failed
// (network, timeout, auth, or a non-2xx response). Callers decide whether
// to retry; the client never does.
var ErrUnavailable = errors.New("reasoning service unavailable")

// Completer generates a text completion from a system instruction and a user
// message. The returned string is raw natural-language text that is expected,
// but not guaranteed, to contain structured content.
type Completer interface {
	Complete(ctx context.Context, system, user string, opts ...Option) (string, error)
}

// VisionCompleter analyzes an image alongside a text prompt. Image data is
// raw bytes; mimeType describes the encoding (e.g. "image/png").
type VisionCompleter interface {
	CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Option adjusts per-call completion parameters.
type Option func(*callOptions)

type callOptions struct {
	temperature *float64
	maxTokens   *int
}

// WithTemperature overrides the client's default sampling temperature for a
// single call.
func WithTemperature(t float64) Option {
	return func(o *callOptions) { o.temperature = &t }
}

// WithMaxTokens overrides the completion token budget for a single call.
func WithMaxTokens(n int) Option {
	return func(o *callOptions) { o.maxTokens = &n }
}
