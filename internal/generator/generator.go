// Package generator produces free text from a prompt using a hosted language model.
package generator

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Result is the outcome of one generation call.
type Result struct {
	Text string
	Err  error
}

// Success returns a Result holding trimmed text. Blank text is an ErrEmptyResponse failure.
func Success(text string) Result {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Err: ErrEmptyResponse}
	}
	return Result{Text: text}
}

// Failure returns a Result holding err.
func Failure(err error) Result {
	return Result{Err: err}
}

// OK reports whether the generation produced usable text.
func (r Result) OK() bool {
	return r.Err == nil && strings.TrimSpace(r.Text) != ""
}

// Generator produces text for a prompt. Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) Result
}

// Options configures the Gemini client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Retries uint64
}

// New returns a Gemini generator, or Disabled when opts carries no API key.
func New(opts Options, logger *slog.Logger) Generator {
	logger = logger.With("system", "generator")
	if opts.APIKey == "" {
		logger.Warn("no api key configured, generation disabled")
		return Disabled{}
	}
	logger.Info("generation enabled", "model", opts.Model)
	return NewGemini(opts, logger)
}

// Disabled fails every call with ErrDisabled.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) Result {
	return Failure(ErrDisabled)
}
