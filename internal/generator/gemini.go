package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// Defaults for the Gemini client.
const (
	DefaultModel   = "gemini-1.5-flash"
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Gemini calls the generateContent endpoint of the Generative Language API.
type Gemini struct {
	opts    Options
	client  *http.Client
	backoff time.Duration
	logger  *slog.Logger
}

// NewGemini creates a Gemini client. Zero-valued options fall back to package defaults.
func NewGemini(opts Options, logger *slog.Logger) *Gemini {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}

	return &Gemini{
		opts:    opts,
		client:  &http.Client{},
		backoff: 500 * time.Millisecond,
		logger:  logger,
	}
}

// WithBackoff sets the base Fibonacci backoff between retries.
func (g *Gemini) WithBackoff(d time.Duration) *Gemini {
	g.backoff = d
	return g
}

// Generate sends prompt and returns the first candidate's text.
// Transport errors, 429, and 5xx responses are retried.
func (g *Gemini) Generate(ctx context.Context, prompt string) Result {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return Failure(fmt.Errorf("marshal request: %w", err))
	}

	var text string
	b := retry.WithMaxRetries(g.opts.Retries, retry.NewFibonacci(g.backoff))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		t, err := g.call(ctx, body)
		if err != nil {
			return err
		}
		text = t
		return nil
	})
	if err != nil {
		g.logger.Warn("generation failed", "error", err)
		return Failure(err)
	}

	return Success(text)
}

func (g *Gemini) call(ctx context.Context, body []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(g.opts.BaseURL, "/"), g.opts.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.opts.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("%w: %w", ErrRequest, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", retry.RetryableError(fmt.Errorf("%w: read response: %w", ErrRequest, err))
	}

	var out geminiResponse
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if decodeErr == nil && out.Error != nil {
			msg = out.Error.Message
		}
		err := fmt.Errorf("%w: status %d: %s", ErrRequest, resp.StatusCode, msg)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", retry.RetryableError(err)
		}
		return "", err
	}

	if decodeErr != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrRequest, decodeErr)
	}
	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", ErrRequest, out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
