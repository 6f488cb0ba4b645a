package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type predictRequest struct {
	Instances []Tensor `json:"instances"`
}

type predictResponse struct {
	Predictions []Distribution `json:"predictions"`
	Error       string         `json:"error,omitempty"`
}

// Remote calls a TensorFlow Serving REST predict endpoint,
// e.g. http://localhost:8501/v1/models/cultural_site:predict.
type Remote struct {
	endpoint string
	client   *http.Client
}

// NewRemote creates a Remote classifier with a per-call timeout.
func NewRemote(endpoint string, timeout time.Duration) *Remote {
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Classify sends one instance and returns its score vector.
func (r *Remote) Classify(ctx context.Context, t Tensor) (Distribution, error) {
	body, err := json.Marshal(predictRequest{Instances: []Tensor{t}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInference, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrInference, err)
	}

	var out predictResponse
	if err := json.Unmarshal(data, &out); err != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("%w: decode response: %w", ErrInference, err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = string(bytes.TrimSpace(data))
		}
		return nil, fmt.Errorf("%w: status %d: %s", ErrInference, resp.StatusCode, msg)
	}

	if len(out.Predictions) == 0 || len(out.Predictions[0]) == 0 {
		return nil, fmt.Errorf("%w: empty predictions", ErrInference)
	}

	return out.Predictions[0], nil
}
