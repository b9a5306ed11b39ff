package esm_embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to an ESM-style embedding service over HTTP. The service
// accepts a protein sequence and returns one embedding vector per residue
// plus the BOS/EOS positions, matching the ESM-C logits API shape.
type Client struct {
	endpoint string
	model    string
	client   *http.Client
}

// NewClient creates an embedding client. Empty arguments pick the local
// service defaults.
func NewClient(endpoint, model string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = "http://localhost:8000"
	}
	if model == "" {
		model = "esmc_300m"
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		model:    model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Result holds the embedding for one sequence.
type Result struct {
	Embedding [][]float32
}

// Dims returns (tokens, dimensions) of the embedding matrix.
func (r *Result) Dims() (int, int) {
	if len(r.Embedding) == 0 {
		return 0, 0
	}
	return len(r.Embedding), len(r.Embedding[0])
}

// Embed requests the per-residue embedding matrix for a single sequence.
func (c *Client) Embed(ctx context.Context, sequence string) (*Result, error) {
	if sequence == "" {
		return nil, fmt.Errorf("empty sequence")
	}

	req := embedRequest{
		Model:    c.model,
		Sequence: sequence,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Embedding) == 0 {
		return nil, fmt.Errorf("service returned no embedding for model %s", c.model)
	}

	return &Result{Embedding: result.Embedding}, nil
}

// Name returns the client identity, endpoint plus model.
func (c *Client) Name() string {
	return fmt.Sprintf("%s (%s)", c.endpoint, c.model)
}

type embedRequest struct {
	Model    string `json:"model"`
	Sequence string `json:"sequence"`
}

type embedResponse struct {
	Embedding [][]float32 `json:"embedding"`
}
