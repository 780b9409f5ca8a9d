package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// Client talks to an Ollama-style embedding endpoint over HTTP. Requests
// are rate-limited so bulk ingestion cannot starve interactive queries.
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	limiter *rate.Limiter
	dims    int
}

// NewClient creates an HTTP embedding client. rps bounds requests per
// second; rps <= 0 disables limiting.
func NewClient(baseURL, model string, rps float64) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
		limiter: limiter,
	}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Load probes the endpoint with a single request and records the model's
// vector dimensionality.
func (c *Client) Load(ctx context.Context) error {
	vec, err := c.embedOne(ctx, "ping")
	if err != nil {
		return fmt.Errorf("embed client: probe: %w", err)
	}
	if len(vec) == 0 {
		return fmt.Errorf("embed client: probe returned empty vector")
	}
	c.dims = len(vec)
	return nil
}

// Dimensions returns the vector length reported by the load probe.
func (c *Client) Dimensions() int { return c.dims }

// Embed implements Embedder. Vectors come back in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := c.embedOne(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed [%d]: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

func (c *Client) embedOne(ctx context.Context, text string) ([]float32, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, _ := json.Marshal(embedRequest{Model: c.model, Prompt: text})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var result embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	vec := make([]float32, len(result.Embedding))
	for i, v := range result.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
