// internal/matching/embedding/http_provider.go
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"match-workers/internal/common/config"
	"match-workers/internal/common/errors"
	"match-workers/internal/common/httpx"
)

// HTTPProvider calls an OpenAI-compatible /embeddings endpoint.
type HTTPProvider struct {
	client     *httpx.Client
	baseURL    string
	apiKey     string
	model      string
	dimensions int
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// NewHTTPProvider builds a provider from the embedding config section.
func NewHTTPProvider(cfg config.EmbeddingConfig) *HTTPProvider {
	timeout := time.Duration(cfg.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		client:     httpx.NewClient(timeout),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Embed requests vectors for a batch of texts. Any transport or non-2xx
// failure comes back as a retryable EMBEDDING_UNAVAILABLE error; a payload
// with the wrong shape is EMBEDDING_MALFORMED and not retried.
func (p *HTTPProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embeddingRequest{Model: p.model, Input: texts})
	if err != nil {
		return nil, errors.NewEmbeddingMalformedError(err.Error())
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewEmbeddingUnavailableError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.DoWithContext(ctx, req)
	if err != nil {
		return nil, errors.NewEmbeddingUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewEmbeddingUnavailableError(
			fmt.Errorf("embeddings endpoint returned %d: %s", resp.StatusCode, string(payload)))
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.NewEmbeddingMalformedError(err.Error())
	}
	if len(parsed.Data) != len(texts) {
		return nil, errors.NewEmbeddingMalformedError(
			fmt.Sprintf("requested %d embeddings, got %d", len(texts), len(parsed.Data)))
	}

	out := make([][]float64, len(texts))
	for _, item := range parsed.Data {
		if item.Index < 0 || item.Index >= len(texts) {
			return nil, errors.NewEmbeddingMalformedError(
				fmt.Sprintf("embedding index %d out of range", item.Index))
		}
		if len(item.Embedding) == 0 {
			return nil, errors.NewEmbeddingMalformedError("empty embedding vector in payload")
		}
		out[item.Index] = item.Embedding
	}
	for i, vec := range out {
		if vec == nil {
			return nil, errors.NewEmbeddingMalformedError(
				fmt.Sprintf("missing embedding for input %d", i))
		}
	}
	return out, nil
}

func (p *HTTPProvider) Dimensions() int {
	return p.dimensions
}

func (p *HTTPProvider) ProviderName() string {
	return "http"
}

func (p *HTTPProvider) ModelName() string {
	return p.model
}
