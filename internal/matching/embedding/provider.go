// internal/matching/embedding/provider.go
package embedding

import "context"

// Provider produces embedding vectors for batches of text. Implementations
// must return one vector per input text, in input order.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Dimensions() int
	ProviderName() string
	ModelName() string
}
