// Package embedding turns text into fixed-dimension vectors for similarity search.
package embedding

import "context"

// Embedder produces vector embeddings for text. Implementations must be
// deterministic: the same input yields the same vector on every call.
// Embed returns a nil vector (and nil error) only for empty text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	Close() error
}
