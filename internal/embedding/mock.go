package embedding

import "context"

// MockEmbedder is a deterministic offline embedder for tests and demo mode.
// The vector is derived from the byte sum of the text, so identical inputs
// always map to identical vectors and retrieval stays reproducible without
// a model or network access.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns an embedder producing vectors of the given dimension
// (512 when non-positive).
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 512
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed returns a pseudo-embedding with values in [0, 1). Nil for empty text.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, nil
	}
	var seed int
	for i := 0; i < len(text); i++ {
		seed += int(text[i])
	}
	vec := make([]float32, e.dimensions)
	for i := range vec {
		vec[i] = float32((seed+i*131)%1000) / 1000
	}
	return vec, nil
}

// Dimensions returns the embedding dimension.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for MockEmbedder.
func (e *MockEmbedder) Close() error {
	return nil
}
