// Package models defines core data structures for chunks, retrieval results, and the HTTP API.
package models

// Chunk is a bounded span of document text together with its embedding.
// Chunks are created by the ingestion pipeline and never mutated afterwards,
// so they can be shared freely across goroutines.
type Chunk struct {
	ID        string
	Text      string
	Embedding []float32
	Page      int // 1-based position of the chunk within its source document
}

// ScoredChunk pairs a chunk with its cosine similarity to a query.
type ScoredChunk struct {
	Chunk *Chunk
	Score float64
}
