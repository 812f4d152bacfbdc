// Package store holds embedded chunks in memory for the lifetime of the process.
package store

import (
	"sync"

	"github.com/hyperjump/kotae/internal/models"
)

// VectorStore is a concurrency-safe, append-only collection of embedded chunks.
// Insertion order is preserved and there is no removal or mutation, so readers
// can share chunk pointers from a snapshot without copying.
type VectorStore struct {
	mu     sync.RWMutex
	chunks []*models.Chunk
}

// New returns an empty store.
func New() *VectorStore {
	return &VectorStore{}
}

// Append adds a chunk to the store. Safe to call concurrently with other
// appends and with snapshots. The caller must only append fully constructed
// chunks (embedding present).
func (s *VectorStore) Append(chunk *models.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunk)
}

// Snapshot returns a read-consistent view of all chunks appended before the
// call. Appends racing with a snapshot may or may not be included, but the
// returned slice is never modified by later appends.
func (s *VectorStore) Snapshot() []*models.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}

// Count returns the number of stored chunks.
func (s *VectorStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}
