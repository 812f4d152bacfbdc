package retrieval

import (
	"sort"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/store"
)

// Retrieve scores every chunk in the store against query and returns the top k
// by cosine similarity, sorted descending. Ties keep store insertion order so
// identical inputs always produce identical output. The result length is
// min(k, store.Count()); k <= 0 or an empty store yields an empty result.
func Retrieve(query []float32, s *store.VectorStore, k int) []models.ScoredChunk {
	chunks := s.Snapshot()
	if k <= 0 || len(chunks) == 0 {
		return nil
	}
	scored := make([]models.ScoredChunk, len(chunks))
	for i, c := range chunks {
		scored[i] = models.ScoredChunk{Chunk: c, Score: CosineSimilarity(query, c.Embedding)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}
