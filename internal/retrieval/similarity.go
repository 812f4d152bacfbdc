// Package retrieval ranks stored chunks against a query embedding.
package retrieval

import "math"

// epsilon guards the cosine denominator against degenerate zero vectors.
const epsilon = 1e-10

// CosineSimilarity returns the cosine similarity of a and b in [-1, 1].
// Vectors are not assumed normalized. Mismatched or zero lengths yield the
// -1 sentinel so a malformed entry is never selected over a valid match.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return -1
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + epsilon)
}
