// Package rank computes cosine-similarity rankings over in-memory corpora of
// (identifier, vector) pairs. It is pure and side-effect free, safe to run
// concurrently across independent queries.
package rank

import (
	"math"
	"sort"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

// Entry is one corpus member. Vectors must all come from the same loaded
// embedding model; embeddings from different models are not comparable.
type Entry struct {
	Ref    string
	Vector []float32
}

// Cosine returns dot(a,b) / (‖a‖·‖b‖). A zero-norm or empty vector yields
// 0.0 — never a division by zero, never an error.
func Cosine(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// TopK ranks the corpus against the query vector and returns the k best
// entries, similarity descending, ties broken by input order. k is clamped
// to the corpus size. Entries with a missing or dimension-mismatched vector
// are skipped rather than aborting the ranking.
func TopK(query []float32, corpus []Entry, k int) []domain.RankedResult {
	if k <= 0 || len(corpus) == 0 {
		return nil
	}

	results := make([]domain.RankedResult, 0, len(corpus))
	for _, e := range corpus {
		if len(e.Vector) == 0 || len(e.Vector) != len(query) {
			continue
		}
		results = append(results, domain.RankedResult{
			Ref:        e.Ref,
			Similarity: Cosine(query, e.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}
