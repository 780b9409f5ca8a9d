// Package retrieval composes section extraction, embedding, similarity
// ranking, and contrastive signal extraction into the ingest and query
// pipelines behind semantic search, chat context assembly, and
// recommendations.
package retrieval

import (
	"context"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/engine/semantic"
)

// Embedder produces one vector per input text, in input order. The engine's
// shared embed.Model satisfies this.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// DocumentRecord is the stored metadata of one ingested document.
type DocumentRecord struct {
	ID            string `json:"id"`
	Filename      string `json:"filename"`
	ClusterID     string `json:"cluster_id"`
	TotalSections int    `json:"total_sections"`
}

// SectionStore is the document/section persistence port. The engine only
// requires these read shapes plus a write path; the storage schema belongs
// to the collaborator behind the interface.
type SectionStore interface {
	// DocumentIDs lists document identifiers in scope (all documents when
	// the scope is empty).
	DocumentIDs(ctx context.Context, scope domain.Scope) ([]string, error)
	// Documents returns metadata for the given document ids.
	Documents(ctx context.Context, ids []string) ([]DocumentRecord, error)
	// SectionsByDocuments returns every stored section of the given documents.
	SectionsByDocuments(ctx context.Context, docIDs []string) ([]domain.EmbeddedSection, error)
	// SaveDocument persists a document record with its embedded sections.
	SaveDocument(ctx context.Context, doc DocumentRecord, sections []domain.EmbeddedSection) error
	// DeleteDocument removes a document and its sections.
	DeleteDocument(ctx context.Context, docID string) error
}

// VectorIndex is the k-NN persistence and search port. Ingest writes section
// vectors through it and queries rank through it; when no index is
// configured queries fall back to brute-force ranking over the SectionStore.
// The semantic.VectorStore satisfies this.
type VectorIndex interface {
	Upsert(ctx context.Context, records []semantic.VectorRecord) error
	SearchFiltered(ctx context.Context, embedding []float32, topK int, filters map[string]string) ([]semantic.SearchResult, error)
}
