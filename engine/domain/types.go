// Package domain defines core domain types, constants, and validation for the
// PaperMind engine pipeline. It acts as the validation gate at pipeline entry points.
package domain

// Section is a titled, page-located span of a document's body text — the
// atomic unit of indexing. Source and PageNumber are fixed at extraction time.
type Section struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Source     string `json:"source"`
	PageNumber int    `json:"page_number"`
}

// EmbeddedSection pairs a Section with the vector computed over
// "Title. Content" at embedding time. If title or content change the
// embedding is stale and must be recomputed, never patched.
type EmbeddedSection struct {
	Section
	DocumentID string    `json:"document_id"`
	Embedding  []float32 `json:"embedding"`
}

// RankedResult references a section (or sentence) with its cosine similarity
// to a query. Transient: produced per query, never persisted.
type RankedResult struct {
	Ref        string  `json:"ref"`
	Similarity float32 `json:"similarity"`
}

// ContrastiveMatch is a sentence flagged by a cue phrase from one of the
// contradiction / alternate-viewpoint lexicons.
type ContrastiveMatch struct {
	Sentence string `json:"text"`
	Cue      string `json:"keyword"`
}

// KeyConcept is an n-gram term scored by TF-IDF as distinctive of a document
// relative to its corpus.
type KeyConcept struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// Page is the extracted text of one PDF page, split into layout blocks in
// reading order.
type Page struct {
	Number int      `json:"number"`
	Blocks []string `json:"blocks"`
}

// DocumentText is the page-structured raw text of one document, as produced
// by the external PDF extraction collaborator.
type DocumentText struct {
	Name  string `json:"name"`
	Pages []Page `json:"pages"`
}

// Scope selects which documents a query runs against.
type Scope struct {
	ClusterID   string   `json:"cluster_id,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// All reports whether the scope covers the whole library.
func (s Scope) All() bool {
	return s.ClusterID == "" && len(s.DocumentIDs) == 0
}
