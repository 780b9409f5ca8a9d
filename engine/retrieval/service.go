package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/PaperMindAI/papermind-mvp/engine/contrast"
	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/engine/rank"
	"github.com/PaperMindAI/papermind-mvp/engine/semantic"
)

// Snippet is one query-relevant sentence with its provenance.
type Snippet struct {
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
	Title      string  `json:"section_title"`
	Source     string  `json:"source"`
	PageNumber int     `json:"page_number"`
	DocumentID string  `json:"document_id"`
}

// SearchResponse is the assembled semantic search payload.
type SearchResponse struct {
	Snippets            []Snippet                 `json:"snippets"`
	Contradictions      []domain.ContrastiveMatch `json:"contradictions"`
	AlternateViewpoints []domain.ContrastiveMatch `json:"alternate_viewpoints"`
	Success             bool                      `json:"success"`
}

// Recommendation is one suggested section with a frequency-based summary.
type Recommendation struct {
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Score      float32 `json:"score"`
	Source     string  `json:"source"`
	PageNumber int     `json:"page_number"`
	DocumentID string  `json:"document_id"`
}

// Service runs the query and ingest pipelines over a SectionStore and a
// shared embedding model.
type Service struct {
	store    SectionStore
	embedder Embedder
	vectors  VectorIndex
	opts     Options
	log      *slog.Logger
}

// NewService wires a retrieval service. vectors may be nil when no k-NN
// index is configured; ingest then persists sections only and queries rank
// by brute force over the SectionStore.
func NewService(store SectionStore, embedder Embedder, vectors VectorIndex, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, embedder: embedder, vectors: vectors, opts: opts, log: logger}
}

type scoredSection struct {
	domain.EmbeddedSection
	similarity float32
}

// SemanticSearch embeds the query, ranks sections in scope, extracts the
// most similar sentences as snippets, and flags contrastive signals in the
// top sections. An empty scope yields a successful empty response.
func (s *Service) SemanticSearch(ctx context.Context, query string, scope domain.Scope) (SearchResponse, error) {
	resp := SearchResponse{
		Snippets:            []Snippet{},
		Contradictions:      []domain.ContrastiveMatch{},
		AlternateViewpoints: []domain.ContrastiveMatch{},
	}

	qvec, err := s.embedQuery(ctx, query)
	if err != nil {
		return resp, err
	}

	candidates, err := s.rankScope(ctx, qvec, scope, s.opts.CandidateSections)
	if err != nil {
		return resp, err
	}
	if len(candidates) == 0 {
		resp.Success = true
		return resp, nil
	}

	for _, cand := range candidates {
		snips, err := s.sectionSnippets(ctx, qvec, cand)
		if err != nil {
			return resp, err
		}
		resp.Snippets = append(resp.Snippets, snips...)
	}
	sort.SliceStable(resp.Snippets, func(i, j int) bool {
		return resp.Snippets[i].Score > resp.Snippets[j].Score
	})
	if len(resp.Snippets) > s.opts.MaxSnippets {
		resp.Snippets = resp.Snippets[:s.opts.MaxSnippets]
	}

	contents := make([]string, len(candidates))
	for i, cand := range candidates {
		contents[i] = cand.Content
	}
	resp.Contradictions = contrast.Contradictions(contents, s.opts.ContrastLimit)
	resp.AlternateViewpoints = contrast.Viewpoints(contents, s.opts.ContrastLimit)
	resp.Success = true

	s.log.InfoContext(ctx, "semantic search complete",
		"snippets", len(resp.Snippets),
		"contradictions", len(resp.Contradictions),
		"viewpoints", len(resp.AlternateViewpoints))
	return resp, nil
}

// Recommend ranks sections in scope against the query and summarizes each of
// the top ones with a frequency-based snippet.
func (s *Service) Recommend(ctx context.Context, query string, scope domain.Scope) ([]Recommendation, error) {
	qvec, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	top, err := s.rankScope(ctx, qvec, scope, s.opts.TopK)
	if err != nil {
		return nil, err
	}

	recs := make([]Recommendation, 0, len(top))
	for _, t := range top {
		recs = append(recs, Recommendation{
			Title:      t.Title,
			Snippet:    Summarize(t.Content, s.opts.SummarySentences),
			Score:      round4(t.similarity),
			Source:     t.Source,
			PageNumber: t.PageNumber,
			DocumentID: t.DocumentID,
		})
	}
	return recs, nil
}

// ChatContext assembles the top-ranked sections into a bracketed context
// string for a downstream chat model. Empty scope yields the empty string.
func (s *Service) ChatContext(ctx context.Context, query string, scope domain.Scope) (string, error) {
	qvec, err := s.embedQuery(ctx, query)
	if err != nil {
		return "", err
	}
	top, err := s.rankScope(ctx, qvec, scope, s.opts.TopK)
	if err != nil {
		return "", err
	}

	blocks := make([]string, 0, len(top))
	for _, t := range top {
		blocks = append(blocks, fmt.Sprintf("[Source: %s, Page: %d, Section: %s]\n%s",
			t.Source, t.PageNumber, t.Title, t.Content))
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if err := domain.ValidateQuery(query); err != nil {
		return nil, err
	}
	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed query: %w", err)
	}
	return vecs[0], nil
}

// rankScope returns the k sections most similar to the query vector, most
// similar first. With a vector index configured the search runs in the
// index with payload filters; otherwise sections in scope are loaded from
// the SectionStore and ranked brute-force, with malformed embeddings
// skipped by the ranker.
func (s *Service) rankScope(ctx context.Context, qvec []float32, scope domain.Scope, k int) ([]scoredSection, error) {
	if s.vectors != nil {
		return s.searchIndex(ctx, qvec, scope, k)
	}

	docIDs, err := s.store.DocumentIDs(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("retrieval: list documents: %w", err)
	}
	if len(docIDs) == 0 {
		return nil, nil
	}
	sections, err := s.store.SectionsByDocuments(ctx, docIDs)
	if err != nil {
		return nil, fmt.Errorf("retrieval: load sections: %w", err)
	}
	if len(sections) == 0 {
		return nil, nil
	}

	entries := make([]rank.Entry, len(sections))
	for i, sec := range sections {
		entries[i] = rank.Entry{Ref: strconv.Itoa(i), Vector: sec.Embedding}
	}
	ranked := rank.TopK(qvec, entries, k)

	out := make([]scoredSection, 0, len(ranked))
	for _, r := range ranked {
		idx, err := strconv.Atoi(r.Ref)
		if err != nil {
			continue
		}
		out = append(out, scoredSection{EmbeddedSection: sections[idx], similarity: r.Similarity})
	}
	return out, nil
}

// searchIndex ranks through the vector index. A cluster scope becomes one
// filtered search; explicit document ids search per document and merge, so
// a small scope cannot be crowded out of a fixed-size result page.
func (s *Service) searchIndex(ctx context.Context, qvec []float32, scope domain.Scope, k int) ([]scoredSection, error) {
	var results []semantic.SearchResult
	switch {
	case len(scope.DocumentIDs) > 0:
		for _, id := range scope.DocumentIDs {
			part, err := s.vectors.SearchFiltered(ctx, qvec, k, map[string]string{"doc_id": id})
			if err != nil {
				return nil, fmt.Errorf("retrieval: vector search: %w", err)
			}
			results = append(results, part...)
		}
		sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
		if len(results) > k {
			results = results[:k]
		}
	case scope.ClusterID != "":
		var err error
		results, err = s.vectors.SearchFiltered(ctx, qvec, k, map[string]string{"cluster_id": scope.ClusterID})
		if err != nil {
			return nil, fmt.Errorf("retrieval: vector search: %w", err)
		}
	default:
		var err error
		results, err = s.vectors.SearchFiltered(ctx, qvec, k, nil)
		if err != nil {
			return nil, fmt.Errorf("retrieval: vector search: %w", err)
		}
	}

	out := make([]scoredSection, 0, len(results))
	for _, r := range results {
		out = append(out, scoredSection{
			EmbeddedSection: domain.EmbeddedSection{
				Section: domain.Section{
					Title:      r.Title,
					Content:    r.Content,
					Source:     r.Source,
					PageNumber: r.PageNumber,
				},
				DocumentID: r.DocID,
			},
			similarity: r.Score,
		})
	}
	return out, nil
}

// sectionSnippets embeds the section's longer sentences and keeps the ones
// above the similarity threshold, best first.
func (s *Service) sectionSnippets(ctx context.Context, qvec []float32, cand scoredSection) ([]Snippet, error) {
	sentences := contrast.SplitSentences(cand.Content)
	keep := sentences[:0:0]
	for _, sent := range sentences {
		if len(strings.TrimSpace(sent)) > s.opts.MinSentenceLength {
			keep = append(keep, strings.TrimSpace(sent))
		}
	}
	if len(keep) == 0 {
		return nil, nil
	}

	vecs, err := s.embedder.Embed(ctx, keep)
	if err != nil {
		return nil, fmt.Errorf("retrieval: embed sentences: %w", err)
	}

	scored := make([]Snippet, 0, len(keep))
	for i, sent := range keep {
		sim := rank.Cosine(qvec, vecs[i])
		if sim <= s.opts.SnippetThreshold {
			continue
		}
		scored = append(scored, Snippet{
			Text:       sent,
			Score:      sim,
			Title:      cand.Title,
			Source:     cand.Source,
			PageNumber: cand.PageNumber,
			DocumentID: cand.DocumentID,
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > s.opts.SnippetsPerSection {
		scored = scored[:s.opts.SnippetsPerSection]
	}
	return scored, nil
}

func round4(v float32) float32 {
	return float32(math.Round(float64(v)*10000) / 10000)
}
