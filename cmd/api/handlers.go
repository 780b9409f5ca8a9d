package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/engine/graph"
	"github.com/PaperMindAI/papermind-mvp/engine/keyphrase"
	"github.com/PaperMindAI/papermind-mvp/engine/retrieval"
	"github.com/PaperMindAI/papermind-mvp/pkg/metrics"
)

// conceptGraphTerms is how many corpus-level terms seed a cluster's
// concept graph.
const conceptGraphTerms = 50

// vectorDeleter is the slice of the vector store the API needs directly.
type vectorDeleter interface {
	DeleteByDocID(ctx context.Context, docID string) error
}

// conceptStore persists and serves per-cluster concept graphs.
type conceptStore interface {
	SaveGraph(ctx context.Context, clusterID string, g graph.Graph) error
	LoadGraph(ctx context.Context, clusterID string) (graph.Graph, error)
}

type apiServer struct {
	svc      *retrieval.Service
	sections retrieval.SectionStore
	vectors  vectorDeleter
	concepts conceptStore
	metrics  *metrics.Registry
	log      *slog.Logger
}

func (s *apiServer) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/clusters/{cluster}/documents", s.handleIngest)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/chat-context", s.handleChatContext)
	mux.HandleFunc("POST /api/keyphrases", s.handleKeyphrases)
	mux.HandleFunc("GET /api/clusters/{cluster}/graph", s.handleGraph)
	mux.HandleFunc("GET /api/clusters/{cluster}/mindmap", s.handleMindmap)
	mux.HandleFunc("DELETE /api/documents/{id}", s.handleDeleteDocument)
}

func (s *apiServer) count(route string) {
	s.metrics.Counter(metrics.WithLabels("api_requests_total", "route", route), "API requests by route.").Inc()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

// IngestRequest is the JSON body for POST /api/clusters/{cluster}/documents.
type IngestRequest struct {
	Documents []domain.DocumentText `json:"documents"`
}

func (s *apiServer) handleIngest(w http.ResponseWriter, r *http.Request) {
	s.count("ingest")
	clusterID := r.PathValue("cluster")

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Documents) == 0 {
		respondError(w, http.StatusBadRequest, "documents are required")
		return
	}

	result, err := s.svc.IngestCluster(r.Context(), clusterID, req.Documents)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.saveConceptGraph(r.Context(), clusterID, result); err != nil {
		// The ingest itself succeeded; a stale concept graph is tolerable.
		s.log.Warn("concept graph save failed", "cluster_id", clusterID, "err", err)
	}

	respond(w, http.StatusCreated, result)
}

// saveConceptGraph derives cluster-level concepts from the freshly ingested
// sections and persists their co-occurrence graph.
func (s *apiServer) saveConceptGraph(ctx context.Context, clusterID string, result retrieval.IngestResult) error {
	ids := make([]string, len(result.Documents))
	for i, d := range result.Documents {
		ids[i] = d.ID
	}
	sections, err := s.sections.SectionsByDocuments(ctx, ids)
	if err != nil {
		return err
	}
	texts := make([]string, len(sections))
	for i, sec := range sections {
		texts[i] = sec.Title + " " + sec.Content
	}
	concepts := keyphrase.Concepts(texts, conceptGraphTerms)
	return s.concepts.SaveGraph(ctx, clusterID, graph.Build(texts, concepts))
}

// QueryRequest is the JSON body shared by search, recommendations, and
// chat-context.
type QueryRequest struct {
	Query       string   `json:"query"`
	ClusterID   string   `json:"cluster_id,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

func (q QueryRequest) scope() domain.Scope {
	return domain.Scope{ClusterID: q.ClusterID, DocumentIDs: q.DocumentIDs}
}

func (s *apiServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	s.count("search")
	start := time.Now()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.svc.SemanticSearch(r.Context(), req.Query, req.scope())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.metrics.Histogram("search_duration_seconds", "Semantic search latency.", nil).Since(start)
	respond(w, http.StatusOK, resp)
}

func (s *apiServer) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	s.count("recommendations")

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recs, err := s.svc.Recommend(r.Context(), req.Query, req.scope())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []retrieval.Recommendation{}
	}
	respond(w, http.StatusOK, map[string]any{"recommendations": recs})
}

func (s *apiServer) handleChatContext(w http.ResponseWriter, r *http.Request) {
	s.count("chat_context")

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctxStr, err := s.svc.ChatContext(r.Context(), req.Query, req.scope())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"context": ctxStr})
}

// KeyphrasesRequest is the JSON body for POST /api/keyphrases.
type KeyphrasesRequest struct {
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n,omitempty"`
}

func (s *apiServer) handleKeyphrases(w http.ResponseWriter, r *http.Request) {
	s.count("keyphrases")

	var req KeyphrasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Documents) == 0 {
		respondError(w, http.StatusBadRequest, "documents are required")
		return
	}
	if req.TopN <= 0 {
		req.TopN = 10
	}

	terms := keyphrase.TopTerms(req.Documents, req.TopN, keyphrase.DefaultOptions())
	respond(w, http.StatusOK, map[string]any{"keyphrases": terms})
}

func (s *apiServer) handleGraph(w http.ResponseWriter, r *http.Request) {
	s.count("graph")

	g, err := s.concepts.LoadGraph(r.Context(), r.PathValue("cluster"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, http.StatusOK, g)
}

func (s *apiServer) handleMindmap(w http.ResponseWriter, r *http.Request) {
	s.count("mindmap")

	phrases, _ := strconv.Atoi(r.URL.Query().Get("phrases"))
	branches, err := s.svc.Mindmap(r.Context(), domain.Scope{ClusterID: r.PathValue("cluster")}, phrases)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	root := "Cluster " + r.PathValue("cluster")
	respond(w, http.StatusOK, map[string]any{
		"mindmap":  branches,
		"freemind": retrieval.FreeMind(root, branches),
		"mermaid":  retrieval.Mermaid(root, branches),
	})
}

func (s *apiServer) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	s.count("delete_document")
	docID := r.PathValue("id")

	if err := s.sections.DeleteDocument(r.Context(), docID); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.vectors != nil {
		if err := s.vectors.DeleteByDocID(r.Context(), docID); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	respond(w, http.StatusOK, map[string]string{"deleted": docID})
}

func (s *apiServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, domain.ErrQueryTooShort):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrModelNotLoaded):
		respondError(w, http.StatusServiceUnavailable, "embedding model unavailable")
	default:
		s.log.Error("request failed", "path", r.URL.Path, "err", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}
