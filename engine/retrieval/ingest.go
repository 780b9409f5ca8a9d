package retrieval

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/engine/extract"
	"github.com/PaperMindAI/papermind-mvp/engine/semantic"
	"github.com/PaperMindAI/papermind-mvp/pkg/fn"
)

// IngestResult summarizes one cluster ingest.
type IngestResult struct {
	ClusterID string           `json:"cluster_id"`
	Documents []DocumentRecord `json:"documents"`
	Sections  int              `json:"total_sections"`
}

// located pins a section to its owning document through the pipeline.
type located struct {
	doc     string
	section domain.Section
}

// clusterIngest is the state threaded through the ingest stages.
type clusterIngest struct {
	clusterID string
	docs      []domain.DocumentText
	flat      []located
	vectors   [][]float32
}

// IngestCluster runs the ingest pipeline: segment the documents into
// sections, embed every section in batched calls, and persist documents,
// sections, and vectors. A document whose extraction yields nothing is
// recorded with zero sections; an embedding failure short-circuits before
// anything is stored.
func (s *Service) IngestCluster(ctx context.Context, clusterID string, docs []domain.DocumentText) (IngestResult, error) {
	if len(docs) == 0 {
		return IngestResult{ClusterID: clusterID}, nil
	}

	pipeline := fn.Then(
		fn.Then(
			fn.TracedStage("ingest.extract", s.extractStage()),
			fn.TapStage(func(ctx context.Context, in clusterIngest) {
				s.log.InfoContext(ctx, "sections extracted",
					"cluster_id", in.clusterID, "sections", len(in.flat))
			}),
		),
		fn.Then(
			fn.TracedStage("ingest.embed", s.embedStage()),
			fn.TracedStage("ingest.store", s.storeStage()),
		),
	)

	result := pipeline(ctx, clusterIngest{clusterID: clusterID, docs: docs})
	return result.Unwrap()
}

// extractStage segments every document and flattens the sections in
// document order so one embedding pass covers the cluster.
func (s *Service) extractStage() fn.Stage[clusterIngest, clusterIngest] {
	return func(_ context.Context, in clusterIngest) fn.Result[clusterIngest] {
		byDoc := extract.Batch(in.docs, s.log)
		for _, doc := range in.docs {
			for _, sec := range byDoc[doc.Name] {
				in.flat = append(in.flat, located{doc: doc.Name, section: sec})
			}
		}
		return fn.Ok(in)
	}
}

// embedStage builds the "Title. Content" prompts and embeds them in batches
// bounded by EmbedBatchSize.
func (s *Service) embedStage() fn.Stage[clusterIngest, clusterIngest] {
	prompt := fn.MapStage(func(l located) string {
		return l.section.Title + ". " + l.section.Content
	})
	embedBatch := func(ctx context.Context, batch []string) fn.Result[[][]float32] {
		return fn.FromPair(s.embedder.Embed(ctx, batch))
	}

	return func(ctx context.Context, in clusterIngest) fn.Result[clusterIngest] {
		texts, err := fn.BatchStage(8, prompt)(ctx, in.flat).Unwrap()
		if err != nil {
			return fn.Err[clusterIngest](err)
		}
		batched, err := fn.BatchStage(1, fn.Stage[[]string, [][]float32](embedBatch))(ctx, fn.Chunk(texts, s.opts.EmbedBatchSize)).Unwrap()
		if err != nil {
			return fn.Err[clusterIngest](fmt.Errorf("retrieval: embed sections: %w", err))
		}
		for _, vecs := range batched {
			in.vectors = append(in.vectors, vecs...)
		}
		return fn.Ok(in)
	}
}

// storeStage persists the document records with their embedded sections and
// upserts the section vectors, then assembles the ingest summary.
func (s *Service) storeStage() fn.Stage[clusterIngest, IngestResult] {
	return func(ctx context.Context, in clusterIngest) fn.Result[IngestResult] {
		result := IngestResult{ClusterID: in.clusterID}

		embedded := make(map[string][]domain.EmbeddedSection, len(in.docs))
		for i, l := range in.flat {
			embedded[l.doc] = append(embedded[l.doc], domain.EmbeddedSection{
				Section:   l.section,
				Embedding: in.vectors[i],
			})
		}

		var records []semantic.VectorRecord
		for _, doc := range in.docs {
			docID := uuid.New().String()
			sections := embedded[doc.Name]
			for i := range sections {
				sections[i].DocumentID = docID
			}

			rec := DocumentRecord{
				ID:            docID,
				Filename:      doc.Name,
				ClusterID:     in.clusterID,
				TotalSections: len(sections),
			}
			if err := s.store.SaveDocument(ctx, rec, sections); err != nil {
				return fn.Err[IngestResult](fmt.Errorf("retrieval: save document %q: %w", doc.Name, err))
			}
			result.Documents = append(result.Documents, rec)
			result.Sections += len(sections)

			for i, sec := range sections {
				pointID := uuid.NewSHA1(uuid.NameSpaceURL, []byte(docID+"/"+strconv.Itoa(i)))
				records = append(records, semantic.VectorRecord{
					ID:        pointID.String(),
					Embedding: sec.Embedding,
					Payload: map[string]any{
						"title":       sec.Title,
						"content":     sec.Content,
						"source":      sec.Source,
						"page_number": sec.PageNumber,
						"doc_id":      docID,
						"cluster_id":  in.clusterID,
					},
				})
			}
		}

		if s.vectors != nil && len(records) > 0 {
			if err := s.vectors.Upsert(ctx, records); err != nil {
				return fn.Err[IngestResult](fmt.Errorf("retrieval: upsert vectors: %w", err))
			}
		}

		s.log.InfoContext(ctx, "cluster ingested",
			"cluster_id", in.clusterID,
			"documents", len(result.Documents),
			"sections", result.Sections)
		return fn.Ok(result)
	}
}
