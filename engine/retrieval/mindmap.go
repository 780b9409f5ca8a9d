package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
	"github.com/PaperMindAI/papermind-mvp/engine/keyphrase"
)

// MindmapBranch is one outline entry: a section with its top phrases and a
// short lead-in from its content.
type MindmapBranch struct {
	Title      string              `json:"title"`
	Source     string              `json:"source"`
	PageNumber int                 `json:"page_number"`
	Summary    string              `json:"summary,omitempty"`
	Phrases    []domain.KeyConcept `json:"phrases"`
}

// summaryLimit truncates branch summaries.
const summaryLimit = 120

// Mindmap builds a structured outline of the scoped corpus: the largest
// sections by content length (capped at Options.MindmapSections), each with
// its most distinctive phrases scored against the rest of the scope.
// phrasesPerSection <= 0 uses Options.MindmapPhrases.
func (s *Service) Mindmap(ctx context.Context, scope domain.Scope, phrasesPerSection int) ([]MindmapBranch, error) {
	if phrasesPerSection <= 0 {
		phrasesPerSection = s.opts.MindmapPhrases
	}

	docIDs, err := s.store.DocumentIDs(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("retrieval: list documents: %w", err)
	}
	sections, err := s.store.SectionsByDocuments(ctx, docIDs)
	if err != nil {
		return nil, fmt.Errorf("retrieval: load sections: %w", err)
	}
	if len(sections) == 0 {
		return []MindmapBranch{}, nil
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return len(sections[i].Content) > len(sections[j].Content)
	})
	if s.opts.MindmapSections > 0 && len(sections) > s.opts.MindmapSections {
		sections = sections[:s.opts.MindmapSections]
	}

	texts := make([]string, len(sections))
	for i, sec := range sections {
		texts[i] = sec.Content
	}
	phrases := keyphrase.TopTerms(texts, phrasesPerSection, keyphrase.DefaultOptions())

	branches := make([]MindmapBranch, len(sections))
	for i, sec := range sections {
		summary := sec.Content
		if len(summary) > summaryLimit {
			summary = summary[:summaryLimit] + "..."
		}
		branches[i] = MindmapBranch{
			Title:      sec.Title,
			Source:     sec.Source,
			PageNumber: sec.PageNumber,
			Summary:    summary,
			Phrases:    phrases[i],
		}
	}
	return branches, nil
}
