package retrieval

import (
	"context"
	"testing"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

func TestMindmap(t *testing.T) {
	svc := NewService(seedStore(t), &axisEmbedder{}, nil, DefaultOptions(), quietLogger())

	branches, err := svc.Mindmap(context.Background(), domain.Scope{}, 3)
	if err != nil {
		t.Fatalf("Mindmap: %v", err)
	}
	if len(branches) != 2 {
		t.Fatalf("want 2 branches, got %d", len(branches))
	}
	// Longest section content leads the outline.
	if branches[0].Title != "Neural Architectures" {
		t.Fatalf("branch order: %q first", branches[0].Title)
	}
	for _, b := range branches {
		if len(b.Phrases) == 0 {
			t.Errorf("branch %q has no phrases", b.Title)
		}
		if len(b.Phrases) > 3 {
			t.Errorf("branch %q exceeds phrase cap: %d", b.Title, len(b.Phrases))
		}
	}
}

func TestMindmapOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.MindmapSections != 12 || opts.MindmapPhrases != 6 {
		t.Fatalf("unexpected outline defaults: %d sections, %d phrases", opts.MindmapSections, opts.MindmapPhrases)
	}

	opts.MindmapSections = 1
	opts.MindmapPhrases = 2
	svc := NewService(seedStore(t), &axisEmbedder{}, nil, opts, quietLogger())

	// phrasesPerSection 0 falls back to the configured default.
	branches, err := svc.Mindmap(context.Background(), domain.Scope{}, 0)
	if err != nil {
		t.Fatalf("Mindmap: %v", err)
	}
	if len(branches) != 1 {
		t.Fatalf("want section cap of 1 applied, got %d branches", len(branches))
	}
	if len(branches[0].Phrases) > 2 {
		t.Fatalf("want at most 2 phrases, got %d", len(branches[0].Phrases))
	}
	if branches[0].Summary == "" {
		t.Error("expected a branch summary")
	}
}

func TestMindmapEmptyScope(t *testing.T) {
	svc := NewService(NewMemStore(), &axisEmbedder{}, nil, DefaultOptions(), quietLogger())

	branches, err := svc.Mindmap(context.Background(), domain.Scope{ClusterID: "none"}, 0)
	if err != nil {
		t.Fatalf("Mindmap: %v", err)
	}
	if len(branches) != 0 {
		t.Fatalf("want empty outline, got %d branches", len(branches))
	}
}
