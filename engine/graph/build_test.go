package graph

import "testing"

func TestBuild_LinksCoOccurringConcepts(t *testing.T) {
	sections := []string{
		"Neural networks use attention for sequence modelling.",
		"Attention weights matter. Neural networks again.",
		"Databases are unrelated to the others.",
	}
	concepts := []string{"neural networks", "attention", "databases"}

	g := Build(sections, concepts)

	if len(g.Nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Links) != 1 {
		t.Fatalf("links = %+v, want a single neural-attention link", g.Links)
	}
	l := g.Links[0]
	if l.Source != "neural networks" || l.Target != "attention" {
		t.Fatalf("unexpected link: %+v", l)
	}
	if l.Value != 2 {
		t.Fatalf("weight = %d, want 2 (co-occurs in two sections)", l.Value)
	}
}

func TestBuild_EmptyInputs(t *testing.T) {
	g := Build(nil, nil)
	if len(g.Nodes) != 0 || len(g.Links) != 0 {
		t.Fatalf("empty input should produce empty graph: %+v", g)
	}

	g = Build([]string{"text"}, []string{"solo"})
	if len(g.Nodes) != 1 || len(g.Links) != 0 {
		t.Fatalf("single concept cannot link: %+v", g)
	}
}

func TestBuild_CaseInsensitiveMatch(t *testing.T) {
	g := Build([]string{"GRADIENT DESCENT and Momentum together."}, []string{"gradient descent", "momentum"})
	if len(g.Links) != 1 {
		t.Fatalf("expected case-insensitive co-occurrence, got %+v", g.Links)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	sections := []string{"alpha beta gamma", "beta gamma alpha"}
	concepts := []string{"alpha", "beta", "gamma"}
	a := Build(sections, concepts)
	b := Build(sections, concepts)
	if len(a.Links) != len(b.Links) {
		t.Fatal("non-deterministic link count")
	}
	for i := range a.Links {
		if a.Links[i] != b.Links[i] {
			t.Fatalf("link order unstable: %+v vs %+v", a.Links[i], b.Links[i])
		}
	}
}
