package keyphrase

import (
	"reflect"
	"testing"
)

func TestTopTerms_Distinctive(t *testing.T) {
	docs := []string{
		"neural networks learn representations. neural networks generalise.",
		"databases store relational tables. databases index relational tables.",
		"climate models simulate weather patterns over long horizons.",
	}

	out := TopTerms(docs, 5, DefaultOptions())
	if len(out) != 3 {
		t.Fatalf("expected per-document results, got %d", len(out))
	}

	has := func(concepts []string, want string) bool {
		for _, c := range concepts {
			if c == want {
				return true
			}
		}
		return false
	}
	terms0 := make([]string, len(out[0]))
	for i, c := range out[0] {
		terms0[i] = c.Term
	}
	if !has(terms0, "neural") && !has(terms0, "neural networks") {
		t.Errorf("doc 0 top terms missing neural: %v", terms0)
	}
	for _, c := range out[0] {
		if has([]string{"databases", "relational"}, c.Term) {
			t.Errorf("doc 0 should not surface doc 1 terms: %v", terms0)
		}
	}
}

func TestTopTerms_RankedDescending(t *testing.T) {
	docs := []string{
		"gradient descent gradient descent gradient descent converges slowly.",
		"completely unrelated text about cooking pasta and sauce.",
	}
	out := TopTerms(docs, 10, DefaultOptions())
	for i := 1; i < len(out[0]); i++ {
		if out[0][i].Score > out[0][i-1].Score {
			t.Fatalf("terms not sorted by score descending: %+v", out[0])
		}
	}
}

func TestTopTerms_Deterministic(t *testing.T) {
	docs := []string{
		"alpha beta gamma delta epsilon zeta.",
		"alpha beta something else entirely different here.",
	}
	first := TopTerms(docs, 4, DefaultOptions())
	second := TopTerms(docs, 4, DefaultOptions())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical input produced different rankings:\n%v\n%v", first, second)
	}
}

func TestTopTerms_StopwordOnlyDocument(t *testing.T) {
	out := TopTerms([]string{"the and of in on at by with"}, 5, DefaultOptions())
	if len(out) != 1 {
		t.Fatalf("expected one result slot, got %d", len(out))
	}
	if len(out[0]) != 0 {
		t.Fatalf("stopword-only document should yield no terms, got %v", out[0])
	}
}

func TestTopTerms_CapsAtK(t *testing.T) {
	docs := []string{"one two three four five six seven eight nine ten tokens everywhere"}
	out := TopTerms(docs, 3, DefaultOptions())
	if len(out[0]) > 3 {
		t.Fatalf("expected at most 3 terms, got %d", len(out[0]))
	}
}

func TestFit_VocabularyCapAndOrder(t *testing.T) {
	docs := []string{
		"apple banana cherry apple banana apple",
		"banana cherry date",
	}
	opts := Options{MaxFeatures: 2, MinN: 1, MaxN: 1}
	v := Fit(docs, opts)
	// apple and banana have the highest corpus counts.
	want := []string{"apple", "banana"}
	if !reflect.DeepEqual(v.Terms(), want) {
		t.Fatalf("vocabulary = %v, want %v", v.Terms(), want)
	}
}

func TestWeights_L2Normalised(t *testing.T) {
	docs := []string{"alpha beta gamma", "gamma delta epsilon"}
	v := Fit(docs, Options{MaxFeatures: 100, MinN: 1, MaxN: 1})
	w := v.Weights(docs[0])
	var norm float64
	for _, x := range w {
		norm += x * x
	}
	if norm < 0.999 || norm > 1.001 {
		t.Fatalf("weights not L2-normalised, squared norm = %f", norm)
	}
}

func TestConcepts_FiltersStopwordPhrases(t *testing.T) {
	docs := []string{
		"transformer attention mechanisms dominate sequence modelling today.",
		"attention weights reveal what transformer layers focus on.",
	}
	concepts := Concepts(docs, 20)
	if len(concepts) == 0 {
		t.Fatal("expected corpus concepts")
	}
	for _, c := range concepts {
		if allStopwords(c) {
			t.Errorf("stopword phrase leaked: %q", c)
		}
	}
}

func TestNgrams(t *testing.T) {
	got := ngrams([]string{"a1", "b2", "c3"}, 1, 2)
	want := []string{"a1", "b2", "c3", "a1 b2", "b2 c3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ngrams = %v, want %v", got, want)
	}
}
