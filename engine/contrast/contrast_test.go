package contrast

import (
	"fmt"
	"reflect"
	"testing"
)

func TestContradictions_SpecScenario(t *testing.T) {
	passages := []string{"However, X fails in edge cases."}
	got := Contradictions(passages, 0)
	if len(got) != 1 {
		t.Fatalf("expected one match, got %d: %+v", len(got), got)
	}
	if got[0].Cue != "however" {
		t.Errorf("cue = %q, want however", got[0].Cue)
	}
	if got[0].Sentence != "However, X fails in edge cases." {
		t.Errorf("sentence = %q", got[0].Sentence)
	}
}

func TestContradictions_DeduplicatesSentences(t *testing.T) {
	dup := "However, the evidence contradicts this claim."
	passages := []string{dup + " " + dup, dup}
	got := Contradictions(passages, 0)
	if len(got) != 1 {
		t.Fatalf("duplicate sentence text must be suppressed, got %d matches", len(got))
	}
}

func TestContradictions_CapsAtLimit(t *testing.T) {
	var passages []string
	for i := 0; i < 10; i++ {
		passages = append(passages, fmt.Sprintf("However, finding %d differs from the rest.", i))
	}
	got := Contradictions(passages, 0)
	if len(got) != DefaultLimit {
		t.Fatalf("expected %d matches, got %d", DefaultLimit, len(got))
	}
	got = Contradictions(passages, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches with explicit limit, got %d", len(got))
	}
}

func TestViewpoints(t *testing.T) {
	passages := []string{
		"On the other hand, some researchers pursue a symbolic route. The data is unambiguous.",
		"Others suggest a hybrid design entirely.",
	}
	got := Viewpoints(passages, 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	if got[0].Cue != "on the other hand" {
		t.Errorf("first cue = %q", got[0].Cue)
	}
	if got[1].Cue != "others suggest" {
		t.Errorf("second cue = %q", got[1].Cue)
	}
}

func TestScan_CaseInsensitive(t *testing.T) {
	got := Contradictions([]string{"NEVERTHELESS the outcome held."}, 0)
	if len(got) != 1 || got[0].Cue != "nevertheless" {
		t.Fatalf("case-insensitive match failed: %+v", got)
	}
}

func TestScan_NoMatches(t *testing.T) {
	got := Contradictions([]string{"Plain agreement all the way through."}, 0)
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{
			"First sentence. Second sentence! Third?",
			[]string{"First sentence.", "Second sentence!", "Third?"},
		},
		{
			"No terminal punctuation here",
			[]string{"No terminal punctuation here"},
		},
		{
			"Version 2.1 ships soon. Really.",
			[]string{"Version 2.1 ships soon.", "Really."},
		},
		{"", nil},
	}
	for _, tt := range tests {
		if got := SplitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitSentences(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
