// Package contrast flags sentences that signal contradiction or an alternate
// viewpoint using fixed cue-phrase lexicons. Matching is lexical substring
// membership, not semantic entailment: a sentence containing "however" in an
// incidental sense is still reported. That over-inclusive recall is the
// contract downstream consumers rely on.
package contrast

import (
	"strings"
	"unicode"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

// DefaultLimit caps matches per category.
const DefaultLimit = 5

// ContradictionCues are the lexical markers treated as contradiction signals.
var ContradictionCues = []string{
	"however", "but", "although", "nevertheless", "nonetheless", "contrary",
	"conversely", "instead", "differs", "different", "disagree", "dispute",
	"conflict", "oppose", "contrast", "unlike", "whereas", "while", "yet",
	"challenge", "contradict", "inconsistent", "discrepancy", "diverge",
}

// ViewpointCues are the lexical markers treated as alternate-viewpoint signals.
var ViewpointCues = []string{
	"alternatively", "another perspective", "another approach", "another view",
	"different approach", "different perspective", "different view",
	"other approach", "other perspective", "other view", "in contrast",
	"on the other hand", "some argue", "others suggest", "another possibility",
}

// Contradictions scans candidate passages for contradiction cues. Up to
// limit matches are returned, deduplicated by exact sentence text with first
// occurrence winning. limit <= 0 uses DefaultLimit.
func Contradictions(passages []string, limit int) []domain.ContrastiveMatch {
	return scan(passages, ContradictionCues, limit)
}

// Viewpoints scans candidate passages for alternate-viewpoint cues.
func Viewpoints(passages []string, limit int) []domain.ContrastiveMatch {
	return scan(passages, ViewpointCues, limit)
}

func scan(passages []string, cues []string, limit int) []domain.ContrastiveMatch {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var matches []domain.ContrastiveMatch
	seen := make(map[string]struct{})
	for _, passage := range passages {
		for _, sentence := range SplitSentences(passage) {
			lower := strings.ToLower(sentence)
			for _, cue := range cues {
				if !strings.Contains(lower, cue) {
					continue
				}
				if _, dup := seen[sentence]; dup {
					break
				}
				seen[sentence] = struct{}{}
				matches = append(matches, domain.ContrastiveMatch{Sentence: sentence, Cue: cue})
				break
			}
			if len(matches) >= limit {
				return matches
			}
		}
	}
	return matches
}

// SplitSentences splits on sentence-ending punctuation followed by
// whitespace, trimming each piece.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') &&
			(i+1 >= len(runes) || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
