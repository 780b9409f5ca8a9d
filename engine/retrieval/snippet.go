package retrieval

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PaperMindAI/papermind-mvp/engine/contrast"
	"github.com/PaperMindAI/papermind-mvp/engine/keyphrase"
)

var wordPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9\-]+`)

// Summarize condenses text to at most maxSentences sentences, picked by
// word-frequency score and returned in their original order.
func Summarize(text string, maxSentences int) string {
	sentences := contrast.SplitSentences(text)
	if len(sentences) <= maxSentences {
		return strings.TrimSpace(text)
	}

	freq := make(map[string]int)
	for _, s := range sentences {
		for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
			if keyphrase.Stopword(w) {
				continue
			}
			freq[w]++
		}
	}

	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		total := 0
		for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
			total += freq[w]
		}
		ranked = append(ranked, scored{idx: i, score: total})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	keep := ranked[:maxSentences]
	sort.Slice(keep, func(i, j int) bool { return keep[i].idx < keep[j].idx })

	parts := make([]string, 0, len(keep))
	for _, k := range keep {
		parts = append(parts, strings.TrimSpace(sentences[k.idx]))
	}
	return strings.Join(parts, " ")
}
