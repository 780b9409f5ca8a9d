package keyphrase

import "strings"

// stopwords is the English stopword list used for token filtering and for
// rejecting phrases made of nothing but stopwords.
var stopwords = makeStopwords()

func makeStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was",
		"were", "be", "been", "being", "it", "its", "this", "that", "these",
		"those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through", "during",
		"before", "after", "above", "below", "out", "off", "own", "same",
		"too", "very", "can", "will", "just", "should", "now", "he", "she",
		"they", "them", "their", "we", "you", "your", "i", "me", "my", "our",
		"his", "her", "him", "not", "no", "nor", "only", "both", "each",
		"few", "more", "most", "other", "some", "any", "all", "do", "does",
		"did", "doing", "have", "has", "had", "having", "what", "which",
		"who", "whom", "when", "where", "why", "how",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Stopword reports whether a lowercased token is a stopword.
func Stopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// allStopwords reports whether every word of a phrase is a stopword.
func allStopwords(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if !Stopword(w) {
			return false
		}
	}
	return true
}
