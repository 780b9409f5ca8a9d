// Package keyphrase scores distinctive terms per document with a
// term-frequency/inverse-document-frequency weighting over a shared,
// capped vocabulary of word n-grams. It backs the knowledge graph and
// mindmap views.
package keyphrase

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

// tokenPattern keeps words starting with a letter, length >= 2.
var tokenPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9\-]+`)

// Options configures the vectorizer.
type Options struct {
	// MaxFeatures caps the shared vocabulary size.
	MaxFeatures int
	// MinN and MaxN bound the n-gram range.
	MinN, MaxN int
	// MaxDocFreq drops terms appearing in more than this fraction of
	// documents. Ignored for single-document corpora.
	MaxDocFreq float64
}

// DefaultOptions mirror the primary fitting configuration: unigrams through
// trigrams with a 95% document-frequency ceiling.
func DefaultOptions() Options {
	return Options{MaxFeatures: 1000, MinN: 1, MaxN: 3, MaxDocFreq: 0.95}
}

// Vectorizer holds a fitted vocabulary with smoothed IDF weights.
type Vectorizer struct {
	opts  Options
	terms []string
	index map[string]int
	idf   []float64
}

// Fit builds the vocabulary and IDF values from the corpus. The vocabulary
// is capped at MaxFeatures by corpus frequency (ties broken lexically) so
// output is reproducible for identical input.
func Fit(docs []string, opts Options) *Vectorizer {
	if opts.MaxN < opts.MinN {
		opts.MaxN = opts.MinN
	}

	counts := make(map[string]int)
	df := make(map[string]int)
	for _, doc := range docs {
		grams := ngrams(tokenize(doc), opts.MinN, opts.MaxN)
		seen := make(map[string]struct{}, len(grams))
		for _, g := range grams {
			counts[g]++
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				df[g]++
			}
		}
	}

	n := len(docs)
	candidates := make([]string, 0, len(counts))
	for term := range counts {
		if n > 1 && opts.MaxDocFreq > 0 && float64(df[term]) > opts.MaxDocFreq*float64(n) {
			continue
		}
		candidates = append(candidates, term)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if counts[candidates[i]] != counts[candidates[j]] {
			return counts[candidates[i]] > counts[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if opts.MaxFeatures > 0 && len(candidates) > opts.MaxFeatures {
		candidates = candidates[:opts.MaxFeatures]
	}
	sort.Strings(candidates)

	v := &Vectorizer{
		opts:  opts,
		terms: candidates,
		index: make(map[string]int, len(candidates)),
		idf:   make([]float64, len(candidates)),
	}
	for i, term := range candidates {
		v.index[term] = i
		v.idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1.0
	}
	return v
}

// Terms returns the fitted vocabulary in stable (lexical) order.
func (v *Vectorizer) Terms() []string { return v.terms }

// Weights computes the L2-normalised TF-IDF weights of one document against
// the fitted vocabulary. Terms outside the vocabulary contribute nothing.
func (v *Vectorizer) Weights(doc string) []float64 {
	weights := make([]float64, len(v.terms))
	if len(v.terms) == 0 {
		return weights
	}
	for _, g := range ngrams(tokenize(doc), v.opts.MinN, v.opts.MaxN) {
		if i, ok := v.index[g]; ok {
			weights[i] += v.idf[i]
		}
	}
	var norm float64
	for _, w := range weights {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range weights {
			weights[i] /= norm
		}
	}
	return weights
}

// TopTerms returns, for each document, up to k locally distinctive terms
// ranked by TF-IDF weight descending with lexical tie-breaks. Phrases made
// entirely of stopwords are dropped and terms are deduplicated
// case-insensitively. If the primary n-gram range produces an empty
// vocabulary the extractor falls back to a narrower range instead of
// failing; a document with no qualifying terms yields an empty list.
func TopTerms(docs []string, k int, opts Options) [][]domain.KeyConcept {
	v := Fit(docs, opts)
	if len(v.terms) == 0 && opts.MaxN > 2 {
		narrower := opts
		narrower.MaxN = 2
		narrower.MaxDocFreq = 0
		v = Fit(docs, narrower)
	}

	out := make([][]domain.KeyConcept, len(docs))
	for i, doc := range docs {
		out[i] = v.topFor(doc, k)
	}
	return out
}

func (v *Vectorizer) topFor(doc string, k int) []domain.KeyConcept {
	weights := v.Weights(doc)
	type scored struct {
		idx int
		w   float64
	}
	var nonzero []scored
	for i, w := range weights {
		if w > 0 {
			nonzero = append(nonzero, scored{i, w})
		}
	}
	sort.Slice(nonzero, func(a, b int) bool {
		if nonzero[a].w != nonzero[b].w {
			return nonzero[a].w > nonzero[b].w
		}
		return v.terms[nonzero[a].idx] < v.terms[nonzero[b].idx]
	})

	var concepts []domain.KeyConcept
	seen := make(map[string]struct{})
	for _, s := range nonzero {
		term := v.terms[s.idx]
		lower := strings.ToLower(term)
		if allStopwords(lower) {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		concepts = append(concepts, domain.KeyConcept{Term: term, Score: s.w})
		if k > 0 && len(concepts) >= k {
			break
		}
	}
	return concepts
}

// Concepts extracts the corpus-level top-N concept terms — the node set for
// the knowledge graph view.
func Concepts(docs []string, topN int) []string {
	opts := DefaultOptions()
	opts.MaxFeatures = topN
	v := Fit(docs, opts)
	if len(v.terms) == 0 && opts.MaxN > 2 {
		narrower := opts
		narrower.MaxN = 2
		narrower.MaxDocFreq = 0
		v = Fit(docs, narrower)
	}
	terms := make([]string, 0, len(v.terms))
	for _, t := range v.terms {
		if !allStopwords(t) {
			terms = append(terms, t)
		}
	}
	return terms
}

// tokenize lowercases and splits text into word tokens, dropping stopwords
// before n-gram construction.
func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if Stopword(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ngrams builds space-joined n-grams for n in [minN, maxN].
func ngrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	var grams []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}
