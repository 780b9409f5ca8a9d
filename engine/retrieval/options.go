package retrieval

// Options carries the tunable constants of the query pipeline. The defaults
// preserve the historical values; they are configuration, not derived.
type Options struct {
	// TopK is the default number of ranked sections for recommendations
	// and chat context.
	TopK int
	// CandidateSections is how many top sections semantic search inspects
	// for snippets and contrastive signals.
	CandidateSections int
	// SnippetThreshold is the minimum sentence-to-query similarity for a
	// sentence to qualify as a snippet.
	SnippetThreshold float32
	// SnippetsPerSection caps qualifying sentences kept per section.
	SnippetsPerSection int
	// MaxSnippets caps the assembled snippet list per response.
	MaxSnippets int
	// MinSentenceLength is the shortest sentence considered for snippets.
	MinSentenceLength int
	// ContrastLimit caps contradiction and viewpoint matches per category.
	ContrastLimit int
	// SummarySentences is the length of frequency-based snippets in
	// recommendation results.
	SummarySentences int
	// EmbedBatchSize bounds texts per embedding call during ingest.
	EmbedBatchSize int
	// MindmapSections caps how many sections feed the mindmap outline.
	MindmapSections int
	// MindmapPhrases is the default phrase count per outline branch.
	MindmapPhrases int
}

// DefaultOptions returns the engine's historical constants.
func DefaultOptions() Options {
	return Options{
		TopK:               5,
		CandidateSections:  10,
		SnippetThreshold:   0.3,
		SnippetsPerSection: 2,
		MaxSnippets:        10,
		MinSentenceLength:  20,
		ContrastLimit:      5,
		SummarySentences:   4,
		EmbedBatchSize:     100,
		MindmapSections:    12,
		MindmapPhrases:     6,
	}
}
