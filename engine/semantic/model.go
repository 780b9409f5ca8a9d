package semantic

// SearchResult is a single vector search hit with its section payload.
type SearchResult struct {
	ID         string  `json:"id"`
	Score      float32 `json:"score"`
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Source     string  `json:"source"`
	PageNumber int     `json:"page_number"`
	DocID      string  `json:"doc_id"`
	ClusterID  string  `json:"cluster_id"`
}

// VectorRecord is a single embedded section to store in Qdrant.
type VectorRecord struct {
	ID        string
	Embedding []float32
	Payload   map[string]any // title, content, source, page_number, doc_id, cluster_id
}
