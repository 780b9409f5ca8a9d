// Package graph builds and persists the knowledge graph view: TF-IDF key
// concepts as nodes, section co-occurrence as links.
package graph

// Node is one concept in the knowledge graph.
type Node struct {
	ID    string `json:"id"`
	Group int    `json:"group"`
}

// Link connects two concepts that co-occur within one section.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// Graph is the node/link set consumed by the graph and mindmap views.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}
