package graph

import "strings"

// Build assembles a knowledge graph from section texts and the corpus-level
// concept terms extracted for them. Two concepts are linked when they appear
// in the same section; repeated co-occurrence accumulates link weight.
// An empty corpus or empty concept set yields an empty graph, not an error.
func Build(sectionTexts []string, concepts []string) Graph {
	g := Graph{Nodes: make([]Node, 0, len(concepts)), Links: []Link{}}
	for _, c := range concepts {
		g.Nodes = append(g.Nodes, Node{ID: c, Group: 1})
	}
	if len(concepts) < 2 {
		return g
	}

	weights := make(map[[2]string]int)
	var order [][2]string
	for _, text := range sectionTexts {
		lower := strings.ToLower(text)
		var present []string
		for _, c := range concepts {
			if strings.Contains(lower, strings.ToLower(c)) {
				present = append(present, c)
			}
		}
		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				key := [2]string{present[i], present[j]}
				if _, ok := weights[key]; !ok {
					order = append(order, key)
				}
				weights[key]++
			}
		}
	}

	for _, key := range order {
		g.Links = append(g.Links, Link{Source: key[0], Target: key[1], Value: weights[key]})
	}
	return g
}
