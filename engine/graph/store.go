package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// ConceptStore persists knowledge graphs to Neo4j, one subgraph per cluster.
type ConceptStore struct {
	driver neo4j.DriverWithContext
}

// NewConceptStore creates a ConceptStore over an existing driver.
func NewConceptStore(driver neo4j.DriverWithContext) *ConceptStore {
	return &ConceptStore{driver: driver}
}

// SaveGraph merges the graph's concepts and co-occurrence edges under the
// given cluster. Existing weights are overwritten, not accumulated, so a
// rebuild replaces the previous snapshot.
func (s *ConceptStore) SaveGraph(ctx context.Context, clusterID string, g Graph) error {
	sess := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	for _, n := range g.Nodes {
		_, err := sess.Run(ctx,
			`MERGE (c:Concept {term: $term, cluster_id: $cluster}) SET c.grp = $grp`,
			map[string]any{"term": n.ID, "cluster": clusterID, "grp": n.Group},
		)
		if err != nil {
			return fmt.Errorf("graph: save concept %q: %w", n.ID, err)
		}
	}

	for _, l := range g.Links {
		_, err := sess.Run(ctx,
			`MATCH (a:Concept {term: $src, cluster_id: $cluster}),
			       (b:Concept {term: $dst, cluster_id: $cluster})
			 MERGE (a)-[r:CO_OCCURS]->(b)
			 SET r.weight = $weight`,
			map[string]any{"src": l.Source, "dst": l.Target, "cluster": clusterID, "weight": l.Value},
		)
		if err != nil {
			return fmt.Errorf("graph: save link %s->%s: %w", l.Source, l.Target, err)
		}
	}
	return nil
}

// LoadGraph reads back the persisted graph for a cluster.
func (s *ConceptStore) LoadGraph(ctx context.Context, clusterID string) (Graph, error) {
	sess := s.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer sess.Close(ctx)

	g := Graph{Nodes: []Node{}, Links: []Link{}}

	nodes, err := sess.Run(ctx,
		`MATCH (c:Concept {cluster_id: $cluster}) RETURN c.term AS term, c.grp AS grp ORDER BY term`,
		map[string]any{"cluster": clusterID},
	)
	if err != nil {
		return g, fmt.Errorf("graph: load concepts: %w", err)
	}
	for nodes.Next(ctx) {
		rec := nodes.Record()
		term, _ := rec.Get("term")
		grp, _ := rec.Get("grp")
		n := Node{Group: 1}
		if s, ok := term.(string); ok {
			n.ID = s
		}
		if v, ok := grp.(int64); ok {
			n.Group = int(v)
		}
		g.Nodes = append(g.Nodes, n)
	}
	if err := nodes.Err(); err != nil {
		return g, fmt.Errorf("graph: load concepts: %w", err)
	}

	links, err := sess.Run(ctx,
		`MATCH (a:Concept {cluster_id: $cluster})-[r:CO_OCCURS]->(b:Concept {cluster_id: $cluster})
		 RETURN a.term AS src, b.term AS dst, r.weight AS weight ORDER BY src, dst`,
		map[string]any{"cluster": clusterID},
	)
	if err != nil {
		return g, fmt.Errorf("graph: load links: %w", err)
	}
	for links.Next(ctx) {
		rec := links.Record()
		src, _ := rec.Get("src")
		dst, _ := rec.Get("dst")
		weight, _ := rec.Get("weight")
		l := Link{Value: 1}
		if s, ok := src.(string); ok {
			l.Source = s
		}
		if s, ok := dst.(string); ok {
			l.Target = s
		}
		if v, ok := weight.(int64); ok {
			l.Value = int(v)
		}
		g.Links = append(g.Links, l)
	}
	if err := links.Err(); err != nil {
		return g, fmt.Errorf("graph: load links: %w", err)
	}
	return g, nil
}
