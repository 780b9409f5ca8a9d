package retrieval

import (
	"context"
	"sync"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

// MemStore is an in-memory SectionStore. It backs tests and single-node
// deployments that do not need durable section storage.
type MemStore struct {
	mu       sync.RWMutex
	order    []string
	docs     map[string]DocumentRecord
	sections map[string][]domain.EmbeddedSection
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		docs:     make(map[string]DocumentRecord),
		sections: make(map[string][]domain.EmbeddedSection),
	}
}

func (m *MemStore) DocumentIDs(_ context.Context, scope domain.Scope) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(scope.DocumentIDs) > 0 {
		ids := make([]string, 0, len(scope.DocumentIDs))
		for _, id := range scope.DocumentIDs {
			if _, ok := m.docs[id]; ok {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	var ids []string
	for _, id := range m.order {
		if scope.ClusterID == "" || m.docs[id].ClusterID == scope.ClusterID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *MemStore) Documents(_ context.Context, ids []string) ([]DocumentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]DocumentRecord, 0, len(ids))
	for _, id := range ids {
		if rec, ok := m.docs[id]; ok {
			recs = append(recs, rec)
		}
	}
	return recs, nil
}

func (m *MemStore) SectionsByDocuments(_ context.Context, docIDs []string) ([]domain.EmbeddedSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.EmbeddedSection
	for _, id := range docIDs {
		out = append(out, m.sections[id]...)
	}
	return out, nil
}

func (m *MemStore) SaveDocument(_ context.Context, doc DocumentRecord, sections []domain.EmbeddedSection) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[doc.ID]; !ok {
		m.order = append(m.order, doc.ID)
	}
	m.docs[doc.ID] = doc
	m.sections[doc.ID] = append([]domain.EmbeddedSection(nil), sections...)
	return nil
}

func (m *MemStore) DeleteDocument(_ context.Context, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, docID)
	delete(m.sections, docID)
	for i, id := range m.order {
		if id == docID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
