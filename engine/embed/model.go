// Package embed maps text to fixed-length dense vectors through a single
// shared model handle. Loading is an explicit, one-time, idempotent step;
// embedding before load fails fast rather than lazy-loading mid-request.
package embed

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/PaperMindAI/papermind-mvp/engine/domain"
)

// Embedder produces one vector per input text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Loader is implemented by backends that need explicit initialisation
// (model warm-up, connectivity probe) before serving embeddings.
type Loader interface {
	Load(ctx context.Context) error
}

// Model is the shared handle over a backing embedder. After Load the backend
// is treated as read-only, so concurrent Embed calls need no locking.
type Model struct {
	backend Embedder
	once    sync.Once
	loaded  atomic.Bool
	loadErr error
}

// NewModel wraps a backend in an unloaded handle.
func NewModel(backend Embedder) *Model {
	return &Model{backend: backend}
}

// Load initialises the backend exactly once. Subsequent calls return the
// first outcome.
func (m *Model) Load(ctx context.Context) error {
	m.once.Do(func() {
		if l, ok := m.backend.(Loader); ok {
			m.loadErr = l.Load(ctx)
		}
		if m.loadErr == nil {
			m.loaded.Store(true)
		}
	})
	return m.loadErr
}

// Loaded reports whether the handle is ready to serve embeddings.
func (m *Model) Loaded() bool { return m.loaded.Load() }

// Embed returns one vector per input, in input order. It fails fast with
// domain.ErrModelNotLoaded if Load has not succeeded.
func (m *Model) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if !m.loaded.Load() {
		return nil, domain.ErrModelNotLoaded
	}
	vectors, err := m.backend.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed: got %d vectors for %d texts", len(vectors), len(texts))
	}
	return vectors, nil
}

// EmbedOne embeds a single text.
func (m *Model) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedOnce lazy-loads the model on first use and then embeds. Call-sites
// that cannot arrange an explicit Load during startup opt into this variant.
func (m *Model) EmbedOnce(ctx context.Context, texts []string) ([][]float32, error) {
	if err := m.Load(ctx); err != nil {
		return nil, fmt.Errorf("embed: lazy load: %w", err)
	}
	return m.Embed(ctx, texts)
}
