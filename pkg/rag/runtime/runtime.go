// Package runtime lazily builds the expensive model handles behind an
// idempotent readiness check.
package runtime

import (
	"context"
	"sync"

	"giziai-be/pkg/embedding"
	"giziai-be/pkg/llm"
)

// Handles are the process-wide model backends. Built once, shared by every
// request after that.
type Handles struct {
	LLM      llm.LLMProvider
	Embedder embedding.EmbeddingProvider
}

// BuildFunc constructs the handles. It may be slow (model warmup, network
// probes) and may fail; a failure is retried on the next Ensure call.
type BuildFunc func(ctx context.Context) (*Handles, error)

// Manager guards handle construction. Concurrent Ensure calls serialize on
// the mutex so at most one build runs at a time.
type Manager struct {
	mu      sync.Mutex
	build   BuildFunc
	handles *Handles
}

func NewManager(build BuildFunc) *Manager {
	return &Manager{build: build}
}

// Ensure returns the handles, building them on first use. Once a build
// succeeds the handles are never reconstructed.
func (m *Manager) Ensure(ctx context.Context) (*Handles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.handles != nil {
		return m.handles, nil
	}

	handles, err := m.build(ctx)
	if err != nil {
		return nil, err
	}
	m.handles = handles
	return m.handles, nil
}

// Ready reports whether a successful build has happened, without triggering
// one.
func (m *Manager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handles != nil
}
