package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/gridraw/pkg/graph"
)

// MemoryStore keeps drawings in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	drawings map[string]graph.Drawing
	now      func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drawings: make(map[string]graph.Drawing), now: time.Now}
}

func (s *MemoryStore) Save(ctx context.Context, d graph.Drawing) (string, error) {
	d = prepare(d, s.now())
	s.mu.Lock()
	s.drawings[d.ID] = d
	s.mu.Unlock()
	return d.ID, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (graph.Drawing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drawings[id]
	if !ok {
		return graph.Drawing{}, ErrNotFound
	}
	return d, nil
}

func (s *MemoryStore) List(ctx context.Context, opts ListOptions) ([]graph.Drawing, error) {
	s.mu.RLock()
	out := make([]graph.Drawing, 0, len(s.drawings))
	for _, d := range s.drawings {
		if opts.match(d) {
			out = append(out, d)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b graph.Drawing) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(out) > opts.limit() {
		out = out[:opts.limit()]
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drawings[id]; !ok {
		return ErrNotFound
	}
	delete(s.drawings, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
