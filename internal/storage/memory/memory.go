package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"effort-planner/internal/storage"
)

// Store keeps the subcontractor directory in process memory.
type Store struct {
	mu   sync.Mutex
	subs []storage.Subcontractor
}

func New(seed []storage.Subcontractor) *Store {
	return &Store{subs: slices.Clone(seed)}
}

func (s *Store) Subcontractors(_ context.Context) ([]storage.Subcontractor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]storage.Subcontractor, 0, len(s.subs))
	for _, sub := range s.subs {
		if sub.IsActive {
			out = append(out, sub)
		}
	}
	slices.SortStableFunc(out, func(a, b storage.Subcontractor) int {
		return cmp.Or(cmp.Compare(a.SortOrder, b.SortOrder), cmp.Compare(a.Name, b.Name))
	})
	return out, nil
}

func (s *Store) SaveSubcontractor(_ context.Context, sub storage.Subcontractor) error {
	if err := sub.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subs {
		if s.subs[i].Name == sub.Name {
			s.subs[i] = sub
			return nil
		}
	}
	s.subs = append(s.subs, sub)
	return nil
}

func (s *Store) Close() error {
	return nil
}
