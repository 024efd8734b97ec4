package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
)

// Ensure ComparisonStore implements the interface.
var _ driven.ComparisonStore = (*ComparisonStore)(nil)

// ComparisonStore is an in-memory implementation of driven.ComparisonStore.
type ComparisonStore struct {
	mu          sync.RWMutex
	comparisons map[string]domain.Comparison
}

// NewComparisonStore creates a new in-memory comparison store.
func NewComparisonStore() *ComparisonStore {
	return &ComparisonStore{
		comparisons: make(map[string]domain.Comparison),
	}
}

// Save stores or updates a comparison.
func (s *ComparisonStore) Save(_ context.Context, cmp *domain.Comparison) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparisons[cmp.ID] = *cmp
	return nil
}

// Get retrieves a comparison by ID.
func (s *ComparisonStore) Get(_ context.Context, id string) (*domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cmp, ok := s.comparisons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cmp, nil
}

// List returns all comparisons, newest first.
func (s *ComparisonStore) List(_ context.Context) ([]domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Comparison, 0, len(s.comparisons))
	for id := range s.comparisons {
		result = append(result, s.comparisons[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListByState returns comparisons in the given state, oldest first.
func (s *ComparisonStore) ListByState(_ context.Context, state domain.ComparisonState) ([]domain.Comparison, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Comparison
	for id := range s.comparisons {
		if s.comparisons[id].State == state {
			result = append(result, s.comparisons[id])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a comparison.
func (s *ComparisonStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comparisons[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.comparisons, id)
	return nil
}
