package memory

import (
	"context"
	"slices"
	"sync"

	"bloodlink/internal/request/models"
	"bloodlink/pkg/domain"
)

// InMemoryRequestStore keeps stored request documents for development and
// tests, applying the same normalization and query rules as Firestore.
type InMemoryRequestStore struct {
	mu       sync.RWMutex
	requests []models.StoredRequest
}

func New() *InMemoryRequestStore {
	return &InMemoryRequestStore{}
}

func (s *InMemoryRequestStore) Add(r models.StoredRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

// ListActiveRequests returns requests whose status is active, newest first.
func (s *InMemoryRequestStore) ListActiveRequests(_ context.Context) ([]models.Request, error) {
	s.mu.RLock()
	out := make([]models.Request, 0, len(s.requests))
	for _, stored := range s.requests {
		r := models.FromStored(stored)
		if r.Status == domain.RequestStatusActive {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.Request) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}
