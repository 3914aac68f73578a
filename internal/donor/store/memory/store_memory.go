package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"bloodlink/internal/donor/models"
	"bloodlink/pkg/domain"
	"bloodlink/pkg/platform/sentinel"
)

// RegisteredDonorLimit caps how many registered donors one listing returns,
// newest first.
const RegisteredDonorLimit = 50

// InMemoryDonorStore holds quick registrations and account profiles for
// development and tests. It applies the same query rules as the Firestore store.
type InMemoryDonorStore struct {
	mu         sync.RWMutex
	quick      []models.QuickUser
	registered map[string]models.RegisteredUser
}

func New() *InMemoryDonorStore {
	return &InMemoryDonorStore{
		registered: make(map[string]models.RegisteredUser),
	}
}

// AddQuickUser appends a quick registration.
func (s *InMemoryDonorStore) AddQuickUser(u models.QuickUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quick = append(s.quick, u)
}

// PutUser creates or replaces an account profile.
func (s *InMemoryDonorStore) PutUser(u models.RegisteredUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registered[u.ID] = u
}

// ListQuickDonors returns quick registrations in insertion order.
func (s *InMemoryDonorStore) ListQuickDonors(_ context.Context) ([]models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Donor, 0, len(s.quick))
	for _, u := range s.quick {
		out = append(out, models.FromQuickUser(u))
	}
	return out, nil
}

// ListRegisteredDonors returns accounts with the donor role, newest first,
// capped at RegisteredDonorLimit.
func (s *InMemoryDonorStore) ListRegisteredDonors(_ context.Context) ([]models.Donor, error) {
	s.mu.RLock()
	users := make([]models.RegisteredUser, 0, len(s.registered))
	for _, u := range s.registered {
		if domain.Role(u.Role) == domain.RoleDonor {
			users = append(users, u)
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(users, func(a, b models.RegisteredUser) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(users) > RegisteredDonorLimit {
		users = users[:RegisteredDonorLimit]
	}

	out := make([]models.Donor, 0, len(users))
	for _, u := range users {
		out = append(out, models.FromRegisteredUser(u))
	}
	return out, nil
}

func (s *InMemoryDonorStore) GetUser(_ context.Context, id string) (*models.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.registered[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &u, nil
}
