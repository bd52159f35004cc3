package store

import (
	"context"
	"sync"

	"govdesk/internal/notification/models"
	"govdesk/pkg/domain"
)

// InMemoryStore keeps notifications in insertion order for tests and
// single-process deployments.
type InMemoryStore struct {
	mu    sync.RWMutex
	items []*models.Notification
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Add(_ context.Context, n *models.Notification) error {
	c := *n
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, &c)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, email string) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return forUser(s.items, email), nil
}

func (s *InMemoryStore) MarkRead(_ context.Context, id domain.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	markRead(s.items, id)
	return nil
}

func (s *InMemoryStore) ClearAll(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	s.items, n = withoutUser(s.items, email)
	return n, nil
}
