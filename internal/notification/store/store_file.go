package store

import (
	"context"
	"sync"

	"govdesk/internal/notification/models"
	"govdesk/pkg/domain"
	"govdesk/pkg/platform/atomicfile"
)

// FileStore keeps every notification in one JSON file, re-read on each call
// so several processes observe each other's writes.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() ([]*models.Notification, error) {
	data, err := atomicfile.Read(s.path)
	if err != nil || data == nil {
		return []*models.Notification{}, err
	}
	return decode(data)
}

func (s *FileStore) save(all []*models.Notification) error {
	data, err := encode(all)
	if err != nil {
		return err
	}
	return atomicfile.Write(s.path, data)
}

func (s *FileStore) Add(ctx context.Context, n *models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return err
	}
	c := *n
	return s.save(append(all, &c))
}

func (s *FileStore) ListByUser(ctx context.Context, email string) ([]*models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return nil, err
	}
	return forUser(all, email), nil
}

func (s *FileStore) MarkRead(ctx context.Context, id domain.NotificationID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return err
	}
	if !markRead(all, id) {
		return nil
	}
	return s.save(all)
}

func (s *FileStore) ClearAll(ctx context.Context, email string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.load()
	if err != nil {
		return 0, err
	}
	kept, removed := withoutUser(all, email)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(kept)
}
