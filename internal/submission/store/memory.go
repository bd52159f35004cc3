package store

import (
	"context"
	"sync"

	"govdesk/internal/submission/models"
)

// MemoryAdapter keeps the encoded snapshot in process memory. It goes through
// the same codec as the durable adapters so load and save copy records.
type MemoryAdapter struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

func (a *MemoryAdapter) Load(_ context.Context) ([]*models.Submission, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if len(a.data) == 0 {
		return []*models.Submission{}, nil
	}
	return decodeCollection(a.data)
}

func (a *MemoryAdapter) Save(_ context.Context, subs []*models.Submission) error {
	data, err := encodeCollection(subs)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = data
	return nil
}

// Snapshot returns a copy of the last saved encoding.
func (a *MemoryAdapter) Snapshot() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]byte(nil), a.data...)
}

// Restore replaces the stored encoding, as an external writer would.
func (a *MemoryAdapter) Restore(data []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.data = append([]byte(nil), data...)
}
