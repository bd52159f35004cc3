package store

import (
	"context"
	"encoding/json"
	"fmt"

	"govdesk/internal/submission/models"
	"govdesk/pkg/domain"
	"govdesk/pkg/platform/sentinel"
)

// Adapter reads and writes the whole submission collection as one unit.
// There are no partial updates: every mutation is load, mutate, save.
//
// Load returns an empty collection when no durable copy exists yet and an
// error wrapping sentinel.ErrCorrupt when the copy cannot be decoded.
// Save atomically replaces the durable copy.
type Adapter interface {
	Load(ctx context.Context) ([]*models.Submission, error)
	Save(ctx context.Context, subs []*models.Submission) error
}

// encodeCollection is the canonical encoding shared by every adapter, so a
// snapshot moved between backends stays byte-identical.
func encodeCollection(subs []*models.Submission) ([]byte, error) {
	if subs == nil {
		subs = []*models.Submission{}
	}
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode submissions: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeCollection parses a snapshot and rejects structurally invalid ones.
func decodeCollection(data []byte) ([]*models.Submission, error) {
	var subs []*models.Submission
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrCorrupt, err)
	}
	seen := make(map[domain.SubmissionID]struct{}, len(subs))
	out := subs[:0]
	for i, s := range subs {
		if s == nil {
			return nil, fmt.Errorf("%w: null record at index %d", sentinel.ErrCorrupt, i)
		}
		if s.ID.IsNil() {
			return nil, fmt.Errorf("%w: record at index %d has no id", sentinel.ErrCorrupt, i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", sentinel.ErrCorrupt, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.ViewedBy == nil {
			s.ViewedBy = []string{}
		}
		out = append(out, s)
	}
	if out == nil {
		out = []*models.Submission{}
	}
	return out, nil
}
