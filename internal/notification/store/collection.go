package store

import (
	"encoding/json"
	"fmt"
	"slices"

	"govdesk/internal/notification/models"
	"govdesk/pkg/domain"
	"govdesk/pkg/platform/sentinel"
)

// newestFirst orders by timestamp descending; for equal timestamps the later
// insertion comes first.
func newestFirst(all []*models.Notification) []*models.Notification {
	out := slices.Clone(all)
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b *models.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

func forUser(all []*models.Notification, email string) []*models.Notification {
	email = domain.NormalizeEmail(email)
	out := make([]*models.Notification, 0)
	for _, n := range all {
		if n.UserEmail == email {
			c := *n
			out = append(out, &c)
		}
	}
	return newestFirst(out)
}

// markRead flags id as read. Reports whether anything changed.
func markRead(all []*models.Notification, id domain.NotificationID) bool {
	for _, n := range all {
		if n.ID == id && !n.Read {
			n.Read = true
			return true
		}
	}
	return false
}

func withoutUser(all []*models.Notification, email string) ([]*models.Notification, int) {
	email = domain.NormalizeEmail(email)
	kept := make([]*models.Notification, 0, len(all))
	for _, n := range all {
		if n.UserEmail != email {
			kept = append(kept, n)
		}
	}
	return kept, len(all) - len(kept)
}

func encode(all []*models.Notification) ([]byte, error) {
	if all == nil {
		all = []*models.Notification{}
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode notifications: %w", err)
	}
	return append(data, '\n'), nil
}

func decode(data []byte) ([]*models.Notification, error) {
	var all []*models.Notification
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("%w: %v", sentinel.ErrCorrupt, err)
	}
	return slices.DeleteFunc(all, func(n *models.Notification) bool { return n == nil }), nil
}
