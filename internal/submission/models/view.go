package models

import (
	"time"

	"govdesk/pkg/domain"
)

// View is the outward projection of a submission. IsExpired and StatusLabel
// are computed at read time and never persisted.
type View struct {
	ID              domain.SubmissionID `json:"id"`
	ServiceID       int                 `json:"serviceId"`
	ServiceName     string              `json:"serviceName"`
	UserDetails     map[string]any      `json:"userDetails"`
	QRCode          string              `json:"qrCode"`
	SubmittedAt     time.Time           `json:"submittedAt"`
	ExpiresAt       time.Time           `json:"expiresAt"`
	ModifiedAt      time.Time           `json:"modifiedAt"`
	Status          Status              `json:"status"`
	StatusLabel     string              `json:"statusLabel"`
	StatusChangedAt *time.Time          `json:"statusChangedAt,omitempty"`
	IsExpired       bool                `json:"isExpired"`
	ViewedBy        []string            `json:"viewedBy"`
	StatusHistory   []StatusChange      `json:"statusHistory"`
	AdminNotes      string              `json:"adminNotes,omitempty"`
	NotifiedExpiry  bool                `json:"notifiedExpiry"`
}

// ToView projects s at time now using labels from lang.
func ToView(s *Submission, now time.Time, lang Lang) View {
	viewedBy := s.ViewedBy
	if viewedBy == nil {
		viewedBy = []string{}
	}
	history := s.StatusHistory
	if history == nil {
		history = []StatusChange{}
	}
	return View{
		ID:              s.ID,
		ServiceID:       s.ServiceID,
		ServiceName:     s.ServiceName,
		UserDetails:     s.UserDetails,
		QRCode:          s.QRCode,
		SubmittedAt:     s.SubmittedAt,
		ExpiresAt:       s.ExpiresAt,
		ModifiedAt:      s.ModifiedAt,
		Status:          s.Status,
		StatusLabel:     s.Status.LabelIn(lang),
		StatusChangedAt: s.StatusChangedAt,
		IsExpired:       IsExpired(s, now),
		ViewedBy:        viewedBy,
		StatusHistory:   history,
		AdminNotes:      s.AdminNotes,
		NotifiedExpiry:  s.NotifiedExpiry,
	}
}

// ToViews projects a slice, preserving order.
func ToViews(subs []*Submission, now time.Time, lang Lang) []View {
	out := make([]View, 0, len(subs))
	for _, s := range subs {
		out = append(out, ToView(s, now, lang))
	}
	return out
}
