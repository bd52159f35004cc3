package models

import (
	"encoding/base64"
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"govdesk/pkg/domain"
)

// ExpiryWindow is how long an admin has to review a submission.
const ExpiryWindow = 24 * time.Hour

// Email keys recognized in user details, in lookup order.
const (
	DetailEmail     = "email"
	DetailUserEmail = "userEmail"
)

// Submission is one user-filed form instance.
//
// Invariants:
//   - ID is unique and immutable
//   - ExpiresAt == SubmittedAt + ExpiryWindow and is never mutated
//   - expiry is derived at read time (see IsExpired), never stored
//   - ViewedBy is append-only without duplicates; non-empty means reviewed
//   - NotifiedExpiry only ever moves false -> true
//   - StatusHistory is append-only and its last entry equals Status
type Submission struct {
	ID              domain.SubmissionID `json:"id"`
	ServiceID       int                 `json:"serviceId"`
	ServiceName     string              `json:"serviceName"`
	UserDetails     map[string]any      `json:"userDetails"`
	QRCode          string              `json:"qrCode"`
	SubmittedAt     time.Time           `json:"submittedAt"`
	ExpiresAt       time.Time           `json:"expiresAt"`
	ModifiedAt      time.Time           `json:"modifiedAt"`
	Status          Status              `json:"status"`
	StatusChangedAt *time.Time          `json:"statusChangedAt,omitempty"`
	ViewedBy        []string            `json:"viewedBy"`
	StatusHistory   []StatusChange      `json:"statusHistory"`
	AdminNotes      string              `json:"adminNotes,omitempty"`
	NotifiedExpiry  bool                `json:"notifiedExpiry"`
}

// StatusChange is one audit trail entry.
type StatusChange struct {
	Status    Status    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// qrPayload is what the scannable code carries.
type qrPayload struct {
	ID          domain.SubmissionID `json:"id"`
	ServiceName string              `json:"serviceName"`
	SubmittedAt int64               `json:"submittedAt"`
}

// NewSubmission builds a fresh submission in the pending state.
func NewSubmission(id domain.SubmissionID, serviceName string, serviceID int, details map[string]any, now time.Time) *Submission {
	now = now.UTC()
	return &Submission{
		ID:          id,
		ServiceID:   serviceID,
		ServiceName: serviceName,
		UserDetails: maps.Clone(details),
		QRCode:      EncodeQRCode(id, serviceName, now),
		SubmittedAt: now,
		ExpiresAt:   now.Add(ExpiryWindow),
		ModifiedAt:  now,
		Status:      StatusPending,
		ViewedBy:    []string{},
		StatusHistory: []StatusChange{{
			Status:    StatusPending,
			ChangedAt: now,
			Notes:     "Application submitted by user",
		}},
	}
}

// EncodeQRCode returns base64(JSON{id, serviceName, submittedAt millis}).
func EncodeQRCode(id domain.SubmissionID, serviceName string, submittedAt time.Time) string {
	raw, _ := json.Marshal(qrPayload{ID: id, ServiceName: serviceName, SubmittedAt: submittedAt.UnixMilli()})
	return base64.StdEncoding.EncodeToString(raw)
}

// Email returns the applicant address from either recognized key.
func (s *Submission) Email() string {
	for _, key := range []string{DetailEmail, DetailUserEmail} {
		if v, ok := s.UserDetails[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// BelongsTo reports whether either email key matches the given address.
func (s *Submission) BelongsTo(email string) bool {
	for _, key := range []string{DetailEmail, DetailUserEmail} {
		if v, ok := s.UserDetails[key].(string); ok && domain.SameEmail(v, email) {
			return true
		}
	}
	return false
}

// IsReviewed reports whether any admin has recorded a view.
func (s *Submission) IsReviewed() bool {
	return len(s.ViewedBy) > 0
}

// AddViewer appends viewer unless already present. Reports whether it changed.
func (s *Submission) AddViewer(viewer string) bool {
	if viewer == "" || slices.Contains(s.ViewedBy, viewer) {
		return false
	}
	s.ViewedBy = append(s.ViewedBy, viewer)
	return true
}

// ApplyStatus appends a history entry and moves the current status.
func (s *Submission) ApplyStatus(status Status, changedBy, notes string, now time.Time) {
	now = now.UTC()
	s.StatusHistory = append(s.StatusHistory, StatusChange{
		Status:    status,
		ChangedAt: now,
		ChangedBy: changedBy,
		Notes:     notes,
	})
	s.Status = status
	s.StatusChangedAt = &now
	s.ModifiedAt = now
	if notes != "" {
		s.AdminNotes = notes
	}
}

// MergeDetails overlays updates onto the user details. Nil values are skipped.
func (s *Submission) MergeDetails(updates map[string]any, now time.Time) {
	if s.UserDetails == nil {
		s.UserDetails = make(map[string]any, len(updates))
	}
	for k, v := range updates {
		if v == nil {
			continue
		}
		s.UserDetails[k] = v
	}
	s.ModifiedAt = now.UTC()
}

// NeedsExpiryNotice reports whether the expiry notification should fire now:
// naturally expired, never reviewed and not yet latched.
func (s *Submission) NeedsExpiryNotice(now time.Time) bool {
	return IsExpired(s, now) && !s.IsReviewed() && !s.NotifiedExpiry
}

// Clone returns a deep copy so callers cannot mutate a cached record.
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	c := *s
	c.UserDetails = cloneDetails(s.UserDetails)
	c.ViewedBy = slices.Clone(s.ViewedBy)
	if c.ViewedBy == nil {
		c.ViewedBy = []string{}
	}
	c.StatusHistory = slices.Clone(s.StatusHistory)
	if s.StatusChangedAt != nil {
		t := *s.StatusChangedAt
		c.StatusChangedAt = &t
	}
	return &c
}

func cloneDetails(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch vv := v.(type) {
		case map[string]any:
			out[k] = cloneDetails(vv)
		case []any:
			out[k] = slices.Clone(vv)
		default:
			out[k] = v
		}
	}
	return out
}
