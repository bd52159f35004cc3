package models

import (
	"strings"
	"time"

	"govdesk/pkg/domain"
	dErrors "govdesk/pkg/domain-errors"
)

// Type is the severity shown to the user.
type Type string

const (
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeError   Type = "error"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeSuccess, TypeWarning, TypeInfo, TypeError:
		return true
	}
	return false
}

// Notification is one message addressed to a user email.
type Notification struct {
	ID           domain.NotificationID `json:"id"`
	UserEmail    string                `json:"userEmail"`
	Title        string                `json:"title"`
	Message      string                `json:"message"`
	Type         Type                  `json:"type"`
	Timestamp    time.Time             `json:"timestamp"`
	Read         bool                  `json:"read"`
	ServiceName  string                `json:"serviceName,omitempty"`
	SubmissionID domain.SubmissionID   `json:"submissionId,omitempty"`
}

// Message is what a producer raises. ID, timestamp and read state are
// assigned on delivery.
type Message struct {
	UserEmail    string              `json:"userEmail"`
	Title        string              `json:"title"`
	Message      string              `json:"message"`
	Type         Type                `json:"type"`
	ServiceName  string              `json:"serviceName,omitempty"`
	SubmissionID domain.SubmissionID `json:"submissionId,omitempty"`
}

// Normalize trims fields, lowercases the recipient and defaults the type.
func (m *Message) Normalize() {
	m.UserEmail = domain.NormalizeEmail(m.UserEmail)
	m.Title = strings.TrimSpace(m.Title)
	m.Message = strings.TrimSpace(m.Message)
	if m.Type == "" {
		m.Type = TypeInfo
	}
}

func (m *Message) Validate() error {
	if m.UserEmail == "" {
		return dErrors.New(dErrors.CodeValidation, "userEmail is required")
	}
	if m.Title == "" || m.Message == "" {
		return dErrors.New(dErrors.CodeValidation, "title and message are required")
	}
	if !m.Type.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "type must be success, warning, info or error")
	}
	return nil
}

// NewNotification stamps a normalized message for delivery.
func NewNotification(m Message, now time.Time) *Notification {
	now = now.UTC()
	return &Notification{
		ID:           domain.NewNotificationID(now),
		UserEmail:    domain.NormalizeEmail(m.UserEmail),
		Title:        m.Title,
		Message:      m.Message,
		Type:         m.Type,
		Timestamp:    now,
		ServiceName:  m.ServiceName,
		SubmissionID: m.SubmissionID,
	}
}

// UpdateRequest is the body of PATCH /api/notifications.
type UpdateRequest struct {
	ID        domain.NotificationID `json:"id"`
	UserEmail string                `json:"userEmail"`
	Action    string                `json:"action"`
}

// ActionClearAll removes every notification of one user.
const ActionClearAll = "clearAll"

func (r *UpdateRequest) Validate() error {
	if r.Action == ActionClearAll && strings.TrimSpace(r.UserEmail) != "" {
		return nil
	}
	if r.ID != "" {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, "missing id or userEmail/action")
}

type ListResponse struct {
	Success       bool            `json:"success"`
	Notifications []*Notification `json:"notifications"`
}

type CreateResponse struct {
	Success      bool          `json:"success"`
	Notification *Notification `json:"notification"`
}
