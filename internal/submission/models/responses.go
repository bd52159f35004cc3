package models

import (
	"time"

	"govdesk/pkg/domain"
)

// CreatedSubmission is the creation response payload.
type CreatedSubmission struct {
	ID          domain.SubmissionID `json:"id"`
	ServiceID   int                 `json:"serviceId"`
	ServiceName string              `json:"serviceName"`
	QRCode      string              `json:"qrCode"`
	QRURL       string              `json:"qrUrl"`
	Status      Status              `json:"status"`
	StatusLabel string              `json:"statusLabel"`
	SubmittedAt time.Time           `json:"submittedAt"`
}

// CreateSubmissionResponse wraps the created submission.
type CreateSubmissionResponse struct {
	Success    bool              `json:"success"`
	Submission CreatedSubmission `json:"submission"`
}

// ListSubmissionsResponse is returned by every listing endpoint.
type ListSubmissionsResponse struct {
	Success     bool   `json:"success"`
	Submissions []View `json:"submissions"`
}

// SubmissionResponse wraps a single view.
type SubmissionResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Submission View   `json:"submission"`
}

// HealthResponse is the health/stats payload.
type HealthResponse struct {
	Status string `json:"status"`
	Stats  Stats  `json:"stats"`
}
