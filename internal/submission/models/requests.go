package models

import (
	"strings"

	dErrors "govdesk/pkg/domain-errors"
)

// CreateSubmissionRequest is the body of POST /api/submissions.
type CreateSubmissionRequest struct {
	ServiceName string         `json:"serviceName"`
	ServiceID   int            `json:"serviceId"`
	UserDetails map[string]any `json:"userDetails"`
}

// Normalize trims the service name.
func (r *CreateSubmissionRequest) Normalize() {
	r.ServiceName = strings.TrimSpace(r.ServiceName)
}

// Validate checks the required creation fields.
func (r *CreateSubmissionRequest) Validate() error {
	if r.ServiceName == "" {
		return dErrors.New(dErrors.CodeValidation, "serviceName is required")
	}
	if r.UserDetails == nil {
		return dErrors.New(dErrors.CodeValidation, "userDetails is required")
	}
	probe := Submission{UserDetails: r.UserDetails}
	if probe.Email() == "" {
		return dErrors.New(dErrors.CodeValidation, "userDetails must contain email or userEmail")
	}
	if r.ServiceID < 0 {
		return dErrors.New(dErrors.CodeValidation, "serviceId must not be negative")
	}
	return nil
}

// Update modes accepted by PATCH /api/submissions/{id}.
const (
	UpdateModeStatus  = "status"
	UpdateModeSave    = "save"
	UpdateModeProcess = "process" // save details and mark ready for collection
)

// UpdateSubmissionRequest is the body of PATCH /api/submissions/{id}.
type UpdateSubmissionRequest struct {
	Mode      string         `json:"mode"`
	NewStatus Status         `json:"newStatus"`
	Notes     string         `json:"notes"`
	AdminID   string         `json:"adminId"`
	Updates   map[string]any `json:"updates"`
}

// Normalize defaults the mode. An empty AdminID is left for the service to
// attribute.
func (r *UpdateSubmissionRequest) Normalize() {
	r.Mode = strings.TrimSpace(r.Mode)
	if r.Mode == "" {
		r.Mode = UpdateModeProcess
	}
	r.AdminID = strings.TrimSpace(r.AdminID)
	r.Notes = strings.TrimSpace(r.Notes)
}

// Validate checks mode specific fields.
func (r *UpdateSubmissionRequest) Validate() error {
	switch r.Mode {
	case UpdateModeStatus:
		if !r.NewStatus.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "newStatus is not a known status")
		}
	case UpdateModeSave:
		if len(r.Updates) == 0 {
			return dErrors.New(dErrors.CodeValidation, "updates must not be empty")
		}
	case UpdateModeProcess:
	default:
		return dErrors.New(dErrors.CodeValidation, "mode must be status, save or process")
	}
	return nil
}

// MarkViewedRequest is the body of POST /api/submissions/{id}/view.
type MarkViewedRequest struct {
	AdminID string `json:"adminId"`
}
