package service

import (
	"fmt"

	nmodels "govdesk/internal/notification/models"
	"govdesk/internal/submission/models"
)

const (
	expiredTitle     = "Application Expired"
	expiredMessage   = "Admin didn't check your form for %s within 24 hours. Your form has expired, please fill it again."
	rejectedFallback = "Please contact the office for details and guidance on next steps."
	readyTitle       = "✅ Your Card/Form is Ready! Come Collect Now"
	readyMessage     = "Your %s is ready for collection!\n\n📍 Please visit the office to collect your card/document.\n⏰ Office hours: Monday-Friday, 9 AM - 5 PM\n\nBring your application ID for reference."
)

// expiryMessage is raised once per submission that expired unreviewed.
func expiryMessage(sub *models.Submission, email string) nmodels.Message {
	return nmodels.Message{
		UserEmail:    email,
		Title:        expiredTitle,
		Message:      fmt.Sprintf(expiredMessage, sub.ServiceName),
		Type:         nmodels.TypeWarning,
		ServiceName:  sub.ServiceName,
		SubmissionID: sub.ID,
	}
}

// statusMessage returns the applicant notification for a status change.
func statusMessage(sub *models.Submission, status models.Status, notes string) (nmodels.Message, bool) {
	name := sub.ServiceName
	var title, body string
	typ := nmodels.TypeInfo
	switch status {
	case models.StatusSubmitted:
		title = "Application Submitted"
		body = fmt.Sprintf("Your %s application has been submitted. Our team will review it shortly.", name)
	case models.StatusUnderReview:
		title = "Application Under Review"
		body = fmt.Sprintf("Your %s application is now under review by our team.", name)
	case models.StatusProcessing:
		title = "Application Processing"
		body = fmt.Sprintf("Your %s application is being processed. We're preparing your documents.", name)
	case models.StatusCompleted:
		title = "Application Completed"
		body = fmt.Sprintf("Your %s documents are completed and ready! Please come and collect your card/document from the office.", name)
		typ = nmodels.TypeSuccess
	case models.StatusReadyForCollection:
		title = readyTitle
		body = fmt.Sprintf(readyMessage, name)
		typ = nmodels.TypeSuccess
	case models.StatusCollected:
		title = "Document Collected"
		body = fmt.Sprintf("Your %s document has been collected successfully. Thank you for using our service!", name)
		typ = nmodels.TypeSuccess
	case models.StatusRejected:
		if notes == "" {
			notes = rejectedFallback
		}
		title = "Application Rejected"
		body = fmt.Sprintf("Your %s application was rejected. %s", name, notes)
		typ = nmodels.TypeError
	default:
		return nmodels.Message{}, false
	}
	return nmodels.Message{
		Title:        title,
		Message:      body,
		Type:         typ,
		ServiceName:  name,
		SubmissionID: sub.ID,
	}, true
}
