package models

import "time"

// IsExpired is the expiry policy: a submission expires strictly after its
// ExpiresAt. At exactly ExpiresAt it is still live.
func IsExpired(s *Submission, now time.Time) bool {
	return now.After(s.ExpiresAt)
}
