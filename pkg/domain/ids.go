package domain

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "govdesk/pkg/domain-errors"
)

// SubmissionID is the external lookup key of a submission. It is also encoded
// into the scannable code, so it must stay URL-safe.
type SubmissionID string

const (
	submissionPrefix = "SUB_"
	suffixLen        = 9
)

// suffixSpace is 36^9, the number of distinct random suffixes.
const suffixSpace = 101559956668416

// NewSubmissionID builds SUB_<unix millis>_<9 base36 chars>.
func NewSubmissionID(now time.Time) SubmissionID {
	return SubmissionID(fmt.Sprintf("%s%d_%s", submissionPrefix, now.UnixMilli(), randomSuffix()))
}

// ParseSubmissionID validates the shape of an externally supplied id.
func ParseSubmissionID(s string) (SubmissionID, error) {
	rest, ok := strings.CutPrefix(s, submissionPrefix)
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "submission id must start with SUB_")
	}
	millis, suffix, ok := strings.Cut(rest, "_")
	if !ok || millis == "" || suffix == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "malformed submission id")
	}
	if _, err := strconv.ParseInt(millis, 10, 64); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "malformed submission id timestamp")
	}
	for _, r := range suffix {
		if !(r >= '0' && r <= '9') && !(r >= 'a' && r <= 'z') {
			return "", dErrors.New(dErrors.CodeInvalidInput, "malformed submission id suffix")
		}
	}
	return SubmissionID(s), nil
}

func (id SubmissionID) String() string {
	return string(id)
}

// IsNil reports whether the id is empty.
func (id SubmissionID) IsNil() bool {
	return id == ""
}

// NotificationID identifies one raised notification.
type NotificationID string

// NewNotificationID builds NOTIF_<unix millis>_<9 base36 chars>.
func NewNotificationID(now time.Time) NotificationID {
	return NotificationID(fmt.Sprintf("NOTIF_%d_%s", now.UnixMilli(), randomSuffix()))
}

func (id NotificationID) String() string {
	return string(id)
}

func randomSuffix() string {
	u := uuid.New()
	n := binary.BigEndian.Uint64(u[:8]) % suffixSpace
	s := strconv.FormatUint(n, 36)
	if len(s) < suffixLen {
		s = strings.Repeat("0", suffixLen-len(s)) + s
	}
	return s
}
