package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "govdesk/pkg/domain-errors"
)

func TestMessageNormalizeAndValidate(t *testing.T) {
	m := Message{UserEmail: "  Asha@Example.IN ", Title: " Hello ", Message: "body"}
	m.Normalize()
	require.NoError(t, m.Validate())
	assert.Equal(t, "asha@example.in", m.UserEmail)
	assert.Equal(t, "Hello", m.Title)
	assert.Equal(t, TypeInfo, m.Type)

	bad := Message{UserEmail: "a@b.c", Title: "t", Message: "m", Type: "urgent"}
	err := bad.Validate()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	missing := Message{Title: "t", Message: "m"}
	missing.Normalize()
	assert.Error(t, missing.Validate())
}

func TestNewNotification(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("IST", 19800))
	n := NewNotification(Message{UserEmail: "Ravi@Example.in", Title: "t", Message: "m", Type: TypeWarning}, now)

	assert.True(t, strings.HasPrefix(n.ID.String(), "NOTIF_"))
	assert.Equal(t, "ravi@example.in", n.UserEmail)
	assert.Equal(t, time.UTC, n.Timestamp.Location())
	assert.True(t, n.Timestamp.Equal(now))
	assert.False(t, n.Read)
}

func TestUpdateRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateRequest{ID: "NOTIF_1_abc"}).Validate())
	assert.NoError(t, (&UpdateRequest{UserEmail: "a@b.c", Action: ActionClearAll}).Validate())
	assert.Error(t, (&UpdateRequest{Action: ActionClearAll}).Validate())
	assert.Error(t, (&UpdateRequest{UserEmail: "a@b.c"}).Validate())
}
