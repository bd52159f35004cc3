package testutil

import (
	"context"
	"testing"
	"time"

	"govdesk/pkg/requestcontext"
)

// Given, When and Then name nested subtests so scenario tests read as the
// lifecycle they exercise.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}

// Clock is a manually advanced time source for scenario tests.
type Clock struct {
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// Context returns ctx with the request clock pinned to the current time.
func (c *Clock) Context(ctx context.Context) context.Context {
	return requestcontext.WithTime(ctx, c.now)
}
