package notification

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	PATCH(path string, body any) error
	GetLastStatus() int
	GetResponseField(field string) (any, error)
	Save(name, value string)
	Get(name string) string
}

// RegisterSteps registers notification step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &notificationSteps{tc: tc}

	ctx.Step(`^the citizen fetches their notifications$`, steps.fetch)
	ctx.Step(`^the newest notification should be titled "([^"]*)"$`, steps.newestTitled)
	ctx.Step(`^the citizen marks the newest notification as read$`, steps.markNewestRead)
	ctx.Step(`^the citizen clears all notifications$`, steps.clearAll)
	ctx.Step(`^the citizen should have (\d+) notifications?$`, steps.shouldHave)
}

type notificationSteps struct {
	tc TestContext
}

func (s *notificationSteps) fetch(ctx context.Context) error {
	return s.tc.GET("/api/notifications?userEmail="+url.QueryEscape(s.tc.Get("email")), nil)
}

func (s *notificationSteps) newestTitled(ctx context.Context, title string) error {
	got, err := s.tc.GetResponseField("notifications.0.title")
	if err != nil {
		return err
	}
	if got != title {
		return fmt.Errorf("expected newest notification %q, got %q", title, got)
	}
	id, err := s.tc.GetResponseField("notifications.0.id")
	if err != nil {
		return err
	}
	s.tc.Save("notificationId", fmt.Sprint(id))
	return nil
}

func (s *notificationSteps) markNewestRead(ctx context.Context) error {
	return s.tc.PATCH("/api/notifications", map[string]any{"id": s.tc.Get("notificationId")})
}

func (s *notificationSteps) clearAll(ctx context.Context) error {
	return s.tc.PATCH("/api/notifications", map[string]any{
		"userEmail": s.tc.Get("email"),
		"action":    "clearAll",
	})
}

func (s *notificationSteps) shouldHave(ctx context.Context, n int) error {
	if err := s.fetch(ctx); err != nil {
		return err
	}
	list, err := s.tc.GetResponseField("notifications")
	if err != nil {
		return err
	}
	items, _ := list.([]any)
	if len(items) != n {
		return fmt.Errorf("expected %d notifications, got %d", n, len(items))
	}
	return nil
}
