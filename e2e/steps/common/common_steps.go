package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetLastStatus() int
	GetLastBody() string
	GetResponseField(field string) (any, error)
	Expand(s string) string
}

// RegisterSteps registers the shared request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the govdesk server is healthy$`, steps.serverIsHealthy)
	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.fieldShouldBeBool)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) entries$`, steps.fieldShouldHaveLen)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.bodyShouldNotContain)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serverIsHealthy(ctx context.Context) error {
	if err := s.tc.GET("/api/health", nil); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, 200)
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path, nil)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, want int) error {
	if got := s.tc.GetLastStatus(); got != want {
		return fmt.Errorf("expected status %d, got %d: %s", want, got, s.tc.GetLastBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	want = s.tc.Expand(want)
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s to equal %q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeBool(ctx context.Context, field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expected %s to be a boolean, got %T", field, v)
	}
	if fmt.Sprint(b) != want {
		return fmt.Errorf("expected %s to be %s", field, want)
	}
	return nil
}

func (s *commonSteps) fieldShouldHaveLen(ctx context.Context, field string, want int) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("expected %s to be a list, got %T", field, v)
	}
	if len(items) != want {
		return fmt.Errorf("expected %s to have %d entries, got %d", field, want, len(items))
	}
	return nil
}

func (s *commonSteps) bodyShouldNotContain(ctx context.Context, text string) error {
	if strings.Contains(s.tc.GetLastBody(), s.tc.Expand(text)) {
		return fmt.Errorf("response unexpectedly contains %q", text)
	}
	return nil
}
