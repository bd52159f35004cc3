package submission

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	PATCH(path string, body any) error
	GET(path string, headers map[string]string) error
	GetLastStatus() int
	GetLastBody() string
	GetResponseField(field string) (any, error)
	Save(name, value string)
	Get(name string) string
	Expand(s string) string
}

// RegisterSteps registers submission lifecycle step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &submissionSteps{tc: tc}

	ctx.Step(`^a citizen "([^"]*)" submits the "([^"]*)" form for service (\d+)$`, steps.submit)
	ctx.Step(`^admin "([^"]*)" opens the submission$`, steps.adminOpens)
	ctx.Step(`^admin "([^"]*)" sets the status to "([^"]*)" with notes "([^"]*)"$`, steps.setStatus)
	ctx.Step(`^admin "([^"]*)" saves the detail "([^"]*)" as "([^"]*)"$`, steps.saveDetail)
	ctx.Step(`^the citizen lists their submissions$`, steps.citizenLists)
	ctx.Step(`^I list submissions for service (\d+)$`, steps.listByService)
}

type submissionSteps struct {
	tc TestContext
}

func (s *submissionSteps) submit(ctx context.Context, email, serviceName string, serviceID int) error {
	email = s.tc.Expand(email)
	s.tc.Save("email", email)
	err := s.tc.POST("/api/submissions", map[string]any{
		"serviceName": serviceName,
		"serviceId":   serviceID,
		"userDetails": map[string]any{"email": email, "fullName": "E2E Citizen"},
	})
	if err != nil {
		return err
	}
	if s.tc.GetLastStatus() != 201 {
		return fmt.Errorf("create failed with %d: %s", s.tc.GetLastStatus(), s.tc.GetLastBody())
	}
	id, err := s.tc.GetResponseField("submission.id")
	if err != nil {
		return err
	}
	s.tc.Save("submissionId", fmt.Sprint(id))
	return nil
}

func (s *submissionSteps) adminOpens(ctx context.Context, admin string) error {
	return s.tc.GET("/api/submissions/"+s.tc.Get("submissionId")+"?viewer="+url.QueryEscape(admin), nil)
}

func (s *submissionSteps) setStatus(ctx context.Context, admin, status, notes string) error {
	return s.tc.PATCH("/api/submissions/"+s.tc.Get("submissionId"), map[string]any{
		"mode":      "status",
		"newStatus": status,
		"adminId":   admin,
		"notes":     notes,
	})
}

func (s *submissionSteps) saveDetail(ctx context.Context, admin, key, value string) error {
	return s.tc.PATCH("/api/submissions/"+s.tc.Get("submissionId"), map[string]any{
		"mode":    "save",
		"adminId": admin,
		"updates": map[string]any{key: value},
	})
}

func (s *submissionSteps) citizenLists(ctx context.Context) error {
	return s.tc.GET("/api/submissions/user?email="+url.QueryEscape(s.tc.Get("email")), nil)
}

func (s *submissionSteps) listByService(ctx context.Context, serviceID int) error {
	return s.tc.GET(fmt.Sprintf("/api/submissions?serviceId=%d", serviceID), nil)
}
