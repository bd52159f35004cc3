package e2e

import (
	"github.com/cucumber/godog"

	"govdesk/e2e/steps/common"
	"govdesk/e2e/steps/notification"
	"govdesk/e2e/steps/submission"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Generic requests and assertions
	common.RegisterSteps(ctx, tc)

	submission.RegisterSteps(ctx, tc)
	notification.RegisterSteps(ctx, tc)
}
