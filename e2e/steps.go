package e2e

import (
	"github.com/cucumber/godog"

	"regwizard/e2e/steps/common"
	recoverysteps "regwizard/e2e/steps/recovery"
	wizardsteps "regwizard/e2e/steps/wizard"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (health check, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register registration-flow steps
	wizardsteps.RegisterSteps(ctx, tc)

	// Register draft-recovery steps
	recoverysteps.RegisterSteps(ctx, tc)
}
