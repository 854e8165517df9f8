package common

import (
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body map[string]any) error
	ResponseStatus() int
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers generic request and assertion step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the wizard service is healthy$`, steps.serviceIsHealthy)
	ctx.Step(`^I send POST "([^"]*)"$`, steps.sendPOST)
	ctx.Step(`^the response status should be (\d+)$`, steps.responseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.responseFieldShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serviceIsHealthy() error {
	if err := s.tc.GET("/healthz"); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusOK {
		return fmt.Errorf("healthz returned %d", s.tc.ResponseStatus())
	}
	return nil
}

func (s *commonSteps) sendPOST(path string) error {
	return s.tc.POST(path, nil)
}

func (s *commonSteps) responseStatusShouldBe(expected int) error {
	if s.tc.ResponseStatus() != expected {
		return fmt.Errorf("expected status %d, got %d", expected, s.tc.ResponseStatus())
	}
	return nil
}

func (s *commonSteps) responseFieldShouldBe(field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprintf("%v", value); got != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, got)
	}
	return nil
}
