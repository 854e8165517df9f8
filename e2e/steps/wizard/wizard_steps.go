package wizard

import (
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body map[string]any) error
	PATCH(path string, body map[string]any) error
	GET(path string) error
	DELETE(path string) error
	ResponseStatus() int
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers registration-flow step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &wizardSteps{tc: tc}

	ctx.Step(`^I start a fresh registration session$`, steps.startFreshSession)
	ctx.Step(`^I fill the form with "([^"]*)" = "([^"]*)"$`, steps.fillFormField)
	ctx.Step(`^I submit step (\d+)$`, steps.submitStep)
	ctx.Step(`^the wizard should be on step (\d+)$`, steps.wizardShouldBeOnStep)
	ctx.Step(`^the registration should be complete$`, steps.registrationShouldBeComplete)
	ctx.Step(`^the location for pincode "([^"]*)" should have city "([^"]*)"$`, steps.locationShouldHaveCity)
}

type wizardSteps struct {
	tc TestContext
}

// startFreshSession clears whatever an earlier scenario left behind before
// opening a new draft; scenarios share one daemon.
func (s *wizardSteps) startFreshSession() error {
	if err := s.tc.DELETE("/wizard/session"); err != nil {
		return err
	}
	if err := s.tc.POST("/wizard/session", nil); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusOK {
		return fmt.Errorf("session init returned %d", s.tc.ResponseStatus())
	}
	return nil
}

func (s *wizardSteps) fillFormField(name, value string) error {
	if err := s.tc.PATCH("/wizard/fields", map[string]any{name: value}); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusNoContent {
		return fmt.Errorf("field update returned %d", s.tc.ResponseStatus())
	}
	return nil
}

func (s *wizardSteps) submitStep(step int) error {
	return s.tc.POST(fmt.Sprintf("/wizard/steps/%d/submit", step), nil)
}

func (s *wizardSteps) wizardShouldBeOnStep(step int) error {
	if err := s.tc.GET("/wizard/session"); err != nil {
		return err
	}
	value, err := s.tc.GetResponseField("currentStep")
	if err != nil {
		return err
	}
	if got := fmt.Sprintf("%v", value); got != fmt.Sprintf("%d", step) {
		return fmt.Errorf("expected the wizard on step %d, got %s", step, got)
	}
	return nil
}

func (s *wizardSteps) registrationShouldBeComplete() error {
	value, err := s.tc.GetResponseField("completed")
	if err != nil {
		return err
	}
	if value != true {
		return fmt.Errorf("submission did not complete the registration: %v", value)
	}
	if err := s.tc.GET("/wizard/session"); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusNotFound {
		return fmt.Errorf("expected the session to be gone, got status %d", s.tc.ResponseStatus())
	}
	return nil
}

func (s *wizardSteps) locationShouldHaveCity(pincode, city string) error {
	if err := s.tc.GET("/wizard/locations/" + pincode); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusOK {
		return fmt.Errorf("location lookup returned %d", s.tc.ResponseStatus())
	}
	value, err := s.tc.GetResponseField("city")
	if err != nil {
		return err
	}
	if value != city {
		return fmt.Errorf("expected city %q, got %v", city, value)
	}
	return nil
}
