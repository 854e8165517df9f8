package e2e

import (
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures drives the feature files against a running daemon. Start
// wizardd with its upstream reachable, point WIZARD_BASE_URL at it, and run
// go test ./... from this directory.
func TestFeatures(t *testing.T) {
	base := os.Getenv("WIZARD_BASE_URL")
	if base == "" {
		t.Skip("WIZARD_BASE_URL not set; this suite needs a running wizardd")
	}

	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			RegisterSteps(sc, NewTestContext(base))
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("feature suite failed")
	}
}
