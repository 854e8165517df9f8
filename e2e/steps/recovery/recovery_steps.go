package recovery

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POST(path string, body map[string]any) error
	ResponseStatus() int
	GetResponseField(field string) (any, error)
}

// RegisterSteps registers draft-recovery step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &recoverySteps{tc: tc}

	ctx.Step(`^a recovery snapshot eventually appears$`, steps.snapshotEventuallyAppears)
	ctx.Step(`^I accept the recovered draft$`, steps.acceptDraft)
	ctx.Step(`^I discard the recovered draft$`, steps.discardDraft)
	ctx.Step(`^no recovery snapshot should be offered$`, steps.noSnapshotOffered)
}

type recoverySteps struct {
	tc TestContext
}

// The daemon snapshots on its auto-save interval, 5s by default, so this
// polls instead of asserting immediately.
func (s *recoverySteps) snapshotEventuallyAppears() error {
	const wait = 15 * time.Second
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if err := s.tc.GET("/wizard/recovery"); err != nil {
			return err
		}
		if value, err := s.tc.GetResponseField("available"); err == nil && value == true {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("no snapshot appeared within %s; is auto-save running?", wait)
}

func (s *recoverySteps) acceptDraft() error {
	if err := s.tc.POST("/wizard/recovery/accept", nil); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusOK {
		return fmt.Errorf("accept returned %d", s.tc.ResponseStatus())
	}
	return nil
}

func (s *recoverySteps) discardDraft() error {
	if err := s.tc.POST("/wizard/recovery/discard", nil); err != nil {
		return err
	}
	if s.tc.ResponseStatus() != http.StatusNoContent {
		return fmt.Errorf("discard returned %d", s.tc.ResponseStatus())
	}
	return nil
}

func (s *recoverySteps) noSnapshotOffered() error {
	if err := s.tc.GET("/wizard/recovery"); err != nil {
		return err
	}
	value, err := s.tc.GetResponseField("available")
	if err != nil {
		return err
	}
	if value != false {
		return fmt.Errorf("expected no snapshot on offer, got available=%v", value)
	}
	return nil
}
