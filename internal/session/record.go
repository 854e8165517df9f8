// Package session owns the authoritative in-progress wizard state: current
// step, accumulated field values, per-step completion flags, and their
// persistence, restoration, and expiry.
package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"regwizard/internal/forms"
)

// Record is the canonical wizard state. CompletedSteps has one flag per
// step, fixed at session creation; index i is true once step i+1 has been
// accepted by the registration server.
type Record struct {
	SessionID      string
	CurrentStep    int
	FormData       forms.Data
	CompletedSteps []bool
	LastUpdated    time.Time
}

// Clone returns an independent copy safe to hand across goroutines.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.FormData = forms.Clone(r.FormData)
	out.CompletedSteps = append([]bool(nil), r.CompletedSteps...)
	return &out
}

// Steps reports how many steps this record tracks.
func (r *Record) Steps() int {
	return len(r.CompletedSteps)
}

// Storage keys, one per record field. A record is only usable when all
// five are present and parseable; anything less is cleared and reported
// absent.
const (
	keySessionID      = "session_id"
	keyFormData       = "form_data"
	keyCurrentStep    = "current_step"
	keyCompletedSteps = "completed_steps"
	keyLastUpdated    = "last_updated"
)

var recordKeys = []string{keySessionID, keyFormData, keyCurrentStep, keyCompletedSteps, keyLastUpdated}

func parseRecord(values map[string]string) (*Record, error) {
	step, err := strconv.Atoi(values[keyCurrentStep])
	if err != nil {
		return nil, fmt.Errorf("current step: %w", err)
	}

	var formData forms.Data
	if err := json.Unmarshal([]byte(values[keyFormData]), &formData); err != nil {
		return nil, fmt.Errorf("form data: %w", err)
	}
	if formData == nil {
		formData = forms.Data{}
	}

	var completed []bool
	if err := json.Unmarshal([]byte(values[keyCompletedSteps]), &completed); err != nil {
		return nil, fmt.Errorf("completed steps: %w", err)
	}
	if len(completed) == 0 {
		return nil, fmt.Errorf("completed steps: empty")
	}

	lastUpdated, err := time.Parse(time.RFC3339Nano, values[keyLastUpdated])
	if err != nil {
		return nil, fmt.Errorf("last updated: %w", err)
	}

	return &Record{
		SessionID:      values[keySessionID],
		CurrentStep:    step,
		FormData:       formData,
		CompletedSteps: completed,
		LastUpdated:    lastUpdated,
	}, nil
}
