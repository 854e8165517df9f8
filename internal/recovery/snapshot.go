// Package recovery takes periodic sanitized snapshots of in-flight form
// state so a reload does not lose unsaved work, independent of whether a
// server-confirmed session exists yet. Snapshots live in their own storage
// namespace: recovery must be able to offer "restore" even when the
// authoritative session has diverged or expired.
package recovery

import (
	"time"

	"regwizard/internal/forms"
)

// Snapshot is a point-in-time, sanitized copy of form state.
type Snapshot struct {
	FormData  forms.Data `json:"formData"`
	Step      int        `json:"step"`
	SessionID string     `json:"sessionId,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
	Metadata  Metadata   `json:"metadata"`
}

// Valid is the structural gate every loaded snapshot must pass: a form-data
// mapping, a non-negative step, and a real timestamp. LoadSnapshot never
// returns a snapshot failing this.
func (s *Snapshot) Valid() bool {
	return s.FormData != nil && s.Step >= 0 && !s.Timestamp.IsZero()
}

// Metadata is the snapshot's diagnostic bag: where and how it was taken.
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Origin    string `json:"origin,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
	Device    string `json:"device,omitempty"`
}

// Snapshot sources.
const (
	SourceAuto   = "auto"
	SourceManual = "manual"
)

// Prompt summarizes a snapshot for the "recover previous session?" dialog.
type Prompt struct {
	Step       int  `json:"step"`
	AgeMinutes int  `json:"ageMinutes"`
	FieldCount int  `json:"fieldCount"`
	HasData    bool `json:"hasData"`
}
