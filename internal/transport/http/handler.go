// Package httptransport exposes the wizard engine over HTTP for the local
// daemon. Handlers stay thin: decode, delegate, encode.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"regwizard/internal/forms"
	"regwizard/internal/lookup"
	"regwizard/internal/platform/middleware"
	"regwizard/internal/recovery"
	"regwizard/internal/session"
	"regwizard/internal/wizard"
)

// Service is what the transport needs from the wizard engine.
type Service interface {
	InitializeSession(ctx context.Context) (*session.Record, error)
	Current() *session.Record
	CanAdvance() bool
	UpdateFields(ctx context.Context, partial forms.Data) error
	SubmitStep(ctx context.Context, step int) (*wizard.SubmitOutcome, error)
	Previous(ctx context.Context) (*session.Record, error)
	Next(ctx context.Context) (*session.Record, error)
	Abandon(ctx context.Context) error
	RegistrationStatus(ctx context.Context) (string, error)
	AutofillLocation(ctx context.Context, pincode string) (lookup.Location, error)
	RecoveryPrompt(ctx context.Context) (*recovery.Prompt, error)
	AcceptRecovery(ctx context.Context) (*session.Record, error)
	DiscardRecovery(ctx context.Context) error
}

// Handler handles the wizard endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the wizard routes with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	wr := chi.NewRouter()
	wr.Use(middleware.Recovery(h.logger))
	wr.Use(middleware.RequestID)
	wr.Use(middleware.Logger(h.logger))
	wr.Use(middleware.Timeout(15 * time.Second))
	wr.Use(middleware.ContentTypeJSON)

	wr.Post("/wizard/session", h.handleInitializeSession)
	wr.Get("/wizard/session", h.handleGetSession)
	wr.Delete("/wizard/session", h.handleAbandonSession)
	wr.Patch("/wizard/fields", h.handleUpdateFields)
	wr.Post("/wizard/steps/{step}/submit", h.handleSubmitStep)
	wr.Post("/wizard/previous", h.handlePrevious)
	wr.Post("/wizard/next", h.handleNext)
	wr.Get("/wizard/status", h.handleRegistrationStatus)
	wr.Get("/wizard/recovery", h.handleRecoveryPrompt)
	wr.Post("/wizard/recovery/accept", h.handleAcceptRecovery)
	wr.Post("/wizard/recovery/discard", h.handleDiscardRecovery)
	wr.Get("/wizard/locations/{pincode}", h.handleLocation)

	r.Mount("/", wr)
}

type sessionResponse struct {
	SessionID      string     `json:"sessionId"`
	CurrentStep    int        `json:"currentStep"`
	FormData       forms.Data `json:"formData"`
	CompletedSteps []bool     `json:"completedSteps"`
	LastUpdated    time.Time  `json:"lastUpdated"`
	CanAdvance     bool       `json:"canAdvance"`
}

type submitResponse struct {
	Completed bool             `json:"completed"`
	Message   string           `json:"message,omitempty"`
	Session   *sessionResponse `json:"session,omitempty"`
}

type recoveryResponse struct {
	Available bool             `json:"available"`
	Prompt    *recovery.Prompt `json:"prompt,omitempty"`
}

type statusResponse struct {
	Status string `json:"status"`
}

func (h *Handler) sessionPayload(rec *session.Record) *sessionResponse {
	if rec == nil {
		return nil
	}
	return &sessionResponse{
		SessionID:      rec.SessionID,
		CurrentStep:    rec.CurrentStep,
		FormData:       rec.FormData,
		CompletedSteps: rec.CompletedSteps,
		LastUpdated:    rec.LastUpdated,
		CanAdvance:     h.svc.CanAdvance(),
	}
}

func (h *Handler) handleInitializeSession(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.InitializeSession(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionPayload(rec))
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	rec := h.svc.Current()
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no_session"})
		return
	}
	writeJSON(w, http.StatusOK, h.sessionPayload(rec))
}

func (h *Handler) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Abandon(r.Context()); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleUpdateFields(w http.ResponseWriter, r *http.Request) {
	var partial forms.Data
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		h.logger.WarnContext(r.Context(), "invalid field update request",
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid request body"})
		return
	}
	if err := h.svc.UpdateFields(r.Context(), partial); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmitStep(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "step must be an integer"})
		return
	}

	out, err := h.svc.SubmitStep(r.Context(), step)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		Completed: out.Completed,
		Message:   out.Message,
		Session:   h.sessionPayload(out.Record),
	})
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Previous(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionPayload(rec))
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Next(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionPayload(rec))
}

func (h *Handler) handleRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.RegistrationStatus(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: status})
}

func (h *Handler) handleRecoveryPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, err := h.svc.RecoveryPrompt(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, recoveryResponse{Available: prompt != nil, Prompt: prompt})
}

func (h *Handler) handleAcceptRecovery(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.AcceptRecovery(r.Context())
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	if rec == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no_snapshot"})
		return
	}
	writeJSON(w, http.StatusOK, h.sessionPayload(rec))
}

func (h *Handler) handleDiscardRecovery(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DiscardRecovery(r.Context()); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLocation(w http.ResponseWriter, r *http.Request) {
	pincode := chi.URLParam(r, "pincode")
	loc, err := h.svc.AutofillLocation(r.Context(), pincode)
	if err != nil {
		if errors.Is(err, wizard.ErrUnknownPincode) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown_pincode"})
			return
		}
		// Lookup failures are upstream trouble, not client mistakes.
		h.logger.WarnContext(r.Context(), "location lookup failed",
			"pincode", pincode,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "lookup_failed"})
		return
	}
	writeJSON(w, http.StatusOK, loc)
}
