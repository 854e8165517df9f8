package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"regwizard/internal/platform/middleware"
	"regwizard/internal/wizard"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorStatus translates wizard sentinels into HTTP statuses and stable
// error codes the UI can branch on.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, wizard.ErrNoSession):
		return http.StatusNotFound, "no_session"
	case errors.Is(err, wizard.ErrStepMismatch):
		return http.StatusConflict, "step_mismatch"
	case errors.Is(err, wizard.ErrStepNotCompleted):
		return http.StatusConflict, "step_not_completed"
	case errors.Is(err, wizard.ErrSubmissionRejected):
		return http.StatusUnprocessableEntity, "submission_rejected"
	case errors.Is(err, wizard.ErrUnknownPincode):
		return http.StatusNotFound, "unknown_pincode"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeServiceError logs and encodes a service failure. Client-addressable
// errors carry the underlying message; internal ones never leak it.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "request failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		writeJSON(w, status, errorResponse{Error: code})
		return
	}
	h.logger.WarnContext(ctx, "request rejected",
		"error", err,
		"code", code,
		"request_id", middleware.GetRequestID(ctx),
	)
	writeJSON(w, status, errorResponse{Error: code, Message: err.Error()})
}
