// Package regapi is the HTTP client for the registration backend the
// wizard submits steps to.
package regapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"regwizard/internal/forms"
	"regwizard/internal/wizard"
)

type stepRequest struct {
	SessionID string     `json:"sessionId,omitempty"`
	FormData  forms.Data `json:"formData"`
}

type stepResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// Client implements wizard.RegistrationClient over HTTP. Rejections carry
// wizard.ErrSubmissionRejected so callers can tell "the server said no"
// from "the server was unreachable".
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("regapi: base URL is required")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SubmitStep posts the form payload for one step. A non-2xx response or a
// success=false body is a rejection; the server's message rides along in
// the error.
func (c *Client) SubmitStep(ctx context.Context, step int, sessionID string, form forms.Data) (wizard.SubmitResult, error) {
	if step < 1 {
		return wizard.SubmitResult{}, fmt.Errorf("regapi: step must be positive, got %d", step)
	}

	body, err := json.Marshal(stepRequest{SessionID: sessionID, FormData: form})
	if err != nil {
		return wizard.SubmitResult{}, fmt.Errorf("regapi: marshal step %d payload: %w", step, err)
	}

	url := fmt.Sprintf("%s/registration/steps/%d", c.baseURL, step)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return wizard.SubmitResult{}, fmt.Errorf("regapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return wizard.SubmitResult{}, fmt.Errorf("regapi: submit step %d: %w", step, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return wizard.SubmitResult{}, fmt.Errorf("regapi: read step %d response: %w", step, err)
	}

	var payload stepResponse
	// A rejection body may not be JSON at all; the status line is enough.
	_ = json.Unmarshal(raw, &payload)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return wizard.SubmitResult{}, rejection(step, res.StatusCode, payload.Message)
	}
	if !payload.Success {
		return wizard.SubmitResult{}, rejection(step, res.StatusCode, payload.Message)
	}

	return wizard.SubmitResult{SessionID: payload.SessionID, Message: payload.Message}, nil
}

// Status fetches the server-side state of a registration session.
func (c *Client) Status(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("regapi: session ID is required")
	}

	url := fmt.Sprintf("%s/registration/%s/status", c.baseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("regapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("regapi: get status: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("regapi: status request returned %d", res.StatusCode)
	}

	var payload statusResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("regapi: decode status response: %w", err)
	}
	return payload.Status, nil
}

func rejection(step, status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return fmt.Errorf("regapi: step %d: %s: %w", step, message, wizard.ErrSubmissionRejected)
}
