package regapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regwizard/internal/forms"
	"regwizard/internal/wizard"
)

func TestNewClient(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)

	c, err := NewClient("http://reg.local/")
	require.NoError(t, err)
	assert.Equal(t, "http://reg.local", c.baseURL)
}

func TestSubmitStep(t *testing.T) {
	t.Run("accepted submission returns the correlator", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/registration/steps/1", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req stepRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "sess_local", req.SessionID)
			assert.Equal(t, "Asha", req.FormData["name"])

			_ = json.NewEncoder(w).Encode(stepResponse{Success: true, SessionID: "srv_9", Message: "step 1 accepted"})
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		result, err := client.SubmitStep(context.Background(), 1, "sess_local", forms.Data{"name": "Asha"})
		require.NoError(t, err)
		assert.Equal(t, "srv_9", result.SessionID)
		assert.Equal(t, "step 1 accepted", result.Message)
	})

	t.Run("non-2xx is a rejection carrying the server message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(stepResponse{Success: false, Message: "invalid aadhaar number"})
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = client.SubmitStep(context.Background(), 2, "srv_9", forms.Data{})
		require.Error(t, err)
		assert.ErrorIs(t, err, wizard.ErrSubmissionRejected)
		assert.Contains(t, err.Error(), "invalid aadhaar number")
	})

	t.Run("success=false in a 200 body is still a rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(stepResponse{Success: false, Message: "duplicate submission"})
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = client.SubmitStep(context.Background(), 1, "", nil)
		assert.ErrorIs(t, err, wizard.ErrSubmissionRejected)
	})

	t.Run("non-JSON error body falls back to the status line", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gateway timeout", http.StatusBadGateway)
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = client.SubmitStep(context.Background(), 1, "", nil)
		assert.ErrorIs(t, err, wizard.ErrSubmissionRejected)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable server is not a rejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = client.SubmitStep(context.Background(), 1, "", nil)
		require.Error(t, err)
		assert.NotErrorIs(t, err, wizard.ErrSubmissionRejected)
	})

	t.Run("zero step is rejected locally", func(t *testing.T) {
		client, err := NewClient("http://reg.local")
		require.NoError(t, err)

		_, err = client.SubmitStep(context.Background(), 0, "", nil)
		require.Error(t, err)
	})
}

func TestStatus(t *testing.T) {
	t.Run("returns the server-side state", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/registration/srv_9/status", r.URL.Path)
			_ = json.NewEncoder(w).Encode(statusResponse{Status: "in_progress"})
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		status, err := client.Status(context.Background(), "srv_9")
		require.NoError(t, err)
		assert.Equal(t, "in_progress", status)
	})

	t.Run("empty session ID is rejected locally", func(t *testing.T) {
		client, err := NewClient("http://reg.local")
		require.NoError(t, err)

		_, err = client.Status(context.Background(), "")
		require.Error(t, err)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		_, err = client.Status(context.Background(), "missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}
