package httptransport

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"regwizard/internal/forms"
	"regwizard/internal/lookup"
	"regwizard/internal/recovery"
	"regwizard/internal/session"
	"regwizard/internal/transport/http/mocks"
	"regwizard/internal/wizard"
)

type HandlerSuite struct {
	suite.Suite
	ctrl *gomock.Controller
	svc  *mocks.MockService
	srv  *httptest.Server
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.svc = mocks.NewMockService(s.ctrl)

	h := New(s.svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	s.srv = httptest.NewServer(r)
}

func (s *HandlerSuite) TearDownTest() {
	s.srv.Close()
	s.ctrl.Finish()
}

// do issues a JSON request against the test server and decodes the JSON
// body, when there is one, into a generic map.
func (s *HandlerSuite) do(method, path string, body any) (int, map[string]any) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, s.srv.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.srv.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	if len(raw) == 0 {
		return res.StatusCode, nil
	}
	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	return res.StatusCode, decoded
}

func sampleRecord() *session.Record {
	return &session.Record{
		SessionID:      "sess_1718000000000_ab12cd",
		CurrentStep:    1,
		FormData:       forms.Data{"name": "Asha"},
		CompletedSteps: []bool{false, false},
		LastUpdated:    time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
}

func (s *HandlerSuite) TestInitializeSession() {
	s.svc.EXPECT().InitializeSession(gomock.Any()).Return(sampleRecord(), nil)
	s.svc.EXPECT().CanAdvance().Return(false)

	status, body := s.do(http.MethodPost, "/wizard/session", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("sess_1718000000000_ab12cd", body["sessionId"])
	s.Equal(float64(1), body["currentStep"])
	s.Equal(false, body["canAdvance"])
}

func (s *HandlerSuite) TestGetSession() {
	s.Run("returns the live state", func() {
		s.svc.EXPECT().Current().Return(sampleRecord())
		s.svc.EXPECT().CanAdvance().Return(true)

		status, body := s.do(http.MethodGet, "/wizard/session", nil)
		s.Equal(http.StatusOK, status)
		s.Equal(true, body["canAdvance"])
		s.Equal("Asha", body["formData"].(map[string]any)["name"])
	})

	s.Run("404 when nothing is live", func() {
		s.svc.EXPECT().Current().Return(nil)

		status, body := s.do(http.MethodGet, "/wizard/session", nil)
		s.Equal(http.StatusNotFound, status)
		s.Equal("no_session", body["error"])
	})
}

func (s *HandlerSuite) TestUpdateFields() {
	s.Run("merges and returns no content", func() {
		s.svc.EXPECT().
			UpdateFields(gomock.Any(), forms.Data{"name": "Asha", "city": "Pune"}).
			Return(nil)

		status, _ := s.do(http.MethodPatch, "/wizard/fields", forms.Data{"name": "Asha", "city": "Pune"})
		s.Equal(http.StatusNoContent, status)
	})

	s.Run("malformed body is a 400", func() {
		req, err := http.NewRequest(http.MethodPatch, s.srv.URL+"/wizard/fields", strings.NewReader("{broken"))
		s.Require().NoError(err)
		req.Header.Set("Content-Type", "application/json")

		res, err := s.srv.Client().Do(req)
		s.Require().NoError(err)
		defer func() { _ = res.Body.Close() }()
		s.Equal(http.StatusBadRequest, res.StatusCode)
	})

	s.Run("non-JSON content type is a 415", func() {
		req, err := http.NewRequest(http.MethodPatch, s.srv.URL+"/wizard/fields", strings.NewReader("name=Asha"))
		s.Require().NoError(err)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		res, err := s.srv.Client().Do(req)
		s.Require().NoError(err)
		defer func() { _ = res.Body.Close() }()
		s.Equal(http.StatusUnsupportedMediaType, res.StatusCode)
	})

	s.Run("no session is a 404", func() {
		s.svc.EXPECT().UpdateFields(gomock.Any(), gomock.Any()).Return(wizard.ErrNoSession)

		status, body := s.do(http.MethodPatch, "/wizard/fields", forms.Data{"name": "Asha"})
		s.Equal(http.StatusNotFound, status)
		s.Equal("no_session", body["error"])
	})
}

func (s *HandlerSuite) TestSubmitStep() {
	s.Run("accepted step returns the advanced session", func() {
		advanced := sampleRecord()
		advanced.CurrentStep = 2
		advanced.CompletedSteps = []bool{true, false}
		s.svc.EXPECT().SubmitStep(gomock.Any(), 1).
			Return(&wizard.SubmitOutcome{Record: advanced, Message: "step 1 accepted"}, nil)
		s.svc.EXPECT().CanAdvance().Return(false)

		status, body := s.do(http.MethodPost, "/wizard/steps/1/submit", nil)
		s.Equal(http.StatusOK, status)
		s.Equal(false, body["completed"])
		s.Equal("step 1 accepted", body["message"])
		session := body["session"].(map[string]any)
		s.Equal(float64(2), session["currentStep"])
	})

	s.Run("final step completion has no session payload", func() {
		s.svc.EXPECT().SubmitStep(gomock.Any(), 2).
			Return(&wizard.SubmitOutcome{Completed: true, Message: "registration complete"}, nil)

		status, body := s.do(http.MethodPost, "/wizard/steps/2/submit", nil)
		s.Equal(http.StatusOK, status)
		s.Equal(true, body["completed"])
		s.Nil(body["session"])
	})

	s.Run("rejection is a 422 with the server message", func() {
		s.svc.EXPECT().SubmitStep(gomock.Any(), 1).
			Return(nil, fmt.Errorf("regapi: step 1: invalid aadhaar: %w", wizard.ErrSubmissionRejected))

		status, body := s.do(http.MethodPost, "/wizard/steps/1/submit", nil)
		s.Equal(http.StatusUnprocessableEntity, status)
		s.Equal("submission_rejected", body["error"])
		s.Contains(body["message"], "invalid aadhaar")
	})

	s.Run("step mismatch is a 409", func() {
		s.svc.EXPECT().SubmitStep(gomock.Any(), 2).
			Return(nil, fmt.Errorf("submitted step 2 while on step 1: %w", wizard.ErrStepMismatch))

		status, body := s.do(http.MethodPost, "/wizard/steps/2/submit", nil)
		s.Equal(http.StatusConflict, status)
		s.Equal("step_mismatch", body["error"])
	})

	s.Run("non-numeric step is a 400", func() {
		status, body := s.do(http.MethodPost, "/wizard/steps/two/submit", nil)
		s.Equal(http.StatusBadRequest, status)
		s.Equal("bad_request", body["error"])
	})
}

func (s *HandlerSuite) TestNavigation() {
	s.Run("previous returns the stepped-back session", func() {
		back := sampleRecord()
		s.svc.EXPECT().Previous(gomock.Any()).Return(back, nil)
		s.svc.EXPECT().CanAdvance().Return(true)

		status, body := s.do(http.MethodPost, "/wizard/previous", nil)
		s.Equal(http.StatusOK, status)
		s.Equal(float64(1), body["currentStep"])
	})

	s.Run("next without completion is a 409", func() {
		s.svc.EXPECT().Next(gomock.Any()).
			Return(nil, fmt.Errorf("step 1: %w", wizard.ErrStepNotCompleted))

		status, body := s.do(http.MethodPost, "/wizard/next", nil)
		s.Equal(http.StatusConflict, status)
		s.Equal("step_not_completed", body["error"])
	})
}

func (s *HandlerSuite) TestAbandonSession() {
	s.Run("abandoning returns no content", func() {
		s.svc.EXPECT().Abandon(gomock.Any()).Return(nil)

		status, _ := s.do(http.MethodDelete, "/wizard/session", nil)
		s.Equal(http.StatusNoContent, status)
	})

	s.Run("a store failure is a 500 without details", func() {
		s.svc.EXPECT().Abandon(gomock.Any()).Return(errors.New("disk gone"))

		status, body := s.do(http.MethodDelete, "/wizard/session", nil)
		s.Equal(http.StatusInternalServerError, status)
		s.Equal("internal", body["error"])
		s.Empty(body["message"])
	})
}

func (s *HandlerSuite) TestRegistrationStatus() {
	s.Run("returns the backend status", func() {
		s.svc.EXPECT().RegistrationStatus(gomock.Any()).Return("in_progress", nil)

		status, body := s.do(http.MethodGet, "/wizard/status", nil)
		s.Equal(http.StatusOK, status)
		s.Equal("in_progress", body["status"])
	})

	s.Run("no session is a 404", func() {
		s.svc.EXPECT().RegistrationStatus(gomock.Any()).Return("", wizard.ErrNoSession)

		status, _ := s.do(http.MethodGet, "/wizard/status", nil)
		s.Equal(http.StatusNotFound, status)
	})
}

func (s *HandlerSuite) TestRecovery() {
	s.Run("prompt reports availability", func() {
		s.svc.EXPECT().RecoveryPrompt(gomock.Any()).
			Return(&recovery.Prompt{Step: 2, AgeMinutes: 5, FieldCount: 3, HasData: true}, nil)

		status, body := s.do(http.MethodGet, "/wizard/recovery", nil)
		s.Equal(http.StatusOK, status)
		s.Equal(true, body["available"])
		prompt := body["prompt"].(map[string]any)
		s.Equal(float64(5), prompt["ageMinutes"])
	})

	s.Run("prompt reports absence", func() {
		s.svc.EXPECT().RecoveryPrompt(gomock.Any()).Return(nil, nil)

		status, body := s.do(http.MethodGet, "/wizard/recovery", nil)
		s.Equal(http.StatusOK, status)
		s.Equal(false, body["available"])
		s.Nil(body["prompt"])
	})

	s.Run("accept returns the merged session", func() {
		merged := sampleRecord()
		merged.FormData = forms.Data{"name": "Asha", "city": "Mumbai"}
		s.svc.EXPECT().AcceptRecovery(gomock.Any()).Return(merged, nil)
		s.svc.EXPECT().CanAdvance().Return(false)

		status, body := s.do(http.MethodPost, "/wizard/recovery/accept", nil)
		s.Equal(http.StatusOK, status)
		s.Equal("Mumbai", body["formData"].(map[string]any)["city"])
	})

	s.Run("accept with nothing stored is a 404", func() {
		s.svc.EXPECT().AcceptRecovery(gomock.Any()).Return(nil, nil)

		status, body := s.do(http.MethodPost, "/wizard/recovery/accept", nil)
		s.Equal(http.StatusNotFound, status)
		s.Equal("no_snapshot", body["error"])
	})

	s.Run("discard returns no content", func() {
		s.svc.EXPECT().DiscardRecovery(gomock.Any()).Return(nil)

		status, _ := s.do(http.MethodPost, "/wizard/recovery/discard", nil)
		s.Equal(http.StatusNoContent, status)
	})
}

func (s *HandlerSuite) TestLocation() {
	s.Run("resolves a pincode", func() {
		s.svc.EXPECT().AutofillLocation(gomock.Any(), "110001").
			Return(lookup.Location{City: "New Delhi", State: "Delhi", Country: "India"}, nil)

		status, body := s.do(http.MethodGet, "/wizard/locations/110001", nil)
		s.Equal(http.StatusOK, status)
		s.Equal("New Delhi", body["city"])
	})

	s.Run("unknown pincode is a 404", func() {
		s.svc.EXPECT().AutofillLocation(gomock.Any(), "999999").
			Return(lookup.Location{}, fmt.Errorf("pincode 999999: %w", wizard.ErrUnknownPincode))

		status, body := s.do(http.MethodGet, "/wizard/locations/999999", nil)
		s.Equal(http.StatusNotFound, status)
		s.Equal("unknown_pincode", body["error"])
	})

	s.Run("upstream failure is a 502", func() {
		s.svc.EXPECT().AutofillLocation(gomock.Any(), "400001").
			Return(lookup.Location{}, fmt.Errorf("lookup 400001: connection refused"))

		status, body := s.do(http.MethodGet, "/wizard/locations/400001", nil)
		s.Equal(http.StatusBadGateway, status)
		s.Equal("lookup_failed", body["error"])
	})
}

func (s *HandlerSuite) TestPanicBecomesInternalError() {
	s.svc.EXPECT().Current().DoAndReturn(func() *session.Record {
		panic("wizard state corrupted")
	})

	status, body := s.do(http.MethodGet, "/wizard/session", nil)
	s.Equal(http.StatusInternalServerError, status)
	s.Equal("internal", body["error"])
}
