package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext drives a running wizardd over plain HTTP and remembers the
// last response so assertion steps can inspect it.
type TestContext struct {
	baseURL string
	client  *http.Client

	status int
	raw    []byte
	body   map[string]any
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (tc *TestContext) do(method, path string, body map[string]any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.raw, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	// Bodyless responses (204) and non-JSON errors are fine; assertion
	// steps that need a field will complain with the raw body.
	tc.body = nil
	if len(tc.raw) > 0 {
		_ = json.Unmarshal(tc.raw, &tc.body)
	}
	return nil
}

func (tc *TestContext) POST(path string, body map[string]any) error {
	return tc.do(http.MethodPost, path, body)
}

func (tc *TestContext) PATCH(path string, body map[string]any) error {
	return tc.do(http.MethodPatch, path, body)
}

func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

func (tc *TestContext) DELETE(path string) error {
	return tc.do(http.MethodDelete, path, nil)
}

// ResponseStatus returns the status code of the last response.
func (tc *TestContext) ResponseStatus() int {
	return tc.status
}

// GetResponseField pulls one top-level field out of the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	if tc.body == nil {
		return nil, fmt.Errorf("last response had no JSON body (status %d): %s", tc.status, tc.raw)
	}
	value, ok := tc.body[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, tc.raw)
	}
	return value, nil
}
