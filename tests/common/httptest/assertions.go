//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"room-slot-service/internal/handler/httperr"

	"github.com/stretchr/testify/assert"
)

// AssertSuccessResponse checks the status and, for 2xx answers, decodes the
// body into target when it is non-nil.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, status int, target any) {
	t.Helper()

	if !assert.Equal(t, status, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if status >= 200 && status < 300 && target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "decode: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the error message contains
// msg. An empty msg only checks that the body is a well-formed error.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) httperr.Response {
	t.Helper()

	assert.Equal(t, status, w.Code, "response: %s", w.Body.String())

	var resp httperr.Response
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "decode error body: %s", w.Body.String()) {
		return resp
	}
	assert.NotEmpty(t, resp.Error.Message, "error message missing")
	if msg != "" {
		assert.Contains(t, resp.Error.Message, msg)
	}
	return resp
}

func AssertNoContent(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, http.StatusNoContent, w.Code, "response: %s", w.Body.String())
	assert.Zero(t, w.Body.Len())
}
