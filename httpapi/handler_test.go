package httpapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphysics/equality-checker/engine"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newTestServer() *Server {
	return NewServer(engine.New(), func() time.Duration { return time.Second }, discardLogger())
}

func doCheck(t *testing.T, srv *Server, path string, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	resp := rec.Result()
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestHandlePingReturnsCode200(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, float64(200), body["code"])
}

func TestCheckExactMatch(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"target": "x+1", "test": "x+1"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", body["equal"])
	assert.Equal(t, "exact", body["equality_type"])
}

func TestCheckSymbolicMatch(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check/maths", map[string]any{"target": "x", "test": "sqrt(x^2)"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", body["equal"])
	assert.Equal(t, "symbolic", body["equality_type"])
}

func TestCheckLogicRoute(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check/logic", map[string]any{"target": "not (A and B)", "test": "(not A) or (not B)"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", body["equal"])
	assert.Equal(t, "symbolic", body["equality_type"])
}

func TestCheckSymbolMismatchReportsMissingAndExtra(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"target": "x+y", "test": "x+z"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "false", body["equal"])
	mismatch, ok := body["incorrect_symbols"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "y", mismatch["missing"])
	assert.Equal(t, "z", mismatch["extra"])
}

func TestCheckExplicitCheckSymbolsFalseSkipsMismatchGate(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{
		"target": "1", "test": "sin(x)**2 + cos(x)**2", "check_symbols": false,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", body["equal"])
	assert.Equal(t, "numeric", body["equality_type"])
}

func TestCheckMissingTargetFieldIsBadRequest(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"test": "x+1"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestCheckEmptyTestIsBadRequest(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"target": "x+1", "test": ""})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestCheckTargetParseErrorIsFatalBadRequest(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"target": "x+", "test": "x+1"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestCheckTestParseErrorIsSyntaxError(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"target": "x+1", "test": "x+"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", body["syntax_error"])
}

func TestCheckPlusMinusCaseTagging(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{"target": "x±1", "test": "x±"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", body["syntax_error"])
	assert.Equal(t, "+", body["case"])
}

func TestUnroutedPathReturnsJSONNotFound(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestWrongMethodReturnsJSONError(t *testing.T) {
	srv := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestRequestDescriptionDoesNotLeakIntoResponse(t *testing.T) {
	srv := newTestServer()
	resp, body := doCheck(t, srv, "/check", map[string]any{
		"target": "x+1", "test": "x+1", "description": "unit test run",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, present := body["description"]
	assert.False(t, present)
}
