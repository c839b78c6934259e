package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DukeRupert/aqdi/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// =============================================================================
// Error Response Tests - Security Focus
// =============================================================================

func TestValidationErrorResponse_DoesNotExposeOperationName(t *testing.T) {
	ve := domain.NewValidationError("FeedbackHandler.Submit", "email", "Email is required")

	req := httptest.NewRequest("POST", "/feedback", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	ValidationErrorResponse(rec, req, discardLogger(), ve)

	body := rec.Body.String()
	if strings.Contains(body, "FeedbackHandler") {
		t.Errorf("response exposes internal operation name: %s", body)
	}
	if !strings.Contains(body, "check your input") {
		t.Errorf("response should have helpful guidance, got: %s", body)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestValidationErrorResponse_JSONIncludesFields(t *testing.T) {
	ve := domain.NewValidationError("FeedbackHandler.Submit", "message", "Message is required")

	req := httptest.NewRequest("POST", "/api/feedback", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	ValidationErrorResponse(rec, req, discardLogger(), ve)

	var body JSONError
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != domain.EINVALID {
		t.Errorf("code = %q", body.Error.Code)
	}
	if body.Error.Fields["message"] != "Message is required" {
		t.Errorf("fields = %v", body.Error.Fields)
	}
}

func TestErrorResponse_InternalErrorHidesDetails(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.7:8000: connect: connection refused")
	err := domain.Internal(cause, "AnalysisClient.Analyze", "backend call failed")

	for _, accept := range []string{"text/html", "application/json"} {
		req := httptest.NewRequest("GET", "/contract/status", nil)
		req.Header.Set("Accept", accept)
		rec := httptest.NewRecorder()
		ErrorResponse(rec, req, discardLogger(), err)

		body := rec.Body.String()
		for _, leak := range []string{"10.0.0.7", "8000", "AnalysisClient"} {
			if strings.Contains(body, leak) {
				t.Errorf("%s response exposes %q: %s", accept, leak, body)
			}
		}
		if !strings.Contains(body, "internal error") {
			t.Errorf("%s response should contain generic message, got: %s", accept, body)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	}
}

func TestErrorResponse_UnwrappedErrorReturnsGeneric(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	ErrorResponse(rec, req, discardLogger(), errors.New("secret-bucket: AccessDenied"))

	if strings.Contains(rec.Body.String(), "secret-bucket") {
		t.Errorf("response exposes raw error: %s", rec.Body.String())
	}
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		domain.EINVALID:     http.StatusBadRequest,
		domain.ENOTFOUND:    http.StatusNotFound,
		domain.ETOOLARGE:    http.StatusRequestEntityTooLarge,
		domain.ERATELIMIT:   http.StatusTooManyRequests,
		domain.EUNAVAILABLE: http.StatusBadGateway,
		domain.EINTERNAL:    http.StatusInternalServerError,
		"unknown":           http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := ErrorCodeToHTTPStatus(code); got != want {
			t.Errorf("ErrorCodeToHTTPStatus(%q) = %d, want %d", code, got, want)
		}
	}
}

func TestAcceptsJSON(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/contract-types", nil)
	if !acceptsJSON(req) {
		t.Error("API paths should get JSON")
	}
	req.Header.Set("HX-Request", "true")
	if acceptsJSON(req) {
		t.Error("htmx requests should get HTML")
	}
}
