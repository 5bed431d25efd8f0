package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pagebound/bookstore-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return rec.Code, resp["error"]
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"order not found", domain.ErrOrderNotFound, http.StatusNotFound},
		{"book not found", domain.ErrBookNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"invalid status", domain.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{"empty book set", domain.ErrOrderEmptyBooks, http.StatusUnprocessableEntity},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"email exists", domain.ErrEmailExists, http.StatusConflict},
		{"isbn exists", domain.ErrISBNExists, http.StatusConflict},
	}
	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.wantCode {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.wantCode, code)
		}
		if msg == "" {
			t.Errorf("%s: error message must not be empty", tc.name)
		}
	}
}

func TestErrorHandler_ReferenceError(t *testing.T) {
	code, msg := renderError(t, &domain.ReferenceError{Entity: "book", ID: "b9"})
	if code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if msg != "book b9 does not exist" {
		t.Fatalf("expected the dangling id in the message, got %q", msg)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "invalid payload" {
		t.Fatalf("expected original message, got %q", msg)
	}
}

func TestErrorHandler_UnexpectedErrorIsMasked(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset by peer"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", msg)
	}
}

func TestErrorHandler_CommittedResponseUntouched(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = c.NoContent(http.StatusNoContent)
	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrOrderNotFound, c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response must not be rewritten, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatal("no body may be written after commit")
	}
}
