package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

func render(t *testing.T, err error, opts ErrorOptions) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients", nil), rec)
	NewHTTPErrorHandler(zerolog.Nop(), opts)(err, c)
	return rec
}

func detailOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body.Detail
}

func TestErrorHandler_TokenFailuresAreUniform(t *testing.T) {
	kinds := []error{
		domain.ErrTokenMalformed,
		domain.ErrTokenBadSignature,
		domain.ErrTokenExpired,
		domain.ErrTokenMissingClaims,
	}
	for _, kind := range kinds {
		rec := render(t, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, kind), ErrorOptions{})

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%v: expected 401, got %d", kind, rec.Code)
		}
		if got := detailOf(t, rec); got != "Not authenticated" {
			t.Fatalf("%v: unexpected detail %q", kind, got)
		}
		if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
			t.Fatalf("%v: missing WWW-Authenticate header", kind)
		}
	}
}

func TestErrorHandler_InvalidCredentials(t *testing.T) {
	rec := render(t, domain.ErrInvalidCredentials, ErrorOptions{})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := detailOf(t, rec); got != "Invalid credentials" {
		t.Fatalf("unexpected detail %q", got)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "Bearer" {
		t.Fatalf("missing WWW-Authenticate header")
	}
}

func TestErrorHandler_ForbiddenDefaultsTo401(t *testing.T) {
	rec := render(t, domain.ErrForbidden, ErrorOptions{})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := detailOf(t, rec); got != "Not authenticated" {
		t.Fatalf("unexpected detail %q", got)
	}
}

func TestErrorHandler_ForbiddenAs403(t *testing.T) {
	rec := render(t, domain.ErrForbidden, ErrorOptions{ForbiddenAs403: true})

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := detailOf(t, rec); got != "Forbidden" {
		t.Fatalf("unexpected detail %q", got)
	}
	if rec.Header().Get(echo.HeaderWWWAuthenticate) != "" {
		t.Fatalf("403 must not carry WWW-Authenticate")
	}
}

func TestErrorHandler_DomainMappings(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUserExists, http.StatusConflict},
		{domain.ErrInvalidUsername, http.StatusUnprocessableEntity},
		{domain.ErrInvalidPassword, http.StatusUnprocessableEntity},
		{domain.ErrInvalidRole, http.StatusUnprocessableEntity},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest},
		{echo.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := render(t, tc.err, ErrorOptions{}); rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestErrorHandler_UnknownErrorIsOpaque(t *testing.T) {
	rec := render(t, errors.New("pq: connection reset by peer"), ErrorOptions{})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := detailOf(t, rec); got != "Internal server error" {
		t.Fatalf("unexpected detail %q", got)
	}
}
