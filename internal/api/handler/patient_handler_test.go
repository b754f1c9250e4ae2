package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

type stubPatientService struct {
	patients []*domain.Patient
	err      error
}

func (s stubPatientService) ListPatients(context.Context) ([]*domain.Patient, error) {
	return s.patients, s.err
}

func TestPatientHandler_List(t *testing.T) {
	e := newEcho()
	h := NewPatientHandler(stubPatientService{patients: []*domain.Patient{
		{
			ID:          1,
			DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
			Diagnosis:   []string{"flu", "asthma"},
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{ID: 2, DateOfBirth: time.Date(1985, 12, 1, 0, 0, 0, 0, time.UTC)},
	}})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients", nil), rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(resp))
	}
	if resp[0]["date_of_birth"] != "1990-04-12" {
		t.Fatalf("unexpected date_of_birth: %v", resp[0]["date_of_birth"])
	}
	if diag, ok := resp[1]["diagnosis"].([]any); !ok || len(diag) != 0 {
		t.Fatalf("expected empty diagnosis array, got %v", resp[1]["diagnosis"])
	}
}

func TestPatientHandler_List_Empty(t *testing.T) {
	e := newEcho()
	h := NewPatientHandler(stubPatientService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients", nil), rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestPatientHandler_List_ServiceError(t *testing.T) {
	e := newEcho()
	boom := errors.New("db down")
	h := NewPatientHandler(stubPatientService{err: boom})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients", nil), httptest.NewRecorder())

	if err := h.List(c); !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
}
