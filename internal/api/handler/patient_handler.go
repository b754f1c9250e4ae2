package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/HapppyEnd/api-server/internal/core/domain"
	"github.com/HapppyEnd/api-server/internal/core/ports"
)

const dateLayout = "2006-01-02"

type patientResponse struct {
	ID          int64     `json:"id"`
	DateOfBirth string    `json:"date_of_birth" example:"1990-04-12"`
	Diagnosis   []string  `json:"diagnosis"`
	CreatedAt   time.Time `json:"created_at"`
}

type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List returns every patient record. Only doctors reach this handler.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   patientResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	patients, err := h.service.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]patientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, toPatientResponse(p))
	}
	return c.JSON(http.StatusOK, out)
}

func toPatientResponse(p *domain.Patient) patientResponse {
	diagnosis := p.Diagnosis
	if diagnosis == nil {
		diagnosis = []string{}
	}
	return patientResponse{
		ID:          p.ID,
		DateOfBirth: p.DateOfBirth.Format(dateLayout),
		Diagnosis:   diagnosis,
		CreatedAt:   p.CreatedAt,
	}
}
