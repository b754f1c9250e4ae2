package ports

import (
	"context"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// PatientService exposes the protected patient read.
type PatientService interface {
	ListPatients(ctx context.Context) ([]*domain.Patient, error)
}
