package ports

import (
	"context"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

// PatientRepository reads patient records.
type PatientRepository interface {
	List(ctx context.Context) ([]*domain.Patient, error)
}
