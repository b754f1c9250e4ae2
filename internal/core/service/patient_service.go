package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HapppyEnd/api-server/internal/core/domain"
	"github.com/HapppyEnd/api-server/internal/core/ports"
)

type PatientService struct {
	repo   ports.PatientRepository
	logger zerolog.Logger
}

func NewPatientService(repo ports.PatientRepository, logger zerolog.Logger) *PatientService {
	return &PatientService{repo: repo, logger: logger}
}

// ListPatients returns every patient record. Callers must already be authorized.
func (s *PatientService) ListPatients(ctx context.Context) ([]*domain.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list patients")
		return nil, fmt.Errorf("list patients: %w", err)
	}
	s.logger.Debug().Int("count", len(patients)).Msg("patients listed")
	return patients, nil
}
