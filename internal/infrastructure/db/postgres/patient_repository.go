package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HapppyEnd/api-server/internal/core/domain"
)

type PatientRepository struct {
	pool *pgxpool.Pool
}

func NewPatientRepository(pool *pgxpool.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) List(ctx context.Context) ([]*domain.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT id, date_of_birth, diagnosis, created_at FROM patients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}

	patients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Patient, error) {
		var p domain.Patient
		if err := row.Scan(&p.ID, &p.DateOfBirth, &p.Diagnosis, &p.CreatedAt); err != nil {
			return nil, err
		}
		if p.Diagnosis == nil {
			p.Diagnosis = []string{}
		}
		return &p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan patients: %w", err)
	}
	return patients, nil
}
