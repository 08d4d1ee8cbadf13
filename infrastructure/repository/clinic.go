package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	clinicsTable = "clinics"
)

//go:generate mockgen -source=clinic.go -destination=mocks/clinic_mock.go -package=mocks

type ClinicRepository interface {
	ListActiveClinics(ctx context.Context) ([]domain.Clinic, error)
	GetClinicByID(ctx context.Context, clinicID string) (*domain.Clinic, error)
}

type clinicRepository struct {
	conn postgres.Queryer
}

func NewClinicRepository(conn postgres.Queryer) ClinicRepository {
	return &clinicRepository{
		conn: conn,
	}
}

func (r *clinicRepository) ListActiveClinics(ctx context.Context) ([]domain.Clinic, error) {
	query, args, err := psql.
		Select("id", "name", "active").
		From(clinicsTable).
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clínicas: %w", err)
	}
	defer rows.Close()

	clinics := make([]domain.Clinic, 0)
	for rows.Next() {
		var clinic domain.Clinic
		if err := rows.Scan(&clinic.ID, &clinic.Name, &clinic.Active); err != nil {
			return nil, fmt.Errorf("erro ao escanear clínica: %w", err)
		}
		clinics = append(clinics, clinic)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return clinics, nil
}

// GetClinicByID retorna nil sem erro quando a clínica não existe
func (r *clinicRepository) GetClinicByID(ctx context.Context, clinicID string) (*domain.Clinic, error) {
	query, args, err := psql.
		Select("id", "name", "active").
		From(clinicsTable).
		Where(squirrel.Eq{"id": clinicID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var clinic domain.Clinic
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&clinic.ID, &clinic.Name, &clinic.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar clínica: %w", err)
	}

	return &clinic, nil
}
