package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	petsTable = "pets p"
)

//go:generate mockgen -source=pet.go -destination=mocks/pet_mock.go -package=mocks

type PetRepository interface {
	ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.PetRecord, error)
}

type petRepository struct {
	conn postgres.Queryer
}

func NewPetRepository(conn postgres.Queryer) PetRepository {
	return &petRepository{
		conn: conn,
	}
}

// ListByPeriod retorna os pets cadastrados na clínica dentro do período
func (r *petRepository) ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.PetRecord, error) {
	query, args, err := psql.
		Select(
			"p.id",
			"COALESCE(p.guardian_id, '')",
			"COALESCE(p.species, '')",
			"COALESCE(p.breed, '')",
			"COALESCE(p.is_neutered, false)",
			"p.birth_date",
			"p.created_at",
		).
		From(petsTable).
		Where(periodFilter("p.clinic_id", "p.created_at", clinicID, period)).
		OrderBy("p.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pets: %w", err)
	}
	defer rows.Close()

	pets := make([]domain.PetRecord, 0)
	for rows.Next() {
		var (
			pet       domain.PetRecord
			birthDate sql.NullTime
		)

		err := rows.Scan(
			&pet.ID,
			&pet.GuardianID,
			&pet.Species,
			&pet.Breed,
			&pet.IsNeutered,
			&birthDate,
			&pet.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pet: %w", err)
		}

		if birthDate.Valid {
			pet.BirthDate = &birthDate.Time
		}
		pets = append(pets, pet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return pets, nil
}
