package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	veterinariansTable = "veterinarians v"
)

//go:generate mockgen -source=veterinarian.go -destination=mocks/veterinarian_mock.go -package=mocks

type VeterinarianRepository interface {
	ListByClinic(ctx context.Context, clinicID string) ([]domain.VeterinarianRecord, error)
}

type veterinarianRepository struct {
	conn postgres.Queryer
}

func NewVeterinarianRepository(conn postgres.Queryer) VeterinarianRepository {
	return &veterinarianRepository{
		conn: conn,
	}
}

// ListByClinic retorna a equipe ativa da clínica
func (r *veterinarianRepository) ListByClinic(ctx context.Context, clinicID string) ([]domain.VeterinarianRecord, error) {
	query, args, err := psql.
		Select("v.id", "COALESCE(v.name, '')", "COALESCE(v.role, '')", "v.active").
		From(veterinariansTable).
		Where(squirrel.Eq{"v.clinic_id": clinicID, "v.active": true}).
		OrderBy("v.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar veterinários: %w", err)
	}
	defer rows.Close()

	veterinarians := make([]domain.VeterinarianRecord, 0)
	for rows.Next() {
		var vet domain.VeterinarianRecord
		if err := rows.Scan(&vet.ID, &vet.Name, &vet.Role, &vet.Active); err != nil {
			return nil, fmt.Errorf("erro ao escanear veterinário: %w", err)
		}
		veterinarians = append(veterinarians, vet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return veterinarians, nil
}
