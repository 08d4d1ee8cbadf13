package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	guardiansTable = "guardians g"
)

//go:generate mockgen -source=guardian.go -destination=mocks/guardian_mock.go -package=mocks

type GuardianRepository interface {
	ListByClinic(ctx context.Context, clinicID string) ([]domain.GuardianRecord, error)
}

type guardianRepository struct {
	conn postgres.Queryer
}

func NewGuardianRepository(conn postgres.Queryer) GuardianRepository {
	return &guardianRepository{
		conn: conn,
	}
}

// ListByClinic retorna todos os tutores da clínica com a quantidade de pets de cada um
func (r *guardianRepository) ListByClinic(ctx context.Context, clinicID string) ([]domain.GuardianRecord, error) {
	query, args, err := psql.
		Select(
			"g.id",
			"COALESCE(g.name, '')",
			"COALESCE(g.email, '')",
			"(SELECT COUNT(*) FROM pets p WHERE p.guardian_id = g.id)",
			"g.created_at",
		).
		From(guardiansTable).
		Where(squirrel.Eq{"g.clinic_id": clinicID}).
		OrderBy("g.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar tutores: %w", err)
	}
	defer rows.Close()

	guardians := make([]domain.GuardianRecord, 0)
	for rows.Next() {
		var guardian domain.GuardianRecord
		err := rows.Scan(
			&guardian.ID,
			&guardian.Name,
			&guardian.Email,
			&guardian.PetsCount,
			&guardian.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear tutor: %w", err)
		}
		guardians = append(guardians, guardian)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return guardians, nil
}
