package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	consultationsTable = "consultations c"
)

//go:generate mockgen -source=consultation.go -destination=mocks/consultation_mock.go -package=mocks

type ConsultationRepository interface {
	ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.ConsultationRecord, error)
}

type consultationRepository struct {
	conn postgres.Queryer
}

func NewConsultationRepository(conn postgres.Queryer) ConsultationRepository {
	return &consultationRepository{
		conn: conn,
	}
}

func (r *consultationRepository) ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.ConsultationRecord, error) {
	query, args, err := psql.
		Select(
			"c.id",
			"COALESCE(c.pet_id, '')",
			"COALESCE(c.veterinarian_id, '')",
			"c.created_at",
			"COALESCE(c.diagnosis, '')",
			"COALESCE(c.status, '')",
			"COALESCE(p.species, '')",
			"COALESCE(p.breed, '')",
			"COALESCE(v.name, '')",
			"c.value",
		).
		From(consultationsTable).
		LeftJoin("pets p ON p.id = c.pet_id").
		LeftJoin("veterinarians v ON v.id = c.veterinarian_id").
		Where(periodFilter("c.clinic_id", "c.created_at", clinicID, period)).
		OrderBy("c.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar consultas: %w", err)
	}
	defer rows.Close()

	consultations := make([]domain.ConsultationRecord, 0)
	for rows.Next() {
		var (
			consultation domain.ConsultationRecord
			value        decimal.NullDecimal
		)

		err := rows.Scan(
			&consultation.ID,
			&consultation.PetID,
			&consultation.VeterinarianID,
			&consultation.CreatedAt,
			&consultation.Diagnosis,
			&consultation.Status,
			&consultation.PetSpecies,
			&consultation.PetBreed,
			&consultation.VeterinarianName,
			&value,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear consulta: %w", err)
		}

		if value.Valid {
			consultation.Value = &value.Decimal
		}
		consultations = append(consultations, consultation)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return consultations, nil
}
