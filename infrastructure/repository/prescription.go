package repository

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	prescriptionsTable = "prescriptions pr"
)

//go:generate mockgen -source=prescription.go -destination=mocks/prescription_mock.go -package=mocks

type PrescriptionRepository interface {
	ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.PrescriptionRecord, error)
}

type prescriptionRepository struct {
	conn postgres.Queryer
}

func NewPrescriptionRepository(conn postgres.Queryer) PrescriptionRepository {
	return &prescriptionRepository{
		conn: conn,
	}
}

// ListByPeriod traz as prescrições com início no período. Os itens vêm agregados em jsonb
// numa única consulta.
func (r *prescriptionRepository) ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.PrescriptionRecord, error) {
	itemsSubquery := `COALESCE((
		SELECT json_agg(json_build_object('quantity', pi.quantity, 'category', COALESCE(pi.category, '')))
		FROM prescription_items pi
		WHERE pi.prescription_id = pr.id
	), '[]')`

	query, args, err := psql.
		Select(
			"pr.id",
			"COALESCE(pr.pet_id, '')",
			"COALESCE(pr.veterinarian_id, '')",
			"pr.start_date",
			"COALESCE(pr.status, '')",
			"COALESCE(v.name, '')",
			itemsSubquery,
		).
		From(prescriptionsTable).
		LeftJoin("veterinarians v ON v.id = pr.veterinarian_id").
		Where(periodFilter("pr.clinic_id", "pr.start_date", clinicID, period)).
		OrderBy("pr.start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar prescrições: %w", err)
	}
	defer rows.Close()

	prescriptions := make([]domain.PrescriptionRecord, 0)
	for rows.Next() {
		var (
			prescription domain.PrescriptionRecord
			itemsJSON    []byte
		)

		err := rows.Scan(
			&prescription.ID,
			&prescription.PetID,
			&prescription.VeterinarianID,
			&prescription.StartDate,
			&prescription.Status,
			&prescription.VeterinarianName,
			&itemsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear prescrição: %w", err)
		}

		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &prescription.Items); err != nil {
				return nil, fmt.Errorf("erro ao deserializar itens da prescrição %s: %w", prescription.ID, err)
			}
		}
		prescriptions = append(prescriptions, prescription)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return prescriptions, nil
}
