package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	appointmentsTable = "appointments a"
)

//go:generate mockgen -source=appointment.go -destination=mocks/appointment_mock.go -package=mocks

type AppointmentRepository interface {
	ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.AppointmentRecord, error)
}

type appointmentRepository struct {
	conn postgres.Queryer
}

func NewAppointmentRepository(conn postgres.Queryer) AppointmentRepository {
	return &appointmentRepository{
		conn: conn,
	}
}

// ListByPeriod retorna os agendamentos da clínica com data dentro do período,
// com os dados de pet, tutor e veterinário já desnormalizados
func (r *appointmentRepository) ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.AppointmentRecord, error) {
	query, args, err := psql.
		Select(
			"a.id",
			"COALESCE(a.pet_id, '')",
			"COALESCE(a.guardian_id, '')",
			"COALESCE(a.veterinarian_id, '')",
			"a.date",
			"a.status",
			"COALESCE(p.species, '')",
			"COALESCE(p.breed, '')",
			"COALESCE(v.name, '')",
			"COALESCE(v.role, '')",
			"COALESCE(g.name, '')",
			"COALESCE(g.email, '')",
		).
		From(appointmentsTable).
		LeftJoin("pets p ON p.id = a.pet_id").
		LeftJoin("veterinarians v ON v.id = a.veterinarian_id").
		LeftJoin("guardians g ON g.id = a.guardian_id").
		Where(periodFilter("a.clinic_id", "a.date", clinicID, period)).
		OrderBy("a.date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar agendamentos: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.AppointmentRecord, 0)
	for rows.Next() {
		var appointment domain.AppointmentRecord
		err := rows.Scan(
			&appointment.ID,
			&appointment.PetID,
			&appointment.GuardianID,
			&appointment.VeterinarianID,
			&appointment.Date,
			&appointment.Status,
			&appointment.PetSpecies,
			&appointment.PetBreed,
			&appointment.VeterinarianName,
			&appointment.VeterinarianRole,
			&appointment.GuardianName,
			&appointment.GuardianEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear agendamento: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return appointments, nil
}
