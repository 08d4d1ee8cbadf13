package repository

import (
	"context"
	"fmt"

	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	paymentsTable = "payments pm"
)

//go:generate mockgen -source=payment.go -destination=mocks/payment_mock.go -package=mocks

type PaymentRepository interface {
	ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.PaymentRecord, error)
}

type paymentRepository struct {
	conn postgres.Queryer
}

func NewPaymentRepository(conn postgres.Queryer) PaymentRepository {
	return &paymentRepository{
		conn: conn,
	}
}

// ListByPeriod usa a data de pagamento e, para pagamentos ainda não pagos, a data de criação
func (r *paymentRepository) ListByPeriod(ctx context.Context, clinicID string, period domain.ReportPeriod) ([]domain.PaymentRecord, error) {
	query, args, err := psql.
		Select(
			"pm.id",
			"pm.amount",
			"COALESCE(pm.method, '')",
			"pm.status",
			"COALESCE(pm.paid_at, pm.created_at)",
			"COALESCE(pm.guardian_id, '')",
			"COALESCE(g.name, '')",
			"COALESCE(pm.reference_type, '')",
		).
		From(paymentsTable).
		LeftJoin("guardians g ON g.id = pm.guardian_id").
		Where(periodFilter("pm.clinic_id", "COALESCE(pm.paid_at, pm.created_at)", clinicID, period)).
		OrderBy("COALESCE(pm.paid_at, pm.created_at) ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar pagamentos: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		var payment domain.PaymentRecord
		err := rows.Scan(
			&payment.ID,
			&payment.Amount,
			&payment.Method,
			&payment.Status,
			&payment.PaidAt,
			&payment.GuardianID,
			&payment.GuardianName,
			&payment.ReferenceType,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pagamento: %w", err)
		}
		payments = append(payments, payment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return payments, nil
}
