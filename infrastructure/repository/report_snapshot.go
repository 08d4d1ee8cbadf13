package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/database/postgres"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
)

const (
	reportSnapshotsTable = "report_snapshots"
)

var snapshotColumns = []string{"id", "clinic_id", "period", "summary", "months", "created_at", "updated_at"}

//go:generate mockgen -source=report_snapshot.go -destination=mocks/report_snapshot_mock.go -package=mocks

type ReportSnapshotRepository interface {
	GetByClinicAndPeriod(ctx context.Context, clinicID string, period string) (*domain.MonthlySnapshot, error)
	SaveOrUpdate(ctx context.Context, snapshot *domain.MonthlySnapshot) error
	DeleteOlderThan(ctx context.Context, months int) (int64, error)
	GetAllPeriods(ctx context.Context, clinicID string) ([]string, error)
}

type reportSnapshotRepository struct {
	conn postgres.Queryer
}

func NewReportSnapshotRepository(conn postgres.Queryer) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

// GetByClinicAndPeriod busca o snapshot do período mm-yyyy; retorna nil sem erro quando não existe
func (r *reportSnapshotRepository) GetByClinicAndPeriod(ctx context.Context, clinicID string, period string) (*domain.MonthlySnapshot, error) {
	query, args, err := psql.
		Select(snapshotColumns...).
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"clinic_id": clinicID, "period": period}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot, err := scanSnapshot(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot mensal: %w", err)
	}

	return snapshot, nil
}

func (r *reportSnapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *domain.MonthlySnapshot) error {
	periodStart, err := utils.ParseMonthPeriod(snapshot.Period)
	if err != nil {
		return fmt.Errorf("período inválido %q: %w", snapshot.Period, err)
	}

	summaryJSON, err := json.Marshal(snapshot.Summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar resumo para JSON: %w", err)
	}

	monthsJSON, err := json.Marshal(snapshot.Months)
	if err != nil {
		return fmt.Errorf("erro ao serializar série mensal para JSON: %w", err)
	}

	query, args, err := psql.
		Insert(reportSnapshotsTable).
		Columns("id", "clinic_id", "period", "period_start", "summary", "months").
		Values(
			snapshot.ID,
			snapshot.ClinicID,
			snapshot.Period,
			periodStart,
			summaryJSON,
			monthsJSON,
		).
		Suffix(`
			ON CONFLICT (clinic_id, period) DO UPDATE SET
				summary = EXCLUDED.summary,
				months = EXCLUDED.months,
				updated_at = NOW()
		`).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// DeleteOlderThan remove snapshots com mais de months meses
func (r *reportSnapshotRepository) DeleteOlderThan(ctx context.Context, months int) (int64, error) {
	cutoff := utils.FirstDayOfMonth(time.Now().UTC().AddDate(0, -months, 0))

	query, args, err := psql.
		Delete(reportSnapshotsTable).
		Where(squirrel.Lt{"period_start": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// GetAllPeriods retorna os períodos mm-yyyy com snapshot, do mais antigo ao mais recente
func (r *reportSnapshotRepository) GetAllPeriods(ctx context.Context, clinicID string) ([]string, error) {
	query, args, err := psql.
		Select("period").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("period_start ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

func scanSnapshot(row rowScanner) (*domain.MonthlySnapshot, error) {
	snapshot := &domain.MonthlySnapshot{}
	var summaryJSON, monthsJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&snapshot.ClinicID,
		&snapshot.Period,
		&summaryJSON,
		&monthsJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summaryJSON != nil {
		summary := &domain.SummaryStats{}
		if err := json.Unmarshal(summaryJSON, summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de summary: %w", err)
		}
		snapshot.Summary = summary
	}

	if monthsJSON != nil {
		if err := json.Unmarshal(monthsJSON, &snapshot.Months); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de months: %w", err)
		}
	}

	return snapshot, nil
}
