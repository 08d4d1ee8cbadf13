package repository

import (
	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

// rowScanner é satisfeito por *sql.Row e *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// periodFilter restringe a consulta à clínica e ao intervalo [início, fim do último dia]
func periodFilter(clinicColumn, dateColumn, clinicID string, period domain.ReportPeriod) squirrel.And {
	return squirrel.And{
		squirrel.Eq{clinicColumn: clinicID},
		squirrel.GtOrEq{dateColumn: period.Start},
		squirrel.Lt{dateColumn: period.QueryEnd()},
	}
}
