package reporting

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

const (
	monthKeyLayout = "2006-01"
	yearKeyLayout  = "2006"
)

// Calendar deriva as chaves de período. Semana (começando no domingo), mês e ano são
// avaliados no fuso configurado. A chave de dia é a data UTC.
type Calendar struct {
	loc *time.Location
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{loc: loc}
}

func (c Calendar) location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// PeriodKey retorna a chave do bucket de t para a granularidade informada
func (c Calendar) PeriodKey(t time.Time, groupBy domain.GroupBy) string {
	local := t.In(c.location())

	switch groupBy {
	case domain.GroupByDay:
		return t.UTC().Format(time.DateOnly)
	case domain.GroupByWeek:
		y, m, d := local.Date()
		sunday := time.Date(y, m, d-int(local.Weekday()), 0, 0, 0, 0, time.UTC)
		return sunday.Format(time.DateOnly)
	case domain.GroupByYear:
		return local.Format(yearKeyLayout)
	default:
		return local.Format(monthKeyLayout)
	}
}

// Bucket agrupa os registros de um período. Total só é preenchido quando a soma de
// valores foi pedida.
type Bucket[T any] struct {
	Period  string           `json:"period"`
	Count   int              `json:"count"`
	Total   *decimal.Decimal `json:"total,omitempty"`
	Records []T              `json:"-"`
}

// BucketByPeriod agrupa os registros por período em ordem cronológica. Só períodos com
// ao menos um registro são emitidos. valueOf é opcional; valores ausentes não somam.
func BucketByPeriod[T any](
	calendar Calendar,
	records []T,
	dateOf func(T) time.Time,
	groupBy domain.GroupBy,
	valueOf func(T) *decimal.Decimal,
) []Bucket[T] {
	buckets := NewOrderedMap[*Bucket[T]]()

	for _, record := range records {
		key := calendar.PeriodKey(dateOf(record), groupBy)

		bucket, exists := buckets.Get(key)
		if !exists {
			bucket = &Bucket[T]{Period: key}
			if valueOf != nil {
				zero := decimal.Zero
				bucket.Total = &zero
			}
			buckets.Set(key, bucket)
		}

		bucket.Count++
		bucket.Records = append(bucket.Records, record)

		if valueOf != nil {
			if value := valueOf(record); value != nil {
				sum := bucket.Total.Add(*value)
				bucket.Total = &sum
			}
		}
	}

	series := make([]Bucket[T], 0, buckets.Len())
	buckets.Each(func(_ string, bucket *Bucket[T]) {
		series = append(series, *bucket)
	})

	// Chaves yyyy-mm-dd, yyyy-mm e yyyy ordenam cronologicamente como texto
	slices.SortFunc(series, func(a, b Bucket[T]) int {
		return strings.Compare(a.Period, b.Period)
	})

	return series
}

// MonthlySeries gera uma linha por mês civil entre o início e o fim do período, inclusive,
// e conta consultas, agendamentos e prescrições de cada mês de forma independente.
// Meses sem atividade aparecem com zero.
func (c Calendar) MonthlySeries(records Records, period domain.ReportPeriod) []domain.MonthlyRow {
	loc := c.location()
	start := period.Start.In(loc)
	end := period.End.In(loc)

	current := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, loc)

	rows := make([]domain.MonthlyRow, 0)
	index := make(map[string]int)

	for !current.After(last) {
		key := current.Format(monthKeyLayout)
		index[key] = len(rows)
		rows = append(rows, domain.MonthlyRow{Month: key})

		current = current.AddDate(0, 1, 0)
	}

	for _, consultation := range records.Consultations {
		if i, ok := index[c.PeriodKey(consultation.CreatedAt, domain.GroupByMonth)]; ok {
			rows[i].Consultations++
		}
	}

	for _, appointment := range records.Appointments {
		if i, ok := index[c.PeriodKey(appointment.Date, domain.GroupByMonth)]; ok {
			rows[i].Appointments++
		}
	}

	for _, prescription := range records.Prescriptions {
		if i, ok := index[c.PeriodKey(prescription.StartDate, domain.GroupByMonth)]; ok {
			rows[i].Prescriptions++
		}
	}

	return rows
}
