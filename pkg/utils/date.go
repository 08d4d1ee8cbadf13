package utils

import (
	"fmt"
	"time"
)

const monthPeriodLayout = "01-2006"

// ParseDate interpreta datas yyyy-mm-dd. String vazia retorna nil sem erro.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q, use o formato yyyy-mm-dd", dateStr)
	}

	return &date, nil
}

// MonthPeriod formata a data no período mm-yyyy usado pelos snapshots
func MonthPeriod(date time.Time) string {
	return date.Format(monthPeriodLayout)
}

// ParseMonthPeriod converte um período mm-yyyy no primeiro dia do mês
func ParseMonthPeriod(period string) (time.Time, error) {
	return time.Parse(monthPeriodLayout, period)
}

func FirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
