package domain

import "time"

// GroupBy define a granularidade dos buckets de série temporal
type GroupBy string

const (
	GroupByDay   GroupBy = "day"
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
	GroupByYear  GroupBy = "year"

	DefaultGroupBy = GroupByMonth
)

func (g GroupBy) IsValid() bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
		return true
	}
	return false
}

// ReportPeriod é o intervalo inclusivo [Start, End] de um relatório.
// End representa o dia civil final inteiro.
type ReportPeriod struct {
	Start   time.Time
	End     time.Time
	GroupBy GroupBy
}

// QueryEnd retorna o limite superior exclusivo usado nas consultas
func (p ReportPeriod) QueryEnd() time.Time {
	return p.End.AddDate(0, 0, 1)
}
