package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		records  Records
		period   domain.ReportPeriod
		expected domain.SummaryStats
	}{
		{
			name:    "Coleções vazias resultam em zeros",
			records: Records{},
			period:  domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 1, 31)},
			expected: domain.SummaryStats{
				Days: 30,
			},
		},
		{
			name: "Mesmo dia conta como um dia",
			records: Records{
				Appointments:  make([]domain.AppointmentRecord, 3),
				Consultations: make([]domain.ConsultationRecord, 2),
			},
			period: domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 1, 1)},
			expected: domain.SummaryStats{
				TotalAppointments:          3,
				TotalConsultations:         2,
				Days:                       1,
				AveragePerDay:              3,
				AverageConsultationsPerDay: 2,
			},
		},
		{
			name: "Médias arredondadas em duas casas",
			records: Records{
				Appointments:  make([]domain.AppointmentRecord, 10),
				Prescriptions: make([]domain.PrescriptionRecord, 4),
				Pets:          make([]domain.PetRecord, 5),
			},
			period: domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 1, 4)},
			expected: domain.SummaryStats{
				TotalAppointments:  10,
				TotalPrescriptions: 4,
				TotalPets:          5,
				Days:               3,
				AveragePerDay:      3.33,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Summarize(tt.records, tt.period))
		})
	}
}

func TestDaySpan(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{name: "Mesmo instante", start: date(2024, 1, 1), end: date(2024, 1, 1), expected: 1},
		{name: "Dia parcial arredonda para cima", start: date(2024, 1, 1), end: date(2024, 1, 2).Add(time.Hour), expected: 2},
		{name: "Fim anterior ao início", start: date(2024, 1, 5), end: date(2024, 1, 1), expected: 1},
		{name: "Mês inteiro", start: date(2024, 3, 1), end: date(2024, 3, 31), expected: 30},
		{
			name:     "Fim do horário de verão não soma dia",
			start:    time.Date(2024, 11, 1, 0, 0, 0, 0, newYork),
			end:      time.Date(2024, 11, 30, 0, 0, 0, 0, newYork),
			expected: 29,
		},
		{
			name:     "Início do horário de verão não perde dia",
			start:    time.Date(2024, 3, 1, 0, 0, 0, 0, newYork),
			end:      time.Date(2024, 3, 31, 0, 0, 0, 0, newYork),
			expected: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaySpan(domain.ReportPeriod{Start: tt.start, End: tt.end}))
		})
	}
}

func TestDaySpan_SameRangeInAnyLocation(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	local, err := ResolvePeriod("2024-11-01", "2024-11-30", domain.GroupByMonth, true, time.Now(), newYork)
	require.NoError(t, err)
	utc, err := ResolvePeriod("2024-11-01", "2024-11-30", domain.GroupByMonth, true, time.Now(), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, DaySpan(utc), DaySpan(local))
	assert.Equal(t, 29, DaySpan(local))
}

func TestAgeInYears(t *testing.T) {
	assert.Equal(t, 4, AgeInYears(date(2020, 1, 1), date(2024, 1, 1)))
	assert.Equal(t, 0, AgeInYears(date(2024, 1, 1), date(2024, 12, 30)))
	assert.Equal(t, 0, AgeInYears(date(2025, 1, 1), date(2024, 1, 1)))
}

func TestBreakdownBy_SpeciesWithNeutered(t *testing.T) {
	pets := []domain.PetRecord{
		{ID: "1", Species: "Cão", IsNeutered: true},
		{ID: "2", Species: "Cão", IsNeutered: false},
		{ID: "3", Species: "Gato", IsNeutered: true},
	}

	aggregator := NewAggregator(time.UTC)
	data := aggregator.Pets(Records{Pets: pets}, domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 1, 31)})

	require.Equal(t, []string{"Cão", "Gato"}, data.SpeciesAnalysis.Keys())

	dog, _ := data.SpeciesAnalysis.Get("Cão")
	assert.Equal(t, SpeciesStats{Count: 2, NeuteredCount: 1, NeuteredPercentage: 50}, dog)

	cat, _ := data.SpeciesAnalysis.Get("Gato")
	assert.Equal(t, SpeciesStats{Count: 1, NeuteredCount: 1, NeuteredPercentage: 100}, cat)

	assert.Equal(t, 2, data.NeuteredCount)
	assert.Equal(t, 67, data.NeuteredPercentage)
}

func TestBreakdownBy_CountConservation(t *testing.T) {
	statuses := []string{"A", "B", "A", "C", "B", "A", "", "C"}

	breakdown := BreakdownBy[string, struct{}](statuses, func(s string) string {
		return orPlaceholder(s, PlaceholderUnknown)
	}, nil)

	sum := 0
	for _, category := range breakdown.Categories() {
		sum += category.Count
	}

	assert.Equal(t, len(statuses), sum)
	assert.Equal(t, len(statuses), breakdown.Total())
	assert.Equal(t, 4, breakdown.Len())

	unknown, ok := breakdown.Get(PlaceholderUnknown)
	require.True(t, ok)
	assert.Equal(t, 1, unknown.Count)
}

func TestBreakdownBy_AccumulatorRunsPerRecord(t *testing.T) {
	items := []domain.PrescriptionItem{
		{Quantity: 2, Category: "Antibiótico"},
		{Quantity: 1, Category: ""},
		{Quantity: 5, Category: "Antibiótico"},
	}

	breakdown := BreakdownBy(items,
		func(item domain.PrescriptionItem) string { return orPlaceholder(item.Category, PlaceholderCategory) },
		func(quantity *int, item domain.PrescriptionItem) { *quantity += item.Quantity },
	)

	antibiotic, ok := breakdown.Get("Antibiótico")
	require.True(t, ok)
	assert.Equal(t, 2, antibiotic.Count)
	assert.Equal(t, 7, antibiotic.Acc)

	uncategorized, ok := breakdown.Get(PlaceholderCategory)
	require.True(t, ok)
	assert.Equal(t, 1, uncategorized.Count)
}

func TestBreakdown_TopIsStable(t *testing.T) {
	keys := []string{"b", "a", "c", "a", "b", "d"}
	breakdown := BreakdownBy[string, struct{}](keys, func(s string) string { return s }, nil)

	top := breakdown.Top(3)
	require.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Key)
	assert.Equal(t, "a", top[1].Key)
	assert.Equal(t, "c", top[2].Key)

	assert.Len(t, breakdown.Top(10), 4)
}

func TestCountBy_PercentagesRoundHalfUp(t *testing.T) {
	keys := []string{"x", "y"}
	counts := CountBy(keys, func(s string) string { return s })

	x, _ := counts.Get("x")
	assert.Equal(t, CategoryCount{Count: 1, Percentage: 50}, x)

	counts = CountBy([]string{"x", "y", "y"}, func(s string) string { return s })
	x, _ = counts.Get("x")
	y, _ := counts.Get("y")
	assert.Equal(t, 33, x.Percentage)
	assert.Equal(t, 67, y.Percentage)
}

func TestSummarize_Idempotent(t *testing.T) {
	records := Records{
		Appointments: []domain.AppointmentRecord{{ID: "1", Date: date(2024, 2, 1)}},
		Pets:         []domain.PetRecord{{ID: "1"}},
	}
	period := domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 3, 1)}

	assert.Equal(t, Summarize(records, period), Summarize(records, period))
}
