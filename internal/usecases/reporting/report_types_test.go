package reporting

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
)

func TestResolveClinicalType(t *testing.T) {
	tests := []struct {
		value    string
		expected domain.ReportType
		fellBack bool
	}{
		{value: "", expected: domain.ReportSummary},
		{value: "pets", expected: domain.ReportPets},
		{value: " Consultations ", expected: domain.ReportConsultations},
		{value: "revenue", expected: domain.ReportSummary, fellBack: true},
		{value: "xyz", expected: domain.ReportSummary, fellBack: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			reportType, fellBack := ResolveClinicalType(tt.value)
			assert.Equal(t, tt.expected, reportType)
			assert.Equal(t, tt.fellBack, fellBack)
		})
	}
}

func TestParseGeneralType(t *testing.T) {
	reportType, err := ParseGeneralType("inventory")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportInventory, reportType)

	_, err = ParseGeneralType("summary")
	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, apiErrors.ErrInvalidReportType, reportErr.Code)
	assert.ErrorIs(t, err, ErrInvalidReportType)
	assert.True(t, IsValidationError(err))
}

func TestResolveGroupBy(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		strict   bool
		expected domain.GroupBy
		wantErr  bool
	}{
		{name: "Vazio usa mês", value: "", expected: domain.GroupByMonth},
		{name: "Vazio estrito usa mês", value: "", strict: true, expected: domain.GroupByMonth},
		{name: "Semana", value: "week", expected: domain.GroupByWeek},
		{name: "Maiúsculas", value: "DAY", strict: true, expected: domain.GroupByDay},
		{name: "Inválido tolerante", value: "quarter", expected: domain.GroupByMonth},
		{name: "Inválido estrito", value: "quarter", strict: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groupBy, err := ResolveGroupBy(tt.value, tt.strict)
			if tt.wantErr {
				var reportErr *ReportError
				require.ErrorAs(t, err, &reportErr)
				assert.Equal(t, apiErrors.ErrInvalidGroupBy, reportErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, groupBy)
		})
	}
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		start         string
		end           string
		requireDates  bool
		expectedStart time.Time
		expectedEnd   time.Time
		wantErr       bool
	}{
		{
			name:          "Sem datas usa os últimos 30 dias",
			expectedStart: date(2024, 4, 20),
			expectedEnd:   date(2024, 5, 20),
		},
		{
			name:          "Somente fim",
			end:           "2024-03-31",
			expectedStart: date(2024, 3, 1),
			expectedEnd:   date(2024, 3, 31),
		},
		{
			name:          "Somente início",
			start:         "2024-05-01",
			expectedStart: date(2024, 5, 1),
			expectedEnd:   date(2024, 5, 20),
		},
		{
			name:          "Mesmo dia",
			start:         "2024-01-01",
			end:           "2024-01-01",
			requireDates:  true,
			expectedStart: date(2024, 1, 1),
			expectedEnd:   date(2024, 1, 1),
		},
		{name: "Datas obrigatórias ausentes", start: "2024-01-01", requireDates: true, wantErr: true},
		{name: "Início depois do fim", start: "2024-02-01", end: "2024-01-01", wantErr: true},
		{name: "Data malformada", start: "01/02/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := ResolvePeriod(tt.start, tt.end, domain.GroupByDay, tt.requireDates, now, time.UTC)
			if tt.wantErr {
				var reportErr *ReportError
				require.ErrorAs(t, err, &reportErr)
				assert.Equal(t, apiErrors.ErrInvalidPeriod, reportErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStart, period.Start)
			assert.Equal(t, tt.expectedEnd, period.End)
			assert.Equal(t, domain.GroupByDay, period.GroupBy)
		})
	}
}

func TestResolvePeriod_LocalMidnight(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	period, err := ResolvePeriod("2024-01-01", "2024-01-31", domain.GroupByMonth, true, time.Now(), saoPaulo)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), period.Start.UTC())
	assert.Equal(t, time.Date(2024, 2, 1, 3, 0, 0, 0, time.UTC), period.QueryEnd().UTC())
}

func TestRequiredCollections_CoverEveryType(t *testing.T) {
	for _, reportType := range slices.Concat(domain.ClinicalReportTypes, domain.GeneralReportTypes) {
		assert.NotZero(t, requiredCollections[reportType], reportType)
	}
}

func TestPeriodInfo(t *testing.T) {
	info := periodInfo(domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 1, 31), GroupBy: domain.GroupByWeek})

	assert.Equal(t, domain.ReportPeriodInfo{Start: "2024-01-01", End: "2024-01-31", GroupBy: domain.GroupByWeek}, info)
}
