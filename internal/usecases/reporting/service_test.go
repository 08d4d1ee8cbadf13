package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/repository/mocks"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	appointments  *mocks.MockAppointmentRepository
	consultations *mocks.MockConsultationRepository
	prescriptions *mocks.MockPrescriptionRepository
	pets          *mocks.MockPetRepository
	guardians     *mocks.MockGuardianRepository
	inventory     *mocks.MockInventoryRepository
	payments      *mocks.MockPaymentRepository
	veterinarians *mocks.MockVeterinarianRepository
	snapshots     *mocks.MockReportSnapshotRepository
}

var fixedNow = time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		appointments:  mocks.NewMockAppointmentRepository(ctrl),
		consultations: mocks.NewMockConsultationRepository(ctrl),
		prescriptions: mocks.NewMockPrescriptionRepository(ctrl),
		pets:          mocks.NewMockPetRepository(ctrl),
		guardians:     mocks.NewMockGuardianRepository(ctrl),
		inventory:     mocks.NewMockInventoryRepository(ctrl),
		payments:      mocks.NewMockPaymentRepository(ctrl),
		veterinarians: mocks.NewMockVeterinarianRepository(ctrl),
		snapshots:     mocks.NewMockReportSnapshotRepository(ctrl),
	}

	service := &Service{
		repos: Repositories{
			Appointments:  m.appointments,
			Consultations: m.consultations,
			Prescriptions: m.prescriptions,
			Pets:          m.pets,
			Guardians:     m.guardians,
			Inventory:     m.inventory,
			Payments:      m.payments,
			Veterinarians: m.veterinarians,
			Snapshots:     m.snapshots,
		},
		aggregator:   NewAggregator(time.UTC),
		location:     time.UTC,
		queryTimeout: time.Second,
		now:          func() time.Time { return fixedNow },
	}

	return service, m
}

func requireReportError(t *testing.T, err error, code string) *ReportError {
	t.Helper()

	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, code, reportErr.Code)
	return reportErr
}

func TestService_GetClinicalReport_MissingClinic(t *testing.T) {
	service, _ := newTestService(t)

	report, err := service.GetClinicalReport(context.Background(), ReportRequest{Type: "summary"})

	assert.Nil(t, report)
	requireReportError(t, err, apiErrors.ErrMissingRequiredData)
}

func TestService_GetClinicalReport_UnknownTypeFallsBackToSummary(t *testing.T) {
	service, m := newTestService(t)

	expectedPeriod := domain.ReportPeriod{Start: date(2024, 4, 20), End: date(2024, 5, 20), GroupBy: domain.GroupByMonth}

	m.consultations.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).
		Return([]domain.ConsultationRecord{{ID: "c1", CreatedAt: date(2024, 5, 2)}}, nil)
	m.appointments.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).
		Return([]domain.AppointmentRecord{{ID: "a1", Date: date(2024, 4, 25)}, {ID: "a2", Date: date(2024, 5, 3)}}, nil)
	m.prescriptions.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).
		Return([]domain.PrescriptionRecord{}, nil)
	m.pets.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).
		Return([]domain.PetRecord{}, nil)

	report, err := service.GetClinicalReport(context.Background(), ReportRequest{
		ClinicID: "clinic-1",
		Type:     "xyz",
		GroupBy:  "quarter",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportSummary, report.Type)
	assert.Equal(t, domain.ReportPeriodInfo{Start: "2024-04-20", End: "2024-05-20", GroupBy: domain.GroupByMonth}, report.Period)

	data, ok := report.Data.(SummaryData)
	require.True(t, ok)
	assert.Equal(t, 2, data.Summary.TotalAppointments)
	assert.Equal(t, 1, data.Summary.TotalConsultations)
	assert.Equal(t, 30, data.Summary.Days)
	require.Len(t, data.MonthlyAnalysis, 2)
	assert.Equal(t, domain.MonthlyRow{Month: "2024-04", Appointments: 1}, data.MonthlyAnalysis[0])
	assert.Equal(t, domain.MonthlyRow{Month: "2024-05", Appointments: 1, Consultations: 1}, data.MonthlyAnalysis[1])
}

func TestService_GetClinicalReport_FetchesOnlyRequiredCollections(t *testing.T) {
	service, m := newTestService(t)

	m.pets.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", gomock.Any()).
		Return([]domain.PetRecord{{ID: "p1", Species: "Cão", CreatedAt: date(2024, 1, 2)}}, nil)

	report, err := service.GetClinicalReport(context.Background(), ReportRequest{
		ClinicID:  "clinic-1",
		Type:      "pets",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		GroupBy:   "week",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportPets, report.Type)

	data, ok := report.Data.(PetsData)
	require.True(t, ok)
	assert.Equal(t, 1, data.Total)
	require.Len(t, data.Timeline, 1)
	assert.Equal(t, "2023-12-31", data.Timeline[0].Period)
}

func TestService_GetClinicalReport_FetchFailure(t *testing.T) {
	service, m := newTestService(t)

	dbErr := errors.New("conexão recusada")

	m.consultations.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dbErr)
	m.appointments.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	m.prescriptions.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	m.pets.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	report, err := service.GetClinicalReport(context.Background(), ReportRequest{ClinicID: "clinic-1"})

	assert.Nil(t, report)
	reportErr := requireReportError(t, err, apiErrors.ErrDatabaseOperation)
	assert.Equal(t, "clinic-1", reportErr.ClinicID)
	assert.ErrorIs(t, err, ErrFetchRecords)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, IsValidationError(err))
}

func TestService_GetClinicalReport_InvalidPeriod(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.GetClinicalReport(context.Background(), ReportRequest{
		ClinicID:  "clinic-1",
		StartDate: "2024-02-01",
		EndDate:   "2024-01-01",
	})

	requireReportError(t, err, apiErrors.ErrInvalidPeriod)
}

func TestService_GetGeneralReport_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  ReportRequest
		code string
	}{
		{
			name: "Clínica ausente",
			req:  ReportRequest{Type: "revenue", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			code: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "Tipo inválido",
			req:  ReportRequest{ClinicID: "clinic-1", Type: "xyz", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			code: apiErrors.ErrInvalidReportType,
		},
		{
			name: "Agrupamento inválido",
			req:  ReportRequest{ClinicID: "clinic-1", Type: "revenue", GroupBy: "quarter", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			code: apiErrors.ErrInvalidGroupBy,
		},
		{
			name: "Datas ausentes",
			req:  ReportRequest{ClinicID: "clinic-1", Type: "revenue"},
			code: apiErrors.ErrInvalidPeriod,
		},
		{
			name: "Início depois do fim",
			req:  ReportRequest{ClinicID: "clinic-1", Type: "revenue", StartDate: "2024-02-01", EndDate: "2024-01-01"},
			code: apiErrors.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService(t)

			report, err := service.GetGeneralReport(context.Background(), tt.req)

			assert.Nil(t, report)
			requireReportError(t, err, tt.code)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestService_GetGeneralReport_Revenue(t *testing.T) {
	service, m := newTestService(t)

	expectedPeriod := domain.ReportPeriod{Start: date(2024, 1, 1), End: date(2024, 1, 31), GroupBy: domain.GroupByDay}

	m.payments.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).Return([]domain.PaymentRecord{
		{ID: "1", Amount: decimal.NewFromInt(100), Method: "PIX", Status: domain.PaymentPaid, PaidAt: date(2024, 1, 10)},
		{ID: "2", Amount: decimal.NewFromInt(40), Method: "PIX", Status: domain.PaymentRefunded, PaidAt: date(2024, 1, 11)},
	}, nil)

	report, err := service.GetGeneralReport(context.Background(), ReportRequest{
		ClinicID:  "clinic-1",
		Type:      "revenue",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		GroupBy:   "day",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReportRevenue, report.Type)

	data, ok := report.Data.(RevenueData)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(100).Equal(data.TotalRevenue))
	require.Len(t, data.Timeline, 1)
	assert.Equal(t, "2024-01-10", data.Timeline[0].Period)
}

func TestService_GetGeneralReport_Veterinarians(t *testing.T) {
	service, m := newTestService(t)

	m.veterinarians.EXPECT().ListByClinic(gomock.Any(), "clinic-1").
		Return([]domain.VeterinarianRecord{{ID: "v1", Name: "Ana", Active: true}}, nil)
	m.appointments.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", gomock.Any()).
		Return([]domain.AppointmentRecord{{ID: "a1", VeterinarianID: "v1", Status: domain.AppointmentCompleted}}, nil)
	m.consultations.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", gomock.Any()).
		Return([]domain.ConsultationRecord{}, nil)

	report, err := service.GetGeneralReport(context.Background(), ReportRequest{
		ClinicID:  "clinic-1",
		Type:      "veterinarians",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})

	require.NoError(t, err)

	data, ok := report.Data.(VeterinariansData)
	require.True(t, ok)
	require.Len(t, data.Performance, 1)
	assert.Equal(t, 1, data.Performance[0].Appointments)
	assert.Equal(t, 100, data.Performance[0].CompletionRate)
}

func TestService_GetMonthlySnapshot(t *testing.T) {
	t.Run("Período inválido", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.GetMonthlySnapshot(context.Background(), "clinic-1", "2024-01")

		requireReportError(t, err, apiErrors.ErrInvalidPeriod)
	})

	t.Run("Snapshot inexistente", func(t *testing.T) {
		service, m := newTestService(t)
		m.snapshots.EXPECT().GetByClinicAndPeriod(gomock.Any(), "clinic-1", "01-2024").Return(nil, nil)

		_, err := service.GetMonthlySnapshot(context.Background(), "clinic-1", "01-2024")

		requireReportError(t, err, apiErrors.ErrSnapshotNotFound)
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("Erro de banco", func(t *testing.T) {
		service, m := newTestService(t)
		m.snapshots.EXPECT().GetByClinicAndPeriod(gomock.Any(), "clinic-1", "01-2024").Return(nil, errors.New("timeout"))

		_, err := service.GetMonthlySnapshot(context.Background(), "clinic-1", "01-2024")

		requireReportError(t, err, apiErrors.ErrDatabaseOperation)
	})

	t.Run("Snapshot encontrado", func(t *testing.T) {
		service, m := newTestService(t)
		expected := &domain.MonthlySnapshot{ID: "s1", ClinicID: "clinic-1", Period: "01-2024"}
		m.snapshots.EXPECT().GetByClinicAndPeriod(gomock.Any(), "clinic-1", "01-2024").Return(expected, nil)

		snapshot, err := service.GetMonthlySnapshot(context.Background(), "clinic-1", "01-2024")

		require.NoError(t, err)
		assert.Equal(t, expected, snapshot)
	})
}

func TestService_GetAvailablePeriods(t *testing.T) {
	service, m := newTestService(t)
	m.snapshots.EXPECT().GetAllPeriods(gomock.Any(), "clinic-1").
		Return([]string{"02-2024", "01-2024", "12-2023"}, nil)

	available, err := service.GetAvailablePeriods(context.Background(), "clinic-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"02-2024", "01-2024", "12-2023"}, available.Periods)
	assert.Equal(t, []string{"2023", "2024"}, available.Years)
	assert.Equal(t, []string{"01", "02", "12"}, available.Months)
}

func TestService_GetAvailablePeriodsEmpty(t *testing.T) {
	service, m := newTestService(t)
	m.snapshots.EXPECT().GetAllPeriods(gomock.Any(), "clinic-1").Return([]string{}, nil)

	available, err := service.GetAvailablePeriods(context.Background(), "clinic-1")

	require.NoError(t, err)
	assert.Empty(t, available.Years)
	assert.NotNil(t, available.Months)
}

func TestService_BuildMonthlySnapshot(t *testing.T) {
	service, m := newTestService(t)

	expectedPeriod := domain.ReportPeriod{Start: date(2024, 2, 1), End: date(2024, 3, 31), GroupBy: domain.GroupByMonth}

	m.consultations.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).
		Return([]domain.ConsultationRecord{{ID: "c1", CreatedAt: date(2024, 3, 5)}}, nil)
	m.appointments.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).
		Return([]domain.AppointmentRecord{{ID: "a1", Date: date(2024, 2, 7)}}, nil)
	m.prescriptions.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).Return(nil, nil)
	m.pets.EXPECT().ListByPeriod(gomock.Any(), "clinic-1", expectedPeriod).Return(nil, nil)

	m.snapshots.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *domain.MonthlySnapshot) error {
			assert.Equal(t, "03-2024", snapshot.Period)
			assert.Equal(t, "clinic-1", snapshot.ClinicID)
			assert.Len(t, snapshot.ID, 12)
			return nil
		})

	snapshot, err := service.BuildMonthlySnapshot(context.Background(), "clinic-1", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), 1)

	require.NoError(t, err)
	require.NotNil(t, snapshot.Summary)
	assert.Equal(t, 1, snapshot.Summary.TotalConsultations)
	assert.Equal(t, 1, snapshot.Summary.TotalAppointments)
	assert.Equal(t, []domain.MonthlyRow{
		{Month: "2024-02", Appointments: 1},
		{Month: "2024-03", Consultations: 1},
	}, snapshot.Months)
}

func TestService_BuildMonthlySnapshot_SaveFailure(t *testing.T) {
	service, m := newTestService(t)

	m.consultations.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.appointments.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.prescriptions.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.pets.EXPECT().ListByPeriod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.snapshots.EXPECT().SaveOrUpdate(gomock.Any(), gomock.Any()).Return(errors.New("disco cheio"))

	_, err := service.BuildMonthlySnapshot(context.Background(), "clinic-1", date(2024, 3, 1), 0)

	requireReportError(t, err, apiErrors.ErrDatabaseOperation)
	assert.ErrorIs(t, err, ErrSaveSnapshot)
}
