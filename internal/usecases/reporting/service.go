package reporting

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vfg2006/vetclinic-report-api/infrastructure/repository"
	"github.com/vfg2006/vetclinic-report-api/internal/config"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type Reporter interface {
	// GetClinicalReport monta o relatório clínico; tipo e agrupamento inválidos caem nos padrões
	GetClinicalReport(ctx context.Context, req ReportRequest) (*domain.Report, error)

	// GetGeneralReport monta o relatório geral; tipo, agrupamento e datas são obrigatórios
	GetGeneralReport(ctx context.Context, req ReportRequest) (*domain.Report, error)

	// GetMonthlySnapshot retorna o snapshot gravado de um período mm-yyyy
	GetMonthlySnapshot(ctx context.Context, clinicID, period string) (*domain.MonthlySnapshot, error)

	// GetAvailablePeriods lista os períodos com snapshot gravado
	GetAvailablePeriods(ctx context.Context, clinicID string) (*domain.AvailablePeriods, error)

	// BuildMonthlySnapshot consolida o mês de referência e os lookback meses anteriores
	BuildMonthlySnapshot(ctx context.Context, clinicID string, month time.Time, lookback int) (*domain.MonthlySnapshot, error)
}

// Repositories agrupa as fontes de dados usadas pelos relatórios
type Repositories struct {
	Appointments  repository.AppointmentRepository
	Consultations repository.ConsultationRepository
	Prescriptions repository.PrescriptionRepository
	Pets          repository.PetRepository
	Guardians     repository.GuardianRepository
	Inventory     repository.InventoryRepository
	Payments      repository.PaymentRepository
	Veterinarians repository.VeterinarianRepository
	Snapshots     repository.ReportSnapshotRepository
}

type Service struct {
	repos        Repositories
	aggregator   *Aggregator
	location     *time.Location
	queryTimeout time.Duration
	now          func() time.Time
}

func NewService(cfg *config.Config, repos Repositories) Reporter {
	location := cfg.Report.Location
	if location == nil {
		location = time.UTC
	}

	return &Service{
		repos:        repos,
		aggregator:   NewAggregator(location),
		location:     location,
		queryTimeout: cfg.Report.QueryTimeout(),
		now:          time.Now,
	}
}

func (s *Service) GetClinicalReport(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	logger := log.ForContext(ctx)

	if req.ClinicID == "" {
		return nil, NewReportError(ErrMissingClinic, apiErrors.ErrMissingRequiredData, "clinicId é obrigatório")
	}

	reportType, fellBack := ResolveClinicalType(req.Type)
	if fellBack {
		logger.WithFields(log.Fields{
			"clinic_id": req.ClinicID,
			"type":      req.Type,
		}).Warn("reports: tipo de relatório clínico desconhecido, usando summary")
	}

	groupBy, _ := ResolveGroupBy(req.GroupBy, false)

	period, err := ResolvePeriod(req.StartDate, req.EndDate, groupBy, false, s.now(), s.location)
	if err != nil {
		return nil, err
	}

	return s.buildReport(ctx, req.ClinicID, reportType, period)
}

func (s *Service) GetGeneralReport(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	if req.ClinicID == "" {
		return nil, NewReportError(ErrMissingClinic, apiErrors.ErrMissingRequiredData, "clinicId é obrigatório")
	}

	reportType, err := ParseGeneralType(req.Type)
	if err != nil {
		return nil, err
	}

	groupBy, err := ResolveGroupBy(req.GroupBy, true)
	if err != nil {
		return nil, err
	}

	period, err := ResolvePeriod(req.StartDate, req.EndDate, groupBy, true, s.now(), s.location)
	if err != nil {
		return nil, err
	}

	return s.buildReport(ctx, req.ClinicID, reportType, period)
}

func (s *Service) buildReport(ctx context.Context, clinicID string, reportType domain.ReportType, period domain.ReportPeriod) (*domain.Report, error) {
	logger := log.ForContext(ctx)
	startedAt := time.Now()

	records, err := s.fetchRecords(ctx, clinicID, requiredCollections[reportType], period)
	if err != nil {
		logger.WithError(err).WithFields(log.Fields{
			"clinic_id": clinicID,
			"type":      reportType,
		}).Error("reports: erro ao buscar registros do relatório")

		return nil, NewClinicReportError(fmt.Errorf("%w: %w", ErrFetchRecords, err), apiErrors.ErrDatabaseOperation, clinicID, "")
	}

	report := &domain.Report{
		Type:   reportType,
		Period: periodInfo(period),
		Data:   s.aggregator.build(reportType, records, period),
	}

	logger.WithFields(log.Fields{
		"clinic_id":   clinicID,
		"type":        reportType,
		"group_by":    period.GroupBy,
		"duration_ms": time.Since(startedAt).Milliseconds(),
	}).Info("reports: relatório gerado com sucesso")

	return report, nil
}

// fetchRecords busca em paralelo as coleções pedidas. Cada goroutine escreve somente
// no seu próprio campo; a primeira falha cancela as demais.
func (s *Service) fetchRecords(ctx context.Context, clinicID string, needs collection, period domain.ReportPeriod) (Records, error) {
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	var records Records
	group, groupCtx := errgroup.WithContext(ctx)

	if needs.has(collectionConsultations) {
		group.Go(func() (err error) {
			records.Consultations, err = s.repos.Consultations.ListByPeriod(groupCtx, clinicID, period)
			return err
		})
	}

	if needs.has(collectionAppointments) {
		group.Go(func() (err error) {
			records.Appointments, err = s.repos.Appointments.ListByPeriod(groupCtx, clinicID, period)
			return err
		})
	}

	if needs.has(collectionPrescriptions) {
		group.Go(func() (err error) {
			records.Prescriptions, err = s.repos.Prescriptions.ListByPeriod(groupCtx, clinicID, period)
			return err
		})
	}

	if needs.has(collectionPets) {
		group.Go(func() (err error) {
			records.Pets, err = s.repos.Pets.ListByPeriod(groupCtx, clinicID, period)
			return err
		})
	}

	if needs.has(collectionGuardians) {
		group.Go(func() (err error) {
			records.Guardians, err = s.repos.Guardians.ListByClinic(groupCtx, clinicID)
			return err
		})
	}

	if needs.has(collectionInventory) {
		group.Go(func() (err error) {
			records.Inventory, err = s.repos.Inventory.ListByClinic(groupCtx, clinicID)
			return err
		})
	}

	if needs.has(collectionPayments) {
		group.Go(func() (err error) {
			records.Payments, err = s.repos.Payments.ListByPeriod(groupCtx, clinicID, period)
			return err
		})
	}

	if needs.has(collectionVeterinarians) {
		group.Go(func() (err error) {
			records.Veterinarians, err = s.repos.Veterinarians.ListByClinic(groupCtx, clinicID)
			return err
		})
	}

	if err := group.Wait(); err != nil {
		return Records{}, err
	}

	return records, nil
}

func (s *Service) GetMonthlySnapshot(ctx context.Context, clinicID, period string) (*domain.MonthlySnapshot, error) {
	if _, err := utils.ParseMonthPeriod(period); err != nil {
		return nil, NewReportError(ErrInvalidPeriod, apiErrors.ErrInvalidPeriod,
			fmt.Sprintf("período %q inválido, use mm-yyyy", period))
	}

	snapshot, err := s.repos.Snapshots.GetByClinicAndPeriod(ctx, clinicID, period)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithFields(log.Fields{
			"clinic_id": clinicID,
			"period":    period,
		}).Error("snapshots: erro ao buscar snapshot mensal")
		return nil, NewClinicReportError(ErrFetchRecords, apiErrors.ErrDatabaseOperation, clinicID, err.Error())
	}

	if snapshot == nil {
		return nil, NewClinicReportError(ErrSnapshotNotFound, apiErrors.ErrSnapshotNotFound, clinicID, period)
	}

	return snapshot, nil
}

// GetAvailablePeriods retorna os períodos mm-yyyy e os anos e meses distintos que eles cobrem
func (s *Service) GetAvailablePeriods(ctx context.Context, clinicID string) (*domain.AvailablePeriods, error) {
	periods, err := s.repos.Snapshots.GetAllPeriods(ctx, clinicID)
	if err != nil {
		return nil, NewClinicReportError(ErrFetchRecords, apiErrors.ErrDatabaseOperation, clinicID, err.Error())
	}

	available := &domain.AvailablePeriods{
		Periods: periods,
		Years:   make([]string, 0),
		Months:  make([]string, 0),
	}

	for _, period := range periods {
		month, year, found := strings.Cut(period, "-")
		if !found {
			continue
		}
		if !slices.Contains(available.Years, year) {
			available.Years = append(available.Years, year)
		}
		if !slices.Contains(available.Months, month) {
			available.Months = append(available.Months, month)
		}
	}

	slices.Sort(available.Years)
	slices.Sort(available.Months)

	return available, nil
}

// BuildMonthlySnapshot calcula resumo e série mensal do primeiro dia do mês mais antigo
// até o último dia do mês de referência e grava o resultado
func (s *Service) BuildMonthlySnapshot(ctx context.Context, clinicID string, month time.Time, lookback int) (*domain.MonthlySnapshot, error) {
	if lookback < 0 {
		lookback = 0
	}

	local := month.In(s.location)
	last := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, s.location)
	period := domain.ReportPeriod{
		Start:   last.AddDate(0, -lookback, 0),
		End:     last.AddDate(0, 1, -1),
		GroupBy: domain.GroupByMonth,
	}

	records, err := s.fetchRecords(ctx, clinicID, requiredCollections[domain.ReportSummary], period)
	if err != nil {
		return nil, NewClinicReportError(fmt.Errorf("%w: %w", ErrFetchRecords, err), apiErrors.ErrDatabaseOperation, clinicID, "")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do snapshot: %w", err)
	}

	summary := s.aggregator.Summary(records, period)
	snapshot := &domain.MonthlySnapshot{
		ID:       id,
		ClinicID: clinicID,
		Period:   utils.MonthPeriod(last),
		Summary:  &summary.Summary,
		Months:   summary.MonthlyAnalysis,
	}

	if err := s.repos.Snapshots.SaveOrUpdate(ctx, snapshot); err != nil {
		return nil, NewClinicReportError(fmt.Errorf("%w: %w", ErrSaveSnapshot, err), apiErrors.ErrDatabaseOperation, clinicID, "")
	}

	return snapshot, nil
}
