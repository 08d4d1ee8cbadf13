package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/vetclinic-report-api/infrastructure/repository"
	"github.com/vfg2006/vetclinic-report-api/internal/config"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
	"github.com/vfg2006/vetclinic-report-api/pkg/utils"
)

// SnapshotBuilder consolida e grava o snapshot de um mês para uma clínica
type SnapshotBuilder interface {
	BuildMonthlySnapshot(ctx context.Context, clinicID string, month time.Time, lookback int) (*domain.MonthlySnapshot, error)
}

// MonthlySnapshotSyncConfig representa a configuração do agendador de snapshots mensais
type MonthlySnapshotSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	SyncEnabled         bool
	MonthLookBack       int
	SeriesMonths        int
	RetentionMonths     int
}

// MonthlySnapshotSyncService agenda a consolidação mensal dos relatórios de todas as clínicas ativas
type MonthlySnapshotSyncService struct {
	scheduler           *gocron.Scheduler
	config              MonthlySnapshotSyncConfig
	location            *time.Location
	clinicRepo          repository.ClinicRepository
	snapshotRepo        repository.ReportSnapshotRepository
	builder             SnapshotBuilder
	baseCtx             context.Context
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncFailures    int
	lastSyncSaved       int
}

func NewMonthlySnapshotSyncService(
	clinicRepo repository.ClinicRepository,
	snapshotRepo repository.ReportSnapshotRepository,
	builder SnapshotBuilder,
	appConfig *config.Config,
) *MonthlySnapshotSyncService {
	syncConfig := MonthlySnapshotSyncConfig{
		CronSchedule:        appConfig.MonthlySnapshotSync.CronSchedule,
		RequestDelaySeconds: appConfig.MonthlySnapshotSync.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.MonthlySnapshotSync.MaxConcurrentJobs,
		SyncEnabled:         appConfig.MonthlySnapshotSync.Enabled,
		MonthLookBack:       appConfig.MonthlySnapshotSync.MonthLookBack,
		SeriesMonths:        appConfig.MonthlySnapshotSync.SeriesMonths,
		RetentionMonths:     appConfig.MonthlySnapshotSync.RetentionMonths,
	}

	location := appConfig.Report.Location
	if location == nil {
		location = time.UTC
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   syncConfig.MaxConcurrentJobs,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("snapshot-sync: configuração carregada")

	return &MonthlySnapshotSyncService{
		scheduler:    gocron.NewScheduler(location),
		config:       syncConfig,
		location:     location,
		clinicRepo:   clinicRepo,
		snapshotRepo: snapshotRepo,
		builder:      builder,
		baseCtx:      context.Background(),
		now:          time.Now,
	}
}

// Start agenda a sincronização. Com a sincronização desabilitada o agendador não sobe,
// mas o disparo manual passa a usar ctx.
func (s *MonthlySnapshotSyncService) Start(ctx context.Context) error {
	s.syncMutex.Lock()
	s.baseCtx = ctx
	s.syncMutex.Unlock()

	if !s.config.SyncEnabled {
		log.L.Info("snapshot-sync: sincronização desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("snapshot-sync: iniciando agendador")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlySnapshots(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de snapshots mensais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("snapshot-sync: parando agendador")
		s.scheduler.Stop()
	}()

	return nil
}

// syncMonthlySnapshots recalcula os últimos MonthLookBack meses de cada clínica ativa
func (s *MonthlySnapshotSyncService) syncMonthlySnapshots(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Info("snapshot-sync: sincronização já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := s.now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	var saved, failures int
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncSaved = saved
		s.lastSyncFailures = failures
		s.syncMutex.Unlock()
	}()

	logger := log.ForContext(ctx).WithField("job", "monthly-snapshot")

	clinics, err := s.clinicRepo.ListActiveClinics(ctx)
	if err != nil {
		logger.WithError(err).Error("snapshot-sync: erro ao buscar clínicas ativas")
		failures++
		return
	}

	if len(clinics) == 0 {
		logger.Info("snapshot-sync: nenhuma clínica ativa encontrada")
		return
	}

	lookback := max(s.config.MonthLookBack, 1)
	current := utils.FirstDayOfMonth(s.now().In(s.location))

	for i := 1; i <= lookback; i++ {
		month := current.AddDate(0, -i, 0)

		logger.WithFields(log.Fields{
			"period":  utils.MonthPeriod(month),
			"clinics": len(clinics),
		}).Info("snapshot-sync: consolidando período")

		ok, failed := s.processClinics(ctx, clinics, month)
		saved += ok
		failures += failed
	}

	s.cleanupOldSnapshots(ctx)

	logger.WithFields(log.Fields{
		"duration": time.Since(startTime).String(),
		"saved":    saved,
		"failures": failures,
	}).Info("snapshot-sync: sincronização concluída")

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.syncMutex.Unlock()
}

// processClinics consolida o mês para as clínicas com no máximo MaxConcurrentJobs em paralelo.
// A falha de uma clínica não interrompe as demais.
func (s *MonthlySnapshotSyncService) processClinics(ctx context.Context, clinics []domain.Clinic, month time.Time) (int, int) {
	semaphore := make(chan struct{}, max(s.config.MaxConcurrentJobs, 1))
	delay := time.Duration(s.config.RequestDelaySeconds) * time.Second

	var (
		wg       sync.WaitGroup
		saved    atomic.Int32
		failures atomic.Int32
	)

	for _, clinic := range clinics {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(clinic domain.Clinic) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			logger := log.ForContext(ctx).WithFields(log.Fields{
				"clinic_id": clinic.ID,
				"period":    utils.MonthPeriod(month),
			})

			snapshot, err := s.builder.BuildMonthlySnapshot(ctx, clinic.ID, month, s.config.SeriesMonths)
			if err != nil {
				failures.Add(1)
				logger.WithError(err).Error("snapshot-sync: erro ao consolidar snapshot da clínica")
			} else {
				saved.Add(1)
				logger.WithField("snapshot_id", snapshot.ID).Info("snapshot-sync: snapshot gravado")
			}

			if delay > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(delay):
				}
			}
		}(clinic)
	}

	wg.Wait()

	return int(saved.Load()), int(failures.Load())
}

func (s *MonthlySnapshotSyncService) cleanupOldSnapshots(ctx context.Context) {
	if s.config.RetentionMonths <= 0 {
		return
	}

	deleted, err := s.snapshotRepo.DeleteOlderThan(ctx, s.config.RetentionMonths)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("snapshot-sync: erro ao remover snapshots antigos")
		return
	}

	if deleted > 0 {
		log.ForContext(ctx).WithField("deleted", deleted).Info("snapshot-sync: snapshots antigos removidos")
	}
}

// TriggerManualSync inicia a sincronização fora do agendamento. Retorna false quando
// já existe uma execução em andamento.
func (s *MonthlySnapshotSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	ctx := s.baseCtx
	s.syncMutex.Unlock()

	if running {
		log.L.Info("snapshot-sync: sincronização já em andamento, ignorando solicitação manual")
		return false
	}

	log.L.Info("snapshot-sync: iniciando sincronização manual")
	go s.syncMonthlySnapshots(ctx)
	return true
}

// GetStatus retorna o status atual da sincronização
func (s *MonthlySnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_saved":        s.lastSyncSaved,
		"last_sync_failures":     s.lastSyncFailures,
	}
}
