package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
)

const (
	CronJobTypeMonthlySnapshot = "monthly-snapshot"
	CronJobTypeAll             = "all"
)

// SyncJob é uma rotina agendada que também pode ser disparada manualmente
type SyncJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	MonthlySnapshotSyncService SyncJob
}

func (s CronJobServices) jobs() map[string]SyncJob {
	jobs := make(map[string]SyncJob)
	if s.MonthlySnapshotSyncService != nil {
		jobs[CronJobTypeMonthlySnapshot] = s.MonthlySnapshotSyncService
	}
	return jobs
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		jobs := services.jobs()
		started := make(map[string]bool)

		if cronType == CronJobTypeAll {
			for name, job := range jobs {
				started[name] = job.TriggerManualSync()
			}
		} else {
			job, ok := jobs[cronType]
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: monthly-snapshot, all", nil)
				return
			}
			started[cronType] = job.TriggerManualSync()
		}

		logger.WithFields(log.Fields{
			"job":     cronType,
			"started": started,
		}).Info("cron: execução manual solicitada")

		if err := apiErrors.WriteJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"started": started,
		}); err != nil {
			logger.WithError(err).Error("cron: erro ao codificar resposta")
		}
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any)
		for name, job := range services.jobs() {
			status[name] = job.GetStatus()
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, status); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("cron: erro ao codificar resposta")
		}
	})
}
