package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/reporting"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
	"github.com/vfg2006/vetclinic-report-api/pkg/middleware"
)

// GetMonthlySnapshot retorna o snapshot consolidado de um mês (?month=MM&year=YYYY)
func GetMonthlySnapshot(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		clinicID := httprouter.ParamsFromContext(r.Context()).ByName(middleware.ClinicParam)

		month := r.URL.Query().Get("month")
		year := r.URL.Query().Get("year")

		if month == "" || year == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar mês e ano nos parâmetros", nil)
			return
		}

		if len(month) != 2 || month < "01" || month > "12" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Mês inválido. Use formato de dois dígitos (01-12)", nil)
			return
		}

		if len(year) != 4 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, "Ano inválido. Use formato de quatro dígitos (ex: 2025)", nil)
			return
		}

		period := fmt.Sprintf("%s-%s", month, year)

		logger.WithFields(log.Fields{
			"clinic_id": clinicID,
			"period":    period,
		}).Info("snapshots: buscando snapshot mensal")

		snapshot, err := service.GetMonthlySnapshot(r.Context(), clinicID, period)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, snapshot); err != nil {
			logger.WithError(err).Error("snapshots: erro ao codificar resposta")
		}
	})
}

// GetAvailablePeriods retorna os períodos com snapshot gravado para a clínica
func GetAvailablePeriods(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		clinicID := httprouter.ParamsFromContext(r.Context()).ByName(middleware.ClinicParam)

		availablePeriods, err := service.GetAvailablePeriods(r.Context(), clinicID)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		logger.WithFields(log.Fields{
			"clinic_id":     clinicID,
			"total_periods": len(availablePeriods.Periods),
		}).Info("snapshots: períodos disponíveis recuperados")

		if err := apiErrors.WriteJSON(w, http.StatusOK, availablePeriods); err != nil {
			logger.WithError(err).Error("snapshots: erro ao codificar resposta")
		}
	})
}
