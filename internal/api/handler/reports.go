package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/reporting"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
	"github.com/vfg2006/vetclinic-report-api/pkg/middleware"
)

func reportRequest(r *http.Request) reporting.ReportRequest {
	query := r.URL.Query()

	return reporting.ReportRequest{
		ClinicID:  httprouter.ParamsFromContext(r.Context()).ByName(middleware.ClinicParam),
		Type:      query.Get("type"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		GroupBy:   query.Get("groupBy"),
	}
}

// GetClinicalReport monta o relatório clínico da clínica da rota
func GetClinicalReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		req := reportRequest(r)

		logger.WithFields(log.Fields{
			"clinic_id": req.ClinicID,
			"type":      req.Type,
			"group_by":  req.GroupBy,
		}).Info("reports: gerando relatório clínico")

		report, err := service.GetClinicalReport(r.Context(), req)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, report); err != nil {
			logger.WithError(err).Error("reports: erro ao codificar resposta")
		}
	})
}

// GetGeneralReport monta o relatório geral; datas e tipo são obrigatórios
func GetGeneralReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		req := reportRequest(r)

		logger.WithFields(log.Fields{
			"clinic_id": req.ClinicID,
			"type":      req.Type,
			"group_by":  req.GroupBy,
		}).Info("reports: gerando relatório geral")

		report, err := service.GetGeneralReport(r.Context(), req)
		if err != nil {
			writeReportError(w, r, err)
			return
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, report); err != nil {
			logger.WithError(err).Error("reports: erro ao codificar resposta")
		}
	})
}

// writeReportError traduz erros do serviço de relatórios para a resposta padronizada.
// Erros de banco não expõem detalhes ao cliente.
func writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var reportErr *reporting.ReportError
	if !errors.As(err, &reportErr) {
		logger.Error("reports: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao gerar relatório", nil)
		return
	}

	if reporting.IsValidationError(err) || errors.Is(err, reporting.ErrSnapshotNotFound) {
		logger.Warn("reports: requisição rejeitada")
		apiErrors.WriteError(w, reportErr.Code, reportErr.Err.Error(), nonEmpty(reportErr.Details))
		return
	}

	logger.WithField("clinic_id", reportErr.ClinicID).Error("reports: erro ao gerar relatório")
	apiErrors.WriteError(w, reportErr.Code, reporting.ErrFetchRecords.Error(), nil)
}

func nonEmpty(details string) any {
	if details == "" {
		return nil
	}
	return details
}
