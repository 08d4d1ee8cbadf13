package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
)

// Pinger verifica a disponibilidade de uma dependência
type Pinger interface {
	Ping(ctx context.Context) error
}

const healthcheckTimeout = 2 * time.Second

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: banco de dados indisponível")
				apiErrors.WriteError(w, apiErrors.ErrServiceDisabled, "Banco de dados indisponível", nil)
				return
			}
			status["database"] = "ok"
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, status); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("healthcheck: erro ao responder")
		}
	})
}
