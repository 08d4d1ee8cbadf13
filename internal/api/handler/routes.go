package handler

import (
	"net/http"

	"github.com/vfg2006/vetclinic-report-api/internal/api/handler/router"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/reporting"
	"github.com/vfg2006/vetclinic-report-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Reports retorna as rotas de relatórios, sempre limitadas à clínica do usuário
func Reports(service reporting.Reporter, limiter *middleware.RateLimiter) []router.Route {
	scoped := []func(http.Handler) http.Handler{
		middleware.ReportReaders(),
		middleware.ClinicScope(),
	}
	if limiter != nil {
		scoped = append(scoped, limiter.Middleware())
	}

	return []router.Route{
		{
			Path:        "/v1/clinics/:clinicId/reports/clinical",
			Method:      http.MethodGet,
			Handler:     GetClinicalReport(service),
			Middlewares: scoped,
		},
		{
			Path:        "/v1/clinics/:clinicId/reports/general",
			Method:      http.MethodGet,
			Handler:     GetGeneralReport(service),
			Middlewares: scoped,
		},
		{
			Path:        "/v1/clinics/:clinicId/reports/snapshots",
			Method:      http.MethodGet,
			Handler:     GetMonthlySnapshot(service),
			Middlewares: scoped,
		},
		{
			Path:        "/v1/clinics/:clinicId/reports/periods",
			Method:      http.MethodGet,
			Handler:     GetAvailablePeriods(service),
			Middlewares: scoped,
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
