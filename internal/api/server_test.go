package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vetclinic-report-api/internal/config"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/reporting"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/middleware"
)

type tokenAuthenticator map[string]*domain.Claims

func (a tokenAuthenticator) LoginUser(context.Context, string, string) (string, error) {
	return "", nil
}

func (a tokenAuthenticator) GetUserProfile(context.Context, int) (*domain.User, error) {
	return &domain.User{ID: 1}, nil
}

func (a tokenAuthenticator) ValidateToken(token string) (*domain.Claims, error) {
	claims, ok := a[token]
	if !ok {
		return nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}
	return claims, nil
}

type summaryReporter struct{}

func (summaryReporter) GetClinicalReport(_ context.Context, req reporting.ReportRequest) (*domain.Report, error) {
	return &domain.Report{Type: domain.ReportSummary, Data: map[string]string{"clinicId": req.ClinicID}}, nil
}

func (summaryReporter) GetGeneralReport(context.Context, reporting.ReportRequest) (*domain.Report, error) {
	return nil, errors.New("não usado")
}

func (summaryReporter) GetMonthlySnapshot(context.Context, string, string) (*domain.MonthlySnapshot, error) {
	return nil, errors.New("não usado")
}

func (summaryReporter) GetAvailablePeriods(context.Context, string) (*domain.AvailablePeriods, error) {
	return &domain.AvailablePeriods{}, nil
}

func (summaryReporter) BuildMonthlySnapshot(context.Context, string, time.Time, int) (*domain.MonthlySnapshot, error) {
	return nil, nil
}

func newTestHandler() http.Handler {
	cfg := &config.Config{Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}}}

	return NewHandler(cfg, Dependencies{
		Reporter: summaryReporter{},
		Authenticator: tokenAuthenticator{
			"vet-token":   {UserID: 3, UserRoleID: middleware.RoleVeterinarian, ClinicID: "clinic-1"},
			"admin-token": {UserID: 1, UserRoleID: middleware.RoleAdmin, ClinicID: "clinic-0"},
		},
		RateLimiter: middleware.NewRateLimiter(0, 0),
	})
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
	}{
		{name: "Healthcheck é público", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Relatório sem token", method: http.MethodGet, path: "/v1/clinics/clinic-1/reports/clinical", wantStatus: http.StatusUnauthorized},
		{name: "Token desconhecido", method: http.MethodGet, path: "/v1/clinics/clinic-1/reports/clinical", token: "x", wantStatus: http.StatusUnauthorized},
		{name: "Própria clínica", method: http.MethodGet, path: "/v1/clinics/clinic-1/reports/clinical", token: "vet-token", wantStatus: http.StatusOK},
		{name: "Outra clínica", method: http.MethodGet, path: "/v1/clinics/clinic-2/reports/clinical", token: "vet-token", wantStatus: http.StatusForbidden},
		{name: "Administrador em qualquer clínica", method: http.MethodGet, path: "/v1/clinics/clinic-2/reports/periods", token: "admin-token", wantStatus: http.StatusOK},
		{name: "Cron exige administrador", method: http.MethodGet, path: "/v1/cron/status", token: "vet-token", wantStatus: http.StatusForbidden},
		{name: "Preflight CORS", method: http.MethodOptions, path: "/v1/clinics/clinic-1/reports/clinical", wantStatus: http.StatusNoContent},
		{name: "Rota inexistente", method: http.MethodGet, path: "/v1/nada", token: "vet-token", wantStatus: http.StatusNotFound},
	}

	handler := newTestHandler()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestNewRequiresServices(t *testing.T) {
	_, err := New(&config.Config{}, Dependencies{})
	require.Error(t, err)

	srv, err := New(&config.Config{Server: config.Server{Host: "localhost", Port: "8000"}}, Dependencies{
		Reporter:      summaryReporter{},
		Authenticator: tokenAuthenticator{},
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:8000", srv.httpServer.Addr)
}
