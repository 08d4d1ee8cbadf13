package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/vetclinic-report-api/internal/domain"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) LoginUser(context.Context, string, string) (string, error) {
	return "", nil
}

func (s stubAuthenticator) GetUserProfile(context.Context, int) (*domain.User, error) {
	return nil, nil
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Code
}

func TestAuthMiddleware(t *testing.T) {
	claims := &domain.Claims{UserID: 1, ClinicID: "clinic-1"}

	tests := []struct {
		name       string
		path       string
		header     string
		auth       stubAuthenticator
		wantStatus int
		wantCode   string
	}{
		{name: "Rota pública", path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "Sem cabeçalho", path: "/v1/me", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrMissingToken},
		{name: "Sem Bearer", path: "/v1/me", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantCode: apiErrors.ErrMissingToken},
		{
			name:       "Token expirado",
			path:       "/v1/me",
			header:     "Bearer abc",
			auth:       stubAuthenticator{err: authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "")},
			wantStatus: http.StatusUnauthorized,
			wantCode:   apiErrors.ErrExpiredToken,
		},
		{name: "Token válido", path: "/v1/me", header: "Bearer abc", auth: stubAuthenticator{claims: claims}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *domain.Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims, _ = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeCode(t, rec))
			}
			if tt.auth.claims != nil {
				assert.Equal(t, tt.auth.claims, gotClaims)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	t.Run("Sem claims", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminOnly()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Perfil não permitido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithClaims(req.Context(), &domain.Claims{UserRoleID: RoleVeterinarian}))
		rec := httptest.NewRecorder()

		AdminOnly()(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeCode(t, rec))
	})

	t.Run("Perfil permitido", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithClaims(req.Context(), &domain.Claims{UserRoleID: RoleVeterinarian}))
		rec := httptest.NewRecorder()

		ReportReaders()(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestClinicScope(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		clinicID   string
		wantStatus int
	}{
		{name: "Mesma clínica", claims: &domain.Claims{UserRoleID: RoleManager, ClinicID: "clinic-1"}, clinicID: "clinic-1", wantStatus: http.StatusOK},
		{name: "Outra clínica", claims: &domain.Claims{UserRoleID: RoleManager, ClinicID: "clinic-1"}, clinicID: "clinic-2", wantStatus: http.StatusForbidden},
		{name: "Administrador acessa qualquer clínica", claims: &domain.Claims{UserRoleID: RoleAdmin}, clinicID: "clinic-2", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			router.Handler(http.MethodGet, "/v1/clinics/:clinicId/reports", ClinicScope()(okHandler()))

			req := httptest.NewRequest(http.MethodGet, "/v1/clinics/"+tt.clinicID+"/reports", nil)
			req = req.WithContext(WithClaims(req.Context(), tt.claims))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Equal(t, apiErrors.ErrClinicScope, decodeCode(t, rec))
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	handler := limiter.Middleware()(okHandler())

	request := func(userID int) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithClaims(req.Context(), &domain.Claims{UserID: userID}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request(1))
	assert.Equal(t, http.StatusOK, request(1))
	assert.Equal(t, http.StatusTooManyRequests, request(1))

	// Buckets são independentes por usuário
	assert.Equal(t, http.StatusOK, request(2))
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, 0)

	for i := 0; i < 100; i++ {
		require.True(t, limiter.Allow("ip:127.0.0.1"))
	}
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	require.True(t, limiter.Allow("user:1"))
	require.True(t, limiter.Allow("user:2"))
	assert.Equal(t, 2, limiter.Size())

	now = now.Add(limiterIdleTTL / 2)
	require.False(t, limiter.Allow("user:1"))

	now = now.Add(limiterIdleTTL / 2)
	limiter.Allow("user:3")

	// user:2 ficou ocioso pelo TTL inteiro; user:1 foi visto na metade
	assert.Equal(t, 2, limiter.Size())

	now = now.Add(limiterIdleTTL)
	limiter.Allow("user:4")
	assert.Equal(t, 1, limiter.Size())
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://app.clinica.com"})(okHandler())

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.clinica.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://app.clinica.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://outra.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestLoggingMiddleware_SetsCorrelationHeader(t *testing.T) {
	rec := httptest.NewRecorder()

	LoggingMiddleware()(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.NotEmpty(t, rec.Header().Get(CorrelationHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	rec := httptest.NewRecorder()

	LogPanicMiddleware()(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apiErrors.ErrInternalServer, decodeCode(t, rec))
}
