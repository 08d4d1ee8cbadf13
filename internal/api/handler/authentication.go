package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/vetclinic-report-api/internal/usecases/authenticating"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
	"github.com/vfg2006/vetclinic-report-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func Login(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, LoginResponse{Token: token}); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("auth: erro ao codificar resposta")
		}
	})
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		if err := apiErrors.WriteJSON(w, http.StatusOK, user); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("auth: erro ao codificar resposta")
		}
	})
}

// handleAuthError usa o código do AuthError; credenciais erradas não revelam o motivo
func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.ForContext(r.Context()).WithError(err)

	var authErr *authenticating.AuthError
	if !errors.As(err, &authErr) {
		logger.Error("auth: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
		return
	}

	switch {
	case authenticating.IsCredentialsError(err):
		logger.Warn("auth: login recusado")
		apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
	case errors.Is(err, authenticating.ErrMissingRequiredData):
		apiErrors.WriteError(w, authErr.Code, authErr.Details, nil)
	default:
		logger.Error("auth: erro ao autenticar")
		apiErrors.WriteError(w, authErr.Code, "Erro interno ao autenticar", nil)
	}
}
