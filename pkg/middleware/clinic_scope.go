package middleware

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/vetclinic-report-api/pkg/apiErrors"
	"github.com/vfg2006/vetclinic-report-api/pkg/log"
)

// ClinicParam é o parâmetro de rota com o id da clínica
const ClinicParam = "clinicId"

// ClinicScope garante que o usuário só leia dados da própria clínica.
// Administradores acessam qualquer clínica.
func ClinicScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			clinicID := httprouter.ParamsFromContext(r.Context()).ByName(ClinicParam)
			if clinicID == "" {
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "clinicId é obrigatório", nil)
				return
			}

			if claims.UserRoleID != RoleAdmin && claims.ClinicID != clinicID {
				log.ForContext(r.Context()).WithFields(log.Fields{
					"user_id":        claims.UserID,
					"user_clinic_id": claims.ClinicID,
					"clinic_id":      clinicID,
				}).Warn("auth: acesso a outra clínica negado")
				apiErrors.WriteError(w, apiErrors.ErrClinicScope, "Você não tem acesso a esta clínica", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
