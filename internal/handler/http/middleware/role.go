package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub/staffhub-backend-go/internal/domain/auth"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/handler/http/response"
)

// RequirePermission gates a route on the role-permission table. The table is
// injected at startup; routes never hardcode role names.
func RequirePermission(roles *user.RoleConfig, permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			roleName, ok := claims["role"].(string)
			if !ok || !user.Role(roleName).Valid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !roles.Has(user.Role(roleName), permission) {
				response.HandleError(w, user.ErrPermissionRequired)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
