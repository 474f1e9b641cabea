package middleware

import (
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/guard"
)

// RequireRoles gates a route tree the same way the client route guard does:
// anonymous callers are sent to login, the wrong role to its own landing page.
// Mount after AuthMiddleware.
func RequireRoles(now func() time.Time, roles ...constants.Role) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			principal := guard.PrincipalOf(auth.GetSession(r.Context()), now())
			decision := guard.Decide(principal, roles, r.URL.Path)
			if decision.Allowed() {
				next.ServeHTTP(w, r)
				return
			}

			if !principal.Authenticated {
				common.RespondRedirect(w, initTime, http.StatusUnauthorized, constants.MsgUnauthorized, decision.Target, decision.From)
				return
			}
			common.RespondRedirect(w, initTime, http.StatusForbidden, constants.MsgForbidden, decision.Target, "")
		})
	}
}
