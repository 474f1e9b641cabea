package api

import (
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/guard"
	"helo-luxury-air/portal/internal/models/dtos"
)

// ClientConfig handles GET /api/v1/config
func (h *Handlers) ClientConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		common.RespondSuccess(w, time.Now(), "Client config", dtos.ClientConfigResponse{
			APIBaseURL: h.deps.Config.APIBaseURL,
			Env:        h.deps.Config.AppEnv,
		})
	}
}

// Navigation handles GET /api/v1/navigation?path=. It answers what the client
// router should do for path given the caller's session.
func (h *Handlers) Navigation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		principal := guard.PrincipalOf(auth.GetSession(r.Context()), h.deps.Now())
		res := guard.Resolve(r.URL.Query().Get("path"), principal)

		resp := dtos.NavigationResponse{
			Path:     res.Path,
			Render:   res.Decision.Allowed(),
			Redirect: res.Decision.Target,
			From:     res.Decision.From,
			NotFound: res.Route == constants.PathNotFound,
			Params:   res.Params,
		}
		common.RespondSuccess(w, initTime, "Navigation resolved", resp)
	}
}
