package api

import (
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
)

// GetAnalytics handles GET /api/v1/admin/analytics?timeframe=week|month|year (default week)
func (h *Handlers) GetAnalytics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		tf, err := constants.ParseTimeframe(r.URL.Query().Get("timeframe"))
		if err != nil {
			common.RespondValidation(w, initTime, map[string]string{"timeframe": constants.MsgInvalidType}, nil)
			return
		}

		report, err := h.deps.Services.Analytics.Get(r.Context(), tf)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Analytics fetched", report)
	}
}
