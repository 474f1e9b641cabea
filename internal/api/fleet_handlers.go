package api

import (
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListFleet handles GET /api/v1/fleet?status=
func (h *Handlers) ListFleet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var status *constants.AircraftStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			st := constants.AircraftStatus(raw)
			status = &st
		}

		fleet, err := h.deps.Services.Fleet.List(r.Context(), status)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Fleet fetched", fleet)
	}
}

// GetAircraft handles GET /api/v1/fleet/{id}
func (h *Handlers) GetAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		heli, err := h.deps.Services.Fleet.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgAircraftNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft fetched", heli)
	}
}

// PatchAircraftStatus handles PATCH /api/v1/admin/fleet/{id}
func (h *Handlers) PatchAircraftStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.AircraftStatusRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		heli, err := h.deps.Services.Fleet.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgAircraftNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Aircraft status updated", heli)
	}
}

// ScheduleMaintenance handles POST /api/v1/admin/fleet/{id}/maintenance
func (h *Handlers) ScheduleMaintenance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.MaintenanceRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		heli, err := h.deps.Services.Fleet.ScheduleMaintenance(r.Context(), chi.URLParam(r, "id"), req.Date)
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgAircraftNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Maintenance scheduled", heli)
	}
}
