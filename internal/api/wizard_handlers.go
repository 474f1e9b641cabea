package api

import (
	"errors"
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/wizard"

	"github.com/go-chi/chi/v5"
)

// StartWizard handles POST /api/v1/bookings/wizard
func (h *Handlers) StartWizard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.deps.Services.Wizard.Start(r.Context(), sessionUser(r))
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Booking draft started", view, http.StatusCreated)
	}
}

// GetWizard handles GET /api/v1/bookings/wizard/{id} and its step sub-paths.
func (h *Handlers) GetWizard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		view, err := h.deps.Services.Wizard.Get(sessionUser(r), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Booking draft fetched", view)
	}
}

// PutWizardLocations handles PUT /api/v1/bookings/wizard/{id}/locations
func (h *Handlers) PutWizardLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var step wizard.LocationsStep
		if !decodeJSON(w, r, initTime, &step) {
			return
		}
		view, err := h.deps.Services.Wizard.SetLocations(sessionUser(r), chi.URLParam(r, "id"), step)
		respondWizard(w, initTime, view, err, "Locations saved")
	}
}

// PutWizardAircraft handles PUT /api/v1/bookings/wizard/{id}/aircraft
func (h *Handlers) PutWizardAircraft() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var step wizard.AircraftStep
		if !decodeJSON(w, r, initTime, &step) {
			return
		}
		view, err := h.deps.Services.Wizard.SetAircraft(sessionUser(r), chi.URLParam(r, "id"), step)
		respondWizard(w, initTime, view, err, "Aircraft saved")
	}
}

// PutWizardSchedule handles PUT /api/v1/bookings/wizard/{id}/schedule
func (h *Handlers) PutWizardSchedule() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var step wizard.ScheduleStep
		if !decodeJSON(w, r, initTime, &step) {
			return
		}
		view, err := h.deps.Services.Wizard.SetSchedule(sessionUser(r), chi.URLParam(r, "id"), step)
		respondWizard(w, initTime, view, err, "Schedule saved")
	}
}

// WizardNext handles POST /api/v1/bookings/wizard/{id}/next. A blocked step
// answers 400 with the field errors and the unchanged draft.
func (h *Handlers) WizardNext() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		view, err := h.deps.Services.Wizard.Next(sessionUser(r), chi.URLParam(r, "id"))
		respondWizard(w, initTime, view, err, "Step completed")
	}
}

// WizardBack handles POST /api/v1/bookings/wizard/{id}/back
func (h *Handlers) WizardBack() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		view, err := h.deps.Services.Wizard.Back(sessionUser(r), chi.URLParam(r, "id"))
		respondWizard(w, initTime, view, err, "Moved back")
	}
}

// SubmitWizard handles POST /api/v1/bookings/wizard/{id}/submit
func (h *Handlers) SubmitWizard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		booking, err := h.deps.Services.Wizard.Submit(r.Context(), sessionUser(r), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Booking created", booking, http.StatusCreated)
	}
}

func respondWizard(w http.ResponseWriter, initTime time.Time, view wizard.View, err error, message string) {
	var validationErr *wizard.ValidationError
	switch {
	case err == nil:
		common.RespondSuccess(w, initTime, message, view)
	case errors.As(err, &validationErr):
		common.RespondValidation(w, initTime, validationErr.Fields, view)
	default:
		respondServiceError(w, initTime, err, "")
	}
}
