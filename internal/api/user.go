package api

import (
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// GetMe handles GET /api/v1/users/me
func (h *Handlers) GetMe() http.HandlerFunc {
	return h.getProfile(func(r *http.Request) string { return sessionUser(r).ID })
}

// PatchMe handles PATCH /api/v1/users/me
func (h *Handlers) PatchMe() http.HandlerFunc {
	return h.patchProfile(func(r *http.Request) string { return sessionUser(r).ID })
}

// AdminListUsers handles GET /api/v1/admin/users
func (h *Handlers) AdminListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		users, err := h.deps.Services.Users.List(r.Context())
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Users fetched", users)
	}
}

// AdminGetUser handles GET /api/v1/admin/users/{id}
func (h *Handlers) AdminGetUser() http.HandlerFunc {
	return h.getProfile(func(r *http.Request) string { return chi.URLParam(r, "id") })
}

// AdminPatchUser handles PATCH /api/v1/admin/users/{id}; role and tier may
// be changed here.
func (h *Handlers) AdminPatchUser() http.HandlerFunc {
	return h.patchProfile(func(r *http.Request) string { return chi.URLParam(r, "id") })
}

func (h *Handlers) getProfile(target func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		user, err := h.deps.Services.Users.GetProfile(r.Context(), target(r))
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgUserNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Profile fetched", user)
	}
}

func (h *Handlers) patchProfile(target func(*http.Request) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.ProfilePatchRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		user, err := h.deps.Services.Users.UpdateProfile(r.Context(), sessionUser(r), target(r), req)
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgUserNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Profile updated", user)
	}
}

// ListSavedLocations handles GET /api/v1/users/me/locations
func (h *Handlers) ListSavedLocations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		locs, err := h.deps.Services.Users.SavedLocations(r.Context(), sessionUser(r).ID)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Saved locations fetched", locs)
	}
}

// AddSavedLocation handles POST /api/v1/users/me/locations
func (h *Handlers) AddSavedLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.SavedLocationRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		loc, err := h.deps.Services.Users.AddSavedLocation(r.Context(), sessionUser(r).ID, req)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Saved location added", loc, http.StatusCreated)
	}
}

// RemoveSavedLocation handles DELETE /api/v1/users/me/locations/{id}
func (h *Handlers) RemoveSavedLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := h.deps.Services.Users.RemoveSavedLocation(r.Context(), sessionUser(r).ID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err, constants.MsgLocationNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Saved location removed", nil)
	}
}

// ListPaymentMethods handles GET /api/v1/users/me/payment-methods
func (h *Handlers) ListPaymentMethods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		methods, err := h.deps.Services.Users.PaymentMethods(r.Context(), sessionUser(r).ID)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Payment methods fetched", methods)
	}
}

// AddPaymentMethod handles POST /api/v1/users/me/payment-methods
func (h *Handlers) AddPaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.PaymentMethodRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		pm, err := h.deps.Services.Users.AddPaymentMethod(r.Context(), sessionUser(r).ID, req)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Payment method added", pm, http.StatusCreated)
	}
}

// RemovePaymentMethod handles DELETE /api/v1/users/me/payment-methods/{id}
func (h *Handlers) RemovePaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		if err := h.deps.Services.Users.RemovePaymentMethod(r.Context(), sessionUser(r).ID, chi.URLParam(r, "id")); err != nil {
			respondServiceError(w, initTime, err, constants.MsgPaymentNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Payment method removed", nil)
	}
}
