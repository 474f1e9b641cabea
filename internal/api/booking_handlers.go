package api

import (
	"net/http"
	"strconv"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/db/repositories"
	"helo-luxury-air/portal/internal/models/dtos"
	"helo-luxury-air/portal/internal/wizard"

	"github.com/go-chi/chi/v5"
)

// ListMyBookings handles GET /api/v1/bookings
func (h *Handlers) ListMyBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		bookings, err := h.deps.Services.Bookings.ListForUser(r.Context(), sessionUser(r).ID)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Bookings fetched", bookings)
	}
}

// GetBooking handles GET /api/v1/bookings/{id} and its admin twin.
func (h *Handlers) GetBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		booking, err := h.deps.Services.Bookings.Get(r.Context(), sessionUser(r), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgBookingNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Booking fetched", booking)
	}
}

// CreateBooking handles POST /api/v1/bookings, a one-shot alternative to the
// wizard that goes through the same checks.
func (h *Handlers) CreateBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.BookingCreateRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		booking, err := h.deps.Services.Wizard.CreateDirect(r.Context(), sessionUser(r), req)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Booking created", booking, http.StatusCreated)
	}
}

// CancelBooking handles POST /api/v1/bookings/{id}/cancel
func (h *Handlers) CancelBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		booking, err := h.deps.Services.Bookings.Cancel(r.Context(), sessionUser(r), chi.URLParam(r, "id"))
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgBookingNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Booking cancelled", booking)
	}
}

// AdminListBookings handles GET /api/v1/admin/bookings with optional
// status, userId, from, to (YYYY-MM-DD) and limit filters.
func (h *Handlers) AdminListBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		filter, fields := parseBookingFilter(r)
		if len(fields) > 0 {
			common.RespondValidation(w, initTime, fields, nil)
			return
		}

		bookings, err := h.deps.Services.Bookings.List(r.Context(), filter)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Bookings fetched", bookings)
	}
}

// RecentBookings handles GET /api/v1/admin/bookings/recent?limit=
func (h *Handlers) RecentBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		bookings, err := h.deps.Services.Bookings.Recent(r.Context(), limit)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Recent bookings fetched", bookings)
	}
}

// AdminPatchBooking handles PATCH /api/v1/admin/bookings/{id}
func (h *Handlers) AdminPatchBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.BookingPatchRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		booking, err := h.deps.Services.Bookings.Update(r.Context(), sessionUser(r), chi.URLParam(r, "id"), req)
		if err != nil {
			respondServiceError(w, initTime, err, constants.MsgBookingNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Booking updated", booking)
	}
}

func parseBookingFilter(r *http.Request) (repositories.BookingFilter, map[string]string) {
	q := r.URL.Query()
	filter := repositories.BookingFilter{UserID: q.Get("userId")}
	fields := map[string]string{}

	if raw := q.Get("status"); raw != "" {
		status := constants.BookingStatus(raw)
		if status.Valid() {
			filter.Status = &status
		} else {
			fields["status"] = constants.MsgInvalidStatus
		}
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		day, err := time.Parse(wizard.DateLayout, raw)
		if err != nil {
			fields[key] = constants.MsgInvalidDate
			continue
		}
		*dst = &day
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields["limit"] = constants.MsgInvalidBody
		} else {
			filter.Limit = n
		}
	}
	return filter, fields
}
