package api

import (
	"errors"
	"net/http"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/middleware"
	"helo-luxury-air/portal/internal/models/dtos"
)

func authResponse(s *common.Session) dtos.AuthResponse {
	return dtos.AuthResponse{User: s.User, Token: s.Token, ExpiresAt: s.ExpiresAt}
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.LoginRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		session, err := h.deps.Services.Auth.Login(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Logged in", authResponse(session))
	}
}

// Register handles POST /api/v1/auth/register
func (h *Handlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		var req dtos.RegisterRequest
		if !decodeJSON(w, r, initTime, &req) {
			return
		}

		session, err := h.deps.Services.Auth.Register(r.Context(), req)
		if err != nil {
			respondServiceError(w, initTime, err, "")
			return
		}
		common.RespondSuccess(w, initTime, "Account created", authResponse(session), http.StatusCreated)
	}
}

// Logout handles POST /api/v1/auth/logout. It succeeds with or without a
// live session.
func (h *Handlers) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		_ = h.deps.Services.Auth.Logout(r.Context(), middleware.BearerToken(r))
		common.RespondSuccess(w, initTime, "Logged out", nil)
	}
}

// Session handles GET /api/v1/auth/session. An expired token is reported
// once and purged; the next call sees an anonymous session.
func (h *Handlers) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		token := middleware.BearerToken(r)
		if token == "" {
			common.RespondSuccess(w, initTime, "Anonymous", dtos.SessionResponse{})
			return
		}

		session, err := h.deps.Services.Auth.CurrentSession(r.Context(), token)
		switch {
		case errors.Is(err, common.ErrSessionExpired):
			common.RespondSuccess(w, initTime, "Session expired", dtos.SessionResponse{Expired: true})
		case errors.Is(err, common.ErrSessionNotFound):
			common.RespondSuccess(w, initTime, "Anonymous", dtos.SessionResponse{})
		case err != nil:
			respondServiceError(w, initTime, err, "")
		default:
			expiresAt := session.ExpiresAt
			common.RespondSuccess(w, initTime, "Authenticated", dtos.SessionResponse{
				User:            session.User,
				IsAuthenticated: true,
				ExpiresAt:       &expiresAt,
			})
		}
	}
}
