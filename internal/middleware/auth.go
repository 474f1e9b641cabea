package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"helo-luxury-air/portal/internal/auth"
	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
)

// SessionResolver turns a bearer token into a live session.
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*common.Session, error)
}

// AuthMiddleware requires a live session. Missing, unknown and expired tokens
// all get 401 with a login redirect carrying the requested path.
func AuthMiddleware(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			initTime := time.Now()

			token := BearerToken(r)
			if token == "" {
				common.RespondRedirect(w, initTime, http.StatusUnauthorized, constants.MsgUnauthorized, constants.PathLogin, r.URL.Path)
				return
			}

			session, err := sessions.CurrentSession(r.Context(), token)
			if err != nil {
				msg := constants.MsgUnauthorized
				if errors.Is(err, common.ErrSessionExpired) {
					msg = constants.MsgSessionExpired
				}
				common.RespondRedirect(w, initTime, http.StatusUnauthorized, msg, constants.PathLogin, r.URL.Path)
				return
			}

			setRequestUser(r.Context(), session.User.ID)
			next.ServeHTTP(w, r.WithContext(auth.SetSession(r.Context(), session)))
		})
	}
}

// OptionalAuthMiddleware attaches the session when the token is live and
// otherwise lets the request through anonymously.
func OptionalAuthMiddleware(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := BearerToken(r); token != "" {
				if session, err := sessions.CurrentSession(r.Context(), token); err == nil {
					setRequestUser(r.Context(), session.User.ID)
					r = r.WithContext(auth.SetSession(r.Context(), session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
