package auth

import (
	"context"

	"helo-luxury-air/portal/internal/common"
)

type contextKey string

var sessionKey contextKey = "session"

func SetSession(ctx context.Context, session *common.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSession returns nil for anonymous requests.
func GetSession(ctx context.Context) *common.Session {
	if s, ok := ctx.Value(sessionKey).(*common.Session); ok {
		return s
	}
	return nil
}
