package guard

import (
	"slices"
	"time"

	"helo-luxury-air/portal/internal/common"
	"helo-luxury-air/portal/internal/constants"
)

type Action string

const (
	ActionRender   Action = "render"
	ActionRedirect Action = "redirect"
)

// Decision is the outcome of gating a path. From is only set for the login
// redirect so the client can come back after signing in.
type Decision struct {
	Action Action `json:"action"`
	Target string `json:"target,omitempty"`
	From   string `json:"from,omitempty"`
}

func (d Decision) Allowed() bool { return d.Action == ActionRender }

// Principal is the part of a session the guard looks at.
type Principal struct {
	Authenticated bool
	Role          constants.Role
}

// PrincipalOf reads a session as of now. A nil or expired session is anonymous.
func PrincipalOf(s *common.Session, now time.Time) Principal {
	if s == nil || !s.IsAuthenticated(now) {
		return Principal{}
	}
	return Principal{Authenticated: true, Role: s.User.Role}
}

// Decide gates path for p. An empty allowlist admits any authenticated role.
func Decide(p Principal, allowlist []constants.Role, path string) Decision {
	if !p.Authenticated {
		return Decision{Action: ActionRedirect, Target: constants.PathLogin, From: path}
	}
	if len(allowlist) > 0 && !slices.Contains(allowlist, p.Role) {
		return Decision{Action: ActionRedirect, Target: p.Role.LandingPath()}
	}
	return Decision{Action: ActionRender}
}
