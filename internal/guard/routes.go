package guard

import (
	"strings"

	"helo-luxury-air/portal/internal/constants"
)

// ClientRoute is one entry of the portal's page table. Segments starting with
// ':' match any single non-empty segment.
type ClientRoute struct {
	Pattern string           `json:"pattern"`
	Public  bool             `json:"public"`
	Roles   []constants.Role `json:"roles,omitempty"`
}

var (
	memberTree = []constants.Role{constants.RoleMember, constants.RoleGuest}
	adminTree  = []constants.Role{constants.RoleAdmin}
)

var ClientRoutes = []ClientRoute{
	{Pattern: constants.PathHome, Public: true},
	{Pattern: "/fleet", Public: true},
	{Pattern: "/infrastructure", Public: true},
	{Pattern: "/membership", Public: true},
	{Pattern: constants.PathLogin, Public: true},
	{Pattern: constants.PathRegister, Public: true},
	{Pattern: constants.PathForgotPassword, Public: true},

	{Pattern: constants.PathMemberDashboard, Roles: memberTree},
	{Pattern: "/member/booking", Roles: memberTree},
	{Pattern: "/member/trips", Roles: memberTree},
	{Pattern: "/member/trips/:id", Roles: memberTree},
	{Pattern: "/member/profile", Roles: memberTree},

	{Pattern: constants.PathAdminDashboard, Roles: adminTree},
	{Pattern: "/admin/bookings", Roles: adminTree},
	{Pattern: "/admin/users", Roles: adminTree},
	{Pattern: "/admin/fleet", Roles: adminTree},
	{Pattern: "/admin/analytics", Roles: adminTree},
}

// Resolution is what the client should do for a requested path.
type Resolution struct {
	Path     string            `json:"path"`
	Route    string            `json:"route"`
	Params   map[string]string `json:"params,omitempty"`
	Decision Decision          `json:"decision"`
}

// Resolve matches path against ClientRoutes and gates it. Unknown paths
// resolve to the not-found page, which is public.
func Resolve(path string, p Principal) Resolution {
	path = normalize(path)
	for _, r := range ClientRoutes {
		params, ok := match(r.Pattern, path)
		if !ok {
			continue
		}
		res := Resolution{Path: path, Route: r.Pattern, Params: params}
		if r.Public {
			res.Decision = Decision{Action: ActionRender}
		} else {
			res.Decision = Decide(p, r.Roles, path)
		}
		return res
	}
	return Resolution{Path: path, Route: constants.PathNotFound, Decision: Decision{Action: ActionRender}}
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func match(pattern, path string) (map[string]string, bool) {
	if pattern == path {
		return nil, true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return nil, false
	}
	var params map[string]string
	for i, seg := range ps {
		if strings.HasPrefix(seg, ":") {
			if xs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = map[string]string{}
			}
			params[seg[1:]] = xs[i]
			continue
		}
		if seg != xs[i] {
			return nil, false
		}
	}
	return params, true
}
