package constants

import (
	"database/sql/driver"
	"fmt"
)

// Role mirrors the portal's closed set of principals
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleGuest  Role = "guest"
)

// AllRoles is the default allowlist for protected areas.
var AllRoles = []Role{RoleMember, RoleAdmin, RoleGuest}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// LandingPath is where a principal goes when it lands somewhere it is not allowed.
func (r Role) LandingPath() string {
	if r == RoleAdmin {
		return PathAdminDashboard
	}
	return PathMemberDashboard
}

// ParseRole returns an error for anything outside the enum.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

/* ---------- DB adapters so gorm/sqlx scan and value cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	s, err := scanString("Role", src)
	if err != nil {
		return err
	}
	*r = Role(s)
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }

// MembershipTier is the paid tier of a member account
type MembershipTier string

const (
	TierStandard MembershipTier = "standard"
	TierPremium  MembershipTier = "premium"
	TierElite    MembershipTier = "elite"
)

func (t MembershipTier) String() string { return string(t) }

func (t MembershipTier) Valid() bool {
	switch t {
	case TierStandard, TierPremium, TierElite:
		return true
	}
	return false
}

func (t *MembershipTier) Scan(src interface{}) error {
	s, err := scanString("MembershipTier", src)
	if err != nil {
		return err
	}
	*t = MembershipTier(s)
	return nil
}

func (t MembershipTier) Value() (driver.Value, error) { return string(t), nil }

func scanString(typeName string, src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%s: cannot scan type %T", typeName, src)
	}
}
