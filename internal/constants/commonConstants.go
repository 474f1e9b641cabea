package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixSession      CachePrefix = "session:"
	CachePrefixUserSessions CachePrefix = "user-sessions:"
	CachePrefixWizardDraft  CachePrefix = "WIZARD_"
	CachePrefixFleet        CachePrefix = "FLEET_"
)

// Client-side routes the portal serves
const (
	PathHome            = "/"
	PathLogin           = "/login"
	PathRegister        = "/register"
	PathForgotPassword  = "/forgot-password"
	PathMemberDashboard = "/member/dashboard"
	PathAdminDashboard  = "/admin/dashboard"
	PathNotFound        = "/404"
)

// BookingEventsStream is the Redis stream booking lifecycle events are appended to
const BookingEventsStream = "helo:bookings"

// RedisCachePrefix namespaces shared cache keys
const RedisCachePrefix = "helo:cache:"
