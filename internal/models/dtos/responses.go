package dtos

import "time"

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Status       string            `json:"status"`
	Message      string            `json:"message"`
	ResponseTime string            `json:"response_time"`
	Data         any               `json:"data,omitempty"`
	Errors       map[string]string `json:"errors,omitempty"`
	Redirect     string            `json:"redirect,omitempty"`
	From         string            `json:"from,omitempty"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User      any       `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse mirrors the client store selectors.
type SessionResponse struct {
	User            any        `json:"user"`
	IsAuthenticated bool       `json:"is_authenticated"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Expired         bool       `json:"expired,omitempty"`
}

type NavigationResponse struct {
	Path     string            `json:"path"`
	Render   bool              `json:"render"`
	Redirect string            `json:"redirect,omitempty"`
	From     string            `json:"from,omitempty"`
	NotFound bool              `json:"not_found,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

type ClientConfigResponse struct {
	APIBaseURL string `json:"api_base_url"`
	Env        string `json:"env"`
}

type ServiceStatus struct {
	Status  string `json:"status"`
	Details string `json:"details"`
}

type HealthCheckResponse struct {
	Status   string                   `json:"status"`
	Uptime   string                   `json:"uptime"`
	Services map[string]ServiceStatus `json:"services"`
}
