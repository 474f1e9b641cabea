package routes

import (
	"helo-luxury-air/portal/internal/api"
	"helo-luxury-air/portal/internal/constants"
	"helo-luxury-air/portal/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, handlers *api.Handlers) {
	authSvc := deps.Services.Auth
	authLimiter := middleware.NewRateLimiter(deps.Config.AuthRateLimit, deps.Config.AuthRateBurst)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.InFlightMiddleware(deps.Metrics, "/api/v1"))

		// Public
		v1.Get("/config", handlers.ClientConfig())
		v1.Get("/fleet", handlers.ListFleet())
		v1.With(middleware.OptionalAuthMiddleware(authSvc)).Get("/navigation", handlers.Navigation())

		v1.Route("/auth", func(authRoutes chi.Router) {
			authRoutes.With(authLimiter.Middleware).Post("/login", handlers.Login())
			authRoutes.With(authLimiter.Middleware).Post("/register", handlers.Register())
			authRoutes.Post("/logout", handlers.Logout())
			authRoutes.Get("/session", handlers.Session())
		})

		// Any signed-in role
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(authSvc))

			authed.Get("/fleet/{id}", handlers.GetAircraft())

			authed.Route("/users/me", func(me chi.Router) {
				me.Get("/", handlers.GetMe())
				me.Patch("/", handlers.PatchMe())
				me.Get("/locations", handlers.ListSavedLocations())
				me.Post("/locations", handlers.AddSavedLocation())
				me.Delete("/locations/{id}", handlers.RemoveSavedLocation())
				me.Get("/payment-methods", handlers.ListPaymentMethods())
				me.Post("/payment-methods", handlers.AddPaymentMethod())
				me.Delete("/payment-methods/{id}", handlers.RemovePaymentMethod())
			})

			// Member tree (guests browse it too)
			authed.Group(func(member chi.Router) {
				member.Use(middleware.RequireRoles(deps.Now, constants.RoleMember, constants.RoleGuest))

				member.Get("/bookings", handlers.ListMyBookings())
				member.Post("/bookings", handlers.CreateBooking())
				member.Post("/bookings/wizard", handlers.StartWizard())
				member.Route("/bookings/wizard/{id}", func(wiz chi.Router) {
					wiz.Get("/", handlers.GetWizard())
					for _, section := range []string{"/locations", "/aircraft", "/schedule"} {
						wiz.Get(section, handlers.GetWizard())
					}
					wiz.Put("/locations", handlers.PutWizardLocations())
					wiz.Put("/aircraft", handlers.PutWizardAircraft())
					wiz.Put("/schedule", handlers.PutWizardSchedule())
					wiz.Post("/next", handlers.WizardNext())
					wiz.Post("/back", handlers.WizardBack())
					wiz.Post("/submit", handlers.SubmitWizard())
				})
				member.Get("/bookings/{id}", handlers.GetBooking())
				member.Post("/bookings/{id}/cancel", handlers.CancelBooking())
			})

			// Admin tree
			authed.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.RequireRoles(deps.Now, constants.RoleAdmin))

				admin.Get("/bookings", handlers.AdminListBookings())
				admin.Get("/bookings/recent", handlers.RecentBookings())
				admin.Get("/bookings/{id}", handlers.GetBooking())
				admin.Patch("/bookings/{id}", handlers.AdminPatchBooking())
				admin.Get("/users", handlers.AdminListUsers())
				admin.Get("/users/{id}", handlers.AdminGetUser())
				admin.Patch("/users/{id}", handlers.AdminPatchUser())
				admin.Patch("/fleet/{id}", handlers.PatchAircraftStatus())
				admin.Post("/fleet/{id}/maintenance", handlers.ScheduleMaintenance())
				admin.Get("/analytics", handlers.GetAnalytics())
			})
		})
	})
}
