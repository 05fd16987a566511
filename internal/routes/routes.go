package routes

import (
	"github.com/fuelease/fuelease/internal/auth"
	"github.com/fuelease/fuelease/internal/handlers"
	"github.com/fuelease/fuelease/internal/middleware"
	"github.com/fuelease/fuelease/internal/models"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	tokenManager *auth.TokenManager,
	authHandler *handlers.AuthHandler,
	twoFactorHandler *handlers.TwoFactorHandler,
	adminHandler *handlers.AdminHandler,
	operatorHandler *handlers.OperatorHandler,
	customerHandler *handlers.CustomerHandler,
	stationHandler *handlers.FuelStationHandler,
) {
	authRate := middleware.RateLimitByIP(middleware.AuthRateLimitPerMinute)

	// Public routes - credential and code checks are rate limited per IP
	router.Group(func(r chi.Router) {
		r.Use(authRate)
		r.Post("/auth/admin/login", authHandler.Login(models.RoleAdmin))
		r.Post("/auth/operator/login", authHandler.Login(models.RoleOperator))
		r.Post("/auth/customer/login", authHandler.Login(models.RoleCustomer))
		r.Post("/auth/verify-2fa", authHandler.VerifyTwoFactor)
	})
	router.Post("/auth/decode-token", authHandler.DecodeToken)
	router.Post("/customers/register", customerHandler.Register)

	// Protected routes - access token required
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(tokenManager))

		// Two-factor enrollment for the authenticated principal
		r.With(authRate).Post("/auth/2fa/enable", twoFactorHandler.Enable)
		r.With(authRate).Post("/auth/2fa/verify-setup", twoFactorHandler.VerifySetup)

		// Admin management is admin-only
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin))

			r.Post("/admins", adminHandler.Create)
			r.Get("/admins", adminHandler.List)
			r.Get("/admins/status/{status}", adminHandler.ListByStatus)
			r.Get("/admins/older-than/{age}", adminHandler.ListOlderThan)
			r.Get("/admins/{id}", adminHandler.GetByID)
			r.Put("/admins/{id}", adminHandler.Update)
			r.Patch("/admins/{id}/status", adminHandler.UpdateStatus)
			r.Post("/admins/{id}/profile-image", adminHandler.UploadProfileImage)
			r.Post("/admins/{id}/nid-image", adminHandler.UploadNIDImage)
			r.Delete("/admins/{id}", adminHandler.Delete)

			r.Post("/operators", operatorHandler.Create)
			r.Delete("/operators/{id}", operatorHandler.Delete)

			r.Get("/customers", customerHandler.List)
			r.Delete("/customers/{id}", customerHandler.Delete)
		})

		// Operator records are readable and editable by admins and operators
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(models.RoleAdmin, models.RoleOperator))

			r.Get("/operators", operatorHandler.List)
			r.Get("/operators/{id}", operatorHandler.GetByID)
			r.Put("/operators/{id}", operatorHandler.Update)
			r.Patch("/operators/{id}/status", operatorHandler.UpdateStatus)
			r.Post("/operators/{id}/profile-image", operatorHandler.UploadProfileImage)

			r.Post("/fuel-stations", stationHandler.Create)
			r.Put("/fuel-stations/{id}", stationHandler.Update)
			r.Delete("/fuel-stations/{id}", stationHandler.Delete)
			r.Get("/operators/{operatorID}/fuel-stations", stationHandler.ListByOperator)
		})

		// Any authenticated principal
		r.Get("/customers/{id}", customerHandler.GetByID)
		r.Put("/customers/{id}", customerHandler.Update)
		r.Get("/fuel-stations", stationHandler.List)
		r.Get("/fuel-stations/{id}", stationHandler.GetByID)
	})
}
