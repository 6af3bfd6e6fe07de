package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/http/handlers"
	"github.com/spec-kit/listing-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Listings       *handlers.ListingsHandler
	Moderation     *handlers.ModerationHandler
	Notifications  *handlers.NotificationsHandler
	Locations      *handlers.LocationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.Me)

	app.Get("/states", cfg.Locations.ListStates)
	app.Get("/states/:stateId/municipalities", cfg.Locations.ListMunicipalities)

	listings := app.Group("/listings")
	listings.Get("/", cfg.Listings.Search)
	listings.Get("/user/:userId", cfg.Listings.ListByOwner)
	listings.Get("/:id", cfg.Listings.GetPublic)

	listingsAuth := listings.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	listingsAuth.Post("/", cfg.Listings.CreateDraft)
	listingsAuth.Patch("/:id", cfg.Listings.UpdateDraft)
	listingsAuth.Post("/:id/submit", cfg.Listings.SubmitForReview)
	listingsAuth.Delete("/:id", cfg.Listings.Delete)

	moderation := app.Group("/moderation", cfg.AuthMiddleware.Handle, auth.RequireModerator())
	moderation.Get("/pending", cfg.Moderation.ListPending)
	moderation.Post("/reviews", cfg.Moderation.CreateReview)
	moderation.Get("/listings/:id/reviews", cfg.Moderation.ListReviews)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
}
