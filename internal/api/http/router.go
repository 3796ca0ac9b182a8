package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wholesale-hub/wholesale-service/internal/api/http/handlers"
	"github.com/wholesale-hub/wholesale-service/internal/auth"
	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Categories     *handlers.CategoriesHandler
	Products       *handlers.ProductsHandler
	Variants       *handlers.VariantsHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    *RateLimiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)
	api.Get("/categories", cfg.Categories.List)

	limited := cfg.RateLimiter.Handler()
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", limited, cfg.Auth.Signup)
	authGroup.Post("/login", limited, cfg.Auth.Login)
	authGroup.Post("/refresh", limited, cfg.Auth.Refresh)
	authGroup.Post("/logout", auth.RequireAuthenticated(), cfg.Auth.Logout)

	products := api.Group("/wholesaler/products", auth.RequireRole(domain.RoleWholesaler))
	products.Post("/", cfg.Products.Create)
	// Registered before /:productId so "variants" is not parsed as an id.
	products.Get("/variants", cfg.Variants.List)
	products.Get("/:productId", cfg.Products.Get)
	products.Get("/:productId/edit", cfg.Products.GetForEdit)
	products.Patch("/:productId/is-active", cfg.Products.UpdateIsActive)
	products.Delete("/:productId", cfg.Products.Delete)
	products.Get("/:productId/variants", cfg.Variants.ListForProduct)
	products.Patch("/:productId/variants", cfg.Variants.UpdateStocks)
	products.Patch("/:productId/variants/:variantId", cfg.Variants.UpdateStock)
}
