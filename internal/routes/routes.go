package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/fatales/internal/cache"
	"github.com/example/fatales/internal/config"
	"github.com/example/fatales/internal/handlers"
	"github.com/example/fatales/internal/middleware"
	"github.com/example/fatales/internal/storefront"
	"github.com/example/fatales/internal/store"
)

// Deps are the collaborators the routes need. Optional ones may be nil.
type Deps struct {
	Storefront *storefront.Service
	Pages      cache.Store
	Limiter    cache.Counter
	Contacts   store.ContactStore
	Concierge  store.ConciergeStore
	Notifier   handlers.ConciergeNotifier
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, cfg *config.Config, deps Deps) {
	storefrontHandler := handlers.NewStorefrontHandler(deps.Storefront, deps.Pages)
	contactHandler := handlers.NewContactHandler(deps.Contacts)
	conciergeHandler := handlers.NewConciergeHandler(deps.Storefront, deps.Concierge, deps.Notifier)
	adminHandler := handlers.NewAdminHandler(cfg, deps.Concierge, deps.Pages)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Locale())

	// Catalog pages
	api.Get("/home", storefrontHandler.Home)
	api.Get("/shop", storefrontHandler.Shop)
	api.Get("/product", storefrontHandler.Product)
	api.Get("/product/:slug", storefrontHandler.Product)
	api.Get("/categories", storefrontHandler.Categories)
	api.Get("/hero-slides", storefrontHandler.HeroSlides)
	api.Get("/locales", storefrontHandler.Locales)

	api.Get("/contact", contactHandler.GetContact)

	limit := middleware.RateLimit(deps.Limiter, "concierge", cfg.RateLimitPerMin, time.Minute)
	api.Post("/concierge", limit, conciergeHandler.Create)

	// Admin
	admin := api.Group("/admin")
	admin.Post("/login", middleware.RateLimit(deps.Limiter, "login", cfg.RateLimitPerMin, time.Minute), adminHandler.Login)

	protected := admin.Group("", middleware.AdminAuth(cfg.JWTSecret))
	protected.Get("/concierge", adminHandler.ListConcierge)
	protected.Put("/contact", contactHandler.UpdateContact)
	protected.Post("/cache/purge", adminHandler.PurgeCache)
}
