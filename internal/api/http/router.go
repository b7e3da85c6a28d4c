package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Users    *handlers.UsersHandler
	Admin    *handlers.AdminHandler
	Cart     *handlers.CartHandler
	Products *handlers.ProductsHandler
	Shop     *handlers.ShopHandler
	Sessions *auth.SessionMiddleware
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Banner)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	api := app.Group("/api")
	sessions := cfg.Sessions

	users := api.Group("/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Get("/logout", sessions.Optional, cfg.Users.Logout)
	users.Get("/me", sessions.UserOnly(), cfg.Users.Me)
	users.Get("/cart", sessions.UserOnly(), cfg.Users.Cart)

	admin := api.Group("/admin")
	admin.Post("/create", cfg.Admin.Create)
	admin.Post("/login", cfg.Admin.Login)
	admin.Get("/logout", sessions.Optional, cfg.Admin.Logout)
	admin.Get("/me", sessions.AdminOnly(), cfg.Admin.Me)
	admin.Get("/", sessions.AdminOnly(), cfg.Admin.Products)
	admin.Put("/updateProduct/:id", sessions.AdminOnly(), cfg.Products.Update)
	admin.Delete("/deleteProduct/:id", sessions.AdminOnly(), cfg.Products.Delete)

	products := api.Group("/products")
	products.Get("/", cfg.Products.List)
	products.Post("/create", sessions.AdminOnly(), cfg.Products.Create)

	// The admin passes the guard and is refused by the cart service with 403.
	cart := api.Group("/cart", sessions.EitherRole())
	cart.Post("/add/:product_id", cfg.Cart.Add)
	cart.Delete("/remove/:product_id", cfg.Cart.Remove)

	api.Get("/shop", sessions.EitherRole(), cfg.Shop.List)
}
