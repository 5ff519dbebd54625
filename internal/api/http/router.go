package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/erp-service/internal/api/http/handlers"
	"github.com/spec-kit/erp-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Products       *handlers.ProductsHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every endpoint except login and the
// health probes requires a bearer token; role gates come from the single
// authorization table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	users := protected.Group("/users", auth.Require(auth.ActionUserManage))
	users.Get("/", cfg.Users.List)
	users.Get("/roles", cfg.Users.Roles)
	users.Post("/", cfg.Users.Create)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)

	products := protected.Group("/products")
	products.Get("/", auth.Require(auth.ActionProductRead), cfg.Products.List)
	products.Get("/:id", auth.Require(auth.ActionProductRead), cfg.Products.Get)
	products.Post("/", auth.Require(auth.ActionProductWrite), cfg.Products.Create)
	products.Put("/:id", auth.Require(auth.ActionProductWrite), cfg.Products.Update)
	products.Delete("/:id", auth.Require(auth.ActionProductWrite), cfg.Products.Delete)

	orders := protected.Group("/orders")
	orders.Get("/", auth.Require(auth.ActionOrderRead), cfg.Orders.List)
	orders.Get("/:id", auth.Require(auth.ActionOrderRead), cfg.Orders.Get)
	orders.Post("/", auth.Require(auth.ActionOrderWrite), cfg.Orders.Create)
	orders.Put("/:id", auth.Require(auth.ActionOrderWrite), cfg.Orders.Update)
	orders.Delete("/:id", auth.Require(auth.ActionOrderWrite), cfg.Orders.Delete)
}
