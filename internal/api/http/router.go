package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/glowmart/storefront-service/internal/api/http/handlers"
	"github.com/glowmart/storefront-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UsersHandler
	Products *handlers.ProductsHandler
	Orders   *handlers.OrdersHandler
	Reports  *handlers.ReportsHandler
	Profile  *handlers.ProfileHandler
	Session  *auth.SessionMiddleware
	Guards   *auth.Guards
}

// RegisterRoutes wires HTTP routes. The session middleware resolves the
// caller on every route; guards decide admission per surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Use(cfg.Session.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/verify-email", cfg.Auth.VerifyEmail)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Get("/me", cfg.Auth.Me)
	authGroup.Get("/access/check", cfg.Auth.CheckAccess)

	// Public catalog reads.
	app.Get("/products", cfg.Products.ListPublished)
	app.Get("/products/:id", cfg.Products.Get)

	account := app.Group("/account", cfg.Guards.RequireCustomerAccess)
	account.Get("/profile", cfg.Profile.Get)
	account.Put("/profile", cfg.Profile.Update)
	account.Get("/orders", cfg.Orders.MyOrders)

	admin := app.Group("/admin", cfg.Guards.RequireAdminAccess)
	admin.Get("/dashboard", cfg.Reports.Dashboard)
	admin.Get("/audit-log", cfg.Reports.AuditLog)
	admin.Get("/sales-log", cfg.Reports.SalesLog)

	admin.Get("/users", cfg.Users.List)
	admin.Get("/users/:id", cfg.Users.Get)
	admin.Post("/users/:id/promote", cfg.Users.Promote)
	admin.Post("/users/:id/demote", cfg.Users.Demote)
	admin.Post("/users/:id/toggle-status", cfg.Users.ToggleStatus)
	admin.Delete("/users/:id", cfg.Users.Delete)

	admin.Get("/products", cfg.Products.ListAll)
	admin.Post("/products", cfg.Products.Create)
	admin.Put("/products/:id", cfg.Products.Update)
	admin.Post("/products/:id/toggle", cfg.Products.TogglePublished)
	admin.Delete("/products/:id", cfg.Products.Delete)

	admin.Get("/orders", cfg.Orders.List)
	admin.Get("/orders/:id", cfg.Orders.Get)
	admin.Post("/orders/:id/status", cfg.Orders.UpdateStatus)
}
