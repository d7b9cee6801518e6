package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jingxi/marketplace/api-gateway/config"
	"github.com/jingxi/marketplace/api-gateway/middleware"
	"github.com/jingxi/marketplace/api-gateway/proxy"
	"github.com/jingxi/marketplace/pkg/auth"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	Description  string
	RequireAuth  bool
	RequireAdmin bool
}

// Routes holds all route definitions. The gateway filters coarsely;
// the backend still enforces authorization per operation.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		Description: "Registration and login",
	},
	{
		Prefix:      "/products",
		Description: "Catalog browsing and comments (writes re-checked by backend)",
	},
	{
		Prefix:      "/sellers",
		Description: "Seller profiles and coupons",
	},
	{
		Prefix:      "/recommendations",
		Description: "Newest product recommendations",
	},
	{
		Prefix:      "/users",
		Description: "Profile and favorites",
		RequireAuth: true,
	},
	{
		Prefix:      "/orders",
		Description: "Order placement and history",
		RequireAuth: true,
	},
	{
		Prefix:      "/comments",
		Description: "Comment likes",
		RequireAuth: true,
	},
	{
		Prefix:       "/admin",
		Description:  "User administration",
		RequireAuth:  true,
		RequireAdmin: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, tokens *auth.TokenManager) {
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Gateway liveness, no downstream involved.
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness checks the backend.
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ok, err := reverseProxy.CheckUpstream(c)
		if err != nil || !ok {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "unhealthy",
				"service": cfg.Upstream.Name,
			})
		}
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": cfg.Upstream.Name,
		})
	})

	// Backend health passthrough.
	app.Get("/health", func(c *fiber.Ctx) error {
		return reverseProxy.ProxyRequest(c)
	})

	// Routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Marketplace API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerRoute(app, route, reverseProxy, tokens)
	}
}

// registerRoute registers all HTTP methods for a prefix
func registerRoute(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, tokens *auth.TokenManager) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c)
	}

	var middlewares []fiber.Handler
	if route.RequireAdmin {
		middlewares = append(middlewares, middleware.Auth(tokens), middleware.Admin())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.Auth(tokens))
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
