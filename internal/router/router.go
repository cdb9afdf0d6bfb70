package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/handler"
	"github.com/estudiocobogo/catalogo-api/internal/middleware"
)

// RegisterRoutes registers routes that carry no middleware at all.
// Currently that is only the health check used by uptime monitors.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the admin session endpoints.  Token issuing and
// exchange live under /v1/auth without middleware; /v1/me requires a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access only mints a
	// new access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout authenticates itself from either the bearer token or the
	// refresh token in the body, so no middleware here.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic wires the unauthenticated storefront endpoints.  The
// browse GETs sit behind the Redis response cache; the contact form is
// rate limited per client.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, ct *handler.ContactHandler, cache echo.MiddlewareFunc, limit echo.MiddlewareFunc) {
	e.GET("/v1/categories", p.GetCategories, cache)
	e.GET("/v1/products", p.GetProducts, cache)
	e.GET("/v1/products/:slug", p.GetProduct, cache)
	e.POST("/v1/contact", ct.Submit, limit)
}

// RegisterAdmin wires the dashboard endpoints.  Everything under
// /v1/admin requires an access token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	products *handler.AdminProductHandler,
	categories *handler.AdminCategoryHandler,
	subcategories *handler.AdminSubcategoryHandler,
	messages *handler.AdminMessageHandler,
) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("ADMIN"))

	g.GET("/products", products.List)
	g.POST("/products", products.Create)
	g.GET("/products/:id", products.Get)
	g.PUT("/products/:id", products.Update)
	g.POST("/products/:id/duplicate", products.Duplicate)
	g.DELETE("/products/:id", products.Delete)

	g.GET("/categories", categories.List)
	g.POST("/categories", categories.Create)
	g.PUT("/categories/:id", categories.Update)
	// Deleting a category cascades to its products; the response body
	// reports the count.
	g.DELETE("/categories/:id", categories.Delete)
	g.POST("/categories/:id/duplicate", categories.Duplicate)

	g.POST("/categories/:id/subcategories", subcategories.Create)
	g.PUT("/subcategories/:id", subcategories.Update)
	g.DELETE("/subcategories/:id", subcategories.Delete)

	g.GET("/messages", messages.List)
	g.PATCH("/messages/:id/read", messages.SetRead)
}
