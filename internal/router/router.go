// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/config"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/handler"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/middleware"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Movies  *handler.MovieHandler
	Session *handler.SessionHandler
	Orders  *handler.OrderHandler
	Health  *handler.HealthHandler
}

// RegisterRoutes registers every endpoint on the provided Echo instance.
//
// Layout:
//
//	/healthz                      liveness, no auth
//	/v1/auth/*                    register, login, refresh; no auth
//	/v1/*                         everything else behind TokenAuth
//
// Catalog resources additionally run the admin-or-read-only policy, so
// any authenticated user can read them but only staff can write. Orders
// and the profile run the authenticated-only policy and scope results to
// the caller inside the handlers.
func RegisterRoutes(e *echo.Echo, h Handlers, cfg *config.Config, rdb *redis.Client) {
	e.GET("/healthz", h.Health.Health)

	// Rate limiting covers everything under /v1, keyed per user when a
	// token is present and per client IP otherwise. With Redis down the
	// limiter fails open. The health probe stays unthrottled.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	auth := e.Group("/v1/auth", limiter)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// TokenAuth runs before the limiter so rate keys can be per-user.
	v1 := e.Group("/v1")
	v1.Use(middleware.TokenAuth(cfg.JWTSecret))
	v1.Use(limiter)

	v1.GET("/me", h.Auth.Me)
	me := v1.Group("/me")
	me.Use(middleware.AuthenticatedOnly())
	me.PUT("", h.Auth.UpdateMe)
	me.PATCH("", h.Auth.UpdateMe)

	// Catalog: reads are cached in Redis, writes are staff-only.
	catalog := v1.Group("")
	catalog.Use(middleware.AdminOrReadOnly())
	catalog.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	catalog.GET("/genres", h.Catalog.ListGenres)
	catalog.POST("/genres", h.Catalog.CreateGenre)
	catalog.GET("/actors", h.Catalog.ListActors)
	catalog.POST("/actors", h.Catalog.CreateActor)
	catalog.GET("/cinema-halls", h.Catalog.ListHalls)
	catalog.POST("/cinema-halls", h.Catalog.CreateHall)

	catalog.GET("/movies", h.Movies.List)
	catalog.POST("/movies", h.Movies.Create)
	catalog.GET("/movies/:id", h.Movies.Retrieve)
	catalog.POST("/movies/:id/upload-image", h.Movies.UploadImage)

	catalog.GET("/movie-sessions", h.Session.List)
	catalog.POST("/movie-sessions", h.Session.Create)
	catalog.GET("/movie-sessions/:id", h.Session.Retrieve)
	catalog.PUT("/movie-sessions/:id", h.Session.Update)
	catalog.PATCH("/movie-sessions/:id", h.Session.Update)
	catalog.DELETE("/movie-sessions/:id", h.Session.Delete)

	orders := v1.Group("/orders")
	orders.Use(middleware.AuthenticatedOnly())
	orders.GET("", h.Orders.List)
	orders.POST("", h.Orders.Create)
}
