package handlers

import (
	"IEats/internal/config"
	"IEats/internal/metrics"
	"IEats/internal/middleware"
	"IEats/internal/service"
	"context"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PingFunc проверяет доступность хранилища.
type PingFunc func(ctx context.Context) error

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	entryService *service.EntryService,
	wishlistService *service.WishlistService,
	ping PingFunc,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithObservability(m))
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	entryHandler := NewEntryHandler(entryService, logger, config)
	wishlistHandler := NewWishlistHandler(wishlistService, logger, config)
	restaurantHandler := NewRestaurantHandler(entryService, logger)
	healthHandler := NewHealthHandler(ping, logger)

	// Служебные
	r.Get("/api/health", healthHandler.Health)
	r.Method("GET", "/metrics", m.Handler())

	// User routes
	r.Post("/api/auth/register", userHandler.Register)
	r.Post("/api/auth/login", userHandler.Login)
	r.Post("/api/auth/logout", userHandler.Logout)
	r.Get("/api/me", userHandler.Me)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		// Entries
		r.Get("/api/entries", entryHandler.List)
		r.Post("/api/entries", entryHandler.Create)
		r.Put("/api/entries/{id}", entryHandler.Update)
		r.Delete("/api/entries/{id}", entryHandler.Delete)

		// Wishlist
		r.Get("/api/wishlist", wishlistHandler.List)
		r.Post("/api/wishlist", wishlistHandler.Create)
		r.Delete("/api/wishlist/{id}", wishlistHandler.Delete)

		// Производные представления
		r.Get("/api/restaurants", restaurantHandler.Restaurants)
		r.Get("/api/tags", restaurantHandler.Tags)
		r.Get("/api/stats", restaurantHandler.Stats)
		r.Get("/api/calendar", restaurantHandler.Calendar)
	})

	return &Handler{Router: r}
}
