package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/storefront-seed/internal/api/handlers"
	"github.com/isdelr/storefront-seed/internal/services"
)

// Options carries the router's non-service settings.
type Options struct {
	AllowedOrigins []string
	SeedUserCount  int
	Ping           func() error
}

// NewRouter creates and configures a new Chi router.
func NewRouter(
	productService services.ProductServiceProvider,
	userService services.UserServiceProvider,
	eventService services.EventServiceProvider,
	seeder handlers.Seeding,
	opts Options,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	productHandler := handlers.NewProductHandler(productService)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	generateHandler := handlers.NewGenerateHandler(seeder, eventService, opts.SeedUserCount)

	r.Get("/", handlers.Home)
	if opts.Ping != nil {
		r.Get("/healthz", handlers.Health(opts.Ping))
	}

	r.Get("/generate-users", generateHandler.Users)
	r.Get("/generate-products", generateHandler.Products)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.GetAll)
		r.Get("/search", productHandler.Search)
		r.Get("/{id}", productHandler.Get)
	})

	r.Get("/users", userHandler.GetAll)
	r.Get("/seed-events", eventHandler.GetRecent)

	return r
}
