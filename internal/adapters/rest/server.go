package rest

import (
	"context"
	"fmt"
	"net/http"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики, которые монтируются в роутер.
type Handlers struct {
	Properties *PropertyHandler
	Owners     *OwnerHandler
	Traces     *TraceHandler
	Auth       *AuthHandler
	Health     *HealthHandler
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает chi-роутер со всеми маршрутами /api.
func NewRouter(allowedOrigins []string, h Handlers, validateUC usecases_port.ValidateTokenUseCase, baseLogger port.LoggerPort) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Location", traceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.Properties.ListProperties)
			r.Get("/paginated", h.Properties.ListPropertiesPaginated)
			r.Get("/count", h.Properties.CountProperties)
			r.Post("/", h.Properties.CreateProperty)
			r.Get("/{id}", h.Properties.GetProperty)
			r.Put("/{id}", h.Properties.UpdateProperty)
			r.Delete("/{id}", h.Properties.DeleteProperty)
		})

		r.Route("/owners", func(r chi.Router) {
			r.Get("/", h.Owners.ListOwners)
			r.Post("/", h.Owners.CreateOwner)
			r.Get("/{id}", h.Owners.GetOwner)
		})

		r.Route("/propertytrace", func(r chi.Router) {
			r.Get("/", h.Traces.GetAllTraces)
			r.Post("/", h.Traces.CreateTrace)
			r.Get("/property/{propertyId}", h.Traces.GetTracesByProperty)
			r.Delete("/{traceId}", h.Traces.DeleteTrace)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/register", h.Auth.Register)

			r.Group(func(r chi.Router) {
				r.Use(AuthMiddleware(validateUC))

				r.Get("/profile", h.Auth.GetProfile)
				r.Put("/profile/update", h.Auth.UpdateProfile)
				r.Put("/preferences", h.Auth.UpdatePreferences)
				r.Get("/favorites", h.Auth.GetFavorites)
				r.Post("/favorites/{propertyId}", h.Auth.AddFavorite)
				r.Delete("/favorites/{propertyId}", h.Auth.RemoveFavorite)
			})
		})

		r.Get("/health", h.Health.Health)
		r.Get("/health/ping", h.Health.Ping)
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg ServerConfig, h Handlers, validateUC usecases_port.ValidateTokenUseCase, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg.AllowedOrigins, h, validateUC, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер и блокируется до его остановки.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
