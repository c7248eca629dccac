package userregistry

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/frolovda/user-registry/internal/http/handlers/hello"
	"github.com/frolovda/user-registry/internal/http/handlers/upload"
	"github.com/frolovda/user-registry/internal/http/handlers/user/create"
	"github.com/frolovda/user-registry/internal/http/handlers/user/list"
	"github.com/frolovda/user-registry/internal/http/handlers/user/read"
	"github.com/frolovda/user-registry/internal/http/handlers/user/remove"
	"github.com/frolovda/user-registry/internal/http/handlers/user/update"
	userservice "github.com/frolovda/user-registry/internal/services/user"
)

// RegisterRoutes registers all application routes.
func RegisterRoutes(r chi.Router, logger *slog.Logger, users *userservice.Service, uploadDir string) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Get("/hello", hello.New(logger).ServeHTTP)
	r.Post("/upload", upload.New(logger, uploadDir).ServeHTTP)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", create.New(logger, users).ServeHTTP)
		r.Get("/", list.New(logger, users).ServeHTTP)
		r.Get("/{id}", read.New(logger, users).ServeHTTP)
		r.Patch("/{id}", update.New(logger, users).ServeHTTP)
		r.Put("/{id}", update.New(logger, users).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, users).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
