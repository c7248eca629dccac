// Package userregistry wires the service together: storage, schema,
// repository, service layer, router and the HTTP server lifecycle.
package userregistry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/frolovda/user-registry/internal/config"
	userservice "github.com/frolovda/user-registry/internal/services/user"
	"github.com/frolovda/user-registry/internal/storage"
	"github.com/frolovda/user-registry/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(ctx); err != nil {
		return nil, err
	}
	logger.Info("storage ready", slog.String("dialect", db.Dialect().String()))

	users := userservice.New(repository.NewUsers(db), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, users, cfg.UploadDir)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.Close()
		return err
	}
}
