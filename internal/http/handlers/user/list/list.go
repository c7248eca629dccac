// Package list implements the HTTP handler returning all users.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/frolovda/user-registry/internal/http/response"
	"github.com/frolovda/user-registry/internal/lib/sl"
	"github.com/frolovda/user-registry/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business operation behind the handler.
type Service interface {
	List(ctx context.Context) ([]models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List users
// @Description Returns all users ordered by id descending, newest first.
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} response.ErrorResponse
// @Router /users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("listed users", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
