// Package read implements the HTTP handler returning a single user by id.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/frolovda/user-registry/internal/http/response"
	"github.com/frolovda/user-registry/internal/lib/sl"
	"github.com/frolovda/user-registry/internal/models"
	"github.com/frolovda/user-registry/internal/storage"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business operation behind the handler.
type Service interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.User
// @Failure 400 {object} response.ErrorResponse "invalid id"
// @Failure 404 {object} response.ErrorResponse "not found"
// @Router /users/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if storage.IsNotFound(err) {
			log.Info("user not found", slog.Int64("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("not found"))
			return
		}
		log.Error("failed to read user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read user"))
		return
	}

	log.Info("read user", slog.Int64("id", id))
	render.JSON(w, r, user)
}
