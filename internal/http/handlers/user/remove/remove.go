// Package remove implements the HTTP handler deleting a user by id.
package remove

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/frolovda/user-registry/internal/http/response"
	"github.com/frolovda/user-registry/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the business operation behind the handler.
type Service interface {
	Delete(ctx context.Context, id int64) (int64, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Delete a user
// @Description Deleting a missing id still reports success.
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "invalid id"
// @Failure 409 {object} response.ErrorResponse "delete failed"
// @Router /users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

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

	count, err := h.service.Delete(r.Context(), id)
	if err != nil {
		log.Error("failed to delete user", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(fmt.Sprintf("delete failed: %v", err)))
		return
	}

	log.Info("user deleted", slog.Int64("id", id), slog.Int64("rows", count))
	render.JSON(w, r, response.Message("deleted"))
}
