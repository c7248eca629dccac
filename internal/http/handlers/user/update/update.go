// Package update implements the HTTP handler for partial user updates.
//
// PATCH and PUT behave identically: only the recognized fields present
// in the body are applied, and updated_at is always refreshed. An empty
// field set is rejected before the repository is ever called.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
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
	Update(ctx context.Context, id int64, fields models.UpdateFields) (int64, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Update a user
// @Description Applies a partial update over username, email and feature.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param request body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "no fields to update"
// @Failure 409 {object} response.ErrorResponse "update failed"
// @Router /users/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	// A malformed body yields an empty field set, same as an empty object.
	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("no fields to update"))
		return
	}

	fields := req.Fields()
	if fields.Empty() {
		log.Info("no recognized fields in request body")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("no fields to update"))
		return
	}

	if _, err := h.service.Update(r.Context(), id, fields); err != nil {
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(fmt.Sprintf("update failed: %v", err)))
		return
	}

	log.Info("user updated", slog.Int64("id", id))
	render.JSON(w, r, response.Message("updated"))
}
