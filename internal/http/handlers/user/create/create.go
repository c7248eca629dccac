// Package create implements the HTTP handler for creating users.
//
// The handler decodes the JSON body, validates the required fields,
// delegates to the user service and maps constraint violations from the
// store to 409 Conflict with the violation text included.
package create

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/frolovda/user-registry/internal/http/response"
	"github.com/frolovda/user-registry/internal/lib/sl"
	"github.com/frolovda/user-registry/internal/models"
)

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service describes the business operation behind the handler.
type Service interface {
	Create(ctx context.Context, req models.CreateUserRequest) error
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "New user"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "username and email are required"
// @Failure 409 {object} response.ErrorResponse "insert failed"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// A malformed body is handled the same way as missing fields.
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username and email are required"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("username and email are required"))
		return
	}

	if err := h.service.Create(r.Context(), req); err != nil {
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error(fmt.Sprintf("insert failed: %v", err)))
		return
	}

	log.Info("user created", slog.String("username", req.Username))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.Message("created"))
}
