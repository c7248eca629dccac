// Package hello implements the greeting probe endpoint.
package hello

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/frolovda/user-registry/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Greeting probe
// @Tags Service
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /hello [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.Message("Hello from API!"))
}
