package breed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spycats/internal/http/apierror"
)

// Lister is satisfied by *breed.Client.
type Lister interface {
	Breeds(ctx context.Context) ([]string, error)
}

type Handler struct {
	breeds Lister
}

func NewHandler(breeds Lister) *Handler {
	return &Handler{breeds: breeds}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type listResponse struct {
	Breeds []string `json:"breeds"`
	Total  int      `json:"total"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	names, err := h.breeds.Breeds(r.Context())
	if err != nil {
		slog.Warn("breed registry unavailable", "error", err)
		apierror.Write(w, http.StatusBadGateway, "breed registry unavailable")

		return
	}

	apierror.JSON(w, http.StatusOK, listResponse{Breeds: names, Total: len(names)})
}
