package target

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
	"github.com/MrJamesThe3rd/spycats/internal/http/apierror"
	"github.com/MrJamesThe3rd/spycats/internal/http/request"
)

type Handler struct {
	svc *agency.Service
}

func NewHandler(svc *agency.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	t, err := h.svc.GetTarget(r.Context(), id)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, ToResponse(t))
}

// updateTargetRequest fields are optional; omitted means unchanged.
type updateTargetRequest struct {
	Notes      *string `json:"notes" validate:"omitempty,max=1000"`
	IsComplete *bool   `json:"is_complete"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	var req updateTargetRequest
	if err := apierror.Decode(r, &req); err != nil {
		apierror.Error(w, r, err)
		return
	}

	t, err := h.svc.UpdateTarget(r.Context(), id, agency.UpdateTargetParams{
		Notes:      req.Notes,
		IsComplete: req.IsComplete,
	})
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, ToResponse(t))
}
