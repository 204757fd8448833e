package mission

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
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/assign/{cat_id}", h.assign)
	r.Delete("/{id}", h.delete)
}

type targetRequest struct {
	Name    string  `json:"name" validate:"notblank,max=100"`
	Country string  `json:"country" validate:"notblank,max=100"`
	Notes   *string `json:"notes" validate:"omitempty,max=1000"`
}

type createMissionRequest struct {
	Targets []targetRequest `json:"targets" validate:"required,min=1,max=3,dive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMissionRequest
	if err := apierror.Decode(r, &req); err != nil {
		apierror.Error(w, r, err)
		return
	}

	params := make([]agency.TargetParams, len(req.Targets))
	for i, t := range req.Targets {
		params[i] = agency.TargetParams{Name: t.Name, Country: t.Country, Notes: t.Notes}
	}

	m, err := h.svc.CreateMission(r.Context(), params)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := request.Page(r)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	missions, total, err := h.svc.ListMissions(r.Context(), page)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, listResponse{Missions: toResponseList(missions), Total: total})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	m, err := h.svc.GetMission(r.Context(), id)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	catID, err := request.ID(r, "cat_id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	m, err := h.svc.AssignCat(r.Context(), id, catID)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, toResponse(m))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteMission(r.Context(), id); err != nil {
		apierror.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
