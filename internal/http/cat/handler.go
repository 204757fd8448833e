package cat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

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
	r.Get("/{id}/availability", h.availability)
	r.Patch("/{id}", h.updateSalary)
	r.Delete("/{id}", h.delete)
}

type createCatRequest struct {
	Name              string           `json:"name" validate:"notblank,max=100"`
	YearsOfExperience *int             `json:"years_of_experience" validate:"required,min=0,max=50"`
	Breed             string           `json:"breed" validate:"notblank,max=100"`
	Salary            *decimal.Decimal `json:"salary" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCatRequest
	if err := apierror.Decode(r, &req); err != nil {
		apierror.Error(w, r, err)
		return
	}

	cat, err := h.svc.CreateCat(r.Context(), agency.CreateCatParams{
		Name:              req.Name,
		YearsOfExperience: *req.YearsOfExperience,
		Breed:             req.Breed,
		Salary:            *req.Salary,
	})
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusCreated, ToResponse(cat))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := request.Page(r)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	cats, total, err := h.svc.ListCats(r.Context(), page)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, listResponse{Cats: toResponseList(cats), Total: total})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	cat, err := h.svc.GetCat(r.Context(), id)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, ToResponse(cat))
}

func (h *Handler) availability(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	available, err := h.svc.CatAvailability(r.Context(), id)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, availabilityResponse{CatID: id.String(), Available: available})
}

type updateSalaryRequest struct {
	Salary *decimal.Decimal `json:"salary" validate:"required"`
}

func (h *Handler) updateSalary(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	var req updateSalaryRequest
	if err := apierror.Decode(r, &req); err != nil {
		apierror.Error(w, r, err)
		return
	}

	cat, err := h.svc.UpdateCatSalary(r.Context(), id, *req.Salary)
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	apierror.JSON(w, http.StatusOK, ToResponse(cat))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.ID(r, "id")
	if err != nil {
		apierror.Error(w, r, err)
		return
	}

	if err := h.svc.DeleteCat(r.Context(), id); err != nil {
		apierror.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
