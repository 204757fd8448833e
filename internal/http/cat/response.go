package cat

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

type Response struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	YearsOfExperience int         `json:"years_of_experience"`
	Breed             string      `json:"breed"`
	Salary            json.Number `json:"salary"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type listResponse struct {
	Cats  []Response `json:"cats"`
	Total int        `json:"total"`
}

type availabilityResponse struct {
	CatID     string `json:"cat_id"`
	Available bool   `json:"available"`
}

// ToResponse is shared with the mission handler, which embeds the assigned cat.
func ToResponse(cat *agency.Cat) Response {
	return Response{
		ID:                cat.ID,
		Name:              cat.Name,
		YearsOfExperience: cat.YearsOfExperience,
		Breed:             cat.Breed,
		Salary:            json.Number(cat.Salary.StringFixed(2)),
		CreatedAt:         cat.CreatedAt,
		UpdatedAt:         cat.UpdatedAt,
	}
}

func toResponseList(cats []*agency.Cat) []Response {
	resp := make([]Response, len(cats))
	for i, c := range cats {
		resp[i] = ToResponse(c)
	}

	return resp
}
