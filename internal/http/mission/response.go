package mission

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
	"github.com/MrJamesThe3rd/spycats/internal/http/cat"
	"github.com/MrJamesThe3rd/spycats/internal/http/target"
)

type missionResponse struct {
	ID          uuid.UUID         `json:"id"`
	CatID       *uuid.UUID        `json:"cat_id"`
	Cat         *cat.Response     `json:"cat"`
	IsComplete  bool              `json:"is_complete"`
	CompletedAt *time.Time        `json:"completed_at"`
	Targets     []target.Response `json:"targets"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type listResponse struct {
	Missions []missionResponse `json:"missions"`
	Total    int               `json:"total"`
}

func toResponse(m *agency.Mission) missionResponse {
	resp := missionResponse{
		ID:          m.ID,
		CatID:       m.CatID,
		IsComplete:  m.IsComplete,
		CompletedAt: m.CompletedAt,
		Targets:     make([]target.Response, len(m.Targets)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.Cat != nil {
		c := cat.ToResponse(m.Cat)
		resp.Cat = &c
	}

	for i, t := range m.Targets {
		resp.Targets[i] = target.ToResponse(t)
	}

	return resp
}

func toResponseList(missions []*agency.Mission) []missionResponse {
	resp := make([]missionResponse, len(missions))
	for i, m := range missions {
		resp[i] = toResponse(m)
	}

	return resp
}
