package target

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

type Response struct {
	ID          uuid.UUID  `json:"id"`
	MissionID   uuid.UUID  `json:"mission_id"`
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Notes       *string    `json:"notes"`
	IsComplete  bool       `json:"is_complete"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ToResponse(t *agency.Target) Response {
	return Response{
		ID:          t.ID,
		MissionID:   t.MissionID,
		Name:        t.Name,
		Country:     t.Country,
		Notes:       t.Notes,
		IsComplete:  t.IsComplete,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
