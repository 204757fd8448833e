package agency

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MinTargets = 1
	MaxTargets = 3

	MinExperience = 0
	MaxExperience = 50

	DefaultPageLimit = 100
	MaxPageLimit     = 100
)

// Cat represents a field agent.
type Cat struct {
	ID                uuid.UUID
	Name              string
	YearsOfExperience int
	Breed             string
	Salary            decimal.Decimal
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Mission groups one to three targets and is optionally assigned to a cat.
type Mission struct {
	ID          uuid.UUID
	CatID       *uuid.UUID
	Cat         *Cat // Loaded via JOIN
	IsComplete  bool
	CompletedAt *time.Time
	Targets     []*Target
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assigned reports whether the mission references a cat.
func (m *Mission) Assigned() bool {
	return m.CatID != nil
}

// Target is a single objective of a mission.
type Target struct {
	ID          uuid.UUID
	MissionID   uuid.UUID
	Name        string
	Country     string
	Notes       *string
	IsComplete  bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Page selects a window of a listing.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) normalized() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}

	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}

	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}

	return p
}
