package agency

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxSalary is the first value that no longer fits NUMERIC(10,2).
var maxSalary = decimal.New(1, 8)

// GuardResult is the outcome of evaluating a lifecycle rule.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Err returns nil when allowed and an ErrConflict otherwise.
func (r GuardResult) Err() error {
	if r.Allowed {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrConflict, r.Reason)
}

func allow() GuardResult { return GuardResult{Allowed: true} }

func deny(format string, args ...any) GuardResult {
	return GuardResult{Reason: fmt.Sprintf(format, args...)}
}

// CatDeleteContext is populated by the service with the cat's active missions.
type CatDeleteContext struct {
	CatID          uuid.UUID
	ActiveMissions int
}

// CanDeleteCat: a cat with an active mission cannot be deleted.
func CanDeleteCat(ctx CatDeleteContext) GuardResult {
	if ctx.ActiveMissions > 0 {
		return deny("cat %s has an active mission", ctx.CatID)
	}

	return allow()
}

// AssignContext describes a requested cat assignment.
type AssignContext struct {
	MissionID       uuid.UUID
	MissionComplete bool
	CatID           uuid.UUID
	// OtherActiveMissions counts the cat's incomplete missions excluding this one.
	OtherActiveMissions int
}

// CanAssignCat: only incomplete missions can be assigned, and only to a cat
// without another active mission.
func CanAssignCat(ctx AssignContext) GuardResult {
	if ctx.MissionComplete {
		return deny("mission %s is already complete", ctx.MissionID)
	}

	if ctx.OtherActiveMissions > 0 {
		return deny("cat %s already has an active mission", ctx.CatID)
	}

	return allow()
}

// MissionDeleteContext describes a mission about to be deleted.
type MissionDeleteContext struct {
	MissionID uuid.UUID
	CatID     *uuid.UUID
}

// CanDeleteMission: assigned missions cannot be deleted, complete or not.
func CanDeleteMission(ctx MissionDeleteContext) GuardResult {
	if ctx.CatID != nil {
		return deny("mission %s is assigned to cat %s", ctx.MissionID, *ctx.CatID)
	}

	return allow()
}

// NotesContext describes the lock state of a target's notes.
type NotesContext struct {
	TargetID        uuid.UUID
	TargetComplete  bool
	MissionComplete bool
}

// CanEditNotes: notes are frozen once the target or its mission is complete.
func CanEditNotes(ctx NotesContext) GuardResult {
	if ctx.TargetComplete {
		return deny("target %s is complete, notes are locked", ctx.TargetID)
	}

	if ctx.MissionComplete {
		return deny("mission of target %s is complete, notes are locked", ctx.TargetID)
	}

	return allow()
}

// ReopenContext describes a complete mission about to become incomplete again.
type ReopenContext struct {
	MissionID           uuid.UUID
	CatID               *uuid.UUID
	OtherActiveMissions int
}

// CanReopenMission: reopening must not give the assigned cat a second active mission.
func CanReopenMission(ctx ReopenContext) GuardResult {
	if ctx.CatID != nil && ctx.OtherActiveMissions > 0 {
		return deny("cat %s already has another active mission, mission %s cannot be reopened", *ctx.CatID, ctx.MissionID)
	}

	return allow()
}

// ApplyMissionCompletion derives the mission's completion from the number of
// incomplete targets. It reports whether the mission changed.
func ApplyMissionCompletion(m *Mission, incompleteTargets int, now time.Time) bool {
	complete := incompleteTargets == 0
	if complete == m.IsComplete {
		return false
	}

	m.IsComplete = complete
	if complete {
		m.CompletedAt = &now
	} else {
		m.CompletedAt = nil
	}

	return true
}

// ApplyTargetCompletion sets the completion flag, stamping or clearing
// CompletedAt only on an actual transition.
func ApplyTargetCompletion(t *Target, complete bool, now time.Time) bool {
	if t.IsComplete == complete {
		return false
	}

	t.IsComplete = complete
	if complete {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	return true
}

// NormalizeNotes trims notes; blank notes become nil.
func NormalizeNotes(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	return &s
}

func validateCat(p CreateCatParams) error {
	if p.Name == "" {
		return validationError("name must not be blank")
	}

	if p.Breed == "" {
		return validationError("breed must not be blank")
	}

	if p.YearsOfExperience < MinExperience || p.YearsOfExperience > MaxExperience {
		return validationError("years of experience must be between %d and %d", MinExperience, MaxExperience)
	}

	return validateSalary(p.Salary)
}

func validateSalary(salary decimal.Decimal) error {
	if !salary.IsPositive() {
		return validationError("salary must be positive")
	}

	if !salary.Equal(salary.Truncate(2)) {
		return validationError("salary must have at most 2 decimal places")
	}

	if salary.GreaterThanOrEqual(maxSalary) {
		return validationError("salary must be less than %s", maxSalary)
	}

	return nil
}

func validateTargets(targets []TargetParams) error {
	if len(targets) < MinTargets || len(targets) > MaxTargets {
		return validationError("mission must have between %d and %d targets, got %d", MinTargets, MaxTargets, len(targets))
	}

	seen := make(map[string]struct{}, len(targets))

	for i, t := range targets {
		if t.Name == "" {
			return validationError("target %d: name must not be blank", i+1)
		}

		if t.Country == "" {
			return validationError("target %d: country must not be blank", i+1)
		}

		if _, dup := seen[t.Name]; dup {
			return validationError("duplicate target %q", t.Name)
		}

		seen[t.Name] = struct{}{}
	}

	return nil
}
