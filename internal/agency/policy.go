package agency

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DeletePolicy decides what happens to children when their parent is deleted.
type DeletePolicy int

const (
	// PolicyRestrict leaves children untouched; guards must have refused the delete already.
	PolicyRestrict DeletePolicy = iota
	// PolicyDetach clears the children's reference to the parent.
	PolicyDetach
	// PolicyCascade deletes the children together with the parent.
	PolicyCascade
)

func (p DeletePolicy) String() string {
	switch p {
	case PolicyRestrict:
		return "restrict"
	case PolicyDetach:
		return "detach"
	case PolicyCascade:
		return "cascade"
	}

	return fmt.Sprintf("DeletePolicy(%d)", int(p))
}

type childOp func(ctx context.Context, tx Tx, parentID uuid.UUID) (int64, error)

// Relationship binds a parent/child pair to its delete policy.
type Relationship struct {
	Name     string
	OnDelete DeletePolicy

	detach childOp
	remove childOp
}

var (
	// CatMissions: deleting a cat detaches its (completed) missions.
	CatMissions = Relationship{
		Name:     "cat.missions",
		OnDelete: PolicyDetach,
		detach: func(ctx context.Context, tx Tx, catID uuid.UUID) (int64, error) {
			return tx.DetachMissions(ctx, catID)
		},
	}

	// MissionTargets: deleting a mission deletes its targets.
	MissionTargets = Relationship{
		Name:     "mission.targets",
		OnDelete: PolicyCascade,
		remove: func(ctx context.Context, tx Tx, missionID uuid.UUID) (int64, error) {
			return tx.DeleteTargets(ctx, missionID)
		},
	}
)

// release applies the relationship's policy to the children of parentID and
// returns how many children were affected.
func (r Relationship) release(ctx context.Context, tx Tx, parentID uuid.UUID) (int64, error) {
	var op childOp

	switch r.OnDelete {
	case PolicyRestrict:
		return 0, nil
	case PolicyDetach:
		op = r.detach
	case PolicyCascade:
		op = r.remove
	}

	if op == nil {
		return 0, fmt.Errorf("relationship %s does not support %s", r.Name, r.OnDelete)
	}

	n, err := op(ctx, tx, parentID)
	if err != nil {
		return 0, fmt.Errorf("applying %s policy to %s: %w", r.OnDelete, r.Name, err)
	}

	return n, nil
}
