package agency

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=agency
type Repository interface {
	// Begin opens the transaction a single engine operation runs in.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is the store surface available inside one transaction. Lock* methods
// take a row lock held until Commit or Rollback.
type Tx interface {
	InsertCat(ctx context.Context, cat *Cat) error
	GetCat(ctx context.Context, id uuid.UUID) (*Cat, error)
	LockCat(ctx context.Context, id uuid.UUID) (*Cat, error)
	ListCats(ctx context.Context, page Page) ([]*Cat, int, error)
	UpdateCat(ctx context.Context, cat *Cat) error
	DeleteCat(ctx context.Context, id uuid.UUID) error
	ActiveMissionIDs(ctx context.Context, catID uuid.UUID) ([]uuid.UUID, error)
	DetachMissions(ctx context.Context, catID uuid.UUID) (int64, error)

	InsertMission(ctx context.Context, mission *Mission) error
	GetMission(ctx context.Context, id uuid.UUID) (*Mission, error)
	LockMission(ctx context.Context, id uuid.UUID) (*Mission, error)
	ListMissions(ctx context.Context, page Page) ([]*Mission, int, error)
	UpdateMission(ctx context.Context, mission *Mission) error
	DeleteMission(ctx context.Context, id uuid.UUID) error

	InsertTarget(ctx context.Context, target *Target) error
	GetTarget(ctx context.Context, id uuid.UUID) (*Target, error)
	UpdateTarget(ctx context.Context, target *Target) error
	DeleteTargets(ctx context.Context, missionID uuid.UUID) (int64, error)
	CountIncompleteTargets(ctx context.Context, missionID uuid.UUID) (int, error)

	Commit() error
	Rollback() error
}

// BreedOracle decides whether a breed may be used for a new cat.
type BreedOracle interface {
	Admit(ctx context.Context, breed string) bool
}

// Service is the consistency engine. Every operation runs in exactly one
// store transaction.
type Service struct {
	repo   Repository
	breeds BreedOracle
	now    func() time.Time
}

func NewService(repo Repository, breeds BreedOracle) *Service {
	return &Service{repo: repo, breeds: breeds, now: time.Now}
}

// WithClock replaces the clock used for completion timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) inTx(ctx context.Context, op string, fn func(tx Tx) error) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return wrapStoreError(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return wrapStoreError(op, err)
	}

	if err := tx.Commit(); err != nil {
		return wrapStoreError(op, fmt.Errorf("committing transaction: %w", err))
	}

	return nil
}

type CreateCatParams struct {
	Name              string
	YearsOfExperience int
	Breed             string
	Salary            decimal.Decimal
}

func (p CreateCatParams) normalized() CreateCatParams {
	p.Name = strings.TrimSpace(p.Name)
	p.Breed = strings.TrimSpace(p.Breed)

	return p
}

// CreateCat admits the breed before opening the transaction that persists the cat.
func (s *Service) CreateCat(ctx context.Context, params CreateCatParams) (*Cat, error) {
	params = params.normalized()
	if err := validateCat(params); err != nil {
		return nil, err
	}

	if !s.breeds.Admit(ctx, params.Breed) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidBreed, params.Breed)
	}

	cat := &Cat{
		Name:              params.Name,
		YearsOfExperience: params.YearsOfExperience,
		Breed:             params.Breed,
		Salary:            params.Salary,
	}

	err := s.inTx(ctx, "creating cat", func(tx Tx) error {
		return tx.InsertCat(ctx, cat)
	})
	if err != nil {
		return nil, err
	}

	return cat, nil
}

func (s *Service) GetCat(ctx context.Context, id uuid.UUID) (*Cat, error) {
	var cat *Cat

	err := s.inTx(ctx, "getting cat", func(tx Tx) error {
		var err error

		cat, err = tx.GetCat(ctx, id)

		return notFound("cat", id, err)
	})
	if err != nil {
		return nil, err
	}

	return cat, nil
}

func (s *Service) ListCats(ctx context.Context, page Page) ([]*Cat, int, error) {
	var (
		cats  []*Cat
		total int
	)

	err := s.inTx(ctx, "listing cats", func(tx Tx) error {
		var err error

		cats, total, err = tx.ListCats(ctx, page.normalized())

		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return cats, total, nil
}

// UpdateCatSalary overwrites the salary; no other cat field is mutable.
func (s *Service) UpdateCatSalary(ctx context.Context, id uuid.UUID, salary decimal.Decimal) (*Cat, error) {
	if err := validateSalary(salary); err != nil {
		return nil, err
	}

	var cat *Cat

	err := s.inTx(ctx, "updating cat salary", func(tx Tx) error {
		var err error

		cat, err = tx.LockCat(ctx, id)
		if err != nil {
			return notFound("cat", id, err)
		}

		cat.Salary = salary

		return tx.UpdateCat(ctx, cat)
	})
	if err != nil {
		return nil, err
	}

	return cat, nil
}

// CatAvailability reports whether the cat can take a new mission.
func (s *Service) CatAvailability(ctx context.Context, id uuid.UUID) (bool, error) {
	var available bool

	err := s.inTx(ctx, "checking cat availability", func(tx Tx) error {
		if _, err := tx.GetCat(ctx, id); err != nil {
			return notFound("cat", id, err)
		}

		active, err := tx.ActiveMissionIDs(ctx, id)
		if err != nil {
			return err
		}

		available = len(active) == 0

		return nil
	})
	if err != nil {
		return false, err
	}

	return available, nil
}

// DeleteCat refuses while the cat owns an active mission and detaches the rest.
func (s *Service) DeleteCat(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, "deleting cat", func(tx Tx) error {
		if _, err := tx.LockCat(ctx, id); err != nil {
			return notFound("cat", id, err)
		}

		active, err := tx.ActiveMissionIDs(ctx, id)
		if err != nil {
			return err
		}

		if err := CanDeleteCat(CatDeleteContext{CatID: id, ActiveMissions: len(active)}).Err(); err != nil {
			return err
		}

		detached, err := CatMissions.release(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := tx.DeleteCat(ctx, id); err != nil {
			return err
		}

		slog.Debug("cat deleted", "cat_id", id, "detached_missions", detached)

		return nil
	})
}

type TargetParams struct {
	Name    string
	Country string
	Notes   *string
}

// CreateMission creates an unassigned mission together with its full target set.
func (s *Service) CreateMission(ctx context.Context, targets []TargetParams) (*Mission, error) {
	normalized := make([]TargetParams, len(targets))
	for i, t := range targets {
		normalized[i] = TargetParams{
			Name:    strings.TrimSpace(t.Name),
			Country: strings.TrimSpace(t.Country),
		}

		if t.Notes != nil {
			normalized[i].Notes = NormalizeNotes(*t.Notes)
		}
	}

	if err := validateTargets(normalized); err != nil {
		return nil, err
	}

	var mission *Mission

	err := s.inTx(ctx, "creating mission", func(tx Tx) error {
		m := &Mission{}
		if err := tx.InsertMission(ctx, m); err != nil {
			return err
		}

		for _, p := range normalized {
			t := &Target{
				MissionID: m.ID,
				Name:      p.Name,
				Country:   p.Country,
				Notes:     p.Notes,
			}
			if err := tx.InsertTarget(ctx, t); err != nil {
				return err
			}
		}

		var err error

		mission, err = tx.GetMission(ctx, m.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return mission, nil
}

func (s *Service) GetMission(ctx context.Context, id uuid.UUID) (*Mission, error) {
	var mission *Mission

	err := s.inTx(ctx, "getting mission", func(tx Tx) error {
		var err error

		mission, err = tx.GetMission(ctx, id)

		return notFound("mission", id, err)
	})
	if err != nil {
		return nil, err
	}

	return mission, nil
}

func (s *Service) ListMissions(ctx context.Context, page Page) ([]*Mission, int, error) {
	var (
		missions []*Mission
		total    int
	)

	err := s.inTx(ctx, "listing missions", func(tx Tx) error {
		var err error

		missions, total, err = tx.ListMissions(ctx, page.normalized())

		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return missions, total, nil
}

// AssignCat sets the mission's cat. The cat row is locked first so two
// concurrent assignments to the same cat serialize on it.
func (s *Service) AssignCat(ctx context.Context, missionID, catID uuid.UUID) (*Mission, error) {
	var mission *Mission

	err := s.inTx(ctx, "assigning cat", func(tx Tx) error {
		if _, err := tx.LockCat(ctx, catID); err != nil {
			return notFound("cat", catID, err)
		}

		m, err := tx.LockMission(ctx, missionID)
		if err != nil {
			return notFound("mission", missionID, err)
		}

		active, err := tx.ActiveMissionIDs(ctx, catID)
		if err != nil {
			return err
		}

		others := slices.DeleteFunc(active, func(id uuid.UUID) bool { return id == missionID })

		guard := CanAssignCat(AssignContext{
			MissionID:           missionID,
			MissionComplete:     m.IsComplete,
			CatID:               catID,
			OtherActiveMissions: len(others),
		})
		if err := guard.Err(); err != nil {
			return err
		}

		if m.CatID == nil || *m.CatID != catID {
			m.CatID = &catID
			if err := tx.UpdateMission(ctx, m); err != nil {
				return err
			}
		}

		mission, err = tx.GetMission(ctx, missionID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return mission, nil
}

// DeleteMission refuses while a cat is assigned and cascades to the targets.
func (s *Service) DeleteMission(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, "deleting mission", func(tx Tx) error {
		m, err := tx.LockMission(ctx, id)
		if err != nil {
			return notFound("mission", id, err)
		}

		if err := CanDeleteMission(MissionDeleteContext{MissionID: id, CatID: m.CatID}).Err(); err != nil {
			return err
		}

		removed, err := MissionTargets.release(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := tx.DeleteMission(ctx, id); err != nil {
			return err
		}

		slog.Debug("mission deleted", "mission_id", id, "deleted_targets", removed)

		return nil
	})
}

func (s *Service) GetTarget(ctx context.Context, id uuid.UUID) (*Target, error) {
	var target *Target

	err := s.inTx(ctx, "getting target", func(tx Tx) error {
		var err error

		target, err = tx.GetTarget(ctx, id)

		return notFound("target", id, err)
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// UpdateTargetParams carries the optional fields of a target update; nil means unchanged.
type UpdateTargetParams struct {
	Notes      *string
	IsComplete *bool
}

// UpdateTarget edits notes under the notes lock and/or sets the completion
// flag, recomputing the owning mission's completion when the flag changes.
func (s *Service) UpdateTarget(ctx context.Context, id uuid.UUID, params UpdateTargetParams) (*Target, error) {
	var target *Target

	err := s.inTx(ctx, "updating target", func(tx Tx) error {
		t, err := tx.GetTarget(ctx, id)
		if err != nil {
			return notFound("target", id, err)
		}

		m, err := tx.LockMission(ctx, t.MissionID)
		if err != nil {
			return err
		}

		// Re-read under the mission lock.
		t, err = tx.GetTarget(ctx, id)
		if err != nil {
			return notFound("target", id, err)
		}

		if params.Notes == nil && params.IsComplete == nil {
			target = t
			return nil
		}

		if params.Notes != nil {
			guard := CanEditNotes(NotesContext{
				TargetID:        t.ID,
				TargetComplete:  t.IsComplete,
				MissionComplete: m.IsComplete,
			})
			if err := guard.Err(); err != nil {
				return err
			}

			t.Notes = NormalizeNotes(*params.Notes)
		}

		if params.IsComplete != nil {
			ApplyTargetCompletion(t, *params.IsComplete, s.now())
		}

		if err := tx.UpdateTarget(ctx, t); err != nil {
			return err
		}

		if params.IsComplete != nil {
			if err := s.recomputeMission(ctx, tx, m); err != nil {
				return err
			}
		}

		target = t

		return nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// recomputeMission re-derives the mission's completion from its targets.
func (s *Service) recomputeMission(ctx context.Context, tx Tx, m *Mission) error {
	incomplete, err := tx.CountIncompleteTargets(ctx, m.ID)
	if err != nil {
		return err
	}

	wasComplete := m.IsComplete
	if !ApplyMissionCompletion(m, incomplete, s.now()) {
		return nil
	}

	if wasComplete && m.CatID != nil {
		active, err := tx.ActiveMissionIDs(ctx, *m.CatID)
		if err != nil {
			return err
		}

		others := slices.DeleteFunc(active, func(id uuid.UUID) bool { return id == m.ID })

		guard := CanReopenMission(ReopenContext{
			MissionID:           m.ID,
			CatID:               m.CatID,
			OtherActiveMissions: len(others),
		})
		if err := guard.Err(); err != nil {
			return err
		}
	}

	return tx.UpdateMission(ctx, m)
}
