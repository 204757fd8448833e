// Package memstore is an in-process agency.Repository with the same
// constraints as the Postgres schema. Transactions are fully serialized.
package memstore

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

var _ agency.Repository = (*Store)(nil)

type Store struct {
	sem   chan struct{}
	state *state
	now   func() time.Time
}

func New() *Store {
	return &Store{
		sem:   make(chan struct{}, 1),
		state: newState(),
		now:   time.Now,
	}
}

// WithClock replaces the clock used for created/updated timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Begin blocks until no other transaction is open.
func (s *Store) Begin(ctx context.Context) (agency.Tx, error) {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for transaction: %w", ctx.Err())
	}

	return &tx{store: s, work: s.state.clone()}, nil
}

type row[T any] struct {
	val T
	seq int64
}

type state struct {
	seq      int64
	cats     map[uuid.UUID]row[agency.Cat]
	missions map[uuid.UUID]row[agency.Mission]
	targets  map[uuid.UUID]row[agency.Target]
}

func newState() *state {
	return &state{
		cats:     make(map[uuid.UUID]row[agency.Cat]),
		missions: make(map[uuid.UUID]row[agency.Mission]),
		targets:  make(map[uuid.UUID]row[agency.Target]),
	}
}

// clone is shallow: stored values are replaced, never mutated in place.
func (s *state) clone() *state {
	c := &state{seq: s.seq}
	c.cats = make(map[uuid.UUID]row[agency.Cat], len(s.cats))
	c.missions = make(map[uuid.UUID]row[agency.Mission], len(s.missions))
	c.targets = make(map[uuid.UUID]row[agency.Target], len(s.targets))

	for k, v := range s.cats {
		c.cats[k] = v
	}

	for k, v := range s.missions {
		c.missions[k] = v
	}

	for k, v := range s.targets {
		c.targets[k] = v
	}

	return c
}

func (s *state) next() int64 {
	s.seq++
	return s.seq
}

type tx struct {
	store *Store
	work  *state
	done  bool
}

func (t *tx) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}

	t.store.state = t.work
	t.finish()

	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}

	t.finish()

	return nil
}

func (t *tx) finish() {
	t.done = true
	<-t.store.sem
}

func (t *tx) now() time.Time {
	return t.store.now().UTC()
}

func ptr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

func copyCat(c agency.Cat) *agency.Cat {
	return &c
}

func copyMission(m agency.Mission) *agency.Mission {
	m.CatID = ptr(m.CatID)
	m.CompletedAt = ptr(m.CompletedAt)
	m.Cat = nil
	m.Targets = nil

	return &m
}

func copyTarget(t agency.Target) *agency.Target {
	t.Notes = ptr(t.Notes)
	t.CompletedAt = ptr(t.CompletedAt)

	return &t
}

// newestFirst orders rows by creation time descending, newest insert first on ties.
func newestFirst[T any](rows []row[T], created func(T) time.Time) {
	slices.SortFunc(rows, func(a, b row[T]) int {
		if c := created(b.val).Compare(created(a.val)); c != 0 {
			return c
		}

		return cmp.Compare(b.seq, a.seq)
	})
}

func window[T any](items []T, page agency.Page) []T {
	if page.Offset >= len(items) {
		return nil
	}

	end := min(page.Offset+page.Limit, len(items))

	return items[page.Offset:end]
}

func (t *tx) InsertCat(_ context.Context, cat *agency.Cat) error {
	now := t.now()
	cat.ID = uuid.New()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	t.work.cats[cat.ID] = row[agency.Cat]{val: *cat, seq: t.work.next()}

	return nil
}

func (t *tx) GetCat(_ context.Context, id uuid.UUID) (*agency.Cat, error) {
	r, ok := t.work.cats[id]
	if !ok {
		return nil, agency.ErrNotFound
	}

	return copyCat(r.val), nil
}

func (t *tx) LockCat(ctx context.Context, id uuid.UUID) (*agency.Cat, error) {
	return t.GetCat(ctx, id)
}

func (t *tx) ListCats(_ context.Context, page agency.Page) ([]*agency.Cat, int, error) {
	rows := make([]row[agency.Cat], 0, len(t.work.cats))
	for _, r := range t.work.cats {
		rows = append(rows, r)
	}

	newestFirst(rows, func(c agency.Cat) time.Time { return c.CreatedAt })

	cats := make([]*agency.Cat, 0, len(rows))
	for _, r := range window(rows, page) {
		cats = append(cats, copyCat(r.val))
	}

	return cats, len(rows), nil
}

func (t *tx) UpdateCat(_ context.Context, cat *agency.Cat) error {
	r, ok := t.work.cats[cat.ID]
	if !ok {
		return agency.ErrNotFound
	}

	// Only salary is writable.
	r.val.Salary = cat.Salary
	r.val.UpdatedAt = t.now()
	t.work.cats[cat.ID] = r

	*cat = r.val

	return nil
}

func (t *tx) DeleteCat(_ context.Context, id uuid.UUID) error {
	if _, ok := t.work.cats[id]; !ok {
		return agency.ErrNotFound
	}

	for _, m := range t.work.missions {
		if m.val.CatID != nil && *m.val.CatID == id {
			return fmt.Errorf("%w: cat %s is still referenced by mission %s", agency.ErrConflict, id, m.val.ID)
		}
	}

	delete(t.work.cats, id)

	return nil
}

func (t *tx) ActiveMissionIDs(_ context.Context, catID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	for id, m := range t.work.missions {
		if m.val.CatID != nil && *m.val.CatID == catID && !m.val.IsComplete {
			ids = append(ids, id)
		}
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int { return cmp.Compare(a.String(), b.String()) })

	return ids, nil
}

func (t *tx) DetachMissions(_ context.Context, catID uuid.UUID) (int64, error) {
	var n int64

	now := t.now()

	for id, m := range t.work.missions {
		if m.val.CatID == nil || *m.val.CatID != catID {
			continue
		}

		m.val.CatID = nil
		m.val.UpdatedAt = now
		t.work.missions[id] = m
		n++
	}

	return n, nil
}

func (t *tx) InsertMission(_ context.Context, m *agency.Mission) error {
	if m.CatID != nil {
		if _, ok := t.work.cats[*m.CatID]; !ok {
			return fmt.Errorf("%w: cat %s does not exist", agency.ErrConflict, *m.CatID)
		}
	}

	now := t.now()
	m.ID = uuid.New()
	m.CreatedAt = now
	m.UpdatedAt = now

	t.work.missions[m.ID] = row[agency.Mission]{val: *copyMission(*m), seq: t.work.next()}

	return nil
}

func (t *tx) loadMission(r row[agency.Mission]) *agency.Mission {
	m := copyMission(r.val)

	if m.CatID != nil {
		if c, ok := t.work.cats[*m.CatID]; ok {
			m.Cat = copyCat(c.val)
		}
	}

	var targets []row[agency.Target]

	for _, tr := range t.work.targets {
		if tr.val.MissionID == m.ID {
			targets = append(targets, tr)
		}
	}

	slices.SortFunc(targets, func(a, b row[agency.Target]) int { return cmp.Compare(a.seq, b.seq) })

	m.Targets = make([]*agency.Target, 0, len(targets))
	for _, tr := range targets {
		m.Targets = append(m.Targets, copyTarget(tr.val))
	}

	return m
}

func (t *tx) GetMission(_ context.Context, id uuid.UUID) (*agency.Mission, error) {
	r, ok := t.work.missions[id]
	if !ok {
		return nil, agency.ErrNotFound
	}

	return t.loadMission(r), nil
}

func (t *tx) LockMission(_ context.Context, id uuid.UUID) (*agency.Mission, error) {
	r, ok := t.work.missions[id]
	if !ok {
		return nil, agency.ErrNotFound
	}

	return copyMission(r.val), nil
}

func (t *tx) ListMissions(_ context.Context, page agency.Page) ([]*agency.Mission, int, error) {
	rows := make([]row[agency.Mission], 0, len(t.work.missions))
	for _, r := range t.work.missions {
		rows = append(rows, r)
	}

	newestFirst(rows, func(m agency.Mission) time.Time { return m.CreatedAt })

	missions := make([]*agency.Mission, 0, len(rows))
	for _, r := range window(rows, page) {
		missions = append(missions, t.loadMission(r))
	}

	return missions, len(rows), nil
}

func (t *tx) UpdateMission(_ context.Context, m *agency.Mission) error {
	r, ok := t.work.missions[m.ID]
	if !ok {
		return agency.ErrNotFound
	}

	if m.CatID != nil {
		if _, ok := t.work.cats[*m.CatID]; !ok {
			return fmt.Errorf("%w: cat %s does not exist", agency.ErrConflict, *m.CatID)
		}

		if !m.IsComplete {
			for id, other := range t.work.missions {
				if id == m.ID || other.val.IsComplete || other.val.CatID == nil {
					continue
				}

				if *other.val.CatID == *m.CatID {
					return fmt.Errorf("%w: cat %s already has active mission %s", agency.ErrConflict, *m.CatID, id)
				}
			}
		}
	}

	r.val.CatID = ptr(m.CatID)
	r.val.IsComplete = m.IsComplete
	r.val.CompletedAt = ptr(m.CompletedAt)
	r.val.UpdatedAt = t.now()
	t.work.missions[m.ID] = r

	m.UpdatedAt = r.val.UpdatedAt

	return nil
}

func (t *tx) DeleteMission(_ context.Context, id uuid.UUID) error {
	if _, ok := t.work.missions[id]; !ok {
		return agency.ErrNotFound
	}

	for _, tr := range t.work.targets {
		if tr.val.MissionID == id {
			return fmt.Errorf("%w: mission %s still has target %s", agency.ErrConflict, id, tr.val.ID)
		}
	}

	delete(t.work.missions, id)

	return nil
}

func (t *tx) InsertTarget(_ context.Context, target *agency.Target) error {
	if _, ok := t.work.missions[target.MissionID]; !ok {
		return fmt.Errorf("%w: mission %s does not exist", agency.ErrConflict, target.MissionID)
	}

	for _, tr := range t.work.targets {
		if tr.val.MissionID == target.MissionID && tr.val.Name == target.Name {
			return fmt.Errorf("%w: target %q already exists in mission %s", agency.ErrConflict, target.Name, target.MissionID)
		}
	}

	now := t.now()
	target.ID = uuid.New()
	target.CreatedAt = now
	target.UpdatedAt = now

	t.work.targets[target.ID] = row[agency.Target]{val: *copyTarget(*target), seq: t.work.next()}

	return nil
}

func (t *tx) GetTarget(_ context.Context, id uuid.UUID) (*agency.Target, error) {
	r, ok := t.work.targets[id]
	if !ok {
		return nil, agency.ErrNotFound
	}

	return copyTarget(r.val), nil
}

func (t *tx) UpdateTarget(_ context.Context, target *agency.Target) error {
	r, ok := t.work.targets[target.ID]
	if !ok {
		return agency.ErrNotFound
	}

	r.val.Notes = ptr(target.Notes)
	r.val.IsComplete = target.IsComplete
	r.val.CompletedAt = ptr(target.CompletedAt)
	r.val.UpdatedAt = t.now()
	t.work.targets[target.ID] = r

	target.UpdatedAt = r.val.UpdatedAt

	return nil
}

func (t *tx) DeleteTargets(_ context.Context, missionID uuid.UUID) (int64, error) {
	var n int64

	for id, tr := range t.work.targets {
		if tr.val.MissionID == missionID {
			delete(t.work.targets, id)
			n++
		}
	}

	return n, nil
}

func (t *tx) CountIncompleteTargets(_ context.Context, missionID uuid.UUID) (int, error) {
	n := 0

	for _, tr := range t.work.targets {
		if tr.val.MissionID == missionID && !tr.val.IsComplete {
			n++
		}
	}

	return n, nil
}
