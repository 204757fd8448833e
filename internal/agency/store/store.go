package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

var _ agency.Repository = (*Store)(nil)

// Postgres error codes the store translates into agency errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (agency.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &tx{tx: dbTx}, nil
}

type tx struct {
	tx *sql.Tx
}

func (t *tx) Commit() error   { return t.tx.Commit() }
func (t *tx) Rollback() error { return t.tx.Rollback() }

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// storeError maps driver errors onto agency errors and wraps the rest with op.
func storeError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return agency.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			return fmt.Errorf("%w: %s", agency.ErrConflict, pgErr.Message)
		case codeCheckViolation:
			return fmt.Errorf("%w: %s", agency.ErrValidation, pgErr.Message)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}

func expectRow(op string, res sql.Result, err error) error {
	if err != nil {
		return storeError(op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return agency.ErrNotFound
	}

	return nil
}

// Expected column order: id, name, years_of_experience, breed, salary, created_at, updated_at
const selectCatColumns = `c.id, c.name, c.years_of_experience, c.breed, c.salary, c.created_at, c.updated_at`

func scanCat(s scanner) (*agency.Cat, error) {
	var c agency.Cat

	if err := s.Scan(&c.ID, &c.Name, &c.YearsOfExperience, &c.Breed, &c.Salary, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	return &c, nil
}

func (t *tx) InsertCat(ctx context.Context, cat *agency.Cat) error {
	query := `
		INSERT INTO cats (name, years_of_experience, breed, salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, clock_timestamp(), clock_timestamp())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		cat.Name,
		cat.YearsOfExperience,
		cat.Breed,
		cat.Salary,
	).Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return storeError("inserting cat", err)
	}

	return nil
}

func (t *tx) GetCat(ctx context.Context, id uuid.UUID) (*agency.Cat, error) {
	query := `SELECT ` + selectCatColumns + ` FROM cats c WHERE c.id = $1`

	cat, err := scanCat(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeError("getting cat", err)
	}

	return cat, nil
}

func (t *tx) LockCat(ctx context.Context, id uuid.UUID) (*agency.Cat, error) {
	query := `SELECT ` + selectCatColumns + ` FROM cats c WHERE c.id = $1 FOR UPDATE`

	cat, err := scanCat(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeError("locking cat", err)
	}

	return cat, nil
}

func (t *tx) ListCats(ctx context.Context, page agency.Page) ([]*agency.Cat, int, error) {
	var total int
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM cats`).Scan(&total); err != nil {
		return nil, 0, storeError("counting cats", err)
	}

	query := `SELECT ` + selectCatColumns + `
		FROM cats c
		ORDER BY c.created_at DESC, c.id DESC
		OFFSET $1 LIMIT $2`

	rows, err := t.tx.QueryContext(ctx, query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, storeError("listing cats", err)
	}
	defer rows.Close()

	cats := []*agency.Cat{}

	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning cat: %w", err)
		}

		cats = append(cats, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating cat rows: %w", err)
	}

	return cats, total, nil
}

func (t *tx) UpdateCat(ctx context.Context, cat *agency.Cat) error {
	query := `
		UPDATE cats
		SET salary = $1, updated_at = clock_timestamp()
		WHERE id = $2
		RETURNING updated_at
	`

	if err := t.tx.QueryRowContext(ctx, query, cat.Salary, cat.ID).Scan(&cat.UpdatedAt); err != nil {
		return storeError("updating cat", err)
	}

	return nil
}

func (t *tx) DeleteCat(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)

	return expectRow("deleting cat", res, err)
}

func (t *tx) ActiveMissionIDs(ctx context.Context, catID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM missions
		WHERE cat_id = $1 AND NOT is_complete
		ORDER BY id
		FOR UPDATE
	`

	rows, err := t.tx.QueryContext(ctx, query, catID)
	if err != nil {
		return nil, storeError("listing active missions", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning mission id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating mission ids: %w", err)
	}

	return ids, nil
}

func (t *tx) DetachMissions(ctx context.Context, catID uuid.UUID) (int64, error) {
	query := `
		UPDATE missions
		SET cat_id = NULL, updated_at = clock_timestamp()
		WHERE cat_id = $1
	`

	res, err := t.tx.ExecContext(ctx, query, catID)
	if err != nil {
		return 0, storeError("detaching missions", err)
	}

	return res.RowsAffected()
}

// Expected column order: id, cat_id, is_complete, completed_at, created_at, updated_at
const selectMissionColumns = `m.id, m.cat_id, m.is_complete, m.completed_at, m.created_at, m.updated_at`

func scanMission(s scanner) (*agency.Mission, error) {
	var m agency.Mission

	if err := s.Scan(&m.ID, &m.CatID, &m.IsComplete, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}

	return &m, nil
}

// scanMissionWithCat reads a mission row LEFT JOINed with its cat.
func scanMissionWithCat(s scanner) (*agency.Mission, error) {
	var (
		m       agency.Mission
		catID   *uuid.UUID
		name    sql.NullString
		years   sql.NullInt64
		breed   sql.NullString
		salary  decimal.NullDecimal
		created sql.NullTime
		updated sql.NullTime
	)

	if err := s.Scan(
		&m.ID, &m.CatID, &m.IsComplete, &m.CompletedAt, &m.CreatedAt, &m.UpdatedAt,
		&catID, &name, &years, &breed, &salary, &created, &updated,
	); err != nil {
		return nil, err
	}

	if catID != nil {
		m.Cat = &agency.Cat{
			ID:                *catID,
			Name:              name.String,
			YearsOfExperience: int(years.Int64),
			Breed:             breed.String,
			Salary:            salary.Decimal,
			CreatedAt:         created.Time,
			UpdatedAt:         updated.Time,
		}
	}

	return &m, nil
}

const selectMissionWithCat = `SELECT ` + selectMissionColumns + `, ` + selectCatColumns + `
	FROM missions m
	LEFT JOIN cats c ON m.cat_id = c.id`

func (t *tx) InsertMission(ctx context.Context, m *agency.Mission) error {
	query := `
		INSERT INTO missions (cat_id, is_complete, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, clock_timestamp(), clock_timestamp())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query, m.CatID, m.IsComplete, m.CompletedAt).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return storeError("inserting mission", err)
	}

	return nil
}

func (t *tx) GetMission(ctx context.Context, id uuid.UUID) (*agency.Mission, error) {
	m, err := scanMissionWithCat(t.tx.QueryRowContext(ctx, selectMissionWithCat+` WHERE m.id = $1`, id))
	if err != nil {
		return nil, storeError("getting mission", err)
	}

	if err := t.loadTargets(ctx, []*agency.Mission{m}); err != nil {
		return nil, err
	}

	return m, nil
}

func (t *tx) LockMission(ctx context.Context, id uuid.UUID) (*agency.Mission, error) {
	query := `SELECT ` + selectMissionColumns + ` FROM missions m WHERE m.id = $1 FOR UPDATE`

	m, err := scanMission(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeError("locking mission", err)
	}

	return m, nil
}

func (t *tx) ListMissions(ctx context.Context, page agency.Page) ([]*agency.Mission, int, error) {
	var total int
	if err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM missions`).Scan(&total); err != nil {
		return nil, 0, storeError("counting missions", err)
	}

	query := selectMissionWithCat + `
		ORDER BY m.created_at DESC, m.id DESC
		OFFSET $1 LIMIT $2`

	rows, err := t.tx.QueryContext(ctx, query, page.Offset, page.Limit)
	if err != nil {
		return nil, 0, storeError("listing missions", err)
	}
	defer rows.Close()

	missions := []*agency.Mission{}

	for rows.Next() {
		m, err := scanMissionWithCat(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning mission: %w", err)
		}

		missions = append(missions, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating mission rows: %w", err)
	}

	if err := t.loadTargets(ctx, missions); err != nil {
		return nil, 0, err
	}

	return missions, total, nil
}

// loadTargets fills Targets for every mission with one query.
func (t *tx) loadTargets(ctx context.Context, missions []*agency.Mission) error {
	if len(missions) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*agency.Mission, len(missions))
	ids := make([]string, 0, len(missions))

	for _, m := range missions {
		m.Targets = []*agency.Target{}
		byID[m.ID] = m
		ids = append(ids, m.ID.String())
	}

	query := `SELECT ` + selectTargetColumns + `
		FROM targets t
		WHERE t.mission_id = ANY($1::uuid[])
		ORDER BY t.created_at, t.id`

	rows, err := t.tx.QueryContext(ctx, query, ids)
	if err != nil {
		return storeError("loading targets", err)
	}
	defer rows.Close()

	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return fmt.Errorf("scanning target: %w", err)
		}

		if m, ok := byID[target.MissionID]; ok {
			m.Targets = append(m.Targets, target)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating target rows: %w", err)
	}

	return nil
}

func (t *tx) UpdateMission(ctx context.Context, m *agency.Mission) error {
	query := `
		UPDATE missions
		SET cat_id = $1, is_complete = $2, completed_at = $3, updated_at = clock_timestamp()
		WHERE id = $4
		RETURNING updated_at
	`

	if err := t.tx.QueryRowContext(ctx, query, m.CatID, m.IsComplete, m.CompletedAt, m.ID).Scan(&m.UpdatedAt); err != nil {
		return storeError("updating mission", err)
	}

	return nil
}

func (t *tx) DeleteMission(ctx context.Context, id uuid.UUID) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM missions WHERE id = $1`, id)

	return expectRow("deleting mission", res, err)
}

// Expected column order: id, mission_id, name, country, notes, is_complete, completed_at, created_at, updated_at
const selectTargetColumns = `t.id, t.mission_id, t.name, t.country, t.notes, t.is_complete, t.completed_at, t.created_at, t.updated_at`

func scanTarget(s scanner) (*agency.Target, error) {
	var (
		target agency.Target
		notes  sql.NullString
	)

	if err := s.Scan(
		&target.ID, &target.MissionID, &target.Name, &target.Country, &notes,
		&target.IsComplete, &target.CompletedAt, &target.CreatedAt, &target.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if notes.Valid {
		target.Notes = &notes.String
	}

	return &target, nil
}

func (t *tx) InsertTarget(ctx context.Context, target *agency.Target) error {
	query := `
		INSERT INTO targets (mission_id, name, country, notes, is_complete, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, clock_timestamp(), clock_timestamp())
		RETURNING id, created_at, updated_at
	`

	err := t.tx.QueryRowContext(ctx, query,
		target.MissionID,
		target.Name,
		target.Country,
		target.Notes,
		target.IsComplete,
		target.CompletedAt,
	).Scan(&target.ID, &target.CreatedAt, &target.UpdatedAt)
	if err != nil {
		return storeError("inserting target", err)
	}

	return nil
}

func (t *tx) GetTarget(ctx context.Context, id uuid.UUID) (*agency.Target, error) {
	query := `SELECT ` + selectTargetColumns + ` FROM targets t WHERE t.id = $1`

	target, err := scanTarget(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, storeError("getting target", err)
	}

	return target, nil
}

func (t *tx) UpdateTarget(ctx context.Context, target *agency.Target) error {
	query := `
		UPDATE targets
		SET notes = $1, is_complete = $2, completed_at = $3, updated_at = clock_timestamp()
		WHERE id = $4
		RETURNING updated_at
	`

	err := t.tx.QueryRowContext(ctx, query, target.Notes, target.IsComplete, target.CompletedAt, target.ID).
		Scan(&target.UpdatedAt)
	if err != nil {
		return storeError("updating target", err)
	}

	return nil
}

func (t *tx) DeleteTargets(ctx context.Context, missionID uuid.UUID) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM targets WHERE mission_id = $1`, missionID)
	if err != nil {
		return 0, storeError("deleting targets", err)
	}

	return res.RowsAffected()
}

func (t *tx) CountIncompleteTargets(ctx context.Context, missionID uuid.UUID) (int, error) {
	var n int

	query := `SELECT COUNT(*) FROM targets WHERE mission_id = $1 AND NOT is_complete`
	if err := t.tx.QueryRowContext(ctx, query, missionID).Scan(&n); err != nil {
		return 0, storeError("counting incomplete targets", err)
	}

	return n, nil
}
