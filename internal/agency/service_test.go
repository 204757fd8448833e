package agency_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spycats/internal/agency"
)

type mocks struct {
	repo   *agency.MockRepository
	tx     *agency.MockTx
	breeds *agency.MockBreedOracle
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:   agency.NewMockRepository(ctrl),
		tx:     agency.NewMockTx(ctrl),
		breeds: agency.NewMockBreedOracle(ctrl),
	}
}

// expectTx expects one transaction that commits when commit is true.
func (m mocks) expectTx(commit bool) {
	m.repo.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)

	if commit {
		m.tx.EXPECT().Commit().Return(nil)
	}

	m.tx.EXPECT().Rollback().Return(nil)
}

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func newService(m mocks) *agency.Service {
	return agency.NewService(m.repo, m.breeds).WithClock(func() time.Time { return fixedNow })
}

func TestService_CreateCat(t *testing.T) {
	valid := agency.CreateCatParams{
		Name:              "  Tom ",
		YearsOfExperience: 3,
		Breed:             "Siamese",
		Salary:            decimal.RequireFromString("1500.50"),
	}

	type testCase struct {
		name      string
		params    agency.CreateCatParams
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m mocks) {
				m.breeds.EXPECT().Admit(gomock.Any(), "Siamese").Return(true)
				m.expectTx(true)
				m.tx.EXPECT().
					InsertCat(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, cat *agency.Cat) error {
						cat.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "BlankName",
			params: agency.CreateCatParams{
				Name: "   ", Breed: "Siamese", Salary: decimal.NewFromInt(1),
			},
			wantErr: agency.ErrValidation,
		},
		{
			name: "ExperienceOutOfRange",
			params: agency.CreateCatParams{
				Name: "Tom", Breed: "Siamese", YearsOfExperience: 51, Salary: decimal.NewFromInt(1),
			},
			wantErr: agency.ErrValidation,
		},
		{
			name: "NonPositiveSalary",
			params: agency.CreateCatParams{
				Name: "Tom", Breed: "Siamese", Salary: decimal.Zero,
			},
			wantErr: agency.ErrValidation,
		},
		{
			name: "TooManyDecimals",
			params: agency.CreateCatParams{
				Name: "Tom", Breed: "Siamese", Salary: decimal.RequireFromString("10.005"),
			},
			wantErr: agency.ErrValidation,
		},
		{
			name:   "RejectedBreed",
			params: valid,
			setupMock: func(m mocks) {
				m.breeds.EXPECT().Admit(gomock.Any(), "Siamese").Return(false)
			},
			wantErr: agency.ErrInvalidBreed,
		},
		{
			name:   "StoreFailure",
			params: valid,
			setupMock: func(m mocks) {
				m.breeds.EXPECT().Admit(gomock.Any(), gomock.Any()).Return(true)
				m.expectTx(false)
				m.tx.EXPECT().InsertCat(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantErr: agency.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := newService(m).CreateCat(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Tom", got.Name)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_ListCats_NormalizesPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMocks(ctrl)
	m.expectTx(true)
	m.tx.EXPECT().
		ListCats(gomock.Any(), agency.Page{Offset: 0, Limit: agency.MaxPageLimit}).
		Return([]*agency.Cat{{ID: uuid.New()}}, 7, nil)

	cats, total, err := newService(m).ListCats(context.Background(), agency.Page{Offset: -5, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, cats, 1)
	assert.Equal(t, 7, total)
}

func TestService_UpdateCatSalary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	m := newMocks(ctrl)
	m.expectTx(true)
	m.tx.EXPECT().LockCat(gomock.Any(), id).Return(&agency.Cat{ID: id, Salary: decimal.NewFromInt(10)}, nil)
	m.tx.EXPECT().
		UpdateCat(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cat *agency.Cat) error {
			assert.True(t, cat.Salary.Equal(decimal.NewFromInt(20)))
			return nil
		})

	cat, err := newService(m).UpdateCatSalary(context.Background(), id, decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, cat.Salary.Equal(decimal.NewFromInt(20)))
}

func TestService_DeleteCat(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "DetachesCompletedMissions",
			setupMock: func(m mocks) {
				m.expectTx(true)
				m.tx.EXPECT().LockCat(gomock.Any(), id).Return(&agency.Cat{ID: id}, nil)
				m.tx.EXPECT().ActiveMissionIDs(gomock.Any(), id).Return(nil, nil)
				m.tx.EXPECT().DetachMissions(gomock.Any(), id).Return(int64(2), nil)
				m.tx.EXPECT().DeleteCat(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "ActiveMission",
			setupMock: func(m mocks) {
				m.expectTx(false)
				m.tx.EXPECT().LockCat(gomock.Any(), id).Return(&agency.Cat{ID: id}, nil)
				m.tx.EXPECT().ActiveMissionIDs(gomock.Any(), id).Return([]uuid.UUID{uuid.New()}, nil)
			},
			wantErr: agency.ErrConflict,
		},
		{
			name: "NotFound",
			setupMock: func(m mocks) {
				m.expectTx(false)
				m.tx.EXPECT().LockCat(gomock.Any(), id).Return(nil, agency.ErrNotFound)
			},
			wantErr: agency.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			tt.setupMock(m)

			err := newService(m).DeleteCat(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_CreateMission(t *testing.T) {
	notes := "  "

	tests := []struct {
		name    string
		targets []agency.TargetParams
		wantErr error
	}{
		{name: "NoTargets", targets: nil, wantErr: agency.ErrValidation},
		{
			name: "TooManyTargets",
			targets: []agency.TargetParams{
				{Name: "a", Country: "x"}, {Name: "b", Country: "x"},
				{Name: "c", Country: "x"}, {Name: "d", Country: "x"},
			},
			wantErr: agency.ErrValidation,
		},
		{
			name:    "DuplicateName",
			targets: []agency.TargetParams{{Name: "Boris", Country: "UK"}, {Name: " Boris ", Country: "FR"}},
			wantErr: agency.ErrValidation,
		},
		{
			name:    "BlankCountry",
			targets: []agency.TargetParams{{Name: "Boris", Country: " "}},
			wantErr: agency.ErrValidation,
		},
		{
			name:    "Success",
			targets: []agency.TargetParams{{Name: "Boris", Country: "UK", Notes: &notes}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			missionID := uuid.New()

			if tt.wantErr == nil {
				m.expectTx(true)
				m.tx.EXPECT().
					InsertMission(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mission *agency.Mission) error {
						assert.Nil(t, mission.CatID)
						mission.ID = missionID
						return nil
					})
				m.tx.EXPECT().
					InsertTarget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, target *agency.Target) error {
						assert.Equal(t, missionID, target.MissionID)
						assert.Nil(t, target.Notes, "blank notes are stored as null")
						return nil
					})
				m.tx.EXPECT().GetMission(gomock.Any(), missionID).Return(&agency.Mission{ID: missionID}, nil)
			}

			got, err := newService(m).CreateMission(context.Background(), tt.targets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, missionID, got.ID)
		})
	}
}

func TestService_AssignCat(t *testing.T) {
	missionID := uuid.New()
	catID := uuid.New()
	otherCat := uuid.New()

	type testCase struct {
		name      string
		mission   agency.Mission
		active    []uuid.UUID
		expectSet bool
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "FreeCat",
			mission:   agency.Mission{ID: missionID},
			expectSet: true,
		},
		{
			name:      "Reassign",
			mission:   agency.Mission{ID: missionID, CatID: &otherCat},
			expectSet: true,
		},
		{
			name:    "AlreadyAssigned",
			mission: agency.Mission{ID: missionID, CatID: &catID},
			active:  []uuid.UUID{missionID},
		},
		{
			name:    "CatBusy",
			mission: agency.Mission{ID: missionID},
			active:  []uuid.UUID{uuid.New()},
			wantErr: agency.ErrConflict,
		},
		{
			name:    "MissionComplete",
			mission: agency.Mission{ID: missionID, IsComplete: true},
			wantErr: agency.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			m.expectTx(tt.wantErr == nil)

			mission := tt.mission
			gomock.InOrder(
				m.tx.EXPECT().LockCat(gomock.Any(), catID).Return(&agency.Cat{ID: catID}, nil),
				m.tx.EXPECT().LockMission(gomock.Any(), missionID).Return(&mission, nil),
				m.tx.EXPECT().ActiveMissionIDs(gomock.Any(), catID).Return(tt.active, nil),
			)

			if tt.expectSet {
				m.tx.EXPECT().
					UpdateMission(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, got *agency.Mission) error {
						require.NotNil(t, got.CatID)
						assert.Equal(t, catID, *got.CatID)
						return nil
					})
			}

			if tt.wantErr == nil {
				m.tx.EXPECT().GetMission(gomock.Any(), missionID).Return(&agency.Mission{ID: missionID, CatID: &catID}, nil)
			}

			got, err := newService(m).AssignCat(context.Background(), missionID, catID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, catID, *got.CatID)
		})
	}
}

func TestService_DeleteMission(t *testing.T) {
	id := uuid.New()
	catID := uuid.New()

	t.Run("CascadesTargets", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.expectTx(true)
		m.tx.EXPECT().LockMission(gomock.Any(), id).Return(&agency.Mission{ID: id}, nil)
		m.tx.EXPECT().DeleteTargets(gomock.Any(), id).Return(int64(3), nil)
		m.tx.EXPECT().DeleteMission(gomock.Any(), id).Return(nil)

		assert.NoError(t, newService(m).DeleteMission(context.Background(), id))
	})

	t.Run("Assigned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		m := newMocks(ctrl)
		m.expectTx(false)
		m.tx.EXPECT().LockMission(gomock.Any(), id).Return(&agency.Mission{ID: id, CatID: &catID}, nil)

		assert.ErrorIs(t, newService(m).DeleteMission(context.Background(), id), agency.ErrConflict)
	})
}

func TestService_UpdateTarget(t *testing.T) {
	targetID := uuid.New()
	missionID := uuid.New()
	catID := uuid.New()
	done := true
	undone := false
	notes := "  moved to Lisbon  "

	type testCase struct {
		name      string
		params    agency.UpdateTargetParams
		target    agency.Target
		mission   agency.Mission
		setupMock func(m mocks)
		check     func(t *testing.T, got *agency.Target)
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "EditNotes",
			params:  agency.UpdateTargetParams{Notes: &notes},
			target:  agency.Target{ID: targetID, MissionID: missionID},
			mission: agency.Mission{ID: missionID},
			setupMock: func(m mocks) {
				m.tx.EXPECT().UpdateTarget(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, got *agency.Target) {
				require.NotNil(t, got.Notes)
				assert.Equal(t, "moved to Lisbon", *got.Notes)
			},
		},
		{
			name:    "NoFieldsWritesNothing",
			params:  agency.UpdateTargetParams{},
			target:  agency.Target{ID: targetID, MissionID: missionID, Notes: &notes},
			mission: agency.Mission{ID: missionID},
			check: func(t *testing.T, got *agency.Target) {
				assert.Equal(t, targetID, got.ID)
				assert.Equal(t, &notes, got.Notes)
				assert.False(t, got.IsComplete)
			},
		},
		{
			name:    "NotesLockedOnCompleteTarget",
			params:  agency.UpdateTargetParams{Notes: &notes, IsComplete: &done},
			target:  agency.Target{ID: targetID, MissionID: missionID, IsComplete: true},
			mission: agency.Mission{ID: missionID},
			wantErr: agency.ErrConflict,
		},
		{
			name:    "NotesLockedOnCompleteMission",
			params:  agency.UpdateTargetParams{Notes: &notes},
			target:  agency.Target{ID: targetID, MissionID: missionID},
			mission: agency.Mission{ID: missionID, IsComplete: true},
			wantErr: agency.ErrConflict,
		},
		{
			name:    "LastTargetCompletesMission",
			params:  agency.UpdateTargetParams{IsComplete: &done},
			target:  agency.Target{ID: targetID, MissionID: missionID},
			mission: agency.Mission{ID: missionID, CatID: &catID},
			setupMock: func(m mocks) {
				m.tx.EXPECT().UpdateTarget(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().CountIncompleteTargets(gomock.Any(), missionID).Return(0, nil)
				m.tx.EXPECT().
					UpdateMission(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, got *agency.Mission) error {
						assert.True(t, got.IsComplete)
						require.NotNil(t, got.CompletedAt)
						assert.Equal(t, fixedNow, *got.CompletedAt)
						return nil
					})
			},
			check: func(t *testing.T, got *agency.Target) {
				assert.True(t, got.IsComplete)
				require.NotNil(t, got.CompletedAt)
				assert.Equal(t, fixedNow, *got.CompletedAt)
			},
		},
		{
			name:    "OtherTargetsStillOpen",
			params:  agency.UpdateTargetParams{IsComplete: &done},
			target:  agency.Target{ID: targetID, MissionID: missionID},
			mission: agency.Mission{ID: missionID},
			setupMock: func(m mocks) {
				m.tx.EXPECT().UpdateTarget(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().CountIncompleteTargets(gomock.Any(), missionID).Return(1, nil)
			},
		},
		{
			name:    "ReopenBlockedByBusyCat",
			params:  agency.UpdateTargetParams{IsComplete: &undone},
			target:  agency.Target{ID: targetID, MissionID: missionID, IsComplete: true, CompletedAt: &fixedNow},
			mission: agency.Mission{ID: missionID, CatID: &catID, IsComplete: true, CompletedAt: &fixedNow},
			setupMock: func(m mocks) {
				m.tx.EXPECT().UpdateTarget(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().CountIncompleteTargets(gomock.Any(), missionID).Return(1, nil)
				m.tx.EXPECT().ActiveMissionIDs(gomock.Any(), catID).Return([]uuid.UUID{uuid.New()}, nil)
			},
			wantErr: agency.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			m := newMocks(ctrl)
			m.expectTx(tt.wantErr == nil)

			first, second, mission := tt.target, tt.target, tt.mission
			m.tx.EXPECT().GetTarget(gomock.Any(), targetID).Return(&first, nil)
			m.tx.EXPECT().LockMission(gomock.Any(), missionID).Return(&mission, nil)
			m.tx.EXPECT().GetTarget(gomock.Any(), targetID).Return(&second, nil)

			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := newService(m).UpdateTarget(context.Background(), targetID, tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}
