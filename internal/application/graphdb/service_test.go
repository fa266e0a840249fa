package graphdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/material"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/database/neo4j/repositories"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	"github.com/turtacn/PolyGraph-Intelligence/internal/testutil"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Schema() string {
	return m.Called().String(0)
}

func (m *MockRepository) EnsureConstraints(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRepository) PopulateNodes(ctx context.Context) (*repositories.PopulateStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.PopulateStats), args.Error(1)
}

func (m *MockRepository) PopulateMaterials(ctx context.Context, materials []*material.Material) (*repositories.PopulateStats, error) {
	args := m.Called(ctx, materials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.PopulateStats), args.Error(1)
}

func (m *MockRepository) CountNodes(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func materialStore(t *testing.T) *record.MemoryStore {
	t.Helper()
	store := record.NewMemoryStore()
	store.Put("mp-1", []byte(`{
		"material_id": "mp-1",
		"formula_pretty": "Fe2O3",
		"elements": ["Fe", "O"],
		"crystal_system": "Trigonal",
		"space_group": 167,
		"ordering": "AFM",
		"coordination_environments": [{"element": "Fe", "mp_symbol": "O:6"}]
	}`))
	store.Put("mp-2", []byte(`{"formula_pretty": "NaCl", "elements": ["Na", "Cl"], "space_group": 225}`))
	store.Put("mp-3", []byte(`{"material_id": 7}`))
	store.Put("mp-4", []byte(`oops`))
	return store
}

func TestLoadMaterials(t *testing.T) {
	logger := testutil.NewMockLogger()
	s := NewService(new(MockRepository), materialStore(t), logger)

	ms, unreadable, err := s.LoadMaterials(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "mp-1", ms[0].ID)
	assert.Equal(t, 167, ms[0].SpaceGroup)
	assert.Equal(t, []material.SiteEnvironment{{Element: "Fe", Symbol: "O:6"}}, ms[0].Environments)
	assert.Equal(t, "mp-2", ms[1].ID)
	assert.Equal(t, []string{"mp-3", "mp-4"}, unreadable)
	assert.True(t, logger.HasMessage("WARN", "material record unreadable"))
}

func TestPopulate(t *testing.T) {
	repo := new(MockRepository)
	repo.On("EnsureConstraints", mock.Anything).Return(nil)
	repo.On("PopulateNodes", mock.Anything).Return(&repositories.PopulateStats{
		Rows: map[string]int{"Element": 118, "SpaceGroup": 230}, Batches: 3,
	}, nil)
	repo.On("PopulateMaterials", mock.Anything, mock.MatchedBy(func(ms []*material.Material) bool {
		return len(ms) == 2
	})).Return(&repositories.PopulateStats{
		Rows: map[string]int{"Material": 1, "Element": 2}, Skipped: 1, Batches: 4,
	}, nil)
	repo.On("CountNodes", mock.Anything).Return(map[string]int64{"Material": 1}, nil)

	report, err := NewService(repo, materialStore(t), nil).Populate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Materials)
	assert.Equal(t, 120, report.Rows["Element"])
	assert.Equal(t, 1, report.Rows["Material"])
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 7, report.Batches)
	assert.Len(t, report.Unreadable, 2)
	assert.Equal(t, int64(1), report.Counts["Material"])
	repo.AssertExpectations(t)
}

func TestPopulate_NoMaterialStore(t *testing.T) {
	repo := new(MockRepository)
	repo.On("EnsureConstraints", mock.Anything).Return(nil)
	repo.On("PopulateNodes", mock.Anything).Return(&repositories.PopulateStats{Rows: map[string]int{}}, nil)
	repo.On("CountNodes", mock.Anything).Return(nil, pkgerrors.New(pkgerrors.ErrCodeDatabaseError, "down"))

	report, err := NewService(repo, nil, nil).Populate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Materials)
	assert.Nil(t, report.Counts)
	repo.AssertNotCalled(t, "PopulateMaterials", mock.Anything, mock.Anything)
}

func TestPopulate_Errors(t *testing.T) {
	dbErr := pkgerrors.New(pkgerrors.ErrCodeDatabaseError, "write failed")

	t.Run("constraints", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EnsureConstraints", mock.Anything).Return(dbErr)
		_, err := NewService(repo, nil, nil).Populate(context.Background())
		assert.ErrorIs(t, err, dbErr)
		repo.AssertNotCalled(t, "PopulateNodes", mock.Anything)
	})

	t.Run("materials", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("EnsureConstraints", mock.Anything).Return(nil)
		repo.On("PopulateNodes", mock.Anything).Return(&repositories.PopulateStats{Rows: map[string]int{}}, nil)
		repo.On("PopulateMaterials", mock.Anything, mock.Anything).Return(nil, dbErr)
		_, err := NewService(repo, materialStore(t), nil).Populate(context.Background())
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeDatabaseError))
	})
}

func TestSchema(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Schema").Return("Node properties:\n")
	assert.Equal(t, "Node properties:\n", NewService(repo, nil, nil).Schema())
}

//Personal.AI order the ending
