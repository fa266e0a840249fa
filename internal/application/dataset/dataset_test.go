package dataset

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

const field = "face_feature_set_1"

type featureSet struct {
	graph.GraphRecord
	Volume float64 `json:"volume"`
}

func featurizedStore(t *testing.T, ids ...string) *record.MemoryStore {
	t.Helper()
	store := record.NewMemoryStore()
	for i, id := range ids {
		rec, err := record.NewWithVertices([][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}})
		require.NoError(t, err)
		require.NoError(t, rec.Set("formation_energy", float64(i)/10))
		require.NoError(t, rec.Set(field, featureSet{
			GraphRecord: graph.GraphRecord{
				X:         [][]float64{{0.5, 1, 0}, {0.5, 1, 0}},
				EdgeIndex: [][2]int{{0, 1}, {1, 0}},
				EdgeAttr:  [][]float64{{1, 0, 0, 0}, {1, 0, 0, 0}},
				Y:         float64(i),
				Pos:       [][3]float64{{0, 0, 1}, {0, 0, -1}},
				Label:     id,
			},
			Volume: float64(i) * 2,
		}))
		require.NoError(t, store.Save(context.Background(), id, rec))
	}
	return store
}

func TestManifest_SortedAndSampled(t *testing.T) {
	store := featurizedStore(t, "c", "a", "b", "e", "d")
	m, err := BuildManifest(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, m.IDs())

	s1 := m.Sample(3, 7)
	s2 := m.Sample(3, 7)
	assert.Equal(t, 3, s1.Len())
	assert.Equal(t, s1.IDs(), s2.IDs())

	seen := make(map[string]bool)
	for _, id := range s1.IDs() {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}

	assert.Equal(t, m.IDs(), m.Sample(0, 7).IDs())
	assert.Equal(t, m.IDs(), m.Sample(10, 7).IDs())
}

func TestManifest_IDsIsCopy(t *testing.T) {
	m := NewManifest([]string{"x", "y"})
	ids := m.IDs()
	ids[0] = "changed"
	assert.Equal(t, "x", m.ID(0))
}

func TestOpen_Validation(t *testing.T) {
	_, err := Open(context.Background(), record.NewMemoryStore(), Options{}, nil)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeValidation))
}

func TestOptionsFromConfig(t *testing.T) {
	opts := OptionsFromConfig(config.DatasetConfig{YVal: "volume", MaxEntries: 5, Seed: 3}, 1)
	assert.Equal(t, Options{Field: field, YVal: "volume", MaxEntries: 5, Seed: 3}, opts)
}

func TestDataset_Get(t *testing.T) {
	store := featurizedStore(t, "m-1", "m-2", "m-3")
	d, err := Open(context.Background(), store, Options{Field: field}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, d.Len())

	s, err := d.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "m-2", s.ID)
	assert.Equal(t, "m-2", s.Label)
	assert.Equal(t, 1.0, s.Y)
	assert.Len(t, s.X, 2)
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}}, s.EdgeIndex)

	name, err := d.FileName(2)
	require.NoError(t, err)
	assert.Equal(t, "mem://m-3", name)
}

func TestDataset_YValLookup(t *testing.T) {
	store := featurizedStore(t, "a", "b", "c")
	ctx := context.Background()

	cases := []struct {
		yVal string
		want float64
	}{
		{"y", 2},
		{"volume", 4},
		{"formation_energy", 0.2},
	}
	for _, tc := range cases {
		t.Run(tc.yVal, func(t *testing.T) {
			d, err := Open(ctx, store, Options{Field: field, YVal: tc.yVal}, nil)
			require.NoError(t, err)
			s, err := d.Get(ctx, 2)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, s.Y, 1e-12)
		})
	}

	d, err := Open(ctx, store, Options{Field: field, YVal: "bandgap"}, nil)
	require.NoError(t, err)
	_, err = d.Get(ctx, 0)
	assert.True(t, pkgerrors.IsNotFound(err))

	d, err = Open(ctx, store, Options{Field: field, YVal: "label"}, nil)
	require.NoError(t, err)
	_, err = d.Get(ctx, 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.ErrCodeRecordCorrupt))
}

func TestDataset_Errors(t *testing.T) {
	store := featurizedStore(t, "a")
	raw, err := record.NewWithVertices([][3]float64{{0, 0, 0}})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "b", raw))

	d, err := Open(context.Background(), store, Options{Field: field}, nil)
	require.NoError(t, err)

	for _, idx := range []int{-1, 2} {
		t.Run(fmt.Sprint(idx), func(t *testing.T) {
			_, err := d.Get(context.Background(), idx)
			assert.True(t, pkgerrors.IsNotFound(err))
			_, err = d.FileName(idx)
			assert.True(t, pkgerrors.IsNotFound(err))
		})
	}

	_, err = d.Get(context.Background(), 1)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDataset_MaxEntries(t *testing.T) {
	store := featurizedStore(t, "a", "b", "c", "d", "e", "f")
	ctx := context.Background()

	d1, err := Open(ctx, store, Options{Field: field, MaxEntries: 4}, nil)
	require.NoError(t, err)
	d2, err := Open(ctx, store, Options{Field: field, MaxEntries: 4, Seed: config.DefaultDatasetSeed}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, d1.Len())
	assert.Equal(t, d1.Manifest().IDs(), d2.Manifest().IDs())
}

func TestDataset_Describe(t *testing.T) {
	ctx := context.Background()
	d, err := Open(ctx, featurizedStore(t, "a", "b"), Options{Field: field}, nil)
	require.NoError(t, err)

	info, err := d.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, &Info{Field: field, YVal: "y", Records: 2, NodeWidth: 3, EdgeWidth: 4}, info)

	empty, err := Open(ctx, record.NewMemoryStore(), Options{Field: field}, nil)
	require.NoError(t, err)
	info, err = empty.Describe(ctx)
	require.NoError(t, err)
	assert.Zero(t, info.Records)
	assert.Zero(t, info.NodeWidth)
}

//Personal.AI order the ending
