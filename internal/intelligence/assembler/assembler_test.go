package assembler

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/polyhedron"
	"github.com/turtacn/PolyGraph-Intelligence/internal/intelligence/encoding"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

func unitCube() [][3]float64 {
	return [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
}

func regularTetrahedron() [][3]float64 {
	return [][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
}

func octahedron() [][3]float64 {
	return [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
}

func squarePyramid() [][3]float64 {
	return [][3]float64{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}, {0, 0, 1}}
}

func geometryOf(t *testing.T, vertices [][3]float64) *polyhedron.Geometry {
	t.Helper()
	p, err := polyhedron.NewPolyhedron(vertices)
	require.NoError(t, err)
	g, err := polyhedron.Extract(p, polyhedron.DefaultTolerance)
	require.NoError(t, err)
	return g
}

func assemblerFor(t *testing.T, index int, target string) *Assembler {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Featurize.FeatureSetIndex = index
	cfg.Target.Kind = target
	a, err := NewFromConfig(cfg)
	require.NoError(t, err)
	return a
}

// ─────────────────────────────────────────────────────────────────────────────
// Targets
// ─────────────────────────────────────────────────────────────────────────────

func TestTargets_RegularSolids(t *testing.T) {
	cases := []struct {
		name      string
		vertices  [][3]float64
		perNode   float64
		threeBody float64
	}{
		{"cube", unitCube(), 2, 0},
		{"tetrahedron", regularTetrahedron(), 2, -1.0 / 27},
		{"octahedron", octahedron(), 1, -1.0 / 27},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := geometryOf(t, tc.vertices)
			normals, adj := g.Normals(), g.Adjacency()
			assert.InDelta(t, tc.perNode, EnergyPerNode{}.Compute(normals, adj), 1e-9)
			assert.InDelta(t, tc.threeBody, ThreeBodyEnergy{}.Compute(normals, adj), 1e-9)
		})
	}
}

func TestTargets_NoNeighbours(t *testing.T) {
	normals := []polyhedron.Vec3{{1, 0, 0}, {0, 1, 0}}
	adj := [][]int{{0, 0}, {0, 0}}
	assert.Equal(t, 0.0, ThreeBodyEnergy{}.Compute(normals, adj))
	assert.Equal(t, 0.0, EnergyPerNode{}.Compute(normals, adj))
	assert.Equal(t, 0.0, EnergyPerNode{}.Compute(nil, nil))
}

func TestTargetFor(t *testing.T) {
	tf, err := TargetFor(graph.TargetEnergyPerNode)
	require.NoError(t, err)
	assert.Equal(t, graph.TargetEnergyPerNode, tf.Kind())

	tf, err = TargetFor(graph.TargetThreeBodyEnergy)
	require.NoError(t, err)
	assert.Equal(t, graph.TargetThreeBodyEnergy, tf.Kind())

	_, err = TargetFor("gibbs")
	assert.True(t, pkgerrors.IsEncodingConfigError(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// Feature sets
// ─────────────────────────────────────────────────────────────────────────────

func TestFeatureSetByIndex(t *testing.T) {
	fs0, err := FeatureSetByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "face_feature_set_0", fs0.Field())
	assert.Equal(t, graph.EdgeEncodingRaw, fs0.EdgeEncoding)
	assert.Equal(t, graph.TargetEnergyPerNode, fs0.Target)

	fs1, err := FeatureSetByIndex(1)
	require.NoError(t, err)
	assert.Equal(t, graph.EdgeEncodingGaussian, fs1.EdgeEncoding)
	assert.Equal(t, graph.TargetThreeBodyEnergy, fs1.Target)

	_, err = FeatureSetByIndex(7)
	assert.True(t, pkgerrors.IsEncodingConfigError(err))

	assert.Len(t, FeatureSets(), 2)
}

func TestNewFromConfig_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"unknown feature set", func(c *config.Config) { c.Featurize.FeatureSetIndex = 9 }},
		{"unknown target", func(c *config.Config) { c.Target.Kind = "gibbs" }},
		{"no categories", func(c *config.Config) { c.Encoding.SideCategories = nil }},
		{"zero sigma", func(c *config.Config) { c.Encoding.Gaussian.Sigma = 0 }},
		{"inverted range", func(c *config.Config) { c.Encoding.Gaussian.Min = 4 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			cfg.Featurize.FeatureSetIndex = 1
			tc.mutate(cfg)
			_, err := NewFromConfig(cfg)
			assert.True(t, pkgerrors.IsEncodingConfigError(err), "got %v", err)
		})
	}
}

func TestNew_MissingParts(t *testing.T) {
	_, err := New(FeatureSet{}, nil, encoding.IdentityEncoder{}, EnergyPerNode{})
	assert.True(t, pkgerrors.IsEncodingConfigError(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// Assemble
// ─────────────────────────────────────────────────────────────────────────────

func TestAssemble_CubeFeatureSet0(t *testing.T) {
	a := assemblerFor(t, 0, "")
	rec, err := a.Assemble("cube", geometryOf(t, unitCube()))
	require.NoError(t, err)

	assert.Equal(t, "cube", rec.Label)
	require.Len(t, rec.X, 6)
	assert.Equal(t, 8, a.NodeWidth())
	for _, row := range rec.X {
		assert.Equal(t, []float64{1, 0, 1, 0, 0, 0, 0, 0}, row)
	}

	require.Len(t, rec.EdgeIndex, 24)
	require.Len(t, rec.EdgeAttr, 24)
	assert.Equal(t, [][2]int{{0, 1}, {1, 0}, {0, 2}, {2, 0}, {0, 3}, {3, 0}, {0, 5}, {5, 0}}, rec.EdgeIndex[:8])
	for _, attr := range rec.EdgeAttr {
		require.Len(t, attr, 1)
		assert.InDelta(t, math.Pi/2, attr[0], 1e-9)
	}

	assert.InDelta(t, 2.0, rec.Y, 1e-9)
	require.Len(t, rec.Pos, 6)
	assert.InDeltaSlice(t, []float64{0, -1, 0}, rec.Pos[0][:], 1e-12)
}

func TestAssemble_TetrahedronFeatureSet1(t *testing.T) {
	a := assemblerFor(t, 1, "")
	assert.Equal(t, "face_feature_set_1", a.Field())
	rec, err := a.Assemble("tetra", geometryOf(t, regularTetrahedron()))
	require.NoError(t, err)

	require.Len(t, rec.X, 4)
	for _, row := range rec.X {
		assert.InDelta(t, 2*math.Sqrt(3), row[0], 1e-9)
		assert.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0}, row[1:])
	}
	require.Len(t, rec.EdgeIndex, 12)
	for _, attr := range rec.EdgeAttr {
		require.Len(t, attr, 10)
		for _, v := range attr {
			assert.Greater(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	assert.InDelta(t, -1.0/27, rec.Y, 1e-9)
}

func TestAssemble_TargetOverride(t *testing.T) {
	a := assemblerFor(t, 1, string(graph.TargetEnergyPerNode))
	assert.Equal(t, graph.TargetEnergyPerNode, a.FeatureSet().Target)

	rec, err := a.Assemble("tetra", geometryOf(t, regularTetrahedron()))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, rec.Y, 1e-9)
}

func TestAssemble_MixedFaces(t *testing.T) {
	a := assemblerFor(t, 0, "")
	rec, err := a.Assemble("pyramid", geometryOf(t, squarePyramid()))
	require.NoError(t, err)

	require.Len(t, rec.X, 5)
	assert.InDelta(t, math.Sqrt(2), rec.X[0][0], 1e-9)
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0}, rec.X[0][1:])
	assert.InDelta(t, 4.0, rec.X[1][0], 1e-9)
	assert.Equal(t, []float64{0, 1, 0, 0, 0, 0, 0}, rec.X[1][1:])
	assert.Len(t, rec.EdgeIndex, 16)
}

func TestAssemble_EdgeDirectionsAligned(t *testing.T) {
	a := assemblerFor(t, 1, "")
	rec, err := a.Assemble("octa", geometryOf(t, octahedron()))
	require.NoError(t, err)

	require.Equal(t, 0, len(rec.EdgeIndex)%2)
	for k := 0; k < len(rec.EdgeIndex); k += 2 {
		fwd, back := rec.EdgeIndex[k], rec.EdgeIndex[k+1]
		assert.Less(t, fwd[0], fwd[1])
		assert.Equal(t, [2]int{fwd[1], fwd[0]}, back)
		assert.Equal(t, rec.EdgeAttr[k], rec.EdgeAttr[k+1])
		if k > 0 {
			prev := rec.EdgeIndex[k-2]
			assert.True(t, prev[0] < fwd[0] || (prev[0] == fwd[0] && prev[1] < fwd[1]))
		}
	}
	assert.NoError(t, rec.Validate())
}

func TestAssemble_Deterministic(t *testing.T) {
	a := assemblerFor(t, 1, "")
	first, err := a.Assemble("cube", geometryOf(t, unitCube()))
	require.NoError(t, err)
	second, err := a.Assemble("cube", geometryOf(t, unitCube()))
	require.NoError(t, err)

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestAssemble_NilGeometry(t *testing.T) {
	a := assemblerFor(t, 0, "")
	_, err := a.Assemble("none", nil)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := assemblerFor(t, 1, "")
	b := assemblerFor(t, 1, "")
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Contains(t, a.Fingerprint(), "face_feature_set_1")
	assert.Contains(t, a.Fingerprint(), "target=three_body_energy")

	c := assemblerFor(t, 1, string(graph.TargetEnergyPerNode))
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), assemblerFor(t, 0, "").Fingerprint())
}

//Personal.AI order the ending
