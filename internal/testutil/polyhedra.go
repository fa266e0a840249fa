package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
)

// UnitCube has 6 square faces and 12 edges.
func UnitCube() [][3]float64 {
	return [][3]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
}

// RegularTetrahedron has 4 equilateral faces with edge 2√2.
func RegularTetrahedron() [][3]float64 {
	return [][3]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}
}

// Octahedron has 8 triangular faces.
func Octahedron() [][3]float64 {
	return [][3]float64{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
}

// SquarePyramid has one square base and 4 triangles.
func SquarePyramid() [][3]float64 {
	return [][3]float64{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}, {0, 0, 1}}
}

// FlatSquare is coplanar and has no hull.
func FlatSquare() [][3]float64 {
	return [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
}

// SeedStore returns a MemoryStore holding one raw record per id.
func SeedStore(t testing.TB, polyhedra map[string][][3]float64) *record.MemoryStore {
	t.Helper()
	store := record.NewMemoryStore()
	for id, vs := range polyhedra {
		rec, err := record.NewWithVertices(vs)
		require.NoError(t, err)
		store.Put(id, rec.Bytes())
	}
	return store
}

//Personal.AI order the ending
