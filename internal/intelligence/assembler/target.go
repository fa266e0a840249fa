package assembler

import (
	"github.com/turtacn/PolyGraph-Intelligence/internal/domain/polyhedron"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/graph"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// TargetFunc computes the graph-level target from the face normals and the
// face adjacency matrix.
type TargetFunc interface {
	Kind() graph.TargetKind
	Compute(normals []polyhedron.Vec3, adjacency [][]int) float64
}

// TargetFor returns the TargetFunc registered for kind.
func TargetFor(kind graph.TargetKind) (TargetFunc, error) {
	switch kind {
	case graph.TargetEnergyPerNode:
		return EnergyPerNode{}, nil
	case graph.TargetThreeBodyEnergy:
		return ThreeBodyEnergy{}, nil
	}
	return nil, pkgerrors.Newf(pkgerrors.ErrCodeEncodingConfig, "unknown target kind %q", kind)
}

// EnergyPerNode is the mean over faces of ½ Σ_j (1 - n_i·n_j), summed over
// the neighbours j of face i.
type EnergyPerNode struct{}

func (EnergyPerNode) Kind() graph.TargetKind { return graph.TargetEnergyPerNode }

func (EnergyPerNode) Compute(normals []polyhedron.Vec3, adjacency [][]int) float64 {
	if len(normals) == 0 {
		return 0
	}
	total := 0.0
	for i, row := range adjacency {
		e := 0.0
		for j, a := range row {
			if a == 1 {
				e += 1 - normals[i].Dot(normals[j])
			}
		}
		total += 0.5 * e
	}
	return total / float64(len(normals))
}

// ThreeBodyEnergy averages (n_i·n_j)(n_i·n_k)(n_j·n_k) over every face i and
// every unordered pair j<k of its neighbours.  It is 0 when no face has two
// neighbours.
type ThreeBodyEnergy struct{}

func (ThreeBodyEnergy) Kind() graph.TargetKind { return graph.TargetThreeBodyEnergy }

func (ThreeBodyEnergy) Compute(normals []polyhedron.Vec3, adjacency [][]int) float64 {
	total := 0.0
	triples := 0
	for i, row := range adjacency {
		var nbrs []int
		for j, a := range row {
			if a == 1 {
				nbrs = append(nbrs, j)
			}
		}
		ni := normals[i]
		for a := 0; a < len(nbrs); a++ {
			nj := normals[nbrs[a]]
			for b := a + 1; b < len(nbrs); b++ {
				nk := normals[nbrs[b]]
				total += ni.Dot(nj) * ni.Dot(nk) * nj.Dot(nk)
				triples++
			}
		}
	}
	if triples == 0 {
		return 0
	}
	return total / float64(triples)
}

//Personal.AI order the ending
