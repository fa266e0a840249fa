// Package polyhedron derives the face structure of a convex polyhedron from
// its vertex cloud: convex hull, coplanar face merging, outward unit normals,
// face areas and centroids, face adjacency and dihedral angles.
//
// Every function is pure.  A Polyhedron is immutable once constructed and a
// Geometry is never modified after Extract returns it.
package polyhedron

import (
	"math"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// MinVertices is the smallest vertex count that can bound a solid.
const MinVertices = 4

// Polyhedron is an ordered, immutable vertex cloud.
type Polyhedron struct {
	vertices []Vec3
}

// NewPolyhedron validates vertices and returns a Polyhedron holding a copy of
// them.  It fails with ErrCodeInvalidVertices when fewer than four vertices are
// given or any coordinate is NaN or infinite.
func NewPolyhedron(vertices [][3]float64) (*Polyhedron, error) {
	if len(vertices) < MinVertices {
		return nil, pkgerrors.Newf(pkgerrors.ErrCodeInvalidVertices,
			"polyhedron needs at least %d vertices, got %d", MinVertices, len(vertices))
	}
	vs := make([]Vec3, len(vertices))
	for i, v := range vertices {
		for k, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, pkgerrors.Newf(pkgerrors.ErrCodeInvalidVertices,
					"vertex %d coordinate %d is not finite", i, k)
			}
		}
		vs[i] = Vec3(v)
	}
	return &Polyhedron{vertices: vs}, nil
}

// VertexCount returns the number of input vertices.
func (p *Polyhedron) VertexCount() int { return len(p.vertices) }

// Vertex returns vertex i.
func (p *Polyhedron) Vertex(i int) Vec3 { return p.vertices[i] }

// Vertices returns a copy of the vertex list.
func (p *Polyhedron) Vertices() []Vec3 {
	out := make([]Vec3, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// centroid is the arithmetic mean of the vertices.
func (p *Polyhedron) centroid() Vec3 {
	var c Vec3
	for _, v := range p.vertices {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.vertices)))
}

// scale is the largest distance of any vertex from the centroid.  Distance
// tolerances are expressed relative to it so that the extractor behaves the
// same for a unit cell and for coordinates in ångström or picometre.
func (p *Polyhedron) scale() float64 {
	c := p.centroid()
	s := 0.0
	for _, v := range p.vertices {
		if d := v.Sub(c).Norm(); d > s {
			s = d
		}
	}
	return s
}

//Personal.AI order the ending
