package polyhedron

import "math"

// FacePair identifies two adjacent faces with I < J.
type FacePair struct {
	I int `json:"i"`
	J int `json:"j"`
}

// NewFacePair orders i and j.
func NewFacePair(i, j int) FacePair {
	if i > j {
		i, j = j, i
	}
	return FacePair{I: i, J: j}
}

// Edge is a hull edge: the two faces meeting along it and its end vertices.
type Edge struct {
	Faces    FacePair
	Vertices [2]int
}

// Geometry is the face structure of a convex polyhedron.  Faces are ordered
// lexicographically by their vertex cycles, and each cycle starts at its
// smallest vertex index and runs counter-clockwise seen from outside.
type Geometry struct {
	vertexCount int
	faces       [][]int
	normals     []Vec3
	areas       []float64
	centroids   []Vec3
	adjacency   [][]int
	edges       []Edge
	dihedrals   map[FacePair]float64
}

// NumFaces returns the number of polygonal faces.
func (g *Geometry) NumFaces() int { return len(g.faces) }

// VertexCount returns the number of hull vertices, which excludes interior
// points and points lying inside a face or on an edge.
func (g *Geometry) VertexCount() int { return g.vertexCount }

// Face returns a copy of the vertex cycle of face i.
func (g *Geometry) Face(i int) []int {
	out := make([]int, len(g.faces[i]))
	copy(out, g.faces[i])
	return out
}

// Faces returns a copy of every vertex cycle.
func (g *Geometry) Faces() [][]int {
	out := make([][]int, len(g.faces))
	for i := range g.faces {
		out[i] = g.Face(i)
	}
	return out
}

// FaceSides returns the number of sides of each face.
func (g *Geometry) FaceSides() []int {
	out := make([]int, len(g.faces))
	for i, f := range g.faces {
		out[i] = len(f)
	}
	return out
}

// Normal returns the outward unit normal of face i.
func (g *Geometry) Normal(i int) Vec3 { return g.normals[i] }

// Normals returns a copy of the outward unit normals.
func (g *Geometry) Normals() []Vec3 {
	out := make([]Vec3, len(g.normals))
	copy(out, g.normals)
	return out
}

// Areas returns a copy of the face areas.
func (g *Geometry) Areas() []float64 {
	out := make([]float64, len(g.areas))
	copy(out, g.areas)
	return out
}

// Centroids returns a copy of the face centroids.
func (g *Geometry) Centroids() []Vec3 {
	out := make([]Vec3, len(g.centroids))
	copy(out, g.centroids)
	return out
}

// Adjacency returns a copy of the symmetric 0/1 face adjacency matrix.
func (g *Geometry) Adjacency() [][]int {
	out := make([][]int, len(g.adjacency))
	for i, row := range g.adjacency {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Adjacent reports whether faces i and j share an edge.
func (g *Geometry) Adjacent(i, j int) bool { return g.adjacency[i][j] == 1 }

// Neighbors returns the faces adjacent to face i in ascending order.
func (g *Geometry) Neighbors(i int) []int {
	var out []int
	for j, a := range g.adjacency[i] {
		if a == 1 {
			out = append(out, j)
		}
	}
	return out
}

// Edges returns the hull edges ordered by face pair.
func (g *Geometry) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// FacePairs returns the adjacent face pairs in lexicographic order.
func (g *Geometry) FacePairs() []FacePair {
	out := make([]FacePair, len(g.edges))
	for i, e := range g.edges {
		out[i] = e.Faces
	}
	return out
}

// Dihedral returns the interior dihedral angle between faces i and j, in
// radians.  ok is false when the faces are not adjacent.
func (g *Geometry) Dihedral(i, j int) (angle float64, ok bool) {
	angle, ok = g.dihedrals[NewFacePair(i, j)]
	return angle, ok
}

// DihedralAngles returns the dihedral angle of every adjacent pair, aligned
// with FacePairs.
func (g *Geometry) DihedralAngles() []float64 {
	out := make([]float64, len(g.edges))
	for i, e := range g.edges {
		out[i] = g.dihedrals[e.Faces]
	}
	return out
}

// DihedralAngle is the interior angle between two faces with outward unit
// normals ni and nj.  The dot product is clamped so that exactly parallel or
// anti-parallel normals never produce NaN; the result lies in [0, π].
func DihedralAngle(ni, nj Vec3) float64 {
	return math.Acos(clamp(-ni.Dot(nj), -1, 1))
}

//Personal.AI order the ending
