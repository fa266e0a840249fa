package polyhedron

import (
	"sort"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// DefaultTolerance is the relative tolerance used to decide that two hull
// facets are coplanar and that a vertex lies on a straight edge.
const DefaultTolerance = 1e-6

// Extract computes the face structure of p.  tol is relative: distances are
// compared against tol times the polyhedron radius and normal directions
// against 1-tol.  A non-positive tol selects DefaultTolerance.
//
// It fails with ErrCodeDegenerateHull when the vertices do not span a solid
// and with ErrCodeZeroAreaFace when a merged face has no area.
func Extract(p *Polyhedron, tol float64) (*Geometry, error) {
	if p == nil {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidVertices, "polyhedron is nil")
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	scale := p.scale()
	if scale == 0 {
		return nil, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "all vertices coincide")
	}
	eps := tol * scale

	facets, err := convexHull(p.vertices, eps)
	if err != nil {
		return nil, err
	}

	cycles, err := mergeCoplanar(p.vertices, facets, tol, eps)
	if err != nil {
		return nil, err
	}

	g := &Geometry{
		faces:     cycles,
		normals:   make([]Vec3, len(cycles)),
		areas:     make([]float64, len(cycles)),
		centroids: make([]Vec3, len(cycles)),
		dihedrals: make(map[FacePair]float64),
	}

	center := p.centroid()
	hullVertices := make(map[int]struct{})
	for i, cyc := range cycles {
		for _, v := range cyc {
			hullVertices[v] = struct{}{}
		}
		normal, area, centroid := facePlane(p.vertices, cyc)
		if area <= eps*eps {
			return nil, pkgerrors.Newf(pkgerrors.ErrCodeZeroAreaFace, "face %d has zero area", i)
		}
		if normal.Dot(centroid.Sub(center)) < 0 {
			return nil, pkgerrors.Newf(pkgerrors.ErrCodeDegenerateHull, "face %d normal points inward", i)
		}
		g.normals[i], g.areas[i], g.centroids[i] = normal, area, centroid
	}
	g.vertexCount = len(hullVertices)

	if err := g.linkFaces(); err != nil {
		return nil, err
	}
	return g, nil
}

// mergeCoplanar groups hull facets that share an edge and lie in the same
// plane, then traces each group's boundary into a single polygon.
func mergeCoplanar(pts []Vec3, facets []triangle, tol, eps float64) ([][]int, error) {
	parent := make([]int, len(facets))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	owner := make(map[[2]int]int, 3*len(facets))
	for ti, t := range facets {
		for k := 0; k < 3; k++ {
			owner[t.edge(k)] = ti
		}
	}
	for ti, t := range facets {
		for k := 0; k < 3; k++ {
			e := t.edge(k)
			tj, ok := owner[[2]int{e[1], e[0]}]
			if !ok {
				return nil, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "hull is not closed")
			}
			if tj > ti && coplanar(pts, t, facets[tj], tol, eps) {
				parent[find(tj)] = find(ti)
			}
		}
	}

	groups := make(map[int][]int)
	var roots []int
	for ti := range facets {
		r := find(ti)
		if _, ok := groups[r]; !ok {
			roots = append(roots, r)
		}
		groups[r] = append(groups[r], ti)
	}

	cycles := make([][]int, 0, len(roots))
	for _, r := range roots {
		cyc, err := traceBoundary(facets, groups[r], owner, find)
		if err != nil {
			return nil, err
		}
		cyc = dropCollinear(pts, cyc, tol)
		if len(cyc) < 3 {
			return nil, pkgerrors.New(pkgerrors.ErrCodeZeroAreaFace, "face collapses to a segment")
		}
		cycles = append(cycles, rotateToMin(cyc))
	}

	sort.Slice(cycles, func(a, b int) bool { return lessCycle(cycles[a], cycles[b]) })
	return cycles, nil
}

func coplanar(pts []Vec3, a, b triangle, tol, eps float64) bool {
	if a.normal.Dot(b.normal) < 1-tol {
		return false
	}
	for _, v := range b.v {
		d := a.distance(pts[v])
		if d > eps || d < -eps {
			return false
		}
	}
	return true
}

// traceBoundary follows the directed edges of a facet group that have no
// partner inside the group.  The winding of the facets carries over, so the
// cycle is counter-clockwise seen from outside.
func traceBoundary(facets []triangle, group []int, owner map[[2]int]int, find func(int) int) ([]int, error) {
	root := find(group[0])
	next := make(map[int]int)
	for _, ti := range group {
		for k := 0; k < 3; k++ {
			e := facets[ti].edge(k)
			if find(owner[[2]int{e[1], e[0]}]) == root {
				continue
			}
			if _, dup := next[e[0]]; dup {
				return nil, pkgerrors.Newf(pkgerrors.ErrCodeDegenerateHull, "vertex %d repeats on a face boundary", e[0])
			}
			next[e[0]] = e[1]
		}
	}

	start := -1
	for v := range next {
		if start < 0 || v < start {
			start = v
		}
	}
	cyc := []int{start}
	for v := next[start]; v != start; v = next[v] {
		if len(cyc) > len(next) {
			return nil, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "face boundary does not close")
		}
		cyc = append(cyc, v)
	}
	if len(cyc) != len(next) {
		return nil, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "face boundary is not a simple cycle")
	}
	return cyc, nil
}

// dropCollinear removes vertices that sit on a straight run of the boundary.
func dropCollinear(pts []Vec3, cyc []int, tol float64) []int {
	for changed := true; changed && len(cyc) > 3; {
		changed = false
		for i := range cyc {
			u := pts[cyc[(i+len(cyc)-1)%len(cyc)]]
			v := pts[cyc[i]]
			w := pts[cyc[(i+1)%len(cyc)]]
			e1, e2 := v.Sub(u), w.Sub(v)
			if e1.Cross(e2).Norm() <= tol*e1.Norm()*e2.Norm() {
				cyc = append(cyc[:i:i], cyc[i+1:]...)
				changed = true
				break
			}
		}
	}
	return cyc
}

func rotateToMin(cyc []int) []int {
	m := 0
	for i, v := range cyc {
		if v < cyc[m] {
			m = i
		}
	}
	return append(append([]int(nil), cyc[m:]...), cyc[:m]...)
}

func lessCycle(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// facePlane returns the unit normal (Newell's method), the area and the area
// centroid of the planar polygon cyc.
func facePlane(pts []Vec3, cyc []int) (normal Vec3, area float64, centroid Vec3) {
	var newell Vec3
	for i := range cyc {
		a, b := pts[cyc[i]], pts[cyc[(i+1)%len(cyc)]]
		newell = newell.Add(a.Cross(b))
	}
	area = 0.5 * newell.Norm()
	normal = newell.Unit()

	o := pts[cyc[0]]
	var weighted Vec3
	total := 0.0
	for i := 1; i+1 < len(cyc); i++ {
		b, c := pts[cyc[i]], pts[cyc[i+1]]
		w := 0.5 * b.Sub(o).Cross(c.Sub(o)).Dot(normal)
		weighted = weighted.Add(o.Add(b).Add(c).Scale(w / 3))
		total += w
	}
	if total != 0 {
		centroid = weighted.Scale(1 / total)
	} else {
		centroid = o
	}
	return normal, area, centroid
}

// linkFaces fills adjacency, edges and dihedral angles.  Faces are adjacent
// exactly when an edge appears, consecutively, in both boundaries.
func (g *Geometry) linkFaces() error {
	n := len(g.faces)
	g.adjacency = make([][]int, n)
	for i := range g.adjacency {
		g.adjacency[i] = make([]int, n)
	}

	shared := make(map[[2]int][]int)
	for fi, cyc := range g.faces {
		for k := range cyc {
			a, b := cyc[k], cyc[(k+1)%len(cyc)]
			if a > b {
				a, b = b, a
			}
			shared[[2]int{a, b}] = append(shared[[2]int{a, b}], fi)
		}
	}

	for verts, fs := range shared {
		if len(fs) != 2 || fs[0] == fs[1] {
			return pkgerrors.Newf(pkgerrors.ErrCodeDegenerateHull,
				"edge %d-%d is shared by %d faces", verts[0], verts[1], len(fs))
		}
		pair := NewFacePair(fs[0], fs[1])
		if g.adjacency[pair.I][pair.J] == 1 {
			return pkgerrors.Newf(pkgerrors.ErrCodeDegenerateHull,
				"faces %d and %d share more than one edge", pair.I, pair.J)
		}
		g.adjacency[pair.I][pair.J] = 1
		g.adjacency[pair.J][pair.I] = 1
		g.dihedrals[pair] = DihedralAngle(g.normals[pair.I], g.normals[pair.J])
		g.edges = append(g.edges, Edge{Faces: pair, Vertices: verts})
	}

	sort.Slice(g.edges, func(a, b int) bool {
		ea, eb := g.edges[a].Faces, g.edges[b].Faces
		if ea.I != eb.I {
			return ea.I < eb.I
		}
		return ea.J < eb.J
	})
	return nil
}

//Personal.AI order the ending
