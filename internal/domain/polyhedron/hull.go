package polyhedron

import (
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// triangle is one facet of the triangulated hull, wound counter-clockwise
// when seen from outside.
type triangle struct {
	v      [3]int
	normal Vec3
	offset float64
	alive  bool
}

func newTriangle(pts []Vec3, a, b, c int) triangle {
	n := pts[b].Sub(pts[a]).Cross(pts[c].Sub(pts[a])).Unit()
	return triangle{v: [3]int{a, b, c}, normal: n, offset: n.Dot(pts[a]), alive: true}
}

// distance is the signed distance of p above the facet plane.
func (t triangle) distance(p Vec3) float64 {
	return t.normal.Dot(p) - t.offset
}

func (t triangle) edge(k int) [2]int {
	return [2]int{t.v[k], t.v[(k+1)%3]}
}

// convexHull triangulates the convex hull of pts with the incremental
// algorithm: seed a tetrahedron from four extreme points, then insert the
// remaining points in index order, replacing every facet the point can see by
// a fan over the horizon.  Points within eps of the current hull are skipped.
func convexHull(pts []Vec3, eps float64) ([]triangle, error) {
	seed, err := seedTetrahedron(pts, eps)
	if err != nil {
		return nil, err
	}

	// The seed centroid stays strictly inside the hull as it grows, so it
	// fixes the winding of every new facet.
	var inner Vec3
	for _, i := range seed {
		inner = inner.Add(pts[i])
	}
	inner = inner.Scale(0.25)

	var facets []triangle
	add := func(a, b, c int) {
		t := newTriangle(pts, a, b, c)
		if t.distance(inner) > 0 {
			t = newTriangle(pts, a, c, b)
		}
		facets = append(facets, t)
	}
	add(seed[0], seed[1], seed[2])
	add(seed[0], seed[1], seed[3])
	add(seed[0], seed[2], seed[3])
	add(seed[1], seed[2], seed[3])

	inSeed := map[int]bool{seed[0]: true, seed[1]: true, seed[2]: true, seed[3]: true}
	for i := range pts {
		if inSeed[i] {
			continue
		}

		visible := make(map[int]bool)
		var order []int
		for fi := range facets {
			if facets[fi].alive && facets[fi].distance(pts[i]) > eps {
				visible[fi] = true
				order = append(order, fi)
			}
		}
		if len(order) == 0 {
			continue
		}

		owner := make(map[[2]int]int)
		for fi := range facets {
			if !facets[fi].alive {
				continue
			}
			for k := 0; k < 3; k++ {
				owner[facets[fi].edge(k)] = fi
			}
		}

		var horizon [][2]int
		for _, fi := range order {
			for k := 0; k < 3; k++ {
				e := facets[fi].edge(k)
				if other, ok := owner[[2]int{e[1], e[0]}]; !ok || !visible[other] {
					horizon = append(horizon, e)
				}
			}
		}
		for _, fi := range order {
			facets[fi].alive = false
		}
		for _, e := range horizon {
			add(e[0], e[1], i)
		}
	}

	out := make([]triangle, 0, len(facets))
	for _, t := range facets {
		if t.alive {
			out = append(out, t)
		}
	}
	return out, nil
}

// seedTetrahedron picks four affinely independent extreme points or reports
// why the cloud cannot bound a solid.
func seedTetrahedron(pts []Vec3, eps float64) ([4]int, error) {
	var seed [4]int

	i1, best := -1, eps
	for i := range pts {
		if d := pts[i].Sub(pts[0]).Norm(); d > best {
			i1, best = i, d
		}
	}
	if i1 < 0 {
		return seed, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "all vertices coincide")
	}

	dir := pts[i1].Sub(pts[0]).Unit()
	i2, best := -1, eps
	for i := range pts {
		if d := pts[i].Sub(pts[0]).Cross(dir).Norm(); d > best {
			i2, best = i, d
		}
	}
	if i2 < 0 {
		return seed, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "all vertices are collinear")
	}

	n := pts[i1].Sub(pts[0]).Cross(pts[i2].Sub(pts[0])).Unit()
	i3, best := -1, eps
	for i := range pts {
		d := n.Dot(pts[i].Sub(pts[0]))
		if d < 0 {
			d = -d
		}
		if d > best {
			i3, best = i, d
		}
	}
	if i3 < 0 {
		return seed, pkgerrors.New(pkgerrors.ErrCodeDegenerateHull, "all vertices are coplanar")
	}

	seed = [4]int{0, i1, i2, i3}
	return seed, nil
}

//Personal.AI order the ending
