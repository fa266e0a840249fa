package polyhedron

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a point or direction in three-dimensional space.  It keeps the
// array layout of the record format; arithmetic goes through r3.
type Vec3 [3]float64

func (a Vec3) vec() r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func fromR3(v r3.Vec) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func (a Vec3) Add(b Vec3) Vec3 { return fromR3(r3.Add(a.vec(), b.vec())) }

func (a Vec3) Sub(b Vec3) Vec3 { return fromR3(r3.Sub(a.vec(), b.vec())) }

func (a Vec3) Scale(s float64) Vec3 { return fromR3(r3.Scale(s, a.vec())) }

func (a Vec3) Dot(b Vec3) float64 { return r3.Dot(a.vec(), b.vec()) }

func (a Vec3) Cross(b Vec3) Vec3 { return fromR3(r3.Cross(a.vec(), b.vec())) }

func (a Vec3) Norm() float64 { return r3.Norm(a.vec()) }

// Unit returns a scaled to length one.  The zero vector is returned unchanged.
func (a Vec3) Unit() Vec3 {
	if a.Norm() == 0 {
		return a
	}
	return fromR3(r3.Unit(a.vec()))
}

// clamp limits x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

//Personal.AI order the ending
