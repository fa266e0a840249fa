package polyhedron

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	x, y := Vec3{1, 0, 0}, Vec3{0, 2, 0}

	assert.Equal(t, Vec3{1, 2, 0}, x.Add(y))
	assert.Equal(t, Vec3{1, -2, 0}, x.Sub(y))
	assert.Equal(t, Vec3{0, 1, 0}, y.Scale(0.5))
	assert.Equal(t, 0.0, x.Dot(y))
	assert.Equal(t, Vec3{0, 0, 2}, x.Cross(y))
	assert.Equal(t, Vec3{0, 0, -2}, y.Cross(x))
	assert.InDelta(t, math.Sqrt(5), x.Add(y).Norm(), 1e-12)
	assert.Equal(t, Vec3{0, 1, 0}, y.Unit())
	assert.Equal(t, Vec3{}, Vec3{}.Unit(), "zero vector stays zero")
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, clamp(1.0000001, -1, 1))
	assert.Equal(t, -1.0, clamp(-3, -1, 1))
	assert.Equal(t, 0.25, clamp(0.25, -1, 1))
}

//Personal.AI order the ending
