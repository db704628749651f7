package common

import (
	"math"
	"testing"
)

func vecAlmostEqual(a, b Vec3, eps float32) bool {
	return almostEqual(a.X, b.X, eps) && almostEqual(a.Y, b.Y, eps) && almostEqual(a.Z, b.Z, eps)
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	got := q.Rotate(Vec3{X: 1})
	if !vecAlmostEqual(got, Vec3{Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", Vec3{Y: 1}, got)
	}
}

func TestQuatInverseRotateRoundTrip(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 1, Y: 2, Z: -1}, 0.7)
	v := Vec3{X: 3, Y: -4, Z: 5}
	got := q.InverseRotate(q.Rotate(v))
	if !vecAlmostEqual(got, v, 1e-4) {
		t.Errorf("Expected %v got %v", v, got)
	}
}

func TestQuatCompose(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/4))
	b := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/4))
	c := a.Compose(b)
	got := c.Rotate(Vec3{X: 1})
	if !vecAlmostEqual(got, Vec3{Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", Vec3{Y: 1}, got)
	}
}

func TestQuatSlerpEndpoints(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Y: 1}, 0)
	b := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))

	start := a.Slerp(b, 0)
	if !vecAlmostEqual(start.Rotate(Vec3{X: 1}), Vec3{X: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", Vec3{X: 1}, start.Rotate(Vec3{X: 1}))
	}
	end := a.Slerp(b, 1)
	if !vecAlmostEqual(end.Rotate(Vec3{X: 1}), Vec3{Z: -1}, 1e-5) {
		t.Errorf("Expected %v got %v", Vec3{Z: -1}, end.Rotate(Vec3{X: 1}))
	}
}

func TestQuatSlerpHalfway(t *testing.T) {
	a := QuatFromAxisAngle(Vec3{Z: 1}, 0)
	b := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	mid := a.Slerp(b, 0.5)
	if !almostEqual(mid.Angle(), float32(math.Pi/4), 1e-4) {
		t.Errorf("Expected %v got %v", float32(math.Pi/4), mid.Angle())
	}
}

func TestQuatMatrixMatchesRotate(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{X: 1, Y: 1}, 1.1)
	m := q.Matrix()
	v := Vec3{X: 2, Y: -1, Z: 0.5}
	x, y, z, _ := MulVec4(m[:], v.X, v.Y, v.Z, 1)
	want := q.Rotate(v)
	if !vecAlmostEqual(Vec3{X: x, Y: y, Z: z}, want, 1e-4) {
		t.Errorf("Expected %v got (%v %v %v)", want, x, y, z)
	}
}

func TestRotCompose(t *testing.T) {
	a := Rot{A: 0.5}
	b := Rot{A: 0.25}
	c := a.Compose(b)
	if !almostEqual(c.Angle(), 0.75, 1e-6) {
		t.Errorf("Expected %v got %v", 0.75, c.Angle())
	}
}

func TestRotRotatePlanar(t *testing.T) {
	r := Rot{A: float32(math.Pi / 2)}
	got := r.Rotate(Vec3{X: 1})
	if !vecAlmostEqual(got, Vec3{Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", Vec3{Y: 1}, got)
	}
	back := r.InverseRotate(got)
	if !vecAlmostEqual(back, Vec3{X: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", Vec3{X: 1}, back)
	}
}

func TestRotFromPoints(t *testing.T) {
	center := Vec3{}
	prev := Vec3{X: 1}
	cur := Vec3{Y: 1}
	r := RotFromPoints(center, prev, cur)
	if !almostEqual(r.Angle(), float32(math.Pi/2), 1e-5) {
		t.Errorf("Expected %v got %v", float32(math.Pi/2), r.Angle())
	}
}
