package common

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i) * 0.5
	}
	Mul4(out[:], id[:], m[:])
	for i := range out {
		if out[i] != m[i] {
			t.Errorf("Expected %v got %v at index %d", m[i], out[i], i)
		}
	}
}

func TestMul4Aliasing(t *testing.T) {
	var a, b, want [16]float32
	Perspective(a[:], float32(math.Pi/3), 1.5, 0.1, 100)
	Identity(b[:])
	b[12] = 3
	Mul4(want[:], a[:], b[:])

	// Writing the result over one of the inputs must not corrupt it.
	Mul4(a[:], a[:], b[:])
	for i := range want {
		if !almostEqual(a[i], want[i], 1e-6) {
			t.Errorf("Expected %v got %v at index %d", want[i], a[i], i)
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, prod [16]float32
	Perspective(m[:], float32(math.Pi/4), 1.2, 0.5, 50)
	if !Invert4(inv[:], m[:]) {
		t.Fatalf("Expected true got false")
	}
	Mul4(prod[:], m[:], inv[:])

	var id [16]float32
	Identity(id[:])
	for i := range prod {
		if !almostEqual(prod[i], id[i], 1e-4) {
			t.Errorf("Expected %v got %v at index %d", id[i], prod[i], i)
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var m, inv [16]float32
	if Invert4(inv[:], m[:]) {
		t.Errorf("Expected false got true")
	}
}

func TestMulVec4(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	m[12], m[13], m[14] = 1, 2, 3

	x, y, z, w := MulVec4(m[:], 5, 6, 7, 1)
	if x != 6 || y != 8 || z != 10 || w != 1 {
		t.Errorf("Expected (6 8 10 1) got (%v %v %v %v)", x, y, z, w)
	}
}

func TestBuildMatrixComposition(t *testing.T) {
	var m [16]float32
	rot := QuatFromAxisAngle(Vec3{Z: 1}, float32(math.Pi/2))
	BuildMatrix(m[:], Vec3{X: 10}, rot, Vec3{X: 1, Y: 1, Z: 1})

	// The local X axis should map to world Y, then translate.
	x, y, z, _ := MulVec4(m[:], 1, 0, 0, 1)
	if !almostEqual(x, 10, 1e-5) || !almostEqual(y, 1, 1e-5) || !almostEqual(z, 0, 1e-5) {
		t.Errorf("Expected (10 1 0) got (%v %v %v)", x, y, z)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var m [16]float32
	near, far := float32(1), float32(10)
	Perspective(m[:], float32(math.Pi/3), 1, near, far)

	// A point on the near plane lands at clip z/w = -1, far at +1.
	_, _, z, w := MulVec4(m[:], 0, 0, -near, 1)
	if !almostEqual(z/w, -1, 1e-5) {
		t.Errorf("Expected -1 got %v", z/w)
	}
	_, _, z, w = MulVec4(m[:], 0, 0, -far, 1)
	if !almostEqual(z/w, 1, 1e-5) {
		t.Errorf("Expected 1 got %v", z/w)
	}
}

func TestExtractFrustumFromMatrix(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], float32(math.Pi/2), 1, 1, 100)
	fr := ExtractFrustumFromMatrix(proj[:])

	if len(fr.Planes) != 6 {
		t.Fatalf("Expected 6 got %d", len(fr.Planes))
	}

	// Origin of view space sits between near and the lateral planes, in
	// front of near means outside; a point well inside must be negative
	// against every plane.
	inside := Vec3{Z: -10}
	for i, p := range fr.Planes {
		if d := p.SignedDistance(inside); d >= 0 {
			t.Errorf("Expected negative distance got %v for plane %d", d, i)
		}
	}
	outside := Vec3{Z: 10}
	if fr.Planes[FrustumNear].SignedDistance(outside) <= 0 {
		t.Errorf("Expected positive distance got %v", fr.Planes[FrustumNear].SignedDistance(outside))
	}
}

func TestExtractLateralPlanes(t *testing.T) {
	var proj [16]float32
	Ortho(proj[:], 10, 5, -1, 1)
	fr := ExtractLateralPlanes(proj[:])
	if len(fr.Planes) != 4 {
		t.Fatalf("Expected 4 got %d", len(fr.Planes))
	}
	if d := fr.Planes[FrustumRight].SignedDistance(Vec3{X: 12}); d <= 0 {
		t.Errorf("Expected positive distance got %v", d)
	}
	if d := fr.Planes[FrustumRight].SignedDistance(Vec3{X: 8}); d >= 0 {
		t.Errorf("Expected negative distance got %v", d)
	}
}
