package common

import (
	"math"
)

// Plane represents an oriented plane in 3D space. A point p lies on the
// plane when Dot(p, Normal) == Distance. Normals produced by the frustum
// extraction below point away from the visible region, so the signed
// distance of a visible point is negative.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// SignedDistance returns the signed distance from a point to the plane.
// Negative values lie on the inner (visible) side when the plane came from
// a frustum extraction.
//
// Parameters:
//   - p: the point to test, in world coordinates
//
// Returns:
//   - float32: the signed distance
func (pl Plane) SignedDistance(p Vec3) float32 {
	return p.Dot(pl.Normal) - pl.Distance
}

// Frustum holds the boundary planes of a viewing volume: six for a
// perspective or orthographic 3D frustum, four (the lateral planes only)
// for a 2D view rectangle.
type Frustum struct {
	Planes []Plane
}

// Frustum plane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustumFromMatrix extracts the six boundary planes from a combined
// projection * view matrix using the Gribb/Hartmann method, then flips them
// so that normals point outward (away from the visible volume).
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: 16 float32 values representing the projection * view matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with six normalized, outward-facing planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	return Frustum{Planes: extractPlanes(viewProj, 6)}
}

// ExtractLateralPlanes extracts only the left, right, bottom and top
// boundary planes, the set relevant to a 2D view where depth is ignored.
//
// Parameters:
//   - viewProj: 16 float32 values representing the projection * view matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with four normalized, outward-facing planes
func ExtractLateralPlanes(viewProj []float32) Frustum {
	return Frustum{Planes: extractPlanes(viewProj, 4)}
}

func extractPlanes(viewProj []float32, count int) []Plane {
	// For a column-major matrix M, element M[row][col] is at index col*4+row,
	// so row r of M is (viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]).
	row := func(r int) (float32, float32, float32, float32) {
		return viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]
	}
	w0, w1, w2, w3 := row(3)

	planes := make([]Plane, count)
	for i := 0; i < count; i++ {
		var a, b, c, d float32
		switch i {
		case FrustumLeft: // row3 + row0
			r0, r1, r2, r3 := row(0)
			a, b, c, d = w0+r0, w1+r1, w2+r2, w3+r3
		case FrustumRight: // row3 - row0
			r0, r1, r2, r3 := row(0)
			a, b, c, d = w0-r0, w1-r1, w2-r2, w3-r3
		case FrustumBottom: // row3 + row1
			r0, r1, r2, r3 := row(1)
			a, b, c, d = w0+r0, w1+r1, w2+r2, w3+r3
		case FrustumTop: // row3 - row1
			r0, r1, r2, r3 := row(1)
			a, b, c, d = w0-r0, w1-r1, w2-r2, w3-r3
		case FrustumNear: // row3 + row2
			r0, r1, r2, r3 := row(2)
			a, b, c, d = w0+r0, w1+r1, w2+r2, w3+r3
		case FrustumFar: // row3 - row2
			r0, r1, r2, r3 := row(2)
			a, b, c, d = w0-r0, w1-r1, w2-r2, w3-r3
		}

		// Gribb/Hartmann planes satisfy ax+by+cz+d > 0 inside the volume;
		// negate the normal so it points outward and normalize.
		length := float32(math.Sqrt(float64(a*a + b*b + c*c)))
		if length > 0 {
			invLen := 1.0 / length
			planes[i] = Plane{
				Normal:   Vec3{X: -a * invLen, Y: -b * invLen, Z: -c * invLen},
				Distance: d * invLen,
			}
		}
	}
	return planes
}
