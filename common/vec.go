package common

import "math"

// Vec3 is a 3-component float32 vector used for positions, directions, and
// per-axis scaling factors. 2D code uses X and Y and leaves Z at its zero
// (or, for scaling, identity) value.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns the component-wise sum v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise (Hadamard) product v * o.
func (v Vec3) Mul(o Vec3) Vec3 {
	return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Div returns the component-wise quotient v / o. Zero components of o are
// passed through unchanged to avoid NaN propagation.
func (v Vec3) Div(o Vec3) Vec3 {
	r := v
	if o.X != 0 {
		r.X /= o.X
	}
	if o.Y != 0 {
		r.Y /= o.Y
	}
	if o.Z != 0 {
		r.Z /= o.Z
	}
	return r
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product v · o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// SquaredNorm returns |v|².
func (v Vec3) SquaredNorm() float32 {
	return v.Dot(v)
}

// Norm returns |v|.
func (v Vec3) Norm() float32 {
	return float32(math.Sqrt(float64(v.SquaredNorm())))
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// ProjectOnAxis returns the projection of v onto the axis defined by
// direction dir. A zero dir yields the zero vector.
func (v Vec3) ProjectOnAxis(dir Vec3) Vec3 {
	sq := dir.SquaredNorm()
	if sq == 0 {
		return Vec3{}
	}
	return dir.Scale(v.Dot(dir) / sq)
}

// ProjectOnPlane returns the projection of v onto the plane through the
// origin orthogonal to normal. A zero normal yields v unchanged.
func (v Vec3) ProjectOnPlane(normal Vec3) Vec3 {
	sq := normal.SquaredNorm()
	if sq == 0 {
		return v
	}
	return v.Sub(normal.Scale(v.Dot(normal) / sq))
}

// OrthogonalVec returns a vector orthogonal to v with a norm on the order
// of |v|. The axis swap picks the component layout that avoids degenerate
// results for axis-aligned inputs.
func (v Vec3) OrthogonalVec() Vec3 {
	ax, ay, az := abs32(v.X), abs32(v.Y), abs32(v.Z)
	switch {
	case ax <= ay && ax <= az:
		return Vec3{0, -v.Z, v.Y}
	case ay <= ax && ay <= az:
		return Vec3{-v.Z, 0, v.X}
	default:
		return Vec3{-v.Y, v.X, 0}
	}
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Clamp returns f limited to the closed interval [lo, hi].
func Clamp(f, lo, hi float32) float32 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
