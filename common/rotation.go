package common

import "math"

// Rotation abstracts over the two rotation representations the engine
// supports: a unit quaternion in 3D and a signed planar angle in 2D. A
// Frame stores one Rotation and never mixes representations; Compose and
// the inverse operations are only defined between rotations of the same
// kind.
type Rotation interface {
	// Angle returns the rotation angle in radians. For quaternions this is
	// the axis-angle magnitude in [0, 2π).
	//
	// Returns:
	//   - float32: the rotation angle in radians
	Angle() float32

	// Rotate applies the rotation to v.
	//
	// Parameters:
	//   - v: the vector to rotate
	//
	// Returns:
	//   - Vec3: the rotated vector
	Rotate(v Vec3) Vec3

	// InverseRotate applies the inverse rotation to v.
	//
	// Parameters:
	//   - v: the vector to rotate
	//
	// Returns:
	//   - Vec3: the inversely rotated vector
	InverseRotate(v Vec3) Vec3

	// Compose returns this rotation followed in local space by o, i.e. the
	// product this * o. Composing rotations of different kinds returns the
	// receiver unchanged.
	//
	// Parameters:
	//   - o: the rotation to append
	//
	// Returns:
	//   - Rotation: the composed rotation
	Compose(o Rotation) Rotation

	// Inverse returns the inverse rotation.
	//
	// Returns:
	//   - Rotation: the inverse rotation
	Inverse() Rotation

	// Normalized returns the rotation brought back to its canonical unit
	// form (unit quaternion, or angle wrapped to (-π, π]).
	//
	// Returns:
	//   - Rotation: the normalized rotation
	Normalized() Rotation
}

// Quat is a rotation quaternion (X, Y, Z imaginary parts, W real part).
// The zero value is not a valid rotation; use QuatIdentity or one of the
// constructors.
type Quat struct {
	X, Y, Z, W float32
}

var _ Rotation = Quat{}

// QuatIdentity returns the identity quaternion.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds a quaternion rotating by angle radians around
// axis. A zero-length axis yields the identity quaternion rather than NaN.
//
// Parameters:
//   - axis: the rotation axis (need not be unit length)
//   - angle: the rotation angle in radians
//
// Returns:
//   - Quat: the resulting unit quaternion
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	n := axis.Norm()
	if n == 0 {
		return QuatIdentity()
	}
	s := float32(math.Sin(float64(angle)/2)) / n
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(angle) / 2)),
	}
}

// QuatFromEulerAngles builds a quaternion from roll, pitch, and yaw angles
// (radians), composing rotations about X, Y, and Z in that order.
//
// Parameters:
//   - roll, pitch, yaw: rotation angles about X, Y, and Z in radians
//
// Returns:
//   - Quat: the resulting unit quaternion
func QuatFromEulerAngles(roll, pitch, yaw float32) Quat {
	qx := QuatFromAxisAngle(Vec3{X: 1}, roll)
	qy := QuatFromAxisAngle(Vec3{Y: 1}, pitch)
	qz := QuatFromAxisAngle(Vec3{Z: 1}, yaw)
	return qz.Mul(qy).Mul(qx)
}

// Mul returns the Hamilton product q * o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y + q.Y*o.W + q.Z*o.X - q.X*o.Z,
		Z: q.W*o.Z + q.Z*o.W + q.X*o.Y - q.Y*o.X,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Axis returns the normalized rotation axis. The identity quaternion maps
// to the Z axis so callers always receive a usable direction.
func (q Quat) Axis() Vec3 {
	v := Vec3{q.X, q.Y, q.Z}
	if v.IsZero() {
		return Vec3{Z: 1}
	}
	return v.Normalized()
}

// Angle returns the rotation angle in radians.
func (q Quat) Angle() float32 {
	w := Clamp(q.W, -1, 1)
	return 2 * float32(math.Acos(float64(w)))
}

// Rotate applies the quaternion rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*u × (u × v + w*v), u = (X,Y,Z)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}

// InverseRotate applies the inverse quaternion rotation to v.
func (q Quat) InverseRotate(v Vec3) Vec3 {
	return q.InverseQuat().Rotate(v)
}

// InverseQuat returns the quaternion conjugate, which equals the inverse
// for unit quaternions.
func (q Quat) InverseQuat() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Inverse returns the inverse rotation.
func (q Quat) Inverse() Rotation {
	return q.InverseQuat()
}

// Compose returns q * o when o is a Quat, and q unchanged otherwise.
func (q Quat) Compose(o Rotation) Rotation {
	oq, ok := o.(Quat)
	if !ok {
		return q
	}
	return q.Mul(oq)
}

// Normalized returns the quaternion scaled to unit norm. A degenerate
// zero quaternion normalizes to the identity.
func (q Quat) Normalized() Rotation {
	n := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if n == 0 {
		return QuatIdentity()
	}
	return Quat{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// Slerp spherically interpolates from q to o by t in [0, 1], taking the
// shorter arc.
//
// Parameters:
//   - o: the target quaternion
//   - t: the interpolation parameter in [0, 1]
//
// Returns:
//   - Quat: the interpolated unit quaternion
func (q Quat) Slerp(o Quat, t float32) Quat {
	cosA := q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
	if cosA < 0 {
		o = Quat{-o.X, -o.Y, -o.Z, -o.W}
		cosA = -cosA
	}
	var wq, wo float32
	if cosA > 0.9995 {
		// Nearly parallel: fall back to lerp to dodge the vanishing sine.
		wq, wo = 1-t, t
	} else {
		a := float32(math.Acos(float64(Clamp(cosA, -1, 1))))
		sinA := float32(math.Sin(float64(a)))
		wq = float32(math.Sin(float64((1-t)*a))) / sinA
		wo = float32(math.Sin(float64(t*a))) / sinA
	}
	r := Quat{
		X: wq*q.X + wo*o.X,
		Y: wq*q.Y + wo*o.Y,
		Z: wq*q.Z + wo*o.Z,
		W: wq*q.W + wo*o.W,
	}
	return r.Normalized().(Quat)
}

// Matrix returns the column-major 4x4 rotation matrix of q.
func (q Quat) Matrix() [16]float32 {
	x2, y2, z2 := q.X*q.X, q.Y*q.Y, q.Z*q.Z
	xy, xz, yz := q.X*q.Y, q.X*q.Z, q.Y*q.Z
	wx, wy, wz := q.W*q.X, q.W*q.Y, q.W*q.Z

	var m [16]float32
	m[0] = 1 - 2*(y2+z2)
	m[1] = 2 * (xy + wz)
	m[2] = 2 * (xz - wy)
	m[4] = 2 * (xy - wz)
	m[5] = 1 - 2*(x2+z2)
	m[6] = 2 * (yz + wx)
	m[8] = 2 * (xz + wy)
	m[9] = 2 * (yz - wx)
	m[10] = 1 - 2*(x2+y2)
	m[15] = 1
	return m
}

// Rot is a signed planar rotation angle in radians, the 2D counterpart of
// Quat. Positive angles rotate counterclockwise in a right-handed frame.
type Rot struct {
	A float32
}

var _ Rotation = Rot{}

// RotFromPoints builds the planar rotation swept around center when moving
// from prev to cur, the rotation a cursor drag describes around a pivot.
//
// Parameters:
//   - center: the pivot point (Z ignored)
//   - prev: the previous cursor position
//   - cur: the current cursor position
//
// Returns:
//   - Rot: the swept planar rotation
func RotFromPoints(center, prev, cur Vec3) Rot {
	a0 := math.Atan2(float64(prev.Y-center.Y), float64(prev.X-center.X))
	a1 := math.Atan2(float64(cur.Y-center.Y), float64(cur.X-center.X))
	return Rot{A: float32(a1 - a0)}
}

// Angle returns the signed rotation angle in radians.
func (r Rot) Angle() float32 {
	return r.A
}

// Rotate applies the planar rotation to v (Z passes through).
func (r Rot) Rotate(v Vec3) Vec3 {
	c := float32(math.Cos(float64(r.A)))
	s := float32(math.Sin(float64(r.A)))
	return Vec3{c*v.X - s*v.Y, s*v.X + c*v.Y, v.Z}
}

// InverseRotate applies the inverse planar rotation to v.
func (r Rot) InverseRotate(v Vec3) Vec3 {
	return Rot{A: -r.A}.Rotate(v)
}

// Inverse returns the inverse rotation.
func (r Rot) Inverse() Rotation {
	return Rot{A: -r.A}
}

// Negate returns the rotation with its sense flipped.
func (r Rot) Negate() Rot {
	return Rot{A: -r.A}
}

// Compose returns the angle sum when o is a Rot, and r unchanged otherwise.
func (r Rot) Compose(o Rotation) Rotation {
	or, ok := o.(Rot)
	if !ok {
		return r
	}
	return Rot{A: r.A + or.A}
}

// Normalized returns the angle wrapped to (-π, π].
func (r Rot) Normalized() Rotation {
	a := math.Mod(float64(r.A), 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return Rot{A: float32(a)}
}
