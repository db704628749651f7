package common

import (
	"math"
)

// Abs returns the absolute value of f.
func Abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Asin returns the arcsine of f in radians, clamping f to [-1, 1] first to
// absorb floating-point drift from dot products of unit vectors.
func Asin(f float32) float32 {
	return float32(math.Asin(float64(Clamp(f, -1, 1))))
}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order. Result: out = a * b.
// out may alias a or b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// MulVec4 multiplies a 4x4 column-major matrix by a homogeneous 4-vector.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - x, y, z, w: the vector components
//
// Returns:
//   - ox, oy, oz, ow: the transformed vector components
func MulVec4(m []float32, x, y, z, w float32) (ox, oy, oz, ow float32) {
	ox = m[0]*x + m[4]*y + m[8]*z + m[12]*w
	oy = m[1]*x + m[5]*y + m[9]*z + m[13]*w
	oz = m[2]*x + m[6]*y + m[10]*z + m[14]*w
	ow = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	return
}

// Perspective creates a perspective projection matrix mapping the view
// frustum to the [-1, 1] clip cube, matching the depth convention used by
// Camera.Project and Camera.Unproject.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = (near + far) / (near - far)
	out[11] = -1.0
	out[14] = (2 * near * far) / (near - far)
	out[15] = 0.0
}

// Ortho creates an orthographic projection matrix mapping the box
// [-halfW, halfW] x [-halfH, halfH] x [near, far] to the [-1, 1] clip cube.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - halfW: half the boundary width in scene units (must be > 0)
//   - halfH: half the boundary height in scene units (must be > 0)
//   - near: near clipping plane distance
//   - far: far clipping plane distance (must differ from near)
func Ortho(out []float32, halfW, halfH, near, far float32) {
	Identity(out)
	out[0] = 1 / halfW
	out[5] = 1 / halfH
	out[10] = -2 / (far - near)
	out[14] = -(far + near) / (far - near)
}

// BuildMatrix constructs a 4x4 local transform matrix from a translation,
// a Rotation and per-axis scaling, composing scale, then rotation, then
// translation. The matrix is column-major. A planar Rot rotates about the
// Z axis.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - t: translation
//   - r: rotation (Quat or Rot)
//   - s: per-axis scale factors
func BuildMatrix(out []float32, t Vec3, r Rotation, s Vec3) {
	var rm [16]float32
	if q, ok := r.(Quat); ok {
		rm = q.Matrix()
	} else {
		Identity(rm[:])
		c := float32(math.Cos(float64(r.Angle())))
		sn := float32(math.Sin(float64(r.Angle())))
		rm[0], rm[1] = c, sn
		rm[4], rm[5] = -sn, c
	}

	out[0] = rm[0] * s.X
	out[1] = rm[1] * s.X
	out[2] = rm[2] * s.X
	out[3] = 0

	out[4] = rm[4] * s.Y
	out[5] = rm[5] * s.Y
	out[6] = rm[6] * s.Y
	out[7] = 0

	out[8] = rm[8] * s.Z
	out[9] = rm[9] * s.Z
	out[10] = rm[10] * s.Z
	out[11] = 0

	out[12] = t.X
	out[13] = t.Y
	out[14] = t.Z
	out[15] = 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant == 0)
// the output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	// 2x2 sub-determinants of the upper-left and lower-right quadrants.
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// LookAt creates a view matrix that positions and orients a viewer.
// The resulting matrix transforms world coordinates to eye space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: viewer position in world space
//   - center: target point the viewer looks at
//   - up: up vector defining viewer orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up Vec3) {
	z := eye.Sub(center)
	if z.IsZero() {
		z = Vec3{Z: 1}
	}
	z = z.Normalized()

	x := up.Cross(z)
	if x.IsZero() {
		x = Vec3{X: 1}
	}
	x = x.Normalized()

	y := z.Cross(x)

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}
