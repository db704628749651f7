// package constraint provides axis/plane motion constraints for frames. A
// constraint filters translation, rotation and scaling deltas before they
// reach a frame, limiting motion to a plane, an axis, or nothing at all.
// The constraint direction is interpreted in local, world or eye
// coordinates depending on the variant.
package constraint

import (
	"math"
	"sync"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
)

// TranslationType selects how a constraint limits translation.
type TranslationType int

const (
	// TranslationFree passes translations through unchanged.
	TranslationFree TranslationType = iota
	// TranslationPlane projects translations onto the plane orthogonal to
	// the constraint direction.
	TranslationPlane
	// TranslationAxis projects translations onto the constraint direction.
	TranslationAxis
	// TranslationForbidden zeroes all translations.
	TranslationForbidden
)

// Next returns the following type in the conventional UI cycle
// Free, Plane, Axis, Forbidden, Free.
func (t TranslationType) Next() TranslationType {
	return (t + 1) % 4
}

// RotationType selects how a constraint limits rotation.
type RotationType int

const (
	// RotationFree passes rotations through unchanged.
	RotationFree RotationType = iota
	// RotationAxis limits rotations to the constraint direction.
	RotationAxis
	// RotationForbidden replaces all rotations with the identity.
	RotationForbidden
)

// Next returns the following type in the conventional UI cycle
// Free, Axis, Forbidden, Free.
func (t RotationType) Next() RotationType {
	return (t + 1) % 3
}

// AxisPlaneConstraint is a frame.Constraint configurable with independent
// translation and rotation constraint types, a direction for each, and a
// per-axis scaling permission mask. Three variants exist, differing only in
// the coordinate system the directions are expressed in: local
// (the constrained frame), world, or eye.
type AxisPlaneConstraint interface {
	frame.Constraint

	// TranslationConstraintType returns the active translation limit.
	//
	// Returns:
	//   - TranslationType: the translation constraint type
	TranslationConstraintType() TranslationType

	// TranslationConstraintDirection returns the direction used by the
	// Plane and Axis translation types.
	//
	// Returns:
	//   - common.Vec3: the constraint direction
	TranslationConstraintDirection() common.Vec3

	// SetTranslationConstraint configures the translation limit. The
	// direction is normalized; a zero direction with a Plane or Axis type
	// leaves the previous direction in place.
	//
	// Parameters:
	//   - t: the constraint type
	//   - dir: the constraint direction
	SetTranslationConstraint(t TranslationType, dir common.Vec3)

	// RotationConstraintType returns the active rotation limit.
	//
	// Returns:
	//   - RotationType: the rotation constraint type
	RotationConstraintType() RotationType

	// RotationConstraintDirection returns the axis used by the Axis
	// rotation type.
	//
	// Returns:
	//   - common.Vec3: the constraint axis
	RotationConstraintDirection() common.Vec3

	// SetRotationConstraint configures the rotation limit. The axis is
	// normalized; a zero axis with the Axis type leaves the previous axis
	// in place.
	//
	// Parameters:
	//   - t: the constraint type
	//   - axis: the constraint axis
	SetRotationConstraint(t RotationType, axis common.Vec3)

	// SetScalingMask sets which axes may be scaled. A masked-off axis has
	// its scale factor forced to 1.
	//
	// Parameters:
	//   - x, y, z: true to allow scaling along the axis
	SetScalingMask(x, y, z bool)
}

// referenceSystem tells the shared implementation how to move the
// configured directions into the coordinate system a delta is expressed in.
type referenceSystem int

const (
	systemLocal referenceSystem = iota
	systemWorld
	systemEye
)

var _ AxisPlaneConstraint = &axisPlaneConstraintImpl{}

type axisPlaneConstraintImpl struct {
	mu     *sync.Mutex
	system referenceSystem
	// eyeFrame is the frame directions are relative to for the eye
	// variant, nil otherwise.
	eyeFrame frame.Frame

	transType TranslationType
	transDir  common.Vec3
	rotType   RotationType
	rotDir    common.Vec3
	scaleMask [3]bool
}

// NewLocalConstraint creates a constraint whose directions are expressed in
// the constrained frame's own coordinate system.
//
// Parameters:
//   - opts: optional configuration (constraint types, directions, mask)
//
// Returns:
//   - AxisPlaneConstraint: the new constraint
func NewLocalConstraint(opts ...ConstraintOption) AxisPlaneConstraint {
	return newConstraint(systemLocal, nil, opts)
}

// NewWorldConstraint creates a constraint whose directions are expressed in
// world coordinates.
//
// Parameters:
//   - opts: optional configuration (constraint types, directions, mask)
//
// Returns:
//   - AxisPlaneConstraint: the new constraint
func NewWorldConstraint(opts ...ConstraintOption) AxisPlaneConstraint {
	return newConstraint(systemWorld, nil, opts)
}

// NewEyeConstraint creates a constraint whose directions are expressed in
// the coordinate system of an eye's frame, so the limits follow the viewer
// as it moves.
//
// Parameters:
//   - eyeFrame: the eye's frame
//   - opts: optional configuration (constraint types, directions, mask)
//
// Returns:
//   - AxisPlaneConstraint: the new constraint
func NewEyeConstraint(eyeFrame frame.Frame, opts ...ConstraintOption) AxisPlaneConstraint {
	return newConstraint(systemEye, eyeFrame, opts)
}

func newConstraint(system referenceSystem, eyeFrame frame.Frame, opts []ConstraintOption) *axisPlaneConstraintImpl {
	c := &axisPlaneConstraintImpl{
		mu:        &sync.Mutex{},
		system:    system,
		eyeFrame:  eyeFrame,
		scaleMask: [3]bool{true, true, true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *axisPlaneConstraintImpl) TranslationConstraintType() TranslationType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transType
}

func (c *axisPlaneConstraintImpl) TranslationConstraintDirection() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transDir
}

func (c *axisPlaneConstraintImpl) SetTranslationConstraint(t TranslationType, dir common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transType = t
	if !dir.IsZero() {
		c.transDir = dir.Normalized()
	}
}

func (c *axisPlaneConstraintImpl) RotationConstraintType() RotationType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotType
}

func (c *axisPlaneConstraintImpl) RotationConstraintDirection() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotDir
}

func (c *axisPlaneConstraintImpl) SetRotationConstraint(t RotationType, axis common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotType = t
	if !axis.IsZero() {
		c.rotDir = axis.Normalized()
	}
}

func (c *axisPlaneConstraintImpl) SetScalingMask(x, y, z bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scaleMask = [3]bool{x, y, z}
}

// translationDirIn expresses the configured translation direction in the
// coordinate system of f's reference frame, where translation deltas live.
func (c *axisPlaneConstraintImpl) translationDirIn(f frame.Frame, dir common.Vec3) common.Vec3 {
	switch c.system {
	case systemLocal:
		return f.Rotation().Rotate(dir)
	case systemEye:
		if c.eyeFrame != nil {
			dir = c.eyeFrame.InverseTransformOf(dir)
		}
		fallthrough
	default: // systemWorld
		if ref := f.ReferenceFrame(); ref != nil {
			return ref.TransformOf(dir)
		}
		return dir
	}
}

// rotationAxisIn expresses the configured rotation axis in f's local
// coordinate system, where rotation deltas live.
func (c *axisPlaneConstraintImpl) rotationAxisIn(f frame.Frame, axis common.Vec3) common.Vec3 {
	switch c.system {
	case systemLocal:
		return axis
	case systemEye:
		if c.eyeFrame != nil {
			axis = c.eyeFrame.InverseTransformOf(axis)
		}
		fallthrough
	default: // systemWorld
		return f.TransformOf(axis)
	}
}

func (c *axisPlaneConstraintImpl) ConstrainTranslation(delta common.Vec3, f frame.Frame) common.Vec3 {
	c.mu.Lock()
	t, dir := c.transType, c.transDir
	c.mu.Unlock()

	switch t {
	case TranslationPlane:
		return delta.ProjectOnPlane(c.translationDirIn(f, dir))
	case TranslationAxis:
		return delta.ProjectOnAxis(c.translationDirIn(f, dir))
	case TranslationForbidden:
		return common.Vec3{}
	default:
		return delta
	}
}

func (c *axisPlaneConstraintImpl) ConstrainRotation(delta common.Rotation, f frame.Frame) common.Rotation {
	c.mu.Lock()
	t, axis := c.rotType, c.rotDir
	c.mu.Unlock()

	switch t {
	case RotationAxis:
		q, ok := delta.(common.Quat)
		if !ok {
			// Planar rotations are already about the lone Z axis.
			return delta
		}
		// Project the quaternion's vector part onto the axis and rebuild
		// with the original angle.
		v := common.Vec3{X: q.X, Y: q.Y, Z: q.Z}.ProjectOnAxis(c.rotationAxisIn(f, axis))
		angle := 2 * float32(math.Acos(float64(common.Clamp(q.W, -1, 1))))
		return common.QuatFromAxisAngle(v, angle)
	case RotationForbidden:
		if _, planar := delta.(common.Rot); planar {
			return common.Rot{}
		}
		return common.QuatIdentity()
	default:
		return delta
	}
}

func (c *axisPlaneConstraintImpl) ConstrainScaling(factor common.Vec3, f frame.Frame) common.Vec3 {
	c.mu.Lock()
	mask := c.scaleMask
	c.mu.Unlock()

	if !mask[0] {
		factor.X = 1
	}
	if !mask[1] {
		factor.Y = 1
	}
	if !mask[2] {
		factor.Z = 1
	}
	return factor
}
