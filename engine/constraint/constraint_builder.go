package constraint

import (
	"github.com/avery-hale/navscene-go/common"
)

// ConstraintOption is a functional option for configuring an
// AxisPlaneConstraint at creation.
type ConstraintOption func(*axisPlaneConstraintImpl)

// WithTranslationConstraint sets the initial translation limit. The
// direction is normalized; a zero direction is ignored.
//
// Parameters:
//   - t: the constraint type
//   - dir: the constraint direction, used by the Plane and Axis types
//
// Returns:
//   - ConstraintOption: the configuration function
func WithTranslationConstraint(t TranslationType, dir common.Vec3) ConstraintOption {
	return func(c *axisPlaneConstraintImpl) {
		c.transType = t
		if !dir.IsZero() {
			c.transDir = dir.Normalized()
		}
	}
}

// WithRotationConstraint sets the initial rotation limit. The axis is
// normalized; a zero axis is ignored.
//
// Parameters:
//   - t: the constraint type
//   - axis: the constraint axis, used by the Axis type
//
// Returns:
//   - ConstraintOption: the configuration function
func WithRotationConstraint(t RotationType, axis common.Vec3) ConstraintOption {
	return func(c *axisPlaneConstraintImpl) {
		c.rotType = t
		if !axis.IsZero() {
			c.rotDir = axis.Normalized()
		}
	}
}

// WithScalingMask sets which axes may be scaled. A masked-off axis has its
// scale factor forced to 1.
//
// Parameters:
//   - x, y, z: true to allow scaling along the axis
//
// Returns:
//   - ConstraintOption: the configuration function
func WithScalingMask(x, y, z bool) ConstraintOption {
	return func(c *axisPlaneConstraintImpl) {
		c.scaleMask = [3]bool{x, y, z}
	}
}
