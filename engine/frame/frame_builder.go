package frame

import (
	"github.com/avery-hale/navscene-go/common"
)

// FrameOption is a functional option for configuring a Frame at creation.
type FrameOption func(*frameImpl)

// WithTranslation sets the initial local translation.
//
// Parameters:
//   - t: the local translation
//
// Returns:
//   - FrameOption: the configuration function
func WithTranslation(t common.Vec3) FrameOption {
	return func(f *frameImpl) {
		f.translation = t
	}
}

// WithRotation sets the initial local rotation. A nil rotation is ignored.
//
// Parameters:
//   - r: the local rotation (Quat in 3D, Rot in 2D)
//
// Returns:
//   - FrameOption: the configuration function
func WithRotation(r common.Rotation) FrameOption {
	return func(f *frameImpl) {
		if r != nil {
			f.rotation = r
		}
	}
}

// WithPlanarRotation makes the frame rotate in the XY plane, as used by 2D
// scenes, with the given initial angle.
//
// Parameters:
//   - angle: the initial rotation angle in radians
//
// Returns:
//   - FrameOption: the configuration function
func WithPlanarRotation(angle float32) FrameOption {
	return func(f *frameImpl) {
		f.rotation = common.Rot{A: angle}
	}
}

// WithScaling sets the initial per-axis scaling. Factors with any zero
// component are ignored.
//
// Parameters:
//   - s: the scale factors
//
// Returns:
//   - FrameOption: the configuration function
func WithScaling(s common.Vec3) FrameOption {
	return func(f *frameImpl) {
		if s.X != 0 && s.Y != 0 && s.Z != 0 {
			f.scaling = s
		}
	}
}

// WithReferenceFrame parents the new frame to ref. A frame under
// construction has no descendants, so no cycle check is needed here.
//
// Parameters:
//   - ref: the reference frame
//
// Returns:
//   - FrameOption: the configuration function
func WithReferenceFrame(ref Frame) FrameOption {
	return func(f *frameImpl) {
		f.reference = ref
	}
}

// WithConstraint attaches a motion constraint.
//
// Parameters:
//   - c: the constraint filtering Translate/Rotate/Scale deltas
//
// Returns:
//   - FrameOption: the configuration function
func WithConstraint(c Constraint) FrameOption {
	return func(f *frameImpl) {
		f.constraint = c
	}
}
