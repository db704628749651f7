package scene

import (
	"github.com/avery-hale/navscene-go/common"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithTwoDimensions makes the scene planar: it gets a Window eye, frames
// translate in the XY plane and rotate around Z only.
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTwoDimensions() SceneBuilderOption {
	return func(s *scene) {
		s.is3D = false
	}
}

// WithLeftHanded flips the screen-Y convention, inverting the sign of
// vertical gesture deltas.
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLeftHanded() SceneBuilderOption {
	return func(s *scene) {
		s.leftHanded = true
	}
}

// WithScreenDimensions sets the initial viewport size. Zero dimensions
// fall back to the 800x600 default.
//
// Parameters:
//   - width, height: the viewport size in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithScreenDimensions(width, height int) SceneBuilderOption {
	return func(s *scene) {
		s.width = common.Coalesce(width, defaultWidth)
		s.height = common.Coalesce(height, defaultHeight)
	}
}

// WithRadius sets the scene sphere radius. Non-positive values fall back
// to the default.
//
// Parameters:
//   - radius: the scene radius in scene units
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRadius(radius float32) SceneBuilderOption {
	return func(s *scene) {
		if radius > 0 {
			s.radius = radius
		}
	}
}

// WithCenter sets the scene sphere center.
//
// Parameters:
//   - center: the scene center in world coordinates
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCenter(center common.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.center = center
	}
}
