package eye

// CameraOption is a functional option for configuring a Camera at
// creation.
type CameraOption func(*cameraImpl)

// WithCameraType selects the projection model.
//
// Parameters:
//   - t: the projection model, default Perspective
//
// Returns:
//   - CameraOption: the configuration function
func WithCameraType(t CameraType) CameraOption {
	return func(c *cameraImpl) {
		c.camType = t
	}
}

// WithFieldOfView sets the vertical field of view. Non-positive values
// are ignored.
//
// Parameters:
//   - fov: the field of view in radians, default pi/3
//
// Returns:
//   - CameraOption: the configuration function
func WithFieldOfView(fov float32) CameraOption {
	return func(c *cameraImpl) {
		if fov > 0 {
			c.fov = fov
		}
	}
}

// WithZNearCoefficient sets the perspective near-plane floor coefficient.
//
// Parameters:
//   - coef: the coefficient, default 0.005
//
// Returns:
//   - CameraOption: the configuration function
func WithZNearCoefficient(coef float32) CameraOption {
	return func(c *cameraImpl) {
		if coef > 0 {
			c.zNearCoef = coef
		}
	}
}

// WithZClippingCoefficient sets the clipping margin around the scene
// sphere.
//
// Parameters:
//   - coef: the coefficient, default sqrt(3)
//
// Returns:
//   - CameraOption: the configuration function
func WithZClippingCoefficient(coef float32) CameraOption {
	return func(c *cameraImpl) {
		if coef > 0 {
			c.zClipCoef = coef
		}
	}
}
