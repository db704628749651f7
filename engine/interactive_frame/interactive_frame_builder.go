package interactive_frame

// InteractiveFrameOption is a functional option for configuring an
// InteractiveFrame at creation.
type InteractiveFrameOption func(*interactiveFrameImpl)

// WithEyeRole marks the frame as steering an eye: translation gestures
// invert, rotations pivot around the eye's anchor, and the frame never
// grabs input away from the scene.
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithEyeRole() InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		f.eyeRole = true
	}
}

// WithRotationSensitivity sets the rotation gesture gain. Negative values
// are ignored.
//
// Parameters:
//   - sensitivity: the gain, default 1
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithRotationSensitivity(sensitivity float32) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		if sensitivity >= 0 {
			f.rotSensitivity = sensitivity
		}
	}
}

// WithTranslationSensitivity sets the translation gesture gain. Negative
// values are ignored.
//
// Parameters:
//   - sensitivity: the gain, default 1
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithTranslationSensitivity(sensitivity float32) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		if sensitivity >= 0 {
			f.transSensitivity = sensitivity
		}
	}
}

// WithSpinningSensitivity sets the minimum gesture speed that leaves the
// frame spinning after release. Negative values are ignored.
//
// Parameters:
//   - sensitivity: the speed floor, default 0.3
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithSpinningSensitivity(sensitivity float32) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		if sensitivity >= 0 {
			f.spinSensitivity = sensitivity
		}
	}
}

// WithWheelSensitivity sets the scroll-wheel gain.
//
// Parameters:
//   - sensitivity: the gain, default 20
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithWheelSensitivity(sensitivity float32) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		f.whlSensitivity = sensitivity
	}
}

// WithDampingFriction sets the inertia friction. Values outside [0, 1] are
// ignored.
//
// Parameters:
//   - friction: the friction, default 0.5
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithDampingFriction(friction float32) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		if friction >= 0 && friction <= 1 {
			f.setDampingFrictionLocked(friction)
		}
	}
}

// WithFlySpeed sets the per-tick displacement of the fly actions, in scene
// units.
//
// Parameters:
//   - speed: the displacement, default 0
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithFlySpeed(speed float32) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		f.flySpeed = speed
	}
}

// WithGrabsInputThreshold sets the pixel distance within which the frame
// claims cursor events. Non-positive values are ignored.
//
// Parameters:
//   - threshold: the distance in pixels, default 10
//
// Returns:
//   - InteractiveFrameOption: the configuration function
func WithGrabsInputThreshold(threshold int) InteractiveFrameOption {
	return func(f *interactiveFrameImpl) {
		if threshold > 0 {
			f.grabsThreshold = threshold
		}
	}
}
