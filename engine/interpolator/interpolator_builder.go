package interpolator

import (
	"time"
)

// InterpolatorOption is a functional option for configuring a
// KeyFrameInterpolator at creation.
type InterpolatorOption func(*interpolatorImpl)

// WithInterpolationSpeed sets the clock rate multiplier. Negative speeds
// play the path backwards.
//
// Parameters:
//   - speed: the multiplier, default 1
//
// Returns:
//   - InterpolatorOption: the configuration function
func WithInterpolationSpeed(speed float32) InterpolatorOption {
	return func(kfi *interpolatorImpl) {
		kfi.speed = speed
	}
}

// WithInterpolationPeriod sets the playback task interval. Non-positive
// periods are ignored.
//
// Parameters:
//   - period: the interval, default 40ms
//
// Returns:
//   - InterpolatorOption: the configuration function
func WithInterpolationPeriod(period time.Duration) InterpolatorOption {
	return func(kfi *interpolatorImpl) {
		if period > 0 {
			kfi.period = period
		}
	}
}

// WithLoop makes playback wrap at the last keyframe instead of stopping.
//
// Returns:
//   - InterpolatorOption: the configuration function
func WithLoop() InterpolatorOption {
	return func(kfi *interpolatorImpl) {
		kfi.loop = true
	}
}
