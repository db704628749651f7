package eye

// WindowOption is a functional option for configuring a Window at
// creation.
type WindowOption func(*windowImpl)

// WithWindowSceneRadius sets the scene radius the window is configured
// for. Non-positive values are ignored.
//
// Parameters:
//   - radius: the scene radius in scene units, default 100
//
// Returns:
//   - WindowOption: the configuration function
func WithWindowSceneRadius(radius float32) WindowOption {
	return func(w *windowImpl) {
		if radius > 0 {
			w.sceneRadius = radius
		}
	}
}
