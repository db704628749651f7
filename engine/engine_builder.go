package engine

import (
	"time"

	"github.com/avery-hale/navscene-go/engine/agent"
	"github.com/avery-hale/navscene-go/engine/scene"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to
// the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables tick-loop profiling output.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the scene tick rate in ticks per second.
// Values <= 0 are treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(tps)
	}
}

// WithWindowAgent attaches a pre-configured window adapter. Run will then
// block on its event loop and propagate framebuffer resizes to every
// registered scene.
//
// Parameters:
//   - ga: the window adapter
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindowAgent(ga agent.GlfwAgent) EngineBuilderOption {
	return func(e *engine) {
		e.windowAgent = ga
	}
}

// WithScene registers a scene at the given key during engine construction.
// Scenes tick in ascending key order.
//
// Parameters:
//   - key: the ordering key
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}
