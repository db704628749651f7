// package engine coordinates the top-level run loop: a fixed-rate tick
// goroutine that advances every registered scene (firing inertia tasks and
// keyframe playback) and, when a window is attached, a main-thread poll
// loop that pumps platform input into the scenes' agents.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/avery-hale/navscene-go/engine/agent"
	"github.com/avery-hale/navscene-go/engine/profiler"
	"github.com/avery-hale/navscene-go/engine/scene"
)

// engine implements the Engine interface.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	windowAgent agent.GlfwAgent

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.Scene

	lastW, lastH int // last observed framebuffer size
}

// Engine is the main entry point. It drives scene ticking at a fixed rate
// and owns the optional platform window's event loop.
type Engine interface {
	// WindowAgent returns the attached window adapter, nil when running
	// headless.
	//
	// Returns:
	//   - agent.GlfwAgent: the window adapter
	WindowAgent() agent.GlfwAgent

	// EnableProfiler enables tick-loop profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// SetTickRate sets the scene tick rate in ticks per second.
	// If the engine is running, the change takes effect immediately.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers a function called after every scene tick,
	// receiving the delta time in seconds. Use it for application logic
	// that must run in step with the navigation engine.
	//
	// Parameters:
	//   - callback: function to call each tick
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given key. Scenes tick in
	// ascending key order.
	//
	// Parameters:
	//   - key: the ordering key
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given key.
	//
	// Parameters:
	//   - key: the key of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key, nil if none.
	//
	// Parameters:
	//   - key: the key of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by order.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run starts the engine. With a window attached it blocks on the
	// main-thread event loop until the window closes; headless it blocks
	// until Quit.
	Run()

	// Quit signals all engine goroutines to stop and shuts down the
	// engine. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		running:          false,
		wg:               sync.WaitGroup{},
		profiler:         profiler.NewProfiler(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) WindowAgent() agent.GlfwAgent {
	return e.windowAgent
}

func (e *engine) Run() {
	e.running = true
	e.wg.Add(2)
	go e.handleTicks()
	go e.handleQuit()

	if e.windowAgent != nil {
		e.lastW, e.lastH = e.windowAgent.Size()
		e.propagateSize(e.lastW, e.lastH)
		// glfw event polling must stay on the calling (main) thread.
		for e.windowAgent.Poll() {
			if w, h := e.windowAgent.Size(); w != e.lastW || h != e.lastH {
				e.lastW, e.lastH = w, h
				e.propagateSize(w, h)
			}
			time.Sleep(time.Millisecond)
		}
		e.signalQuit()
	}

	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// propagateSize pushes the framebuffer size into every scene so eye
// projections stay pixel-accurate.
func (e *engine) propagateSize(width, height int) {
	for _, s := range e.scenes {
		s.SetScreenWidthAndHeight(width, height)
	}
}

// handleTicks runs the fixed-rate scene tick loop in its own goroutine.
// Advances every scene in ascending key order, fires the tick callback,
// and listens for dynamic rate changes via tickRateChannel. Exits when
// the quit channel is closed.
func (e *engine) handleTicks() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			keys := make([]int, 0, len(e.scenes))
			for k := range e.scenes {
				keys = append(keys, k)
			}
			sort.Ints(keys)
			for _, k := range keys {
				e.scenes[k].TickAt(now)
			}

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the
// WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables tick-loop profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the scene tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	newRate := time.Second / time.Duration(tps)

	if e.running {
		// Non-blocking send - if the channel is full, replace the pending
		// value.
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called after every scene tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
