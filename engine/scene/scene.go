// package scene assembles the navigation engine: it owns the eye, the
// shared task scheduler and the scene geometry settings, and it is the
// context every interactive frame interacts through.
package scene

import (
	"sync"
	"time"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/culler"
	"github.com/avery-hale/navscene-go/engine/eye"
	"github.com/avery-hale/navscene-go/engine/input"
	"github.com/avery-hale/navscene-go/engine/interactive_frame"
	"github.com/avery-hale/navscene-go/engine/timing"
)

const (
	defaultWidth  = 800
	defaultHeight = 600
	defaultRadius = float32(100)
)

// Scene is the root of a navigable scene. It implements the interaction
// context frames see, drives the cooperative scheduler that animates
// inertia and keyframe playback, and keeps the eye's cached matrices
// fresh once per tick.
type Scene interface {
	interactive_frame.Context

	// Name returns the scene name.
	Name() string

	// Eye returns the scene's eye (a Camera in 3D, a Window in 2D).
	Eye() eye.Eye

	// Camera returns the 3D eye, nil for a 2D scene.
	Camera() eye.Camera

	// Window returns the 2D eye, nil for a 3D scene.
	Window() eye.Window

	// Center returns the scene sphere center.
	Center() common.Vec3

	// SetCenter moves the scene sphere.
	SetCenter(center common.Vec3)

	// SetRadius reconfigures the scene sphere. Non-positive radii are
	// rejected by the eye with a logged warning.
	SetRadius(radius float32)

	// SetScreenWidthAndHeight resizes the viewport and propagates the new
	// dimensions to the eye.
	SetScreenWidthAndHeight(width, height int)

	// NewInteractiveFrame creates an interactive frame living in this
	// scene.
	//
	// Parameters:
	//   - opts: optional InteractiveFrameOption configuration
	//
	// Returns:
	//   - interactive_frame.InteractiveFrame: the new frame
	NewInteractiveFrame(opts ...interactive_frame.InteractiveFrameOption) interactive_frame.InteractiveFrame

	// Culler returns the scene's batch visibility culler, created on
	// first use.
	Culler() culler.Culler

	// SetKeyHandler registers the sink for key events frames forward.
	SetKeyHandler(handler func(e input.KeyEvent))

	// SetClickHandler registers the sink for custom click events frames
	// forward.
	SetClickHandler(handler func(e input.ClickEvent))

	// Tick advances the scene at the current time: the eye's matrices are
	// recomputed and every due task (inertia, interpolators) fires.
	Tick()

	// TickAt advances the scene at an explicit time, for deterministic
	// stepping.
	//
	// Parameters:
	//   - now: the tick timestamp
	TickAt(now time.Time)

	// Release cancels the eye's tasks and drops the scene's scheduler
	// registrations.
	Release()
}

type scene struct {
	mu *sync.Mutex

	name       string
	is3D       bool
	leftHanded bool

	width, height int
	radius        float32
	center        common.Vec3

	sceneEye  eye.Eye
	cam       eye.Camera
	win       eye.Window
	scheduler timing.Scheduler
	cull      culler.Culler

	keyHandler   func(e input.KeyEvent)
	clickHandler func(e input.ClickEvent)
}

var _ Scene = &scene{}
var _ interactive_frame.Context = &scene{}

// NewScene creates a scene with its eye attached: a perspective Camera
// for 3D scenes, an orthographic Window for 2D ones. The eye's matrices
// are computed once so projection queries work before the first tick.
//
// Parameters:
//   - name: the scene name
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:        &sync.Mutex{},
		name:      name,
		is3D:      true,
		width:     defaultWidth,
		height:    defaultHeight,
		radius:    defaultRadius,
		scheduler: timing.NewScheduler(),
	}

	for _, option := range options {
		option(s)
	}

	if s.is3D {
		s.cam = eye.NewCamera(s)
		s.sceneEye = s.cam
	} else {
		s.win = eye.NewWindow(s)
		s.sceneEye = s.win
	}
	s.sceneEye.SetSceneRadius(s.radius)
	s.sceneEye.SetSceneCenter(s.center)
	s.sceneEye.SetScreenWidthAndHeight(s.width, s.height)
	s.sceneEye.ComputeView()
	s.sceneEye.ComputeProjection()

	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Is3D() bool {
	return s.is3D
}

func (s *scene) IsLeftHanded() bool {
	return s.leftHanded
}

func (s *scene) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width
}

func (s *scene) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

func (s *scene) Radius() float32 {
	if s.sceneEye != nil {
		return s.sceneEye.SceneRadius()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.radius
}

func (s *scene) SetRadius(radius float32) {
	s.sceneEye.SetSceneRadius(radius)
	s.mu.Lock()
	s.radius = s.sceneEye.SceneRadius()
	s.mu.Unlock()
}

func (s *scene) Center() common.Vec3 {
	if s.sceneEye != nil {
		return s.sceneEye.SceneCenter()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center
}

func (s *scene) SetCenter(center common.Vec3) {
	s.sceneEye.SetSceneCenter(center)
	s.mu.Lock()
	s.center = center
	s.mu.Unlock()
}

func (s *scene) View() interactive_frame.View {
	return s.sceneEye.(interactive_frame.View)
}

func (s *scene) Eye() eye.Eye {
	return s.sceneEye
}

func (s *scene) Camera() eye.Camera {
	return s.cam
}

func (s *scene) Window() eye.Window {
	return s.win
}

func (s *scene) Scheduler() timing.Scheduler {
	return s.scheduler
}

func (s *scene) SetScreenWidthAndHeight(width, height int) {
	s.mu.Lock()
	s.width = width
	s.height = height
	s.mu.Unlock()
	s.sceneEye.SetScreenWidthAndHeight(width, height)
}

func (s *scene) NewInteractiveFrame(opts ...interactive_frame.InteractiveFrameOption) interactive_frame.InteractiveFrame {
	return interactive_frame.NewInteractiveFrame(s, opts...)
}

func (s *scene) Culler() culler.Culler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cull == nil {
		s.cull = culler.NewCuller()
	}
	return s.cull
}

func (s *scene) SetKeyHandler(handler func(e input.KeyEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyHandler = handler
}

func (s *scene) SetClickHandler(handler func(e input.ClickEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clickHandler = handler
}

func (s *scene) ForwardEvent(e input.Event) {
	s.mu.Lock()
	keyHandler := s.keyHandler
	clickHandler := s.clickHandler
	s.mu.Unlock()

	switch ev := e.(type) {
	case input.KeyEvent:
		if keyHandler != nil {
			keyHandler(ev)
			return
		}
		s.handleDefaultKey(ev)
	case input.ClickEvent:
		if clickHandler != nil {
			clickHandler(ev)
		}
	}
}

// handleDefaultKey provides the stock shortcuts when no handler is
// registered: S fits the scene, R resets the eye's first path.
func (s *scene) handleDefaultKey(e input.KeyEvent) {
	if !e.Pressed {
		return
	}
	switch e.Key {
	case common.KeyS:
		s.sceneEye.InterpolateToFitScene()
	case common.KeyR:
		s.sceneEye.ResetPath(1)
	}
}

func (s *scene) Tick() {
	s.TickAt(time.Now())
}

func (s *scene) TickAt(now time.Time) {
	s.sceneEye.ComputeView()
	s.sceneEye.ComputeProjection()
	s.scheduler.Tick(now)
}

func (s *scene) Release() {
	s.sceneEye.Release()
}
