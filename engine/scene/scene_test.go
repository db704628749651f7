package scene_test

import (
	"testing"
	"time"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/input"
	"github.com/avery-hale/navscene-go/engine/scene"
)

func TestDefaults(t *testing.T) {
	s := scene.NewScene("defaults")
	defer s.Release()

	if got := s.Name(); got != "defaults" {
		t.Errorf("Expected defaults got %v", got)
	}
	if !s.Is3D() {
		t.Errorf("Expected true got false")
	}
	if s.IsLeftHanded() {
		t.Errorf("Expected false got true")
	}
	if s.Width() != 800 || s.Height() != 600 {
		t.Errorf("Expected (800, 600) got (%v, %v)", s.Width(), s.Height())
	}
	if got := s.Radius(); got != 100 {
		t.Errorf("Expected 100 got %v", got)
	}
	if s.Camera() == nil {
		t.Errorf("Expected camera got nil")
	}
	if s.Window() != nil {
		t.Errorf("Expected nil got window")
	}
	if s.Eye() == nil {
		t.Fatalf("Expected eye got nil")
	}
	if s.View() == nil {
		t.Errorf("Expected view got nil")
	}
}

func TestTwoDimensionalScene(t *testing.T) {
	s := scene.NewScene("flat", scene.WithTwoDimensions())
	defer s.Release()

	if s.Is3D() {
		t.Errorf("Expected false got true")
	}
	if s.Window() == nil {
		t.Errorf("Expected window got nil")
	}
	if s.Camera() != nil {
		t.Errorf("Expected nil got camera")
	}
}

func TestBuilderOptions(t *testing.T) {
	s := scene.NewScene("opts",
		scene.WithLeftHanded(),
		scene.WithScreenDimensions(1024, 768),
		scene.WithRadius(50),
		scene.WithCenter(common.Vec3{X: 5}),
	)
	defer s.Release()

	if !s.IsLeftHanded() {
		t.Errorf("Expected true got false")
	}
	if s.Width() != 1024 || s.Height() != 768 {
		t.Errorf("Expected (1024, 768) got (%v, %v)", s.Width(), s.Height())
	}
	if got := s.Radius(); got != 50 {
		t.Errorf("Expected 50 got %v", got)
	}
	if got := s.Center(); got.X != 5 {
		t.Errorf("Expected 5 got %v", got.X)
	}
	if got := s.Eye().SceneRadius(); got != 50 {
		t.Errorf("Expected 50 got %v", got)
	}
}

func TestRadiusDelegatesToEye(t *testing.T) {
	s := scene.NewScene("radius")
	defer s.Release()

	s.SetRadius(250)
	if got := s.Eye().SceneRadius(); got != 250 {
		t.Errorf("Expected 250 got %v", got)
	}
	if got := s.Radius(); got != 250 {
		t.Errorf("Expected 250 got %v", got)
	}

	s.SetCenter(common.Vec3{Y: 3})
	if got := s.Eye().SceneCenter(); got.Y != 3 {
		t.Errorf("Expected 3 got %v", got.Y)
	}
}

func TestScreenDimensionsPropagateToEye(t *testing.T) {
	s := scene.NewScene("resize")
	defer s.Release()

	s.SetScreenWidthAndHeight(1920, 1080)
	if s.Eye().ScreenWidth() != 1920 || s.Eye().ScreenHeight() != 1080 {
		t.Errorf("Expected (1920, 1080) got (%v, %v)", s.Eye().ScreenWidth(), s.Eye().ScreenHeight())
	}
}

func TestForwardEventRoutesKeysToHandler(t *testing.T) {
	s := scene.NewScene("keys")
	defer s.Release()

	var got input.KeyEvent
	s.SetKeyHandler(func(e input.KeyEvent) {
		got = e
	})
	s.ForwardEvent(input.KeyEvent{Key: common.KeyA, Pressed: true})

	if got.Key != common.KeyA || !got.Pressed {
		t.Errorf("Expected KeyA press got %v", got)
	}
}

func TestForwardEventRoutesClicksToHandler(t *testing.T) {
	s := scene.NewScene("clicks")
	defer s.Release()

	var got input.ClickEvent
	s.SetClickHandler(func(e input.ClickEvent) {
		got = e
	})
	s.ForwardEvent(input.ClickEvent{X: 1, Y: 2, Count: 2, Action: input.ActionCenterFrame})

	if got.Count != 2 || got.Action != input.ActionCenterFrame {
		t.Errorf("Expected double click got %v", got)
	}
}

func TestDefaultKeySFitsScene(t *testing.T) {
	s := scene.NewScene("fit-key")
	defer s.Release()

	s.Eye().SetPosition(common.Vec3{Z: 10000})
	s.ForwardEvent(input.KeyEvent{Key: common.KeyS, Pressed: true})

	// The fit runs as an interpolation; stepping the scheduler past its
	// duration lands the eye at the fit distance.
	now := time.Now()
	for i := 0; i < 60; i++ {
		now = now.Add(40 * time.Millisecond)
		s.TickAt(now)
	}
	if got := s.Eye().Position().Z; got >= 10000 {
		t.Errorf("Expected position below 10000 got %v", got)
	}
}

func TestTickDrivesScheduler(t *testing.T) {
	s := scene.NewScene("tick")
	defer s.Release()

	fired := 0
	task := s.Scheduler().NewTask(func() {
		fired++
	})
	task.Run(10 * time.Millisecond)

	now := time.Now()
	for i := 0; i < 5; i++ {
		now = now.Add(10 * time.Millisecond)
		s.TickAt(now)
	}
	if fired == 0 {
		t.Errorf("Expected fired task got 0")
	}
	task.Cancel()
}

func TestNewInteractiveFrameUsesSceneContext(t *testing.T) {
	s := scene.NewScene("frames")
	defer s.Release()

	f := s.NewInteractiveFrame()
	if f == nil {
		t.Fatalf("Expected frame got nil")
	}
	if f.IsEyeFrame() {
		t.Errorf("Expected false got true")
	}

	flat := scene.NewScene("flat-frames", scene.WithTwoDimensions())
	defer flat.Release()
	if _, ok := flat.NewInteractiveFrame().Rotation().(common.Rot); !ok {
		t.Errorf("Expected planar rotation got %T", flat.NewInteractiveFrame().Rotation())
	}
}

func TestCullerIsLazyAndCached(t *testing.T) {
	s := scene.NewScene("culler")
	defer s.Release()

	c := s.Culler()
	if c == nil {
		t.Fatalf("Expected culler got nil")
	}
	if s.Culler() != c {
		t.Errorf("Expected same culler got a new one")
	}
}
