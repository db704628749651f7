package interpolator

import (
	"testing"
	"time"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
	"github.com/avery-hale/navscene-go/engine/timing"
)

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func pathWithTimes(t *testing.T, times ...float32) (KeyFrameInterpolator, frame.Frame) {
	t.Helper()
	s := timing.NewScheduler()
	target := frame.NewFrame()
	kfi := NewKeyFrameInterpolator(s, target)
	src := frame.NewFrame()
	for i, at := range times {
		src.SetPosition(common.Vec3{X: float32(i) * 10})
		kfi.AddKeyFrameAt(src, at)
	}
	return kfi, target
}

func TestDeleteMiddleKeyFrame(t *testing.T) {
	kfi, _ := pathWithTimes(t, 0, 2, 5)
	if !kfi.DeleteKeyFrame(1) {
		t.Fatalf("Expected true got false")
	}
	if got := kfi.NumberOfKeyFrames(); got != 2 {
		t.Fatalf("Expected 2 got %d", got)
	}
	if at, _ := kfi.KeyFrameTime(0); at != 0 {
		t.Errorf("Expected 0 got %v", at)
	}
	if at, _ := kfi.KeyFrameTime(1); at != 5 {
		t.Errorf("Expected 5 got %v", at)
	}
}

func TestDeleteKeyFrameOutOfRange(t *testing.T) {
	kfi, _ := pathWithTimes(t, 0, 1)
	if kfi.DeleteKeyFrame(5) {
		t.Errorf("Expected false got true")
	}
	if kfi.DeleteKeyFrame(-1) {
		t.Errorf("Expected false got true")
	}
}

func TestOutOfOrderTimeIsRepaired(t *testing.T) {
	kfi, _ := pathWithTimes(t, 0, 4)
	src := frame.NewFrame()
	kfi.AddKeyFrameAt(src, 2) // not after 4, becomes 5
	if at, _ := kfi.KeyFrameTime(2); at != 5 {
		t.Errorf("Expected 5 got %v", at)
	}
}

func TestAddKeyFrameSpacing(t *testing.T) {
	s := timing.NewScheduler()
	target := frame.NewFrame()
	kfi := NewKeyFrameInterpolator(s, target)
	src := frame.NewFrame()

	kfi.AddKeyFrame(src)
	kfi.AddKeyFrame(src)
	if at, _ := kfi.KeyFrameTime(0); at != 0 {
		t.Errorf("Expected 0 got %v", at)
	}
	if at, _ := kfi.KeyFrameTime(1); at != 1 {
		t.Errorf("Expected 1 got %v", at)
	}
	if got := kfi.Duration(); got != 1 {
		t.Errorf("Expected 1 got %v", got)
	}
}

func TestStartNeedsTwoKeyFrames(t *testing.T) {
	kfi, _ := pathWithTimes(t, 0)
	kfi.StartInterpolation()
	if kfi.IsInterpolationStarted() {
		t.Errorf("Expected false got true")
	}
}

func TestInterpolateAtTimeEndpointsAndClamp(t *testing.T) {
	kfi, target := pathWithTimes(t, 0, 1)

	kfi.InterpolateAtTime(0)
	if got := target.Position().X; !almostEqual(got, 0, 1e-4) {
		t.Errorf("Expected 0 got %v", got)
	}

	kfi.InterpolateAtTime(1)
	if got := target.Position().X; !almostEqual(got, 10, 1e-4) {
		t.Errorf("Expected 10 got %v", got)
	}

	// Out-of-range times clamp to the path ends.
	kfi.InterpolateAtTime(42)
	if got := target.Position().X; !almostEqual(got, 10, 1e-4) {
		t.Errorf("Expected 10 got %v", got)
	}
	kfi.InterpolateAtTime(-42)
	if got := target.Position().X; !almostEqual(got, 0, 1e-4) {
		t.Errorf("Expected 0 got %v", got)
	}
}

func TestInterpolateAtTimeMidpointBetweenEnds(t *testing.T) {
	kfi, target := pathWithTimes(t, 0, 1)
	kfi.InterpolateAtTime(0.5)
	got := target.Position().X
	if got <= 0 || got >= 10 {
		t.Errorf("Expected value between 0 and 10 got %v", got)
	}
}

func TestPlaybackAdvancesAndStopsAtEnd(t *testing.T) {
	s := timing.NewScheduler()
	target := frame.NewFrame()
	kfi := NewKeyFrameInterpolator(s, target)
	src := frame.NewFrame()
	src.SetPosition(common.Vec3{})
	kfi.AddKeyFrameAt(src, 0)
	src.SetPosition(common.Vec3{X: 10})
	kfi.AddKeyFrameAt(src, 1)

	kfi.StartInterpolation()
	if !kfi.IsInterpolationStarted() {
		t.Fatalf("Expected true got false")
	}

	// Step well past the path duration; the non-looping path must clamp
	// to its last pose and stop itself.
	now := time.Now()
	for i := 0; i < 40; i++ {
		now = now.Add(40 * time.Millisecond)
		s.Tick(now)
	}
	if kfi.IsInterpolationStarted() {
		t.Errorf("Expected false got true")
	}
	if got := target.Position().X; !almostEqual(got, 10, 1e-3) {
		t.Errorf("Expected 10 got %v", got)
	}
}

func TestLoopKeepsPlaying(t *testing.T) {
	s := timing.NewScheduler()
	target := frame.NewFrame()
	kfi := NewKeyFrameInterpolator(s, target, WithLoop())
	src := frame.NewFrame()
	kfi.AddKeyFrameAt(src, 0)
	src.SetPosition(common.Vec3{X: 10})
	kfi.AddKeyFrameAt(src, 1)

	kfi.StartInterpolation()
	now := time.Now()
	for i := 0; i < 60; i++ {
		now = now.Add(40 * time.Millisecond)
		s.Tick(now)
	}
	if !kfi.IsInterpolationStarted() {
		t.Errorf("Expected true got false")
	}
}

func TestClearPathStopsPlayback(t *testing.T) {
	kfi, _ := pathWithTimes(t, 0, 1)
	kfi.StartInterpolation()
	kfi.ClearPath()
	if kfi.IsInterpolationStarted() {
		t.Errorf("Expected false got true")
	}
	if got := kfi.NumberOfKeyFrames(); got != 0 {
		t.Errorf("Expected 0 got %d", got)
	}
}

func TestResetInterpolationRewinds(t *testing.T) {
	kfi, target := pathWithTimes(t, 0, 1)
	kfi.InterpolateAtTime(1)
	kfi.SetInterpolationTime(1)

	kfi.ResetInterpolation()
	if got := kfi.InterpolationTime(); got != 0 {
		t.Errorf("Expected 0 got %v", got)
	}
	if got := target.Position().X; !almostEqual(got, 0, 1e-4) {
		t.Errorf("Expected 0 got %v", got)
	}
}
