package culler_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/culler"
	"github.com/avery-hale/navscene-go/engine/eye"
	"github.com/avery-hale/navscene-go/engine/scene"
)

func newCullScene(t *testing.T) scene.Scene {
	t.Helper()
	s := scene.NewScene(t.Name())
	s.Eye().SetPosition(common.Vec3{Z: 200})
	s.Eye().EnableBoundaryEquations(true)
	s.TickAt(time.Now())
	return s
}

func TestBallVisibilitiesMatchScalarClassification(t *testing.T) {
	s := newCullScene(t)
	defer s.Release()
	e := s.Eye()

	rng := rand.New(rand.NewSource(7))
	balls := make([]culler.Ball, 500)
	for i := range balls {
		balls[i] = culler.Ball{
			Center: common.Vec3{
				X: rng.Float32()*800 - 400,
				Y: rng.Float32()*800 - 400,
				Z: rng.Float32()*800 - 400,
			},
			Radius: rng.Float32() * 50,
		}
	}

	c := culler.NewCuller()
	got := c.BallVisibilities(e, balls)
	if len(got) != len(balls) {
		t.Fatalf("Expected %v got %v", len(balls), len(got))
	}
	for i, b := range balls {
		want := e.BallVisibility(b.Center, b.Radius)
		if got[i] != want {
			t.Errorf("Expected %v got %v for ball %d", want, got[i], i)
		}
	}
}

func TestBoxVisibilities(t *testing.T) {
	s := newCullScene(t)
	defer s.Release()
	e := s.Eye()

	boxes := []culler.Box{
		{Min: common.Vec3{X: -1, Y: -1, Z: -1}, Max: common.Vec3{X: 1, Y: 1, Z: 1}},
		{Min: common.Vec3{X: 5000, Y: -1, Z: -1}, Max: common.Vec3{X: 5002, Y: 1, Z: 1}},
	}

	c := culler.NewCuller()
	got := c.BoxVisibilities(e, boxes)
	if got[0] != eye.Visible {
		t.Errorf("Expected %v got %v", eye.Visible, got[0])
	}
	if got[1] != eye.Invisible {
		t.Errorf("Expected %v got %v", eye.Invisible, got[1])
	}

	for i, b := range boxes {
		want := e.BoxVisibility(b.Min, b.Max)
		if got[i] != want {
			t.Errorf("Expected %v got %v for box %d", want, got[i], i)
		}
	}
}

func TestVisibleBallsFiltersInvisible(t *testing.T) {
	s := newCullScene(t)
	defer s.Release()
	e := s.Eye()

	balls := []culler.Ball{
		{Center: common.Vec3{}, Radius: 1},             // in front of the eye
		{Center: common.Vec3{Z: 1000}, Radius: 1},      // behind the eye
		{Center: common.Vec3{X: 20}, Radius: 1},        // in front, offset
		{Center: common.Vec3{X: 100000}, Radius: 1},    // far off to the side
		{Center: common.Vec3{}, Radius: 10000},         // straddles everything
	}

	c := culler.NewCuller()
	got := c.VisibleBalls(e, balls)
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("Expected %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v got %v", want, got)
		}
	}
}

func TestEmptyBatch(t *testing.T) {
	s := newCullScene(t)
	defer s.Release()

	c := culler.NewCuller()
	if got := c.BallVisibilities(s.Eye(), nil); len(got) != 0 {
		t.Errorf("Expected 0 got %v", len(got))
	}
	if got := c.VisibleBalls(s.Eye(), nil); len(got) != 0 {
		t.Errorf("Expected 0 got %v", len(got))
	}
}

func TestWithWorkers(t *testing.T) {
	c := culler.NewCuller(culler.WithWorkers(3))
	if got := c.Workers(); got != 3 {
		t.Errorf("Expected 3 got %v", got)
	}

	s := newCullScene(t)
	defer s.Release()

	// A batch larger than workers*4 exercises multi-chunk fan-out.
	balls := make([]culler.Ball, 100)
	for i := range balls {
		balls[i] = culler.Ball{Center: common.Vec3{X: float32(i)}, Radius: 1}
	}
	got := c.BallVisibilities(s.Eye(), balls)
	if len(got) != len(balls) {
		t.Errorf("Expected %v got %v", len(balls), len(got))
	}
}
