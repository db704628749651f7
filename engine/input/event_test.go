package input

import (
	"testing"
)

func TestReduceInsufficientDOF(t *testing.T) {
	e := MotionEvent{DOF: 1, Values: [6]float32{1}}
	if _, ok := Reduce(e, ActionRotate); ok {
		t.Errorf("Expected false got true")
	}
}

func TestReduceClickActionFails(t *testing.T) {
	e := MotionEvent{DOF: 2, Values: [6]float32{1, 2}}
	if _, ok := Reduce(e, ActionCenterFrame); ok {
		t.Errorf("Expected false got true")
	}
}

func TestReduceDropsHighAxes(t *testing.T) {
	e := MotionEvent{DOF: 6, Values: [6]float32{1, 2, 3, 4, 5, 6}}
	out, ok := Reduce(e, ActionTranslate)
	if !ok {
		t.Fatalf("Expected true got false")
	}
	if out.DOF != 2 {
		t.Errorf("Expected 2 got %d", out.DOF)
	}
	if out.Values != [6]float32{1, 2, 0, 0, 0, 0} {
		t.Errorf("Expected [1 2 0 0 0 0] got %v", out.Values)
	}
}

func TestReduceRotationalKeepsLastAxis(t *testing.T) {
	e := MotionEvent{DOF: 3, Values: [6]float32{1, 2, 3}}
	out, ok := Reduce(e, ActionRoll)
	if !ok {
		t.Fatalf("Expected true got false")
	}
	if out.DOF != 1 {
		t.Errorf("Expected 1 got %d", out.DOF)
	}
	if out.Values[0] != 3 {
		t.Errorf("Expected 3 got %v", out.Values[0])
	}
}

func TestReduceTranslationalKeepsFirstAxis(t *testing.T) {
	e := MotionEvent{DOF: 3, Values: [6]float32{1, 2, 3}}
	out, ok := Reduce(e, ActionTranslateX)
	if !ok {
		t.Fatalf("Expected true got false")
	}
	if out.Values[0] != 1 {
		t.Errorf("Expected 1 got %v", out.Values[0])
	}
}

func TestDeltaIsSampleDifference(t *testing.T) {
	// A drag event carries both cursor samples.
	drag := MotionEvent{DOF: 2, Values: [6]float32{10, 10}, Prev: [6]float32{4, 12}}
	if drag.X() != 6 || drag.Y() != -2 {
		t.Errorf("Expected (6 -2) got (%v %v)", drag.X(), drag.Y())
	}

	// Events built from bare deltas leave Prev zero.
	wheel := MotionEvent{DOF: 1, Values: [6]float32{5}, FromWheel: true}
	if wheel.X() != 5 {
		t.Errorf("Expected 5 got %v", wheel.X())
	}

	// Out-of-range axes read as zero.
	if wheel.Z() != 0 {
		t.Errorf("Expected 0 got %v", wheel.Z())
	}
}

func TestOriginalDirection(t *testing.T) {
	if got := OriginalDirection(5, 2); got != 1 {
		t.Errorf("Expected 1 got %d", got)
	}
	if got := OriginalDirection(-1, 4); got != -1 {
		t.Errorf("Expected -1 got %d", got)
	}
	if got := OriginalDirection(3, -3); got != 0 {
		t.Errorf("Expected 0 got %d", got)
	}
}

func TestActionMetadata(t *testing.T) {
	if got := ActionRotate.DOF(); got != 2 {
		t.Errorf("Expected 2 got %d", got)
	}
	if got := ActionTranslateRotateXYZ.DOF(); got != 6 {
		t.Errorf("Expected 6 got %d", got)
	}
	if !ActionRoll.Rotational() {
		t.Errorf("Expected true got false")
	}
	if ActionTranslate.Rotational() {
		t.Errorf("Expected false got true")
	}
	if !ActionCenterFrame.IsClick() {
		t.Errorf("Expected true got false")
	}
	if ActionDrive.Supports2D() {
		t.Errorf("Expected false got true")
	}
}
