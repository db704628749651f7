package frame

import (
	"math"
	"testing"

	"github.com/avery-hale/navscene-go/common"
)

func almostEqual(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func vecAlmostEqual(a, b common.Vec3, eps float32) bool {
	return almostEqual(a.X, b.X, eps) && almostEqual(a.Y, b.Y, eps) && almostEqual(a.Z, b.Z, eps)
}

func TestCoordinatesOfRoundTrip(t *testing.T) {
	f := NewFrame(
		WithTranslation(common.Vec3{X: 1, Y: 2, Z: 3}),
		WithRotation(common.QuatFromAxisAngle(common.Vec3{Y: 1}, 0.8)),
		WithScaling(common.Vec3{X: 2, Y: 2, Z: 2}),
	)

	world := common.Vec3{X: -4, Y: 5, Z: 0.5}
	local := f.CoordinatesOf(world)
	back := f.InverseCoordinatesOf(local)
	if !vecAlmostEqual(back, world, 1e-4) {
		t.Errorf("Expected %v got %v", world, back)
	}
}

func TestHierarchyComposition(t *testing.T) {
	// Three-level chain: each level translates by 1 along X and rotates a
	// quarter turn around Z.
	quarter := common.QuatFromAxisAngle(common.Vec3{Z: 1}, float32(math.Pi/2))
	a := NewFrame(WithTranslation(common.Vec3{X: 1}), WithRotation(quarter))
	b := NewFrame(WithTranslation(common.Vec3{X: 1}), WithRotation(quarter), WithReferenceFrame(a))
	c := NewFrame(WithTranslation(common.Vec3{X: 1}), WithRotation(quarter), WithReferenceFrame(b))

	// b's origin: a's origin plus a's rotation applied to (1,0,0).
	if got := b.Position(); !vecAlmostEqual(got, common.Vec3{X: 1, Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 1, Y: 1}, got)
	}
	if got := c.Position(); !vecAlmostEqual(got, common.Vec3{Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{Y: 1}, got)
	}

	// World orientation folds the chain: three quarter turns.
	if got := c.Orientation().Angle(); !almostEqual(got, 3*float32(math.Pi/2), 1e-4) {
		t.Errorf("Expected %v got %v", 3*float32(math.Pi/2), got)
	}
}

func TestCoordinatesOfThroughHierarchy(t *testing.T) {
	parent := NewFrame(WithTranslation(common.Vec3{X: 10}))
	child := NewFrame(WithTranslation(common.Vec3{Y: 5}), WithReferenceFrame(parent))

	local := child.CoordinatesOf(common.Vec3{X: 10, Y: 5, Z: 2})
	if !vecAlmostEqual(local, common.Vec3{Z: 2}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{Z: 2}, local)
	}
}

func TestSetReferenceFrameRejectsCycle(t *testing.T) {
	a := NewFrame()
	b := NewFrame(WithReferenceFrame(a))

	if err := a.SetReferenceFrame(b); err == nil {
		t.Errorf("Expected error got nil")
	}
	if err := a.SetReferenceFrame(a); err == nil {
		t.Errorf("Expected error got nil")
	}
	// The failed calls must leave the hierarchy untouched.
	if a.ReferenceFrame() != nil {
		t.Errorf("Expected nil got %v", a.ReferenceFrame())
	}
}

func TestSetScalingRejectsZero(t *testing.T) {
	f := NewFrame(WithScaling(common.Vec3{X: 2, Y: 2, Z: 2}))
	f.SetScaling(common.Vec3{X: 0, Y: 1, Z: 1})
	if got := f.Scaling(); !vecAlmostEqual(got, common.Vec3{X: 2, Y: 2, Z: 2}, 0) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 2, Y: 2, Z: 2}, got)
	}
}

func TestSetPositionWithReference(t *testing.T) {
	parent := NewFrame(WithTranslation(common.Vec3{X: 3}))
	child := NewFrame(WithReferenceFrame(parent))

	child.SetPosition(common.Vec3{X: 7, Y: 1})
	if got := child.Position(); !vecAlmostEqual(got, common.Vec3{X: 7, Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 7, Y: 1}, got)
	}
	if got := child.Translation(); !vecAlmostEqual(got, common.Vec3{X: 4, Y: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 4, Y: 1}, got)
	}
}

func TestTransformOfIgnoresTranslation(t *testing.T) {
	f := NewFrame(
		WithTranslation(common.Vec3{X: 100, Y: -50}),
		WithRotation(common.QuatFromAxisAngle(common.Vec3{Z: 1}, float32(math.Pi/2))),
	)

	got := f.TransformOf(common.Vec3{X: 1})
	if !vecAlmostEqual(got, common.Vec3{Y: -1}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{Y: -1}, got)
	}
	back := f.InverseTransformOf(got)
	if !vecAlmostEqual(back, common.Vec3{X: 1}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 1}, back)
	}
}

func TestRotateAroundPoint(t *testing.T) {
	f := NewFrame(WithTranslation(common.Vec3{X: 2}))
	half := common.QuatFromAxisAngle(common.Vec3{Z: 1}, float32(math.Pi))

	f.RotateAroundPoint(half, common.Vec3{})
	if got := f.Position(); !vecAlmostEqual(got, common.Vec3{X: -2}, 1e-4) {
		t.Errorf("Expected %v got %v", common.Vec3{X: -2}, got)
	}
}

func TestProjectOnLine(t *testing.T) {
	f := NewFrame(WithTranslation(common.Vec3{X: 3, Y: 4}))
	f.ProjectOnLine(common.Vec3{}, common.Vec3{X: 1})
	if got := f.Position(); !vecAlmostEqual(got, common.Vec3{X: 3}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 3}, got)
	}
}

func TestAlignWithFrame(t *testing.T) {
	target := NewFrame(WithRotation(common.QuatFromAxisAngle(common.Vec3{Z: 1}, 0.3)))
	f := NewFrame(WithRotation(common.QuatFromAxisAngle(common.Vec3{Z: 1}, 0.25)))

	f.AlignWithFrame(target, false, 0.85)
	got := f.Orientation().InverseRotate(target.Orientation().Rotate(common.Vec3{X: 1}))
	if !vecAlmostEqual(got, common.Vec3{X: 1}, 1e-3) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 1}, got)
	}
}

func TestLastUpdatePropagatesFromAncestors(t *testing.T) {
	parent := NewFrame()
	child := NewFrame(WithReferenceFrame(parent))

	before := child.LastUpdate()
	parent.Translate(common.Vec3{X: 1})
	after := child.LastUpdate()
	if after <= before {
		t.Errorf("Expected tick greater than %d got %d", before, after)
	}
}

func TestWorldMatrixMapsLocalOrigin(t *testing.T) {
	parent := NewFrame(WithTranslation(common.Vec3{X: 1, Y: 2, Z: 3}))
	child := NewFrame(WithTranslation(common.Vec3{X: 1}), WithReferenceFrame(parent))

	var m [16]float32
	child.WorldMatrix(m[:])
	x, y, z, _ := common.MulVec4(m[:], 0, 0, 0, 1)
	if !vecAlmostEqual(common.Vec3{X: x, Y: y, Z: z}, common.Vec3{X: 2, Y: 2, Z: 3}, 1e-5) {
		t.Errorf("Expected %v got (%v %v %v)", common.Vec3{X: 2, Y: 2, Z: 3}, x, y, z)
	}
}
