package constraint

import (
	"math"
	"testing"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
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

func TestAxisTranslationClampsToAxis(t *testing.T) {
	c := NewLocalConstraint(WithTranslationConstraint(TranslationAxis, common.Vec3{X: 1}))
	f := frame.NewFrame()

	got := c.ConstrainTranslation(common.Vec3{X: 3, Y: 5}, f)
	if !vecAlmostEqual(got, common.Vec3{X: 3}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 3}, got)
	}
}

func TestPlaneTranslationDropsNormalComponent(t *testing.T) {
	c := NewLocalConstraint(WithTranslationConstraint(TranslationPlane, common.Vec3{Z: 1}))
	f := frame.NewFrame()

	got := c.ConstrainTranslation(common.Vec3{X: 1, Y: 2, Z: 7}, f)
	if !vecAlmostEqual(got, common.Vec3{X: 1, Y: 2}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 1, Y: 2}, got)
	}
}

func TestForbiddenTranslation(t *testing.T) {
	c := NewLocalConstraint(WithTranslationConstraint(TranslationForbidden, common.Vec3{}))
	f := frame.NewFrame()

	got := c.ConstrainTranslation(common.Vec3{X: 1, Y: 2, Z: 3}, f)
	if !vecAlmostEqual(got, common.Vec3{}, 0) {
		t.Errorf("Expected %v got %v", common.Vec3{}, got)
	}
}

func TestForbiddenRotationIsExactIdentity(t *testing.T) {
	c := NewLocalConstraint(WithRotationConstraint(RotationForbidden, common.Vec3{}))
	f := frame.NewFrame()

	got := c.ConstrainRotation(common.QuatFromAxisAngle(common.Vec3{Y: 1}, 1.2), f)
	q, ok := got.(common.Quat)
	if !ok {
		t.Fatalf("Expected common.Quat got %T", got)
	}
	id := common.QuatIdentity()
	if q != id {
		t.Errorf("Expected %v got %v", id, q)
	}
}

func TestAxisRotationKeepsAxisComponent(t *testing.T) {
	c := NewLocalConstraint(WithRotationConstraint(RotationAxis, common.Vec3{Z: 1}))
	f := frame.NewFrame()

	in := common.QuatFromAxisAngle(common.Vec3{Z: 1}, 0.9)
	out := c.ConstrainRotation(in, f).(common.Quat)
	if !almostEqual(out.Angle(), 0.9, 1e-4) {
		t.Errorf("Expected %v got %v", 0.9, out.Angle())
	}

	// A rotation orthogonal to the axis collapses to (near) identity.
	ortho := common.QuatFromAxisAngle(common.Vec3{X: 1}, 0.9)
	flat := c.ConstrainRotation(ortho, f).(common.Quat)
	v := flat.Rotate(common.Vec3{Y: 1})
	if !almostEqual(v.X, 0, 1e-5) {
		t.Errorf("Expected 0 got %v", v.X)
	}
}

func TestWorldConstraintAccountsForFrameOrientation(t *testing.T) {
	// The frame's own rotation must not affect a world-axis constraint:
	// deltas live in the reference frame, world here.
	f := frame.NewFrame(
		frame.WithRotation(common.QuatFromAxisAngle(common.Vec3{Z: 1}, float32(math.Pi/2))),
	)
	c := NewWorldConstraint(WithTranslationConstraint(TranslationAxis, common.Vec3{X: 1}))

	// Deltas arrive in the reference frame (world here, no parent).
	got := c.ConstrainTranslation(common.Vec3{X: 2, Y: 3}, f)
	if !vecAlmostEqual(got, common.Vec3{X: 2}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 2}, got)
	}
}

func TestScalingMask(t *testing.T) {
	c := NewLocalConstraint(WithScalingMask(true, false, true))
	f := frame.NewFrame()

	got := c.ConstrainScaling(common.Vec3{X: 2, Y: 3, Z: 4}, f)
	if !vecAlmostEqual(got, common.Vec3{X: 2, Y: 1, Z: 4}, 0) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 2, Y: 1, Z: 4}, got)
	}
}

func TestConstraintOnFrameTranslate(t *testing.T) {
	f := frame.NewFrame()
	f.SetConstraint(NewLocalConstraint(WithTranslationConstraint(TranslationAxis, common.Vec3{X: 1})))

	f.Translate(common.Vec3{X: 3, Y: 5})
	if got := f.Translation(); !vecAlmostEqual(got, common.Vec3{X: 3}, 1e-5) {
		t.Errorf("Expected %v got %v", common.Vec3{X: 3}, got)
	}
}

func TestForbiddenRotationLeavesFrameUntouched(t *testing.T) {
	f := frame.NewFrame()
	f.SetRotation(common.QuatFromAxisAngle(common.Vec3{X: 1, Y: 2, Z: 3}, 2.5))
	f.SetConstraint(NewLocalConstraint(WithRotationConstraint(RotationForbidden, common.Vec3{})))

	before := f.Rotation().(common.Quat)
	tick := f.LastUpdate()

	f.Rotate(common.QuatFromAxisAngle(common.Vec3{Y: 1}, 0.7))

	// The stored rotation must be bit-for-bit identical: composing with
	// the identity delta would still renormalize it.
	if got := f.Rotation().(common.Quat); got != before {
		t.Errorf("Expected %v got %v", before, got)
	}
	if got := f.LastUpdate(); got != tick {
		t.Errorf("Expected %v got %v", tick, got)
	}

	f.RotateAroundPoint(common.QuatFromAxisAngle(common.Vec3{Y: 1}, 0.7), common.Vec3{X: 10})
	if got := f.Rotation().(common.Quat); got != before {
		t.Errorf("Expected %v got %v", before, got)
	}
	if got := f.LastUpdate(); got != tick {
		t.Errorf("Expected %v got %v", tick, got)
	}
}

func TestTypeCycles(t *testing.T) {
	if got := TranslationForbidden.Next(); got != TranslationFree {
		t.Errorf("Expected %v got %v", TranslationFree, got)
	}
	if got := RotationForbidden.Next(); got != RotationFree {
		t.Errorf("Expected %v got %v", RotationFree, got)
	}
}
