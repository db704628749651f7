package interactive_frame

import (
	"log"
	"math"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/input"
)

// execAction2D converts a reduced motion event into frame deltas in a 2D
// scene. Rotations are planar; the window frame's scaling carries the
// pixel-to-scene mapping, so translations route through it.
func (f *interactiveFrameImpl) execAction2D(e input.MotionEvent) {
	view := f.ctx.View()
	if view == nil {
		return
	}

	switch e.Action {
	case input.ActionRoll:
		angle := float32(math.Pi) * f.wheelOrDelta(e) / float32(f.ctx.Width())
		if f.ctx.IsLeftHanded() {
			angle = -angle
		}
		rot := common.Rot{A: angle}
		f.applyPlanarRotation(rot, view)
		f.SetSpinningRotation(rot)

	case input.ActionRotate, input.ActionRotateZ, input.ActionScreenRotate:
		pivot := f.rotationPivot(view)
		center := view.ProjectedCoordinatesOf(pivot)
		var rot common.Rot
		if e.Absolute {
			rot = common.Rot{A: e.Values[0] * f.RotationSensitivity()}
		} else {
			sweep := common.RotFromPoints(center,
				common.Vec3{X: e.Prev[0], Y: e.Prev[1]},
				common.Vec3{X: e.Values[0], Y: e.Values[1]})
			rot = common.Rot{A: sweep.A * f.RotationSensitivity()}
		}
		if f.isFlipped() {
			rot = rot.Negate()
		}
		m := view.Magnitude()
		if m.X*m.Y < 0 {
			rot = rot.Negate()
		}
		if e.Absolute {
			f.applyPlanarRotation(rot, view)
			return
		}
		f.SetSpinningRotation(rot)
		if f.DampingFriction() != 0 {
			f.StartSpinning(e)
		} else {
			f.Spin()
		}

	case input.ActionTranslate:
		dy := e.Delta(1)
		if f.ctx.IsLeftHanded() {
			dy = -dy
		}
		f.applyWindowTranslation(common.Vec3{X: e.Delta(0), Y: -dy}, view)

	case input.ActionTranslateX:
		f.applyWindowTranslation(common.Vec3{X: f.wheelOrDelta(e)}, view)
	case input.ActionTranslateY:
		dy := f.wheelOrDelta(e)
		if f.ctx.IsLeftHanded() {
			dy = -dy
		}
		f.applyWindowTranslation(common.Vec3{Y: -dy}, view)

	case input.ActionScreenTranslate:
		var trans common.Vec3
		switch f.gestureDirection(e) {
		case 1:
			trans = common.Vec3{X: e.Delta(0)}
		case -1:
			dy := e.Delta(1)
			if f.ctx.IsLeftHanded() {
				dy = -dy
			}
			trans = common.Vec3{Y: -dy}
		default:
			return
		}
		f.applyWindowTranslation(trans, view)

	case input.ActionScale:
		delta := f.wheelOrDelta(e)
		s := 1 + common.Abs(delta)/float32(f.ctx.Height())
		if delta < 0 {
			s = 1 / s
		}
		f.Scale(common.Vec3{X: s, Y: s, Z: 1})

	case input.ActionZoom:
		if !f.eyeRole {
			log.Printf("interactive_frame: action %v only applies to the eye", e.Action)
			return
		}
		// A 2D eye zooms by scaling its own frame: growing the window
		// frame shrinks everything on screen.
		delta := f.wheelOrDelta(e)
		s := 1 + common.Abs(delta)/float32(f.ctx.Height())
		if delta < 0 {
			s = 1 / s
		}
		f.Scale(common.Vec3{X: s, Y: s, Z: 1})

	default:
		log.Printf("interactive_frame: unhandled action %v", e.Action)
	}
}

// applyPlanarRotation rotates in the screen plane, around the eye's anchor
// for the eye role.
func (f *interactiveFrameImpl) applyPlanarRotation(rot common.Rot, view View) {
	if f.eyeRole {
		f.RotateAroundPoint(rot, view.Anchor())
		return
	}
	f.Rotate(rot)
}

// applyWindowTranslation converts a pixel displacement to scene units
// through the window frame's transform, then applies it. The eye role
// moves opposite to the gesture.
func (f *interactiveFrameImpl) applyWindowTranslation(trans common.Vec3, view View) {
	if f.eyeRole {
		trans = trans.Negate()
	}
	trans = view.EyeFrame().InverseTransformOf(trans.Scale(f.TranslationSensitivity()))
	f.Translate(f.translateToReference(trans))
}

// isFlipped reports whether the screen-Y convention and the frame's own
// handedness disagree, which inverts planar rotation sweeps.
func (f *interactiveFrameImpl) isFlipped() bool {
	if f.ctx.IsLeftHanded() {
		return f.isInverted()
	}
	return !f.isInverted()
}
