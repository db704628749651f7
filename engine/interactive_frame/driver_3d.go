package interactive_frame

import (
	"log"
	"math"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/input"
)

// execAction3D converts a reduced motion event into frame deltas in a 3D
// scene. The eye role inverts translations, pivots rotations around the
// eye's anchor, and maps zoom onto a dolly along the view axis.
func (f *interactiveFrameImpl) execAction3D(e input.MotionEvent) {
	view := f.ctx.View()
	if view == nil {
		return
	}

	switch e.Action {
	case input.ActionRotate:
		if e.Absolute {
			log.Printf("interactive_frame: action %v needs a relative event", e.Action)
			return
		}
		pivot := f.rotationPivot(view)
		center := view.ProjectedCoordinatesOf(pivot)
		rot := f.deformedBallQuaternion(e, center.X, center.Y)
		if !f.eyeRole {
			rot = f.worldToFrameQuaternion(rot, view)
		}
		f.SetSpinningRotation(rot)
		if f.DampingFriction() != 0 {
			f.StartSpinning(e)
		} else {
			f.Spin()
		}

	case input.ActionRotateX:
		f.applyAxisRotation(e, common.Vec3{X: 1}, view)
	case input.ActionRotateY:
		f.applyAxisRotation(e, common.Vec3{Y: 1}, view)
	case input.ActionRotateZ:
		f.applyAxisRotation(e, common.Vec3{Z: 1}, view)

	case input.ActionRotateXYZ:
		q := common.QuatFromEulerAngles(e.Delta(0), e.Delta(1), -e.Delta(2))
		f.Rotate(f.worldToFrameQuaternion(q, view))

	case input.ActionScreenRotate:
		if e.Absolute {
			log.Printf("interactive_frame: action %v needs a relative event", e.Action)
			return
		}
		pivot := f.rotationPivot(view)
		center := view.ProjectedCoordinatesOf(pivot)
		prevAngle := float32(math.Atan2(float64(e.Prev[1]-center.Y), float64(e.Prev[0]-center.X)))
		angle := float32(math.Atan2(float64(e.Values[1]-center.Y), float64(e.Values[0]-center.X)))
		sweep := angle - prevAngle
		if f.ctx.IsLeftHanded() {
			sweep = -sweep
		}
		var rot common.Quat
		if f.eyeRole {
			rot = common.QuatFromAxisAngle(common.Vec3{Z: -1}, sweep)
		} else {
			axis := f.TransformOf(view.EyeFrame().InverseTransformOf(common.Vec3{Z: -1}))
			rot = common.QuatFromAxisAngle(axis, sweep)
		}
		f.SetSpinningRotation(rot)
		if f.DampingFriction() != 0 {
			f.StartSpinning(e)
		} else {
			f.Spin()
		}

	case input.ActionRoll:
		angle := float32(math.Pi) * f.wheelOrDelta(e) / float32(f.ctx.Width())
		if f.ctx.IsLeftHanded() {
			angle = -angle
		}
		rot := common.QuatFromAxisAngle(common.Vec3{Z: 1}, angle)
		f.Rotate(rot)
		f.SetSpinningRotation(rot)
		f.UpdateFlyUpVector()

	case input.ActionTranslate:
		dy := e.Delta(1)
		if !f.ctx.IsLeftHanded() {
			dy = -dy
		}
		f.applyScreenTranslation(common.Vec3{X: e.Delta(0), Y: dy}, view)

	case input.ActionTranslateX:
		f.applyScreenTranslation(common.Vec3{X: f.wheelOrDelta(e)}, view)
	case input.ActionTranslateY:
		dy := f.wheelOrDelta(e)
		if !f.ctx.IsLeftHanded() {
			dy = -dy
		}
		f.applyScreenTranslation(common.Vec3{Y: dy}, view)
	case input.ActionTranslateZ:
		f.applyScreenTranslation(common.Vec3{Z: f.wheelOrDelta(e)}, view)

	case input.ActionTranslateXYZ:
		dy := e.Delta(1)
		if !f.ctx.IsLeftHanded() {
			dy = -dy
		}
		f.applyScreenTranslation(common.Vec3{X: e.Delta(0), Y: dy, Z: e.Delta(2)}, view)

	case input.ActionTranslateRotateXYZ:
		dy := e.Delta(1)
		if !f.ctx.IsLeftHanded() {
			dy = -dy
		}
		f.applyScreenTranslation(common.Vec3{X: e.Delta(0), Y: dy, Z: e.Delta(2)}, view)
		q := common.QuatFromEulerAngles(e.Delta(3), e.Delta(4), -e.Delta(5))
		f.Rotate(f.worldToFrameQuaternion(q, view))

	case input.ActionScreenTranslate:
		var trans common.Vec3
		switch f.gestureDirection(e) {
		case 1:
			trans = common.Vec3{X: e.Delta(0)}
		case -1:
			dy := e.Delta(1)
			if !f.ctx.IsLeftHanded() {
				dy = -dy
			}
			trans = common.Vec3{Y: dy}
		default:
			return
		}
		f.applyScreenTranslation(trans, view)

	case input.ActionZoom:
		if !f.eyeRole {
			log.Printf("interactive_frame: action %v only applies to the eye", e.Action)
			return
		}
		// Dolly proportionally to the distance to the anchor, floored so
		// zooming never stalls right on top of it.
		coef := common.Abs(view.CoordinatesOf(view.Anchor()).Z)
		if floor := 0.2 * f.ctx.Radius(); coef < floor {
			coef = floor
		}
		delta := f.wheelOrDelta(e)
		trans := common.Vec3{Z: -coef * delta / float32(f.ctx.Height())}
		f.Translate(f.translateToReference(f.Rotation().Rotate(trans)))

	case input.ActionScale:
		delta := f.wheelOrDelta(e)
		s := 1 + common.Abs(delta)/float32(f.ctx.Height())
		if delta < 0 {
			s = 1 / s
		}
		f.Scale(common.Vec3{X: s, Y: s, Z: s})

	case input.ActionMoveForward:
		f.fly(e, -f.FlySpeed(), view)
	case input.ActionMoveBackward:
		f.fly(e, f.FlySpeed(), view)

	case input.ActionLookAround:
		f.Rotate(f.pitchYawQuaternion(e))

	case input.ActionDrive:
		f.Rotate(f.turnQuaternion(e))
		f.mu.Lock()
		f.driveSpd = 0.01 * -f.wheelOrDelta(e)
		f.flyDisp = common.Vec3{Z: f.flySpeed * f.driveSpd}
		disp := f.flyDisp
		f.mu.Unlock()
		f.SetTossingDirection(f.flyTranslation(disp))
		f.StartTossing(e)

	default:
		log.Printf("interactive_frame: unhandled action %v", e.Action)
	}
}

// rotationPivot is the world point rotation gestures orbit: the eye's
// anchor for the eye role, the frame origin otherwise.
func (f *interactiveFrameImpl) rotationPivot(view View) common.Vec3 {
	if f.eyeRole {
		return view.Anchor()
	}
	return f.Position()
}

// fly starts a pitch-yaw steered glide along the local Z axis.
func (f *interactiveFrameImpl) fly(e input.MotionEvent, zSpeed float32, view View) {
	f.Rotate(f.pitchYawQuaternion(e))
	f.mu.Lock()
	f.flyDisp = common.Vec3{Z: zSpeed}
	disp := f.flyDisp
	f.mu.Unlock()
	f.SetTossingDirection(f.flyTranslation(disp))
	f.StartTossing(e)
}

// applyAxisRotation rotates about a single local axis, proportionally to
// the event's scalar motion.
func (f *interactiveFrameImpl) applyAxisRotation(e input.MotionEvent, axis common.Vec3, view View) {
	angle := f.RotationSensitivity() * f.wheelOrDelta(e) / float32(f.ctx.Width())
	q := common.QuatFromAxisAngle(axis, float32(math.Pi)*angle)
	if f.eyeRole {
		f.RotateAroundPoint(q, view.Anchor())
		return
	}
	f.Rotate(q)
}

// applyScreenTranslation scales a screen-space displacement to scene units
// using the eye's projection, then applies it. The eye role moves opposite
// to the gesture so the scene appears to follow the cursor.
func (f *interactiveFrameImpl) applyScreenTranslation(trans common.Vec3, view View) {
	if f.eyeRole {
		trans = trans.Negate()
	}
	trans = f.sceneScale(trans, view)
	trans = view.Orientation().Rotate(trans.Scale(f.TranslationSensitivity()))
	f.Translate(f.translateToReference(trans))
}

// sceneScale converts a pixel displacement to scene units: through the
// on-screen footprint of the pivot's depth plane in perspective, through
// the boundary box in orthographic.
func (f *interactiveFrameImpl) sceneScale(trans common.Vec3, view View) common.Vec3 {
	if view.IsOrthographic() {
		halfW, halfH := view.BoundaryWidthHeight()
		trans.X *= 2 * halfW / float32(f.ctx.Width())
		trans.Y *= 2 * halfH / float32(f.ctx.Height())
		return trans
	}
	pivot := f.rotationPivot(view)
	depth := common.Abs(view.CoordinatesOf(pivot).Z * view.Magnitude().Z)
	k := 2 * float32(math.Tan(float64(view.FieldOfView())/2)) * depth / float32(f.ctx.Height())
	return trans.Scale(k)
}

// translateToReference re-expresses a world-space delta in the coordinate
// system Translate expects.
func (f *interactiveFrameImpl) translateToReference(trans common.Vec3) common.Vec3 {
	if ref := f.ReferenceFrame(); ref != nil {
		return ref.TransformOf(trans)
	}
	return trans
}

// deformedBallQuaternion maps the event's cursor sweep onto a virtual
// trackball centered at (cx, cy) and returns the induced rotation.
func (f *interactiveFrameImpl) deformedBallQuaternion(e input.MotionEvent, cx, cy float32) common.Quat {
	w := float32(f.ctx.Width())
	h := float32(f.ctx.Height())
	sens := f.RotationSensitivity()

	prevY := cy - e.Prev[1]
	curY := cy - e.Values[1]
	if f.ctx.IsLeftHanded() {
		prevY, curY = -prevY, -curY
	}

	px := sens * (e.Prev[0] - cx) / w
	py := sens * prevY / h
	dx := sens * (e.Values[0] - cx) / w
	dy := sens * curY / h

	p1 := common.Vec3{X: px, Y: py, Z: projectOnBall(px, py)}
	p2 := common.Vec3{X: dx, Y: dy, Z: projectOnBall(dx, dy)}
	axis := p2.Cross(p1)
	if p1.SquaredNorm() == 0 || p2.SquaredNorm() == 0 {
		return common.QuatIdentity()
	}
	angle := 2 * common.Asin(float32(math.Sqrt(float64(axis.SquaredNorm()/p1.SquaredNorm()/p2.SquaredNorm()))))
	return common.QuatFromAxisAngle(axis, angle)
}

// projectOnBall returns a pseudo-depth for (x, y) on a unit trackball:
// spherical inside the ball, hyperbolic outside, continuous at the rim.
func projectOnBall(x, y float32) float32 {
	const size2 = 1.0
	const sizeLimit = size2 * 0.5

	d := x*x + y*y
	if d < sizeLimit {
		return float32(math.Sqrt(float64(size2 - d)))
	}
	return sizeLimit / float32(math.Sqrt(float64(d)))
}

// worldToFrameQuaternion re-expresses a trackball rotation, computed in
// eye coordinates, as a local rotation of this frame, accounting for
// negative scaling axes.
func (f *interactiveFrameImpl) worldToFrameQuaternion(rot common.Quat, view View) common.Quat {
	axis := f.TransformOf(view.Orientation().Rotate(rot.Axis()))

	s := f.Scaling()
	if s.X < 0 {
		axis.X = -axis.X
	}
	if s.Y < 0 {
		axis.Y = -axis.Y
	}
	if s.Z < 0 {
		axis.Z = -axis.Z
	}

	angle := -rot.Angle()
	if f.isInverted() {
		angle = rot.Angle()
	}
	return common.QuatFromAxisAngle(axis, angle)
}

// isInverted reports whether the frame's world scaling flips handedness.
func (f *interactiveFrameImpl) isInverted() bool {
	m := f.Magnitude()
	if f.ctx.Is3D() {
		return m.X*m.Y*m.Z < 0
	}
	return m.X*m.Y < 0
}

// turnQuaternion yaws about the local Y axis proportionally to horizontal
// motion, used to steer the drive action.
func (f *interactiveFrameImpl) turnQuaternion(e input.MotionEvent) common.Quat {
	deltaX := f.wheelOrDelta(e)
	return common.QuatFromAxisAngle(common.Vec3{Y: 1}, f.RotationSensitivity()*(-deltaX)/float32(f.ctx.Width()))
}

// pitchYawQuaternion composes a pitch about the local X axis with a yaw
// about the fly up vector, from a 2-DOF motion sample.
func (f *interactiveFrameImpl) pitchYawQuaternion(e input.MotionEvent) common.Quat {
	deltaX := e.Delta(0)
	deltaY := e.Delta(1)
	if !f.ctx.IsLeftHanded() {
		deltaY = -deltaY
	}

	rotX := common.QuatFromAxisAngle(common.Vec3{X: 1}, f.RotationSensitivity()*deltaY/float32(f.ctx.Height()))
	rotY := common.QuatFromAxisAngle(f.TransformOf(f.FlyUpVector()), f.RotationSensitivity()*(-deltaX)/float32(f.ctx.Width()))
	return rotY.Mul(rotX)
}
