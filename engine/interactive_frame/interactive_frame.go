// package interactive_frame implements the gesture-driven frame: it
// consumes reduced motion, click and key events, converts them to frame
// deltas through sensitivity and handedness settings, and keeps motion
// alive after the gesture ends through damped spin (rotation) and toss
// (translation) tasks. The same type serves scene objects and, flagged
// with the eye role, the frame an eye navigates with.
package interactive_frame

import (
	"log"
	"sync"
	"time"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
	"github.com/avery-hale/navscene-go/engine/input"
	"github.com/avery-hale/navscene-go/engine/timing"
)

// flyUpdatePeriod is the fixed tossing task period; spinning instead runs
// at the emitting gesture's own event rate.
const flyUpdatePeriod = 10 * time.Millisecond

// speedEpsilon is the decayed speed below which inertia snaps to a stop.
const speedEpsilon = 0.001

// InteractiveFrame is a Frame that reacts to input events. Relative
// gestures leave it spinning or tossing with damped inertia; absolute
// gestures move it directly.
type InteractiveFrame interface {
	frame.Frame

	// PerformInteraction consumes one input event. Key events and
	// scene-level click actions are forwarded to the owning scene; motion
	// events are reduced to their action's degrees of freedom and executed
	// by the 2D or 3D driver, whichever matches the scene. Starting any
	// interaction stops an in-progress toss.
	//
	// Parameters:
	//   - e: the event (MotionEvent, ClickEvent or KeyEvent)
	PerformInteraction(e input.Event)

	// CheckIfGrabsInput reports whether the cursor is close enough to the
	// frame's projected position for the frame to claim the event. Frames
	// playing the eye role never grab.
	//
	// Parameters:
	//   - x, y: the cursor position in screen coordinates
	//
	// Returns:
	//   - bool: true if the frame grabs input at this position
	CheckIfGrabsInput(x, y float32) bool

	// GrabsInputThreshold returns the grab distance in pixels.
	GrabsInputThreshold() int

	// SetGrabsInputThreshold sets the grab distance. Non-positive values
	// are rejected.
	//
	// Parameters:
	//   - threshold: the distance in pixels
	SetGrabsInputThreshold(threshold int)

	// IsEyeFrame reports whether this frame steers an eye. Eye frames
	// invert translation gestures, spin around the eye's anchor, and route
	// zoom actions to the eye.
	IsEyeFrame() bool

	// RotationSensitivity returns the rotation gesture gain. Default 1.
	RotationSensitivity() float32

	// SetRotationSensitivity sets the rotation gesture gain. Negative
	// values are rejected.
	SetRotationSensitivity(sensitivity float32)

	// TranslationSensitivity returns the translation gesture gain.
	// Default 1, which keeps a dragged frame exactly under the cursor.
	TranslationSensitivity() float32

	// SetTranslationSensitivity sets the translation gesture gain.
	// Negative values are rejected.
	SetTranslationSensitivity(sensitivity float32)

	// SpinningSensitivity returns the minimum gesture speed that starts a
	// spin. Default 0.3.
	SpinningSensitivity() float32

	// SetSpinningSensitivity sets the minimum spin-starting speed.
	// Negative values are rejected.
	SetSpinningSensitivity(sensitivity float32)

	// WheelSensitivity returns the scroll-wheel gain. Default 20.
	WheelSensitivity() float32

	// SetWheelSensitivity sets the scroll-wheel gain.
	SetWheelSensitivity(sensitivity float32)

	// DampingFriction returns the inertia friction in [0, 1]. 0 lets spin
	// and toss run forever; 1 stops them immediately.
	DampingFriction() float32

	// SetDampingFriction sets the inertia friction. Values outside [0, 1]
	// are rejected.
	//
	// Parameters:
	//   - f: the friction
	SetDampingFriction(f float32)

	// FlySpeed returns the per-tick displacement of the fly actions, in
	// scene units.
	FlySpeed() float32

	// SetFlySpeed sets the fly displacement per tick.
	SetFlySpeed(speed float32)

	// FlyUpVector returns the world-space axis horizontal look-around
	// motion rotates about.
	FlyUpVector() common.Vec3

	// SetFlyUpVector sets the fly up axis, in world coordinates.
	SetFlyUpVector(up common.Vec3)

	// UpdateFlyUpVector re-derives the fly up axis from the frame's
	// current local Y axis.
	UpdateFlyUpVector()

	// IsSpinning reports whether the spin task is running.
	IsSpinning() bool

	// IsTossing reports whether the toss task is running.
	IsTossing() bool

	// SpinningRotation returns the rotation applied on each spin tick.
	SpinningRotation() common.Rotation

	// SetSpinningRotation sets the per-tick spin rotation.
	SetSpinningRotation(r common.Rotation)

	// TossingDirection returns the translation applied on each toss tick,
	// in reference-frame coordinates.
	TossingDirection() common.Vec3

	// SetTossingDirection sets the per-tick toss translation.
	SetTossingDirection(dir common.Vec3)

	// StartSpinning arms the spin task at the event's emission rate,
	// seeding the decay with the event's speed. Events with no measurable
	// delay spin once immediately instead.
	//
	// Parameters:
	//   - e: the gesture event that ended in a spin
	StartSpinning(e input.MotionEvent)

	// StopSpinning disarms the spin task. Safe when not spinning.
	StopSpinning()

	// StartTossing arms the toss task at the fixed fly period, seeding the
	// decay with the event's speed.
	//
	// Parameters:
	//   - e: the gesture event that ended in a toss
	StartTossing(e input.MotionEvent)

	// StopTossing disarms the toss task. Safe when not tossing.
	StopTossing()

	// Spin applies one spin tick: rotate by the spinning rotation, then
	// decay the gesture speed by (1 - friction cubed), stopping once it
	// reaches zero. With zero friction the rotation repeats undamped.
	Spin()

	// Toss applies one toss tick, the translational twin of Spin.
	Toss()

	// ResetGestureDirection clears the dominant-axis latch of screen
	// translation. Agents call it when a gesture ends.
	ResetGestureDirection()

	// Clone returns an independent copy with the same pose, tunables and
	// constraint, registered with fresh inertia tasks on the given
	// context's scheduler. Tasks are never shared between copies.
	//
	// Parameters:
	//   - ctx: the scene context the copy binds to
	//
	// Returns:
	//   - InteractiveFrame: the copy
	Clone(ctx Context) InteractiveFrame

	// Release cancels both inertia tasks, unregistering them from the
	// scheduler. The frame remains usable as a plain Frame.
	Release()
}

var _ InteractiveFrame = &interactiveFrameImpl{}

type interactiveFrameImpl struct {
	frame.Frame

	mu  *sync.Mutex
	ctx Context

	rotSensitivity   float32
	transSensitivity float32
	spinSensitivity  float32
	whlSensitivity   float32

	dampFriction float32
	// sFriction caches dampFriction cubed, the per-tick decay factor.
	sFriction  float32
	eventSpeed float32

	spinRotation common.Rotation
	tossDir      common.Vec3

	flySpeed float32
	driveSpd float32
	flyUpVec common.Vec3
	flyDisp  common.Vec3

	dirIsFixed bool
	horizontal bool

	eyeRole        bool
	grabsThreshold int

	spinTask timing.Task
	tossTask timing.Task
}

// NewInteractiveFrame creates an interactive frame bound to a scene
// context, with its two inertia tasks registered on the context's
// scheduler.
//
// Parameters:
//   - ctx: the owning scene context
//   - opts: optional configuration (sensitivities, friction, eye role)
//
// Returns:
//   - InteractiveFrame: the new frame
func NewInteractiveFrame(ctx Context, opts ...InteractiveFrameOption) InteractiveFrame {
	f := &interactiveFrameImpl{
		Frame:            newBaseFrame(ctx),
		mu:               &sync.Mutex{},
		ctx:              ctx,
		rotSensitivity:   1.0,
		transSensitivity: 1.0,
		spinSensitivity:  0.3,
		whlSensitivity:   20.0,
		flyUpVec:         common.Vec3{Y: 1},
		grabsThreshold:   10,
	}
	f.setDampingFrictionLocked(0.5)
	for _, opt := range opts {
		opt(f)
	}
	f.spinTask = ctx.Scheduler().NewTask(f.Spin)
	f.tossTask = ctx.Scheduler().NewTask(f.Toss)
	return f
}

func newBaseFrame(ctx Context) frame.Frame {
	if ctx.Is3D() {
		return frame.NewFrame()
	}
	return frame.NewFrame(frame.WithPlanarRotation(0))
}

func (f *interactiveFrameImpl) IsEyeFrame() bool {
	return f.eyeRole
}

func (f *interactiveFrameImpl) GrabsInputThreshold() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.grabsThreshold
}

func (f *interactiveFrameImpl) SetGrabsInputThreshold(threshold int) {
	if threshold <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.grabsThreshold = threshold
}

func (f *interactiveFrameImpl) CheckIfGrabsInput(x, y float32) bool {
	if f.eyeRole {
		return false
	}
	view := f.ctx.View()
	if view == nil {
		return false
	}
	proj := view.ProjectedCoordinatesOf(f.Position())
	thr := float32(f.GrabsInputThreshold())
	return common.Abs(x-proj.X) <= thr && common.Abs(y-proj.Y) <= thr
}

func (f *interactiveFrameImpl) RotationSensitivity() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rotSensitivity
}

func (f *interactiveFrameImpl) SetRotationSensitivity(sensitivity float32) {
	if sensitivity < 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rotSensitivity = sensitivity
}

func (f *interactiveFrameImpl) TranslationSensitivity() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transSensitivity
}

func (f *interactiveFrameImpl) SetTranslationSensitivity(sensitivity float32) {
	if sensitivity < 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transSensitivity = sensitivity
}

func (f *interactiveFrameImpl) SpinningSensitivity() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spinSensitivity
}

func (f *interactiveFrameImpl) SetSpinningSensitivity(sensitivity float32) {
	if sensitivity < 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spinSensitivity = sensitivity
}

func (f *interactiveFrameImpl) WheelSensitivity() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.whlSensitivity
}

func (f *interactiveFrameImpl) SetWheelSensitivity(sensitivity float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whlSensitivity = sensitivity
}

func (f *interactiveFrameImpl) DampingFriction() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dampFriction
}

func (f *interactiveFrameImpl) SetDampingFriction(friction float32) {
	if friction < 0 || friction > 1 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setDampingFrictionLocked(friction)
}

func (f *interactiveFrameImpl) setDampingFrictionLocked(friction float32) {
	f.dampFriction = friction
	f.sFriction = friction * friction * friction
}

func (f *interactiveFrameImpl) FlySpeed() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flySpeed
}

func (f *interactiveFrameImpl) SetFlySpeed(speed float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flySpeed = speed
}

func (f *interactiveFrameImpl) FlyUpVector() common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flyUpVec
}

func (f *interactiveFrameImpl) SetFlyUpVector(up common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flyUpVec = up
}

func (f *interactiveFrameImpl) UpdateFlyUpVector() {
	up := f.InverseTransformOf(common.Vec3{Y: 1})
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flyUpVec = up
}

func (f *interactiveFrameImpl) IsSpinning() bool {
	return f.spinTask.IsActive()
}

func (f *interactiveFrameImpl) IsTossing() bool {
	return f.tossTask.IsActive()
}

func (f *interactiveFrameImpl) SpinningRotation() common.Rotation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spinRotation
}

func (f *interactiveFrameImpl) SetSpinningRotation(r common.Rotation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spinRotation = r
}

func (f *interactiveFrameImpl) TossingDirection() common.Vec3 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tossDir
}

func (f *interactiveFrameImpl) SetTossingDirection(dir common.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tossDir = dir
}

func (f *interactiveFrameImpl) StartSpinning(e input.MotionEvent) {
	f.mu.Lock()
	f.eventSpeed = e.Speed
	f.mu.Unlock()
	if e.Delay > 0 {
		f.spinTask.Run(e.Delay)
	} else {
		f.Spin()
	}
}

func (f *interactiveFrameImpl) StopSpinning() {
	f.spinTask.Stop()
}

func (f *interactiveFrameImpl) StartTossing(e input.MotionEvent) {
	f.mu.Lock()
	f.eventSpeed = e.Speed
	f.mu.Unlock()
	f.tossTask.Run(flyUpdatePeriod)
}

func (f *interactiveFrameImpl) StopTossing() {
	f.tossTask.Stop()
}

func (f *interactiveFrameImpl) Spin() {
	f.mu.Lock()
	friction := f.dampFriction
	speed := f.eventSpeed
	rot := f.spinRotation
	f.mu.Unlock()

	if rot == nil {
		return
	}
	if friction != 0 {
		if speed == 0 {
			f.StopSpinning()
			return
		}
		f.applySpin(rot)
		f.recomputeSpinningRotation()
		return
	}
	f.applySpin(rot)
}

func (f *interactiveFrameImpl) applySpin(rot common.Rotation) {
	if f.eyeRole {
		if view := f.ctx.View(); view != nil {
			f.RotateAroundPoint(rot, view.Anchor())
			return
		}
	}
	f.Rotate(rot)
}

func (f *interactiveFrameImpl) Toss() {
	f.mu.Lock()
	friction := f.dampFriction
	speed := f.eventSpeed
	dir := f.tossDir
	f.mu.Unlock()

	if friction != 0 {
		if speed == 0 {
			f.StopTossing()
			return
		}
		f.Translate(dir)
		f.recomputeTossingDirection()
		return
	}
	f.Translate(dir)
}

// decaySpeed applies one step of the cubic damping law and returns the
// old/new speed pair. Speeds below speedEpsilon snap to exactly zero so the
// next tick terminates the task.
func (f *interactiveFrameImpl) decaySpeed() (prev, cur float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	prev = f.eventSpeed
	f.eventSpeed *= 1.0 - f.sFriction
	if common.Abs(f.eventSpeed) < speedEpsilon {
		f.eventSpeed = 0
	}
	return prev, f.eventSpeed
}

func (f *interactiveFrameImpl) recomputeSpinningRotation() {
	prev, cur := f.decaySpeed()
	if prev == 0 {
		return
	}
	ratio := cur / prev

	f.mu.Lock()
	defer f.mu.Unlock()
	switch rot := f.spinRotation.(type) {
	case common.Quat:
		f.spinRotation = common.QuatFromAxisAngle(rot.Axis(), rot.Angle()*ratio)
	case common.Rot:
		f.spinRotation = common.Rot{A: rot.A * ratio}
	}
}

func (f *interactiveFrameImpl) recomputeTossingDirection() {
	prev, cur := f.decaySpeed()
	if prev == 0 {
		return
	}

	f.mu.Lock()
	f.flyDisp.Z *= cur / prev
	disp := f.flyDisp
	f.mu.Unlock()

	f.SetTossingDirection(f.flyTranslation(disp))
}

// flyTranslation expresses a displacement given in the frame's local axes
// as a translation delta (reference-frame coordinates).
func (f *interactiveFrameImpl) flyTranslation(disp common.Vec3) common.Vec3 {
	if f.ctx.Is3D() {
		return f.Rotation().Rotate(disp)
	}
	return f.Rotation().Rotate(disp.Mul(f.Scaling()))
}

func (f *interactiveFrameImpl) ResetGestureDirection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirIsFixed = false
}

// gestureDirection latches the dominant axis of a 2-DOF gesture: 1 when
// horizontal, -1 when vertical, 0 while still undetermined (perfectly
// diagonal first sample).
func (f *interactiveFrameImpl) gestureDirection(e input.MotionEvent) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dirIsFixed {
		d := input.OriginalDirection(e.X(), e.Y())
		if d != 0 {
			f.dirIsFixed = true
			f.horizontal = d == 1
		}
	}
	if !f.dirIsFixed {
		return 0
	}
	if f.horizontal {
		return 1
	}
	return -1
}

func (f *interactiveFrameImpl) PerformInteraction(e input.Event) {
	// A fresh interaction always supersedes a toss in progress; a spin is
	// left alone so rotation gestures can chain.
	f.StopTossing()
	if e == nil {
		return
	}

	switch ev := e.(type) {
	case input.KeyEvent:
		f.ctx.ForwardEvent(ev)
	case input.ClickEvent:
		f.performClick(ev)
	case input.MotionEvent:
		f.performMotion(ev)
	}
}

func (f *interactiveFrameImpl) performClick(e input.ClickEvent) {
	if !e.Action.IsClick() {
		if e.Action != input.ActionNone {
			f.ctx.ForwardEvent(e)
		}
		return
	}
	if !f.ctx.Is3D() && !e.Action.Supports2D() {
		log.Printf("interactive_frame: click action %v needs depth, ignored in 2D", e.Action)
		return
	}
	f.execClick(e)
}

func (f *interactiveFrameImpl) performMotion(e input.MotionEvent) {
	if e.Action == input.ActionNone {
		return
	}
	if !f.ctx.Is3D() {
		if !e.Action.Supports2D() {
			log.Printf("interactive_frame: action %v needs depth, ignored in 2D", e.Action)
			return
		}
		if reduced, ok := input.Reduce(e, e.Action); ok {
			f.execAction2D(reduced)
		}
		return
	}
	if reduced, ok := input.Reduce(e, e.Action); ok {
		f.execAction3D(reduced)
	}
}

func (f *interactiveFrameImpl) Clone(ctx Context) InteractiveFrame {
	f.mu.Lock()
	clone := &interactiveFrameImpl{
		Frame:            newBaseFrame(ctx),
		mu:               &sync.Mutex{},
		ctx:              ctx,
		rotSensitivity:   f.rotSensitivity,
		transSensitivity: f.transSensitivity,
		spinSensitivity:  f.spinSensitivity,
		whlSensitivity:   f.whlSensitivity,
		dampFriction:     f.dampFriction,
		sFriction:        f.sFriction,
		spinRotation:     f.spinRotation,
		tossDir:          f.tossDir,
		flySpeed:         f.flySpeed,
		flyUpVec:         f.flyUpVec,
		flyDisp:          f.flyDisp,
		eyeRole:          f.eyeRole,
		grabsThreshold:   f.grabsThreshold,
	}
	f.mu.Unlock()

	clone.SetTranslation(f.Translation())
	clone.SetRotation(f.Rotation())
	clone.SetScaling(f.Scaling())
	if err := clone.SetReferenceFrame(f.ReferenceFrame()); err != nil {
		log.Printf("interactive_frame: clone kept world reference: %v", err)
	}
	clone.SetConstraint(f.Constraint())

	clone.spinTask = ctx.Scheduler().NewTask(clone.Spin)
	clone.tossTask = ctx.Scheduler().NewTask(clone.Toss)
	return clone
}

func (f *interactiveFrameImpl) Release() {
	f.spinTask.Cancel()
	f.tossTask.Cancel()
}

// wheelOrDelta returns the scalar motion of a 1-DOF event, applying the
// wheel sensitivity to wheel-synthesized events.
func (f *interactiveFrameImpl) wheelOrDelta(e input.MotionEvent) float32 {
	if e.FromWheel {
		return e.Values[0] * f.WheelSensitivity()
	}
	return e.Delta(0)
}

// handedY flips a vertical screen delta in left-handed scenes.
func (f *interactiveFrameImpl) handedY(dy float32) float32 {
	if f.ctx.IsLeftHanded() {
		return -dy
	}
	return dy
}
