package input

import (
	"time"
)

// MotionEvent carries up to six degrees of freedom sampled from an input
// device. Values holds the current sample and Prev the one before it, so
// Delta is always their difference and position-aware gestures (the
// trackball, planar sweeps) can read both samples as screen coordinates.
// Events synthesized from bare deltas (wheel ticks, device axes) leave
// Prev zero.
type MotionEvent struct {
	// DOF is the number of meaningful leading entries in Values (1, 2, 3
	// or 6).
	DOF int
	// Absolute is true for standalone positional samples with no usable
	// motion. Absolute events apply immediately and never start inertia.
	Absolute bool
	// Values holds the current sample: x, y, z, rx, ry, rz.
	Values [6]float32
	// Prev holds the previous sample.
	Prev [6]float32
	// Speed is the gesture speed observed by the agent, in pixels per
	// millisecond. It seeds the damped inertia.
	Speed float32
	// Delay is the elapsed time between this event and the previous one.
	// It becomes the inertia task period.
	Delay time.Duration
	// Action is the semantic action the agent resolved for this event.
	Action Action
	// FromWheel marks events synthesized from a scroll wheel, which use
	// the wheel sensitivity instead of the translation sensitivity.
	FromWheel bool
}

// Delta returns the motion along axis i: the difference between the
// current and previous samples. Axes at or past DOF return 0.
//
// Parameters:
//   - i: the axis index (0..5)
//
// Returns:
//   - float32: the motion along the axis
func (e MotionEvent) Delta(i int) float32 {
	if i < 0 || i >= e.DOF {
		return 0
	}
	return e.Values[i] - e.Prev[i]
}

// X is shorthand for Delta(0).
func (e MotionEvent) X() float32 { return e.Delta(0) }

// Y is shorthand for Delta(1).
func (e MotionEvent) Y() float32 { return e.Delta(1) }

// Z is shorthand for Delta(2).
func (e MotionEvent) Z() float32 { return e.Delta(2) }

// RX is shorthand for Delta(3).
func (e MotionEvent) RX() float32 { return e.Delta(3) }

// RY is shorthand for Delta(4).
func (e MotionEvent) RY() float32 { return e.Delta(4) }

// RZ is shorthand for Delta(5).
func (e MotionEvent) RZ() float32 { return e.Delta(5) }

// ClickEvent is a button press resolved to a click action, with the cursor
// position in screen coordinates (origin top-left).
type ClickEvent struct {
	X, Y   float32
	Button int
	// Count is the click multiplicity (1 for single, 2 for double).
	Count  int
	Action Action
}

// KeyEvent is a raw key press. The interaction engine forwards key events
// to the owning scene unchanged.
type KeyEvent struct {
	Key       int
	Modifiers int
	Pressed   bool
}

// Event is the tagged union accepted by PerformInteraction: exactly one of
// MotionEvent, ClickEvent or KeyEvent.
type Event interface {
	isEvent()
}

func (MotionEvent) isEvent() {}
func (ClickEvent) isEvent()  {}
func (KeyEvent) isEvent()    {}

// Reduce trims a motion event to exactly the degrees of freedom the action
// requires, discarding the lowest-order axes first. Rotational actions
// reduced to a single degree of freedom keep the last axis instead of the
// first. Reduction fails when the event carries fewer degrees of freedom
// than the action needs, or when the action is not a motion action.
//
// Parameters:
//   - e: the incoming motion event
//   - a: the action to reduce for
//
// Returns:
//   - MotionEvent: the reduced event, with DOF == a.DOF()
//   - bool: false if the event cannot drive the action
func Reduce(e MotionEvent, a Action) (MotionEvent, bool) {
	d := a.DOF()
	if d == 0 || e.DOF < d {
		return MotionEvent{}, false
	}

	out := e
	out.Action = a
	out.DOF = d
	if d == 1 && a.Rotational() {
		// Keep the highest-order axis: a roll bound to a 3-DOF device
		// listens to its rotation axis, not its x translation.
		out.Values[0] = e.Values[e.DOF-1]
		out.Prev[0] = e.Prev[e.DOF-1]
	}
	for i := d; i < 6; i++ {
		out.Values[i] = 0
		out.Prev[i] = 0
	}
	return out, true
}

// OriginalDirection latches the dominant axis of a 2-DOF gesture from its
// first sample: 1 when horizontal motion dominates, -1 when vertical does,
// 0 when the sample is perfectly diagonal and the decision must wait for
// the next sample.
//
// Parameters:
//   - dx, dy: the first sample's per-axis motion
//
// Returns:
//   - int: 1 (horizontal), -1 (vertical) or 0 (undetermined)
func OriginalDirection(dx, dy float32) int {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch {
	case ax > ay:
		return 1
	case ax < ay:
		return -1
	default:
		return 0
	}
}
