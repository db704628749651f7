// package agent turns raw device input into semantic interaction events.
// An agent owns the binding tables (which button drags rotate, which
// clicks re-anchor), tracks which grabber the cursor is over, measures
// gesture speed and delay for the inertia machinery, and routes every
// synthesized event to the grabber that should consume it.
package agent

import (
	"math"
	"sync"
	"time"

	"github.com/avery-hale/navscene-go/engine/input"
	"github.com/avery-hale/navscene-go/engine/interactive_frame"
)

// Mouse button identifiers, matching glfw's numbering.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// doubleClickWindow is how close two presses of the same button must be to
// count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Grabber consumes interaction events. InteractiveFrame satisfies it; so
// does any application object that wants to react to gestures directly.
type Grabber interface {
	// CheckIfGrabsInput reports whether the cursor at the given screen
	// position is close enough for this grabber to claim input.
	CheckIfGrabsInput(x, y float32) bool

	// PerformInteraction consumes one input event.
	PerformInteraction(e input.Event)
}

// Agent routes device input to grabbers. Cursor motion while a bound
// button is held becomes a 2-DOF motion event stamped with the gesture's
// speed and delay; bound clicks become click events; scroll becomes a
// wheel motion event; keys pass through as key events. Events go to the
// tracked grabber when one claims the cursor, otherwise to the default
// grabber (usually the eye's frame).
type Agent interface {
	// AddGrabber registers a grabber in the tracking pool.
	AddGrabber(g Grabber)

	// RemoveGrabber drops a grabber from the tracking pool, clearing it
	// from tracked or default slots if needed.
	RemoveGrabber(g Grabber)

	// TrackedGrabber returns the grabber currently claiming the cursor,
	// nil if none.
	TrackedGrabber() Grabber

	// DefaultGrabber returns the fallback event target.
	DefaultGrabber() Grabber

	// SetDefaultGrabber sets the fallback event target.
	SetDefaultGrabber(g Grabber)

	// InputGrabber returns the grabber events are routed to: the tracked
	// grabber if any, else the default one.
	InputGrabber() Grabber

	// UpdateTrackedGrabber re-polls the pool at a cursor position. The
	// first grabber claiming the cursor wins.
	//
	// Parameters:
	//   - x, y: the cursor position, origin top-left
	UpdateTrackedGrabber(x, y float32)

	// BindMotion maps a button drag (with a modifier mask) to a motion
	// action. ActionNone unbinds.
	//
	// Parameters:
	//   - button: the mouse button
	//   - mods: the modifier mask that must be held
	//   - a: the action the drag drives
	BindMotion(button, mods int, a input.Action)

	// BindWheel maps scrolling under a modifier mask to a 1-DOF action.
	// ActionNone unbinds.
	//
	// Parameters:
	//   - mods: the modifier mask that must be held
	//   - a: the action the wheel drives
	BindWheel(mods int, a input.Action)

	// BindClick maps a click to a click action. ActionNone unbinds.
	//
	// Parameters:
	//   - button: the mouse button
	//   - mods: the modifier mask that must be held
	//   - count: the click multiplicity (1 or 2)
	//   - a: the click action
	BindClick(button, mods, count int, a input.Action)

	// HandleButtonPress feeds a button press at a cursor position.
	HandleButtonPress(button, mods int, x, y float32)

	// HandleButtonRelease feeds a button release at a cursor position.
	HandleButtonRelease(button, mods int, x, y float32)

	// HandleCursorMove feeds a cursor position sample.
	HandleCursorMove(x, y float32)

	// HandleScroll feeds a wheel tick.
	HandleScroll(mods int, amount float32)

	// HandleKey feeds a key transition.
	HandleKey(key, mods int, pressed bool)
}

type motionBinding struct {
	button, mods int
}

type clickBinding struct {
	button, mods, count int
}

type agentImpl struct {
	mu *sync.Mutex

	grabbers []Grabber
	tracked  Grabber
	fallback Grabber

	motionBindings map[motionBinding]input.Action
	wheelBindings  map[int]input.Action
	clickBindings  map[clickBinding]input.Action

	// Drag state for speed and delay measurement.
	pressedButton int
	pressedMods   int
	lastX, lastY  float32
	lastSample    time.Time

	// Double click detection.
	lastClickButton int
	lastClickAt     time.Time
}

var _ Agent = &agentImpl{}

// NewAgent builds an agent with the stock mouse bindings: left drag
// rotates, right drag translates, middle drag zooms, the wheel zooms,
// a left double click aligns, a right double click centers and a middle
// double click zooms on the pixel.
//
// Parameters:
//   - opts: optional AgentOption configuration
//
// Returns:
//   - Agent: the new agent
func NewAgent(opts ...AgentOption) Agent {
	a := &agentImpl{
		mu:              &sync.Mutex{},
		motionBindings:  make(map[motionBinding]input.Action),
		wheelBindings:   make(map[int]input.Action),
		clickBindings:   make(map[clickBinding]input.Action),
		pressedButton:   -1,
		lastClickButton: -1,
	}

	a.motionBindings[motionBinding{MouseButtonLeft, 0}] = input.ActionRotate
	a.motionBindings[motionBinding{MouseButtonRight, 0}] = input.ActionTranslate
	a.motionBindings[motionBinding{MouseButtonMiddle, 0}] = input.ActionZoom
	a.wheelBindings[0] = input.ActionZoom
	a.clickBindings[clickBinding{MouseButtonLeft, 0, 2}] = input.ActionAlignFrame
	a.clickBindings[clickBinding{MouseButtonRight, 0, 2}] = input.ActionCenterFrame
	a.clickBindings[clickBinding{MouseButtonMiddle, 0, 2}] = input.ActionZoomOnPixel

	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *agentImpl) AddGrabber(g Grabber) {
	if g == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.grabbers {
		if existing == g {
			return
		}
	}
	a.grabbers = append(a.grabbers, g)
}

func (a *agentImpl) RemoveGrabber(g Grabber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, existing := range a.grabbers {
		if existing == g {
			a.grabbers = append(a.grabbers[:i], a.grabbers[i+1:]...)
			break
		}
	}
	if a.tracked == g {
		a.tracked = nil
	}
	if a.fallback == g {
		a.fallback = nil
	}
}

func (a *agentImpl) TrackedGrabber() Grabber {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tracked
}

func (a *agentImpl) DefaultGrabber() Grabber {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fallback
}

func (a *agentImpl) SetDefaultGrabber(g Grabber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fallback = g
}

func (a *agentImpl) InputGrabber() Grabber {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.tracked != nil {
		return a.tracked
	}
	return a.fallback
}

func (a *agentImpl) UpdateTrackedGrabber(x, y float32) {
	a.mu.Lock()
	pool := make([]Grabber, len(a.grabbers))
	copy(pool, a.grabbers)
	a.mu.Unlock()

	var tracked Grabber
	for _, g := range pool {
		if g.CheckIfGrabsInput(x, y) {
			tracked = g
			break
		}
	}

	a.mu.Lock()
	a.tracked = tracked
	a.mu.Unlock()
}

func (a *agentImpl) BindMotion(button, mods int, act input.Action) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := motionBinding{button, mods}
	if act == input.ActionNone {
		delete(a.motionBindings, key)
		return
	}
	a.motionBindings[key] = act
}

func (a *agentImpl) BindWheel(mods int, act input.Action) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if act == input.ActionNone {
		delete(a.wheelBindings, mods)
		return
	}
	a.wheelBindings[mods] = act
}

func (a *agentImpl) BindClick(button, mods, count int, act input.Action) {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := clickBinding{button, mods, count}
	if act == input.ActionNone {
		delete(a.clickBindings, key)
		return
	}
	a.clickBindings[key] = act
}

func (a *agentImpl) HandleButtonPress(button, mods int, x, y float32) {
	a.UpdateTrackedGrabber(x, y)

	now := time.Now()
	a.mu.Lock()
	count := 1
	if a.lastClickButton == button && now.Sub(a.lastClickAt) <= doubleClickWindow {
		count = 2
		a.lastClickButton = -1
	} else {
		a.lastClickButton = button
		a.lastClickAt = now
	}
	clickAct, hasClick := a.clickBindings[clickBinding{button, mods, count}]
	a.pressedButton = button
	a.pressedMods = mods
	a.lastX, a.lastY = x, y
	a.lastSample = now
	a.mu.Unlock()

	if hasClick {
		a.dispatch(input.ClickEvent{X: x, Y: y, Button: button, Count: count, Action: clickAct})
	}
}

func (a *agentImpl) HandleButtonRelease(button, mods int, x, y float32) {
	a.mu.Lock()
	if a.pressedButton == button {
		a.pressedButton = -1
	}
	a.mu.Unlock()

	// A finished drag must not leak its axis latch into the next one.
	if g := a.InputGrabber(); g != nil {
		if f, ok := g.(interactive_frame.InteractiveFrame); ok {
			f.ResetGestureDirection()
		}
	}
}

func (a *agentImpl) HandleCursorMove(x, y float32) {
	a.mu.Lock()
	button := a.pressedButton
	mods := a.pressedMods
	prevX, prevY := a.lastX, a.lastY
	prevSample := a.lastSample
	a.lastX, a.lastY = x, y
	a.mu.Unlock()

	if button < 0 {
		a.UpdateTrackedGrabber(x, y)
		return
	}

	a.mu.Lock()
	act, bound := a.motionBindings[motionBinding{button, mods}]
	now := time.Now()
	a.lastSample = now
	a.mu.Unlock()
	if !bound {
		return
	}

	dx, dy := x-prevX, y-prevY
	delay := now.Sub(prevSample)
	speed := float32(0)
	if ms := float32(delay.Milliseconds()); ms > 0 {
		speed = distance(dx, dy) / ms
	}

	// Both cursor samples travel on the event: the trackball and planar
	// sweep gestures need positions around the pivot, not just the delta.
	a.dispatch(input.MotionEvent{
		DOF:    2,
		Values: [6]float32{x, y},
		Prev:   [6]float32{prevX, prevY},
		Speed:  speed,
		Delay:  delay,
		Action: act,
	})
}

func (a *agentImpl) HandleScroll(mods int, amount float32) {
	a.mu.Lock()
	act, bound := a.wheelBindings[mods]
	a.mu.Unlock()
	if !bound {
		return
	}
	a.dispatch(input.MotionEvent{
		DOF:       1,
		Values:    [6]float32{amount},
		Action:    act,
		FromWheel: true,
	})
}

func (a *agentImpl) HandleKey(key, mods int, pressed bool) {
	a.dispatch(input.KeyEvent{Key: key, Modifiers: mods, Pressed: pressed})
}

func (a *agentImpl) dispatch(e input.Event) {
	if g := a.InputGrabber(); g != nil {
		g.PerformInteraction(e)
	}
}

func distance(dx, dy float32) float32 {
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
