package agent

import (
	"github.com/avery-hale/navscene-go/engine/input"
)

// AgentOption is a functional option for configuring an Agent at creation.
type AgentOption func(*agentImpl)

// WithDefaultGrabber sets the fallback event target, usually the eye's
// interactive frame.
//
// Parameters:
//   - g: the fallback grabber
//
// Returns:
//   - AgentOption: the configuration function
func WithDefaultGrabber(g Grabber) AgentOption {
	return func(a *agentImpl) {
		a.fallback = g
	}
}

// WithMotionBinding adds or replaces a drag binding.
//
// Parameters:
//   - button: the mouse button
//   - mods: the modifier mask that must be held
//   - act: the action the drag drives
//
// Returns:
//   - AgentOption: the configuration function
func WithMotionBinding(button, mods int, act input.Action) AgentOption {
	return func(a *agentImpl) {
		key := motionBinding{button, mods}
		if act == input.ActionNone {
			delete(a.motionBindings, key)
			return
		}
		a.motionBindings[key] = act
	}
}

// WithClickBinding adds or replaces a click binding.
//
// Parameters:
//   - button: the mouse button
//   - mods: the modifier mask that must be held
//   - count: the click multiplicity (1 or 2)
//   - act: the click action
//
// Returns:
//   - AgentOption: the configuration function
func WithClickBinding(button, mods, count int, act input.Action) AgentOption {
	return func(a *agentImpl) {
		key := clickBinding{button, mods, count}
		if act == input.ActionNone {
			delete(a.clickBindings, key)
			return
		}
		a.clickBindings[key] = act
	}
}

// WithWheelBinding adds or replaces a wheel binding.
//
// Parameters:
//   - mods: the modifier mask that must be held
//   - act: the action the wheel drives
//
// Returns:
//   - AgentOption: the configuration function
func WithWheelBinding(mods int, act input.Action) AgentOption {
	return func(a *agentImpl) {
		if act == input.ActionNone {
			delete(a.wheelBindings, mods)
			return
		}
		a.wheelBindings[mods] = act
	}
}
