// package input defines the device-independent event model consumed by the
// interaction engine: motion events tagged with their degrees of freedom,
// click events, key events, and the semantic actions they can be bound to.
package input

// Action is a semantic interaction bound to an input gesture. Motion
// actions declare how many degrees of freedom they consume; click actions
// consume none.
type Action int

const (
	// ActionNone is the zero Action; events bound to it are ignored.
	ActionNone Action = iota

	// 1-DOF motion actions
	ActionTranslateX
	ActionTranslateY
	ActionTranslateZ
	ActionRotateX
	ActionRotateY
	ActionRotateZ
	ActionScale
	ActionZoom
	ActionRoll

	// 2-DOF motion actions
	ActionTranslate
	ActionRotate
	ActionDrive
	ActionMoveForward
	ActionMoveBackward
	ActionLookAround
	ActionScreenRotate
	ActionScreenTranslate

	// 3-DOF motion actions
	ActionTranslateXYZ
	ActionRotateXYZ

	// 6-DOF motion actions
	ActionTranslateRotateXYZ

	// Click actions
	ActionCenterFrame
	ActionAlignFrame
	ActionZoomOnPixel
	ActionAnchorFromPixel
	ActionCustomClick
)

var actionNames = map[Action]string{
	ActionNone:               "none",
	ActionTranslateX:         "translate-x",
	ActionTranslateY:         "translate-y",
	ActionTranslateZ:         "translate-z",
	ActionRotateX:            "rotate-x",
	ActionRotateY:            "rotate-y",
	ActionRotateZ:            "rotate-z",
	ActionScale:              "scale",
	ActionZoom:               "zoom",
	ActionRoll:               "roll",
	ActionTranslate:          "translate",
	ActionRotate:             "rotate",
	ActionDrive:              "drive",
	ActionMoveForward:        "move-forward",
	ActionMoveBackward:       "move-backward",
	ActionLookAround:         "look-around",
	ActionScreenRotate:       "screen-rotate",
	ActionScreenTranslate:    "screen-translate",
	ActionTranslateXYZ:       "translate-xyz",
	ActionRotateXYZ:          "rotate-xyz",
	ActionTranslateRotateXYZ: "translate-rotate-xyz",
	ActionCenterFrame:        "center-frame",
	ActionAlignFrame:         "align-frame",
	ActionZoomOnPixel:        "zoom-on-pixel",
	ActionAnchorFromPixel:    "anchor-from-pixel",
	ActionCustomClick:        "custom-click",
}

// String returns a short lowercase name for logging.
func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// DOF returns how many degrees of freedom the action consumes. Click
// actions and ActionNone return 0.
//
// Returns:
//   - int: the required degrees of freedom (0, 1, 2, 3 or 6)
func (a Action) DOF() int {
	switch a {
	case ActionTranslateX, ActionTranslateY, ActionTranslateZ,
		ActionRotateX, ActionRotateY, ActionRotateZ,
		ActionScale, ActionZoom, ActionRoll:
		return 1
	case ActionTranslate, ActionRotate, ActionDrive,
		ActionMoveForward, ActionMoveBackward, ActionLookAround,
		ActionScreenRotate, ActionScreenTranslate:
		return 2
	case ActionTranslateXYZ, ActionRotateXYZ:
		return 3
	case ActionTranslateRotateXYZ:
		return 6
	default:
		return 0
	}
}

// Rotational reports whether the action is explicitly rotational, which
// changes how its events reduce: the last axis survives a reduction to a
// single degree of freedom instead of the first.
//
// Returns:
//   - bool: true for roll and drive
func (a Action) Rotational() bool {
	return a == ActionRoll || a == ActionDrive
}

// IsClick reports whether the action is triggered by a click rather than
// by motion.
//
// Returns:
//   - bool: true for click actions
func (a Action) IsClick() bool {
	switch a {
	case ActionCenterFrame, ActionAlignFrame, ActionZoomOnPixel,
		ActionAnchorFromPixel, ActionCustomClick:
		return true
	default:
		return false
	}
}

// Supports2D reports whether the action is meaningful in a 2D scene.
// Depth-dependent actions (per-axis 3D rotation, z translation, fly modes)
// are 3D only.
//
// Returns:
//   - bool: true if a 2D driver implements the action
func (a Action) Supports2D() bool {
	switch a {
	case ActionTranslateX, ActionTranslateY, ActionRotateZ,
		ActionScale, ActionZoom, ActionRoll,
		ActionTranslate, ActionRotate,
		ActionScreenRotate, ActionScreenTranslate,
		ActionCenterFrame, ActionAlignFrame, ActionZoomOnPixel,
		ActionAnchorFromPixel, ActionCustomClick:
		return true
	default:
		return false
	}
}
