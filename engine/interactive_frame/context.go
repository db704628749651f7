package interactive_frame

import (
	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
	"github.com/avery-hale/navscene-go/engine/input"
	"github.com/avery-hale/navscene-go/engine/timing"
)

// View is the read-and-steer surface an eye exposes to the interaction
// drivers: enough projection state to turn screen deltas into scene deltas,
// plus the click conveniences that act on the eye itself.
type View interface {
	// EyeFrame returns the frame the eye is attached to.
	EyeFrame() frame.Frame

	// Position returns the eye's world position.
	Position() common.Vec3

	// ViewDirection returns the normalized world-space direction the eye
	// looks along.
	ViewDirection() common.Vec3

	// Orientation returns the eye frame's world orientation.
	Orientation() common.Rotation

	// Magnitude returns the eye frame's world scaling.
	Magnitude() common.Vec3

	// CoordinatesOf converts a world point to the eye frame's local space.
	CoordinatesOf(p common.Vec3) common.Vec3

	// ProjectedCoordinatesOf converts a world point to screen coordinates
	// using the eye's cached matrices. The Z component carries normalized
	// depth.
	ProjectedCoordinatesOf(p common.Vec3) common.Vec3

	// FieldOfView returns the vertical field of view in radians. 2D views
	// report 0.
	FieldOfView() float32

	// IsOrthographic reports whether the eye projects orthographically.
	// Always true for 2D views.
	IsOrthographic() bool

	// BoundaryWidthHeight returns the half-width and half-height of the
	// orthographic viewing box, in scene units.
	BoundaryWidthHeight() (float32, float32)

	// Anchor returns the world point eye rotations pivot around.
	Anchor() common.Vec3

	// CenterScene animates the eye so the scene center lands on the screen
	// center.
	CenterScene()

	// InterpolateToZoomOnPixel animates the eye towards the scene point
	// under the given pixel.
	//
	// Parameters:
	//   - x, y: the pixel, origin top-left
	InterpolateToZoomOnPixel(x, y float32)

	// AnchorFromPixel re-targets the rotation anchor at the scene point
	// under the given pixel.
	//
	// Parameters:
	//   - x, y: the pixel, origin top-left
	//
	// Returns:
	//   - bool: false when no scene point projects to that pixel
	AnchorFromPixel(x, y float32) bool
}

// Context is the scene surface an InteractiveFrame interacts through:
// dimensionality, handedness, viewport size, the active view, the shared
// task scheduler, and a sink for events the frame does not handle itself.
type Context interface {
	// Is3D reports whether the scene is three-dimensional.
	Is3D() bool

	// IsLeftHanded reports the screen-Y convention; left-handed scenes
	// flip the sign of vertical deltas.
	IsLeftHanded() bool

	// Width returns the viewport width in pixels.
	Width() int

	// Height returns the viewport height in pixels.
	Height() int

	// Radius returns the scene radius in scene units.
	Radius() float32

	// View returns the active eye's interaction surface.
	View() View

	// ForwardEvent hands the scene an event the frame chose not to
	// handle (key events, scene-level click actions).
	//
	// Parameters:
	//   - e: the forwarded event
	ForwardEvent(e input.Event)

	// Scheduler returns the cooperative scheduler inertia tasks register
	// with.
	Scheduler() timing.Scheduler
}
