// package eye implements the viewer abstraction: a Camera in 3D scenes and
// a Window in 2D ones. Both steer an eye-role interactive frame, compute
// view and projection matrices on demand, project and unproject points
// against the cached matrices, classify visibility against the boundary
// planes, and own the keyframe paths the viewer can record and replay.
package eye

import (
	"log"
	"math"
	"sync"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/frame"
	"github.com/avery-hale/navscene-go/engine/interactive_frame"
	"github.com/avery-hale/navscene-go/engine/interpolator"
	"github.com/avery-hale/navscene-go/engine/timing"
)

// Visibility classifies a bounded shape against the boundary planes.
type Visibility int

const (
	// Visible means entirely inside the viewing volume.
	Visible Visibility = iota
	// SemiVisible means straddling at least one boundary plane.
	SemiVisible
	// Invisible means entirely outside the viewing volume.
	Invisible
)

func (v Visibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case SemiVisible:
		return "semi-visible"
	case Invisible:
		return "invisible"
	}
	return "unknown"
}

// interpolateToFitDuration is the scratch animation length in path seconds.
const interpolateToFitDuration = 1.0

// Eye is the API shared by Camera and Window: pose, scene bookkeeping,
// explicit matrix computation, projection queries, visibility
// classification and keyframe paths. The cached matrices are only updated
// by ComputeView and ComputeProjection; queries never recompute them
// silently.
type Eye interface {
	// Frame returns the eye-role interactive frame the viewer navigates
	// with.
	Frame() interactive_frame.InteractiveFrame

	// Position returns the eye's world position.
	Position() common.Vec3

	// SetPosition moves the eye to a world position.
	SetPosition(p common.Vec3)

	// Orientation returns the eye frame's world orientation.
	Orientation() common.Rotation

	// SetOrientation sets the eye's world orientation and refreshes the
	// frame's fly up vector.
	SetOrientation(o common.Rotation)

	// ViewDirection returns the normalized world direction the eye looks
	// along.
	ViewDirection() common.Vec3

	// SetViewDirection re-orients the eye to look along dir, preserving
	// roll as far as possible. A zero direction is ignored.
	SetViewDirection(dir common.Vec3)

	// UpVector returns the world direction of the eye's screen-up axis.
	UpVector() common.Vec3

	// SetUpVector re-orients the eye so its screen-up axis matches up.
	// A zero vector is ignored.
	SetUpVector(up common.Vec3)

	// RightVector returns the world direction of the eye's screen-right
	// axis.
	RightVector() common.Vec3

	// LookAt re-orients the eye so target lands on the screen center.
	LookAt(target common.Vec3)

	// SceneRadius returns the radius of the scene sphere the eye is
	// configured for, in scene units.
	SceneRadius() float32

	// SetSceneRadius reconfigures the scene sphere. Non-positive radii
	// are a configuration error: the call logs and leaves state untouched.
	// The frame's fly speed is re-derived as 1% of the radius.
	SetSceneRadius(radius float32)

	// SceneCenter returns the center of the scene sphere.
	SceneCenter() common.Vec3

	// SetSceneCenter moves the scene sphere and re-targets the anchor at
	// its center.
	SetSceneCenter(center common.Vec3)

	// Anchor returns the world point eye rotations pivot around.
	Anchor() common.Vec3

	// SetAnchor re-targets the rotation pivot.
	SetAnchor(anchor common.Vec3)

	// AnchorFromPixel re-targets the anchor at the scene point under a
	// pixel.
	//
	// Parameters:
	//   - x, y: the pixel, origin top-left
	//
	// Returns:
	//   - bool: false when no scene point projects there
	AnchorFromPixel(x, y float32) bool

	// PointUnderPixel returns the scene point under a pixel, found by
	// unprojecting at the anchor's current depth.
	//
	// Parameters:
	//   - x, y: the pixel, origin top-left
	//
	// Returns:
	//   - common.Vec3: the scene point
	//   - bool: false when the cached matrices cannot be inverted
	PointUnderPixel(x, y float32) (common.Vec3, bool)

	// ScreenWidth returns the viewport width in pixels.
	ScreenWidth() int

	// ScreenHeight returns the viewport height in pixels.
	ScreenHeight() int

	// SetScreenWidthAndHeight resizes the viewport. Dimensions clamp to
	// at least 1 pixel.
	SetScreenWidthAndHeight(width, height int)

	// AspectRatio returns width over height.
	AspectRatio() float32

	// ComputeView recomputes the cached view matrix from the eye frame's
	// current world pose.
	ComputeView()

	// ComputeProjection recomputes the cached projection matrix from the
	// current viewport, clipping and scene settings.
	ComputeProjection()

	// View copies the cached view matrix into out (16 elements,
	// column-major).
	View(out []float32)

	// Projection copies the cached projection matrix into out (16
	// elements, column-major).
	Projection(out []float32)

	// Project maps a world point to screen coordinates (origin top-left,
	// Z carrying normalized depth in [0, 1]) through the cached matrices.
	//
	// Parameters:
	//   - p: the world point
	//
	// Returns:
	//   - common.Vec3: the screen coordinates
	//   - bool: false when the homogeneous W term is exactly zero
	Project(p common.Vec3) (common.Vec3, bool)

	// Unproject maps screen coordinates (as produced by Project) back to
	// a world point through the cached matrices.
	//
	// Parameters:
	//   - p: the screen coordinates, Z in [0, 1]
	//
	// Returns:
	//   - common.Vec3: the world point
	//   - bool: false when the combined matrix is singular
	Unproject(p common.Vec3) (common.Vec3, bool)

	// EnableBoundaryEquations toggles automatic refresh of the boundary
	// plane cache on visibility queries. Disabled by default; disabled
	// queries use (and warn about) possibly stale planes.
	EnableBoundaryEquations(enable bool)

	// BoundaryEquationsEnabled reports whether visibility queries refresh
	// the plane cache.
	BoundaryEquationsEnabled() bool

	// ComputeBoundaryEquations refreshes the boundary plane cache if the
	// eye changed since it was last computed.
	ComputeBoundaryEquations()

	// BoundaryEquations returns the cached boundary planes: 6 for a
	// Camera, 4 (left, right, bottom, top) for a Window. Normals point
	// outward, so a point p is inside when SignedDistance(p) < 0 for
	// every plane.
	//
	// Returns:
	//   - []common.Plane: the boundary planes
	BoundaryEquations() []common.Plane

	// DistanceToBoundary returns the signed distance from a world point
	// to boundary plane i, negative inside.
	//
	// Parameters:
	//   - i: the plane index
	//   - p: the world point
	//
	// Returns:
	//   - float32: the signed distance, 0 if i is out of range
	DistanceToBoundary(i int, p common.Vec3) float32

	// PointIsVisible reports whether a world point lies inside all
	// boundary planes.
	PointIsVisible(p common.Vec3) bool

	// BallVisibility classifies a sphere against the boundary planes. A
	// ball centered exactly on a plane is SemiVisible.
	//
	// Parameters:
	//   - center: the sphere center in world coordinates
	//   - radius: the sphere radius
	//
	// Returns:
	//   - Visibility: the classification
	BallVisibility(center common.Vec3, radius float32) Visibility

	// BoxVisibility classifies an axis-aligned box against the boundary
	// planes.
	//
	// Parameters:
	//   - min, max: opposite corners of the box in world coordinates
	//
	// Returns:
	//   - Visibility: the classification
	BoxVisibility(min, max common.Vec3) Visibility

	// FitBall moves the eye so a sphere fills the view, keeping the
	// current orientation.
	//
	// Parameters:
	//   - center: the sphere center in world coordinates
	//   - radius: the sphere radius
	FitBall(center common.Vec3, radius float32)

	// FitBoundingBox fits the sphere around an axis-aligned box, sized by
	// the box's largest extent.
	//
	// Parameters:
	//   - min, max: the box corners in world coordinates
	FitBoundingBox(min, max common.Vec3)

	// ShowEntireScene fits the configured scene sphere in the view.
	ShowEntireScene()

	// CenterScene animates the eye laterally so the scene center lands on
	// the screen center.
	CenterScene()

	// InterpolateTo animates the eye to the pose of a target frame over
	// the given duration, using the scratch interpolator. Any playing
	// path stops first.
	//
	// Parameters:
	//   - target: the frame whose world pose to fly to
	//   - duration: the flight time in path seconds
	InterpolateTo(target frame.Frame, duration float32)

	// InterpolateToFitScene animates the eye to a pose fitting the whole
	// scene sphere.
	InterpolateToFitScene()

	// InterpolateToZoomOnPixel animates the eye most of the way towards
	// the scene point under a pixel. A no-op when the point cannot be
	// resolved.
	//
	// Parameters:
	//   - x, y: the pixel, origin top-left
	InterpolateToZoomOnPixel(x, y float32)

	// AddKeyFrameToPath snapshots the eye's current pose onto path id,
	// creating the path on first use.
	//
	// Parameters:
	//   - id: the path identifier
	AddKeyFrameToPath(id int)

	// PlayPath toggles playback of path id: a playing path stops, a
	// stopped one starts after stopping every other interpolation on this
	// eye. Unknown ids log and do nothing.
	//
	// Parameters:
	//   - id: the path identifier
	PlayPath(id int)

	// DeletePath stops path id if playing, discards its keyframes and
	// removes it. Unknown ids are a no-op.
	//
	// Parameters:
	//   - id: the path identifier
	DeletePath(id int)

	// ResetPath stops path id if playing; otherwise rewinds it to its
	// first keyframe and applies that pose.
	//
	// Parameters:
	//   - id: the path identifier
	ResetPath(id int)

	// AnyInterpolationStarted reports whether any path or the scratch
	// interpolator is currently playing.
	AnyInterpolationStarted() bool

	// Path returns the interpolator behind path id.
	//
	// Parameters:
	//   - id: the path identifier
	//
	// Returns:
	//   - interpolator.KeyFrameInterpolator: the path, nil if unknown
	Path(id int) interpolator.KeyFrameInterpolator

	// LastUpdate returns the modification tick of the eye: the max of its
	// frame's tick and its own non-frame changes (viewport, radius,
	// center, anchor).
	LastUpdate() uint64

	// Release cancels the eye's tasks: the frame's inertia tasks, the
	// scratch interpolator and every path.
	Release()
}

// projector is the per-variant half of the eye: projection setup, boundary
// extents and fitting.
type projector interface {
	computeProjection(out []float32)
	boundaryWidthHeight() (halfW, halfH float32)
	orthographic() bool
	fieldOfView() float32
	planeCount() int
	// fitPose returns the pose that fits a sphere in the view while
	// keeping the current orientation.
	fitPose(center common.Vec3, radius float32) (pos common.Vec3, mag common.Vec3, magValid bool)
}

type eyeBase struct {
	mu   *sync.Mutex
	self projector

	iframe    interactive_frame.InteractiveFrame
	scheduler timing.Scheduler

	sceneCenter common.Vec3
	sceneRadius float32
	anchor      common.Vec3

	screenW, screenH int

	viewMat [16]float32
	projMat [16]float32

	boundary        []common.Plane
	boundaryTick    uint64
	boundaryEnabled bool

	// nonFrameTick stamps eye mutations that do not go through the frame.
	nonFrameTick uint64

	paths   map[int]interpolator.KeyFrameInterpolator
	scratch interpolator.KeyFrameInterpolator
}

func newEyeBase(ctx interactive_frame.Context, self projector) *eyeBase {
	e := &eyeBase{
		mu:          &sync.Mutex{},
		self:        self,
		iframe:      interactive_frame.NewInteractiveFrame(ctx, interactive_frame.WithEyeRole()),
		scheduler:   ctx.Scheduler(),
		sceneRadius: 100,
		screenW:     maxInt(1, ctx.Width()),
		screenH:     maxInt(1, ctx.Height()),
		paths:       make(map[int]interpolator.KeyFrameInterpolator),
	}
	common.Identity(e.viewMat[:])
	common.Identity(e.projMat[:])
	e.scratch = interpolator.NewKeyFrameInterpolator(e.scheduler, e.iframe)
	e.iframe.SetFlySpeed(0.01 * e.sceneRadius)
	return e
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (e *eyeBase) modified() {
	e.nonFrameTick = frame.Tick()
}

func (e *eyeBase) Frame() interactive_frame.InteractiveFrame {
	return e.iframe
}

func (e *eyeBase) Position() common.Vec3 {
	return e.iframe.Position()
}

func (e *eyeBase) SetPosition(p common.Vec3) {
	e.iframe.SetPosition(p)
}

func (e *eyeBase) Orientation() common.Rotation {
	return e.iframe.Orientation()
}

func (e *eyeBase) SetOrientation(o common.Rotation) {
	e.iframe.SetOrientation(o)
	e.iframe.UpdateFlyUpVector()
}

func (e *eyeBase) ViewDirection() common.Vec3 {
	if e.self.planeCount() == 4 {
		return common.Vec3{Z: -1}
	}
	return e.Orientation().Rotate(common.Vec3{Z: -1})
}

func (e *eyeBase) SetViewDirection(dir common.Vec3) {
	if dir.IsZero() || e.self.planeCount() == 4 {
		return
	}
	cur := e.ViewDirection()
	dir = dir.Normalized()
	axis := cur.Cross(dir)
	if axis.IsZero() {
		if cur.Dot(dir) > 0 {
			return
		}
		axis = cur.OrthogonalVec()
	}
	angle := common.Asin(axis.Norm())
	if cur.Dot(dir) < 0 {
		angle = float32(math.Pi) - angle
	}
	delta := common.QuatFromAxisAngle(axis, angle)
	e.SetOrientation(delta.Compose(e.Orientation()).Normalized())
}

func (e *eyeBase) UpVector() common.Vec3 {
	return e.Orientation().Rotate(common.Vec3{Y: 1})
}

func (e *eyeBase) SetUpVector(up common.Vec3) {
	if up.IsZero() {
		return
	}
	cur := e.UpVector()
	up = up.Normalized()
	axis := cur.Cross(up)
	if axis.IsZero() {
		return
	}
	angle := common.Asin(axis.Norm())
	if cur.Dot(up) < 0 {
		angle = float32(math.Pi) - angle
	}
	delta := common.QuatFromAxisAngle(axis, angle)
	e.SetOrientation(delta.Compose(e.Orientation()).Normalized())
}

func (e *eyeBase) RightVector() common.Vec3 {
	return e.Orientation().Rotate(common.Vec3{X: 1})
}

func (e *eyeBase) LookAt(target common.Vec3) {
	if e.self.planeCount() == 4 {
		pos := e.Position()
		e.SetPosition(common.Vec3{X: target.X, Y: target.Y, Z: pos.Z})
		return
	}
	e.SetViewDirection(target.Sub(e.Position()))
}

func (e *eyeBase) SceneRadius() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sceneRadius
}

func (e *eyeBase) SetSceneRadius(radius float32) {
	if radius <= 0 {
		log.Printf("eye: scene radius must be positive, got %v", radius)
		return
	}
	e.mu.Lock()
	e.sceneRadius = radius
	e.modified()
	e.mu.Unlock()
	e.iframe.SetFlySpeed(0.01 * radius)
}

func (e *eyeBase) SceneCenter() common.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sceneCenter
}

func (e *eyeBase) SetSceneCenter(center common.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sceneCenter = center
	e.anchor = center
	e.modified()
}

func (e *eyeBase) Anchor() common.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.anchor
}

func (e *eyeBase) SetAnchor(anchor common.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.anchor = anchor
	e.modified()
}

func (e *eyeBase) AnchorFromPixel(x, y float32) bool {
	p, ok := e.PointUnderPixel(x, y)
	if !ok {
		return false
	}
	e.SetAnchor(p)
	return true
}

func (e *eyeBase) PointUnderPixel(x, y float32) (common.Vec3, bool) {
	depth := float32(0.5)
	if proj, ok := e.Project(e.Anchor()); ok {
		depth = proj.Z
	}
	return e.Unproject(common.Vec3{X: x, Y: y, Z: depth})
}

func (e *eyeBase) ScreenWidth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.screenW
}

func (e *eyeBase) ScreenHeight() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.screenH
}

func (e *eyeBase) SetScreenWidthAndHeight(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.screenW = maxInt(1, width)
	e.screenH = maxInt(1, height)
	e.modified()
}

func (e *eyeBase) AspectRatio() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return float32(e.screenW) / float32(e.screenH)
}

func (e *eyeBase) ComputeView() {
	q := e.Orientation()
	pos := e.Position()

	var m [16]float32
	switch rot := q.(type) {
	case common.Quat:
		m = rot.InverseQuat().Matrix()
	default:
		common.Identity(m[:])
		c := float32(math.Cos(float64(-rot.Angle())))
		s := float32(math.Sin(float64(-rot.Angle())))
		m[0], m[1] = c, s
		m[4], m[5] = -s, c
	}
	t := q.InverseRotate(pos.Negate())
	m[12], m[13], m[14] = t.X, t.Y, t.Z

	e.mu.Lock()
	e.viewMat = m
	e.mu.Unlock()
}

func (e *eyeBase) ComputeProjection() {
	var m [16]float32
	e.self.computeProjection(m[:])
	e.mu.Lock()
	e.projMat = m
	e.mu.Unlock()
}

func (e *eyeBase) View(out []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	copy(out, e.viewMat[:])
}

func (e *eyeBase) Projection(out []float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	copy(out, e.projMat[:])
}

func (e *eyeBase) Project(p common.Vec3) (common.Vec3, bool) {
	e.mu.Lock()
	view, proj := e.viewMat, e.projMat
	w, h := float32(e.screenW), float32(e.screenH)
	e.mu.Unlock()

	x, y, z, wc := common.MulVec4(view[:], p.X, p.Y, p.Z, 1)
	x, y, z, wc = common.MulVec4(proj[:], x, y, z, wc)
	if wc == 0 {
		return common.Vec3{}, false
	}

	// Viewport mapping with the Y axis flipped: screen origin top-left.
	sx := (x/wc + 1) / 2 * w
	sy := h - (y/wc+1)/2*h
	sz := (z/wc + 1) / 2
	return common.Vec3{X: sx, Y: sy, Z: sz}, true
}

func (e *eyeBase) Unproject(p common.Vec3) (common.Vec3, bool) {
	e.mu.Lock()
	view, proj := e.viewMat, e.projMat
	w, h := float32(e.screenW), float32(e.screenH)
	e.mu.Unlock()

	var pv, inv [16]float32
	common.Mul4(pv[:], proj[:], view[:])
	if !common.Invert4(inv[:], pv[:]) {
		return common.Vec3{}, false
	}

	nx := 2*p.X/w - 1
	ny := 2*(h-p.Y)/h - 1
	nz := 2*p.Z - 1
	x, y, z, wc := common.MulVec4(inv[:], nx, ny, nz, 1)
	if wc == 0 {
		return common.Vec3{}, false
	}
	return common.Vec3{X: x / wc, Y: y / wc, Z: z / wc}, true
}

func (e *eyeBase) EnableBoundaryEquations(enable bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.boundaryEnabled = enable
}

func (e *eyeBase) BoundaryEquationsEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boundaryEnabled
}

func (e *eyeBase) ComputeBoundaryEquations() {
	tick := e.LastUpdate()

	e.mu.Lock()
	if e.boundary != nil && e.boundaryTick == tick {
		e.mu.Unlock()
		return
	}
	view, proj := e.viewMat, e.projMat
	count := e.self.planeCount()
	e.mu.Unlock()

	var pv [16]float32
	common.Mul4(pv[:], proj[:], view[:])
	var planes []common.Plane
	if count == 4 {
		planes = common.ExtractLateralPlanes(pv[:]).Planes
	} else {
		planes = common.ExtractFrustumFromMatrix(pv[:]).Planes
	}

	e.mu.Lock()
	e.boundary = planes
	e.boundaryTick = tick
	e.mu.Unlock()
}

func (e *eyeBase) BoundaryEquations() []common.Plane {
	e.mu.Lock()
	enabled := e.boundaryEnabled
	stale := e.boundary
	e.mu.Unlock()

	if !enabled {
		if stale == nil {
			e.ComputeBoundaryEquations()
		} else {
			log.Printf("eye: boundary equations not auto-updated, returning possibly stale planes; call EnableBoundaryEquations(true)")
			return stale
		}
	} else {
		e.ComputeBoundaryEquations()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boundary
}

func (e *eyeBase) DistanceToBoundary(i int, p common.Vec3) float32 {
	planes := e.BoundaryEquations()
	if i < 0 || i >= len(planes) {
		return 0
	}
	return planes[i].SignedDistance(p)
}

func (e *eyeBase) PointIsVisible(p common.Vec3) bool {
	for _, plane := range e.BoundaryEquations() {
		if plane.SignedDistance(p) > 0 {
			return false
		}
	}
	return true
}

func (e *eyeBase) BallVisibility(center common.Vec3, radius float32) Visibility {
	semi := false
	for _, plane := range e.BoundaryEquations() {
		d := plane.SignedDistance(center)
		if d > radius {
			return Invisible
		}
		if d > -radius {
			semi = true
		}
	}
	if semi {
		return SemiVisible
	}
	return Visible
}

func (e *eyeBase) BoxVisibility(min, max common.Vec3) Visibility {
	semi := false
	for _, plane := range e.BoundaryEquations() {
		outside := 0
		for c := 0; c < 8; c++ {
			corner := common.Vec3{X: min.X, Y: min.Y, Z: min.Z}
			if c&1 != 0 {
				corner.X = max.X
			}
			if c&2 != 0 {
				corner.Y = max.Y
			}
			if c&4 != 0 {
				corner.Z = max.Z
			}
			if plane.SignedDistance(corner) > 0 {
				outside++
			}
		}
		if outside == 8 {
			return Invisible
		}
		if outside > 0 {
			semi = true
		}
	}
	if semi {
		return SemiVisible
	}
	return Visible
}

func (e *eyeBase) FitBall(center common.Vec3, radius float32) {
	pos, mag, magValid := e.self.fitPose(center, radius)
	e.SetPosition(pos)
	if magValid {
		e.iframe.SetMagnitude(mag)
	}
}

func (e *eyeBase) FitBoundingBox(min, max common.Vec3) {
	diameter := common.Abs(max.X - min.X)
	if d := common.Abs(max.Y - min.Y); d > diameter {
		diameter = d
	}
	if d := common.Abs(max.Z - min.Z); d > diameter {
		diameter = d
	}
	center := min.Add(max).Scale(0.5)
	e.FitBall(center, 0.5*diameter)
}

func (e *eyeBase) ShowEntireScene() {
	e.FitBall(e.SceneCenter(), e.SceneRadius())
}

func (e *eyeBase) CenterScene() {
	pos := e.Position()
	dir := e.ViewDirection()
	offset := e.SceneCenter().Sub(pos)
	lateral := offset.Sub(offset.ProjectOnAxis(dir))

	target := frame.NewFrame()
	target.SetPosition(pos.Add(lateral))
	target.SetRotation(e.Orientation())
	target.SetMagnitude(e.iframe.Magnitude())
	e.InterpolateTo(target, interpolateToFitDuration)
}

func (e *eyeBase) InterpolateTo(target frame.Frame, duration float32) {
	if target == nil || duration <= 0 {
		return
	}
	e.stopAllInterpolations()
	e.scratch.ClearPath()
	e.scratch.SetInterpolationTime(0)
	e.scratch.AddKeyFrameAt(e.iframe, 0)
	e.scratch.AddKeyFrameAt(target, duration)
	e.scratch.StartInterpolation()
}

func (e *eyeBase) InterpolateToFitScene() {
	pos, mag, magValid := e.self.fitPose(e.SceneCenter(), e.SceneRadius())
	target := frame.NewFrame()
	target.SetPosition(pos)
	target.SetRotation(e.Orientation())
	if magValid {
		target.SetMagnitude(mag)
	} else {
		target.SetMagnitude(e.iframe.Magnitude())
	}
	e.InterpolateTo(target, interpolateToFitDuration)
}

func (e *eyeBase) InterpolateToZoomOnPixel(x, y float32) {
	p, ok := e.PointUnderPixel(x, y)
	if !ok {
		return
	}
	pos := e.Position()

	mid := frame.NewFrame()
	mid.SetPosition(pos.Scale(0.3).Add(p.Scale(0.7)))
	mid.SetRotation(e.Orientation())
	mid.SetMagnitude(e.iframe.Magnitude())

	end := frame.NewFrame()
	end.SetPosition(pos.Scale(0.1).Add(p.Scale(0.9)))
	end.SetRotation(e.Orientation())
	end.SetMagnitude(e.iframe.Magnitude())

	e.stopAllInterpolations()
	e.scratch.ClearPath()
	e.scratch.SetInterpolationTime(0)
	e.scratch.AddKeyFrameAt(e.iframe, 0)
	e.scratch.AddKeyFrameAt(mid, 0.4)
	e.scratch.AddKeyFrameAt(end, 1.0)
	e.scratch.StartInterpolation()
}

// stopAllInterpolations halts every path and the scratch animation, so at
// most one clock ever drives the eye frame.
func (e *eyeBase) stopAllInterpolations() {
	e.mu.Lock()
	paths := make([]interpolator.KeyFrameInterpolator, 0, len(e.paths)+1)
	for _, kfi := range e.paths {
		paths = append(paths, kfi)
	}
	e.mu.Unlock()

	for _, kfi := range paths {
		if kfi.IsInterpolationStarted() {
			kfi.StopInterpolation()
		}
	}
	if e.scratch.IsInterpolationStarted() {
		e.scratch.StopInterpolation()
	}
}

func (e *eyeBase) AddKeyFrameToPath(id int) {
	e.mu.Lock()
	kfi, ok := e.paths[id]
	if !ok {
		kfi = interpolator.NewKeyFrameInterpolator(e.scheduler, e.iframe)
		e.paths[id] = kfi
	}
	e.mu.Unlock()
	kfi.AddKeyFrame(e.iframe)
}

func (e *eyeBase) PlayPath(id int) {
	e.mu.Lock()
	kfi, ok := e.paths[id]
	e.mu.Unlock()
	if !ok {
		log.Printf("eye: no path with id %d", id)
		return
	}
	if kfi.IsInterpolationStarted() {
		kfi.StopInterpolation()
		return
	}
	e.stopAllInterpolations()
	kfi.StartInterpolation()
}

func (e *eyeBase) DeletePath(id int) {
	e.mu.Lock()
	kfi, ok := e.paths[id]
	if ok {
		delete(e.paths, id)
	}
	e.mu.Unlock()
	if !ok {
		return
	}
	kfi.ClearPath()
	kfi.Release()
}

func (e *eyeBase) ResetPath(id int) {
	e.mu.Lock()
	kfi, ok := e.paths[id]
	e.mu.Unlock()
	if !ok {
		return
	}
	if kfi.IsInterpolationStarted() {
		kfi.StopInterpolation()
		return
	}
	kfi.ResetInterpolation()
}

func (e *eyeBase) AnyInterpolationStarted() bool {
	e.mu.Lock()
	paths := make([]interpolator.KeyFrameInterpolator, 0, len(e.paths))
	for _, kfi := range e.paths {
		paths = append(paths, kfi)
	}
	e.mu.Unlock()

	for _, kfi := range paths {
		if kfi.IsInterpolationStarted() {
			return true
		}
	}
	return e.scratch.IsInterpolationStarted()
}

func (e *eyeBase) Path(id int) interpolator.KeyFrameInterpolator {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paths[id]
}

func (e *eyeBase) LastUpdate() uint64 {
	frameTick := e.iframe.LastUpdate()
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.nonFrameTick > frameTick {
		return e.nonFrameTick
	}
	return frameTick
}

func (e *eyeBase) Release() {
	e.mu.Lock()
	paths := make([]interpolator.KeyFrameInterpolator, 0, len(e.paths))
	for id, kfi := range e.paths {
		paths = append(paths, kfi)
		delete(e.paths, id)
	}
	e.mu.Unlock()

	for _, kfi := range paths {
		kfi.Release()
	}
	e.scratch.Release()
	e.iframe.Release()
}

// View interface plumbing for the interaction drivers.

func (e *eyeBase) EyeFrame() frame.Frame {
	return e.iframe
}

func (e *eyeBase) Magnitude() common.Vec3 {
	return e.iframe.Magnitude()
}

func (e *eyeBase) CoordinatesOf(p common.Vec3) common.Vec3 {
	return e.iframe.CoordinatesOf(p)
}

func (e *eyeBase) ProjectedCoordinatesOf(p common.Vec3) common.Vec3 {
	proj, _ := e.Project(p)
	return proj
}

func (e *eyeBase) FieldOfView() float32 {
	return e.self.fieldOfView()
}

func (e *eyeBase) IsOrthographic() bool {
	return e.self.orthographic()
}

func (e *eyeBase) BoundaryWidthHeight() (float32, float32) {
	return e.self.boundaryWidthHeight()
}
