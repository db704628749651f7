package eye

import (
	"math"

	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/interactive_frame"
)

// CameraType selects the 3D projection model.
type CameraType int

const (
	Perspective CameraType = iota
	Orthographic
)

func (t CameraType) String() string {
	if t == Orthographic {
		return "orthographic"
	}
	return "perspective"
}

const (
	defaultFieldOfView     = float32(math.Pi / 3)
	defaultZNearCoef       = float32(0.005)
	defaultZClippingCoef   = 1.7320508 // sqrt(3), scene sphere fits the clipping region
	minOrthoAnchorDistance = float32(0.2)
)

// Camera is the 3D eye. On top of the shared Eye surface it owns the
// projection type, the vertical field of view and the adaptive near/far
// clipping planes, which track the eye's distance to the scene center so
// the scene sphere always sits between them.
type Camera interface {
	Eye

	// Type returns the projection model.
	Type() CameraType

	// SetType switches the projection model. Takes effect on the next
	// ComputeProjection.
	SetType(t CameraType)

	// FieldOfView returns the vertical field of view in radians.
	FieldOfView() float32

	// SetFieldOfView sets the vertical field of view. Non-positive values
	// are ignored.
	SetFieldOfView(fov float32)

	// HorizontalFieldOfView returns the horizontal field of view derived
	// from the vertical one and the aspect ratio.
	HorizontalFieldOfView() float32

	// DistanceToSceneCenter returns the distance from the eye to the
	// plane through the scene center, orthogonal to the view direction.
	DistanceToSceneCenter() float32

	// ZNear returns the near clipping distance for the current pose. It
	// hugs the scene sphere and, for perspective projections, never drops
	// below ZNearCoefficient times ZClippingCoefficient times the scene
	// radius.
	ZNear() float32

	// ZFar returns the far clipping distance for the current pose.
	ZFar() float32

	// ZNearCoefficient returns the perspective near-plane floor
	// coefficient.
	ZNearCoefficient() float32

	// SetZNearCoefficient sets the perspective near-plane floor
	// coefficient.
	SetZNearCoefficient(coef float32)

	// ZClippingCoefficient returns the multiple of the scene radius the
	// clipping planes keep around the scene center.
	ZClippingCoefficient() float32

	// SetZClippingCoefficient sets the clipping margin around the scene
	// sphere.
	SetZClippingCoefficient(coef float32)
}

type cameraImpl struct {
	*eyeBase

	camType   CameraType
	fov       float32
	zNearCoef float32
	zClipCoef float32
}

var _ Camera = &cameraImpl{}
var _ interactive_frame.View = &cameraImpl{}

// NewCamera builds a perspective 3D eye wired to the scene context.
//
// Parameters:
//   - ctx: the scene the camera navigates
//   - opts: optional CameraOption configuration
//
// Returns:
//   - Camera: the new camera
func NewCamera(ctx interactive_frame.Context, opts ...CameraOption) Camera {
	c := &cameraImpl{
		camType:   Perspective,
		fov:       defaultFieldOfView,
		zNearCoef: defaultZNearCoef,
		zClipCoef: defaultZClippingCoef,
	}
	c.eyeBase = newEyeBase(ctx, c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Type() CameraType {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.camType
}

func (c *cameraImpl) SetType(t CameraType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.camType = t
	c.modified()
}

func (c *cameraImpl) FieldOfView() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) SetFieldOfView(fov float32) {
	if fov <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.modified()
}

func (c *cameraImpl) HorizontalFieldOfView() float32 {
	fov := c.FieldOfView()
	aspect := c.AspectRatio()
	return 2 * float32(math.Atan(math.Tan(float64(fov)/2)*float64(aspect)))
}

func (c *cameraImpl) DistanceToSceneCenter() float32 {
	return common.Abs(c.iframe.CoordinatesOf(c.SceneCenter()).Z)
}

func (c *cameraImpl) ZNear() float32 {
	c.mu.Lock()
	zClip, zNearCoef := c.zClipCoef, c.zNearCoef
	radius := c.sceneRadius
	camType := c.camType
	c.mu.Unlock()

	z := c.DistanceToSceneCenter() - zClip*radius
	zMin := zNearCoef * zClip * radius
	if z < zMin {
		if camType == Perspective {
			z = zMin
		} else {
			z = 0
		}
	}
	return z
}

func (c *cameraImpl) ZFar() float32 {
	c.mu.Lock()
	zClip := c.zClipCoef
	radius := c.sceneRadius
	c.mu.Unlock()
	return c.DistanceToSceneCenter() + zClip*radius
}

func (c *cameraImpl) ZNearCoefficient() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zNearCoef
}

func (c *cameraImpl) SetZNearCoefficient(coef float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zNearCoef = coef
	c.modified()
}

func (c *cameraImpl) ZClippingCoefficient() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zClipCoef
}

func (c *cameraImpl) SetZClippingCoefficient(coef float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zClipCoef = coef
	c.modified()
}

func (c *cameraImpl) computeProjection(out []float32) {
	near, far := c.ZNear(), c.ZFar()
	if c.Type() == Orthographic {
		halfW, halfH := c.boundaryWidthHeight()
		common.Ortho(out, halfW, halfH, near, far)
		return
	}
	common.Perspective(out, c.FieldOfView(), c.AspectRatio(), near, far)
}

// boundaryWidthHeight returns the orthographic half extents: the frustum
// cross-section at the anchor's depth, floored so a camera sitting on its
// anchor still sees something.
func (c *cameraImpl) boundaryWidthHeight() (float32, float32) {
	dist := common.Abs(c.iframe.CoordinatesOf(c.Anchor()).Z)
	if dist < minOrthoAnchorDistance*c.SceneRadius() {
		dist = minOrthoAnchorDistance * c.SceneRadius()
	}
	halfH := dist * float32(math.Tan(float64(c.FieldOfView())/2))
	aspect := c.AspectRatio()
	halfW := halfH * aspect
	if aspect < 1 {
		halfW = halfH
		halfH = halfW / aspect
	}
	return halfW, halfH
}

func (c *cameraImpl) orthographic() bool {
	return c.Type() == Orthographic
}

func (c *cameraImpl) fieldOfView() float32 {
	return c.FieldOfView()
}

func (c *cameraImpl) planeCount() int {
	return 6
}

func (c *cameraImpl) fitPose(center common.Vec3, radius float32) (common.Vec3, common.Vec3, bool) {
	dir := c.ViewDirection()
	var distance float32
	if c.Type() == Orthographic {
		distance = center.Sub(c.Anchor()).Dot(dir) + radius/float32(math.Tan(float64(c.FieldOfView())/2))
	} else {
		yview := radius / float32(math.Sin(float64(c.FieldOfView())/2))
		xview := radius / float32(math.Sin(float64(c.HorizontalFieldOfView())/2))
		distance = yview
		if xview > distance {
			distance = xview
		}
	}
	return center.Sub(dir.Scale(distance)), common.Vec3{}, false
}
