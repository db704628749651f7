package eye

import (
	"github.com/avery-hale/navscene-go/common"
	"github.com/avery-hale/navscene-go/engine/interactive_frame"
)

// Window is the 2D eye: an orthographic view of the XY plane whose frame
// only translates in the plane, rotates around Z and scales uniformly.
// Zooming scales the window frame instead of moving it.
type Window interface {
	Eye

	// PixelSceneRatio returns how many scene units one pixel spans at
	// the current zoom.
	PixelSceneRatio() float32
}

type windowImpl struct {
	*eyeBase
}

var _ Window = &windowImpl{}
var _ interactive_frame.View = &windowImpl{}

// NewWindow builds a 2D eye wired to the scene context.
//
// Parameters:
//   - ctx: the scene the window navigates
//   - opts: optional WindowOption configuration
//
// Returns:
//   - Window: the new window
func NewWindow(ctx interactive_frame.Context, opts ...WindowOption) Window {
	w := &windowImpl{}
	w.eyeBase = newEyeBase(ctx, w)
	for _, opt := range opts {
		opt(w)
	}
	w.iframe.SetFlySpeed(0.01 * w.sceneRadius)
	return w
}

func (w *windowImpl) PixelSceneRatio() float32 {
	return w.iframe.Magnitude().X
}

func (w *windowImpl) computeProjection(out []float32) {
	halfW, halfH := w.boundaryWidthHeight()
	common.Ortho(out, halfW, halfH, -1, 1)
}

// boundaryWidthHeight maps the viewport through the window frame's
// magnitude, so scaling the frame zooms the view.
func (w *windowImpl) boundaryWidthHeight() (float32, float32) {
	mag := w.iframe.Magnitude()
	halfW := float32(w.ScreenWidth()) / 2 * mag.X
	halfH := float32(w.ScreenHeight()) / 2 * mag.Y
	return halfW, halfH
}

func (w *windowImpl) orthographic() bool {
	return true
}

func (w *windowImpl) fieldOfView() float32 {
	return 0
}

func (w *windowImpl) planeCount() int {
	return 4
}

func (w *windowImpl) fitPose(center common.Vec3, radius float32) (common.Vec3, common.Vec3, bool) {
	pos := common.Vec3{X: center.X, Y: center.Y, Z: w.Position().Z}
	minDim := w.ScreenWidth()
	if w.ScreenHeight() < minDim {
		minDim = w.ScreenHeight()
	}
	mag := 2 * radius / float32(minDim)
	return pos, common.Vec3{X: mag, Y: mag, Z: 1}, true
}
