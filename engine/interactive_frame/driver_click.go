package interactive_frame

import (
	"log"

	"github.com/avery-hale/navscene-go/engine/input"
)

// execClick runs the frame-level click actions. The same code serves 2D and
// 3D scenes; dimensionality differences live behind the View interface.
func (f *interactiveFrameImpl) execClick(e input.ClickEvent) {
	view := f.ctx.View()
	if view == nil {
		return
	}

	switch e.Action {
	case input.ActionCenterFrame:
		if f.eyeRole {
			view.CenterScene()
			return
		}
		f.ProjectOnLine(view.Position(), view.ViewDirection())
	case input.ActionAlignFrame:
		if f.eyeRole {
			// Snap the eye back to the world axes.
			f.AlignWithFrame(nil, false, alignThreshold)
			return
		}
		f.AlignWithFrame(view.EyeFrame(), false, alignThreshold)
	case input.ActionZoomOnPixel:
		if !f.eyeRole {
			log.Printf("interactive_frame: action %v only applies to the eye", e.Action)
			return
		}
		view.InterpolateToZoomOnPixel(e.X, e.Y)
	case input.ActionAnchorFromPixel:
		if !f.eyeRole {
			log.Printf("interactive_frame: action %v only applies to the eye", e.Action)
			return
		}
		if !view.AnchorFromPixel(e.X, e.Y) {
			log.Printf("interactive_frame: no scene point under pixel (%v, %v)", e.X, e.Y)
		}
	case input.ActionCustomClick:
		f.ctx.ForwardEvent(e)
	}
}

// alignThreshold is the axis-alignment cosine AlignFrame snaps within.
const alignThreshold = 0.85
