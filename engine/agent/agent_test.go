package agent_test

import (
	"testing"

	"github.com/avery-hale/navscene-go/engine/agent"
	"github.com/avery-hale/navscene-go/engine/input"
)

// recordingGrabber captures dispatched events; grabs reports whether it
// claims the cursor.
type recordingGrabber struct {
	grabs  bool
	events []input.Event
}

func (g *recordingGrabber) CheckIfGrabsInput(x, y float32) bool {
	return g.grabs
}

func (g *recordingGrabber) PerformInteraction(e input.Event) {
	g.events = append(g.events, e)
}

func lastMotion(t *testing.T, g *recordingGrabber) input.MotionEvent {
	t.Helper()
	if len(g.events) == 0 {
		t.Fatalf("Expected events got none")
	}
	e, ok := g.events[len(g.events)-1].(input.MotionEvent)
	if !ok {
		t.Fatalf("Expected MotionEvent got %T", g.events[len(g.events)-1])
	}
	return e
}

func TestDragDispatchesBoundMotion(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.HandleButtonPress(agent.MouseButtonLeft, 0, 100, 100)
	a.HandleCursorMove(110, 95)

	e := lastMotion(t, g)
	if e.Action != input.ActionRotate {
		t.Errorf("Expected %v got %v", input.ActionRotate, e.Action)
	}
	if e.DOF != 2 {
		t.Errorf("Expected 2 got %v", e.DOF)
	}
	if e.Values[0] != 110 || e.Values[1] != 95 {
		t.Errorf("Expected (110, 95) got (%v, %v)", e.Values[0], e.Values[1])
	}
	if e.Prev[0] != 100 || e.Prev[1] != 100 {
		t.Errorf("Expected (100, 100) got (%v, %v)", e.Prev[0], e.Prev[1])
	}
	if e.Delta(0) != 10 || e.Delta(1) != -5 {
		t.Errorf("Expected (10, -5) got (%v, %v)", e.Delta(0), e.Delta(1))
	}
}

// mouseButton4 is a fourth button with no stock bindings, for the
// negative-path tests.
const mouseButton4 = 3

func TestUnboundButtonDispatchesNothing(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.HandleButtonPress(mouseButton4, 0, 10, 10)
	a.HandleCursorMove(20, 20)
	if len(g.events) != 0 {
		t.Errorf("Expected 0 got %v", len(g.events))
	}
}

func TestHoverWithoutPressDispatchesNothing(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.HandleCursorMove(50, 50)
	if len(g.events) != 0 {
		t.Errorf("Expected 0 got %v", len(g.events))
	}
}

func TestScrollDispatchesWheelEvent(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.HandleScroll(0, 2.5)

	e := lastMotion(t, g)
	if !e.FromWheel {
		t.Errorf("Expected true got false")
	}
	if e.Action != input.ActionZoom {
		t.Errorf("Expected %v got %v", input.ActionZoom, e.Action)
	}
	if e.DOF != 1 || e.Values[0] != 2.5 {
		t.Errorf("Expected 2.5 got %v", e.Values[0])
	}
}

func TestDoubleClickDispatchesClickEvent(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.HandleButtonPress(agent.MouseButtonRight, 0, 40, 60)
	a.HandleButtonRelease(agent.MouseButtonRight, 0, 40, 60)
	a.HandleButtonPress(agent.MouseButtonRight, 0, 40, 60)

	if len(g.events) != 1 {
		t.Fatalf("Expected 1 got %v", len(g.events))
	}
	e, ok := g.events[0].(input.ClickEvent)
	if !ok {
		t.Fatalf("Expected ClickEvent got %T", g.events[0])
	}
	if e.Action != input.ActionCenterFrame {
		t.Errorf("Expected %v got %v", input.ActionCenterFrame, e.Action)
	}
	if e.Count != 2 {
		t.Errorf("Expected 2 got %v", e.Count)
	}
	if e.X != 40 || e.Y != 60 {
		t.Errorf("Expected (40, 60) got (%v, %v)", e.X, e.Y)
	}
}

func TestSingleClickHasNoStockBinding(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.HandleButtonPress(agent.MouseButtonLeft, 0, 10, 10)
	a.HandleButtonRelease(agent.MouseButtonLeft, 0, 10, 10)
	if len(g.events) != 0 {
		t.Errorf("Expected 0 got %v", len(g.events))
	}
}

func TestTrackedGrabberWinsOverDefault(t *testing.T) {
	def := &recordingGrabber{}
	hot := &recordingGrabber{grabs: true}
	a := agent.NewAgent(agent.WithDefaultGrabber(def))
	a.AddGrabber(hot)

	a.HandleButtonPress(agent.MouseButtonLeft, 0, 10, 10)
	a.HandleCursorMove(20, 20)

	if len(hot.events) == 0 {
		t.Errorf("Expected events got none")
	}
	if len(def.events) != 0 {
		t.Errorf("Expected 0 got %v", len(def.events))
	}
	if a.TrackedGrabber() != hot {
		t.Errorf("Expected tracked grabber got %v", a.TrackedGrabber())
	}
}

func TestHoverUpdatesTracking(t *testing.T) {
	hot := &recordingGrabber{grabs: true}
	a := agent.NewAgent()
	a.AddGrabber(hot)

	if a.TrackedGrabber() != nil {
		t.Fatalf("Expected nil got %v", a.TrackedGrabber())
	}
	a.HandleCursorMove(5, 5)
	if a.TrackedGrabber() != hot {
		t.Errorf("Expected tracked grabber got %v", a.TrackedGrabber())
	}

	hot.grabs = false
	a.HandleCursorMove(6, 6)
	if a.TrackedGrabber() != nil {
		t.Errorf("Expected nil got %v", a.TrackedGrabber())
	}
}

func TestRemoveGrabberClearsSlots(t *testing.T) {
	hot := &recordingGrabber{grabs: true}
	a := agent.NewAgent(agent.WithDefaultGrabber(hot))
	a.AddGrabber(hot)
	a.HandleCursorMove(5, 5)

	a.RemoveGrabber(hot)
	if a.TrackedGrabber() != nil {
		t.Errorf("Expected nil got %v", a.TrackedGrabber())
	}
	if a.DefaultGrabber() != nil {
		t.Errorf("Expected nil got %v", a.DefaultGrabber())
	}
	if a.InputGrabber() != nil {
		t.Errorf("Expected nil got %v", a.InputGrabber())
	}
}

func TestRebindingMotion(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	a.BindMotion(mouseButton4, 0, input.ActionTranslate)
	a.HandleButtonPress(mouseButton4, 0, 0, 0)
	a.HandleCursorMove(10, 0)
	if e := lastMotion(t, g); e.Action != input.ActionTranslate {
		t.Errorf("Expected %v got %v", input.ActionTranslate, e.Action)
	}

	// ActionNone removes the binding entirely.
	a.HandleButtonRelease(mouseButton4, 0, 10, 0)
	a.BindMotion(mouseButton4, 0, input.ActionNone)
	n := len(g.events)
	a.HandleButtonPress(mouseButton4, 0, 0, 0)
	a.HandleCursorMove(10, 0)
	if len(g.events) != n {
		t.Errorf("Expected %v got %v", n, len(g.events))
	}
}

func TestModifierSelectsWheelBinding(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	const shift = 1
	a.BindWheel(shift, input.ActionScale)

	a.HandleScroll(shift, 1)
	if e := lastMotion(t, g); e.Action != input.ActionScale {
		t.Errorf("Expected %v got %v", input.ActionScale, e.Action)
	}

	// An unbound modifier mask dispatches nothing.
	n := len(g.events)
	a.HandleScroll(2, 1)
	if len(g.events) != n {
		t.Errorf("Expected %v got %v", n, len(g.events))
	}
}

func TestModifierSelectsBinding(t *testing.T) {
	g := &recordingGrabber{}
	a := agent.NewAgent(agent.WithDefaultGrabber(g))

	const shift = 1
	a.BindMotion(agent.MouseButtonLeft, shift, input.ActionScreenRotate)

	a.HandleButtonPress(agent.MouseButtonLeft, shift, 0, 0)
	a.HandleCursorMove(10, 10)
	if e := lastMotion(t, g); e.Action != input.ActionScreenRotate {
		t.Errorf("Expected %v got %v", input.ActionScreenRotate, e.Action)
	}
}
