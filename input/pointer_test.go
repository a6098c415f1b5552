package input

import (
	"testing"

	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/scene"
)

func testScene() *scene.Scene {
	s := scene.New(scene.SeasonSpring, 800, 600)
	s.SetSeed(3)
	s.Tick()
	return s
}

// TestHitTestNearestWithinRadius verifies the closest node under the
// radius wins and anything farther is ignored
func TestHitTestNearestWithinRadius(t *testing.T) {
	cache := []scene.ProjectedNode{
		{Key: "far", X: 200, Y: 200},
		{Key: "near", X: 105, Y: 100},
		{Key: "nearer", X: 102, Y: 100},
	}

	key, _, _, ok := HitTest(cache, 100, 100, 30)
	if !ok || key != "nearer" {
		t.Errorf("Expected nearer, got %q ok=%v", key, ok)
	}
}

// TestHitTestNothingInRange verifies a miss yields no selection
func TestHitTestNothingInRange(t *testing.T) {
	cache := []scene.ProjectedNode{{Key: "a", X: 500, Y: 500}}
	if _, _, _, ok := HitTest(cache, 0, 0, 30); ok {
		t.Error("Expected no hit outside radius")
	}
}

// TestHitTestExactRadiusExcluded verifies the threshold is strict
func TestHitTestExactRadiusExcluded(t *testing.T) {
	cache := []scene.ProjectedNode{{Key: "a", X: 130, Y: 100}}
	if _, _, _, ok := HitTest(cache, 100, 100, 30); ok {
		t.Error("Distance exactly equal to radius must not select")
	}
}

// TestHitTestTieBreaksByIterationOrder verifies equidistant nodes keep
// the first-found minimum
func TestHitTestTieBreaksByIterationOrder(t *testing.T) {
	cache := []scene.ProjectedNode{
		{Key: "first", X: 110, Y: 100},
		{Key: "second", X: 90, Y: 100},
	}
	key, _, _, ok := HitTest(cache, 100, 100, 30)
	if !ok || key != "first" {
		t.Errorf("Tie must keep iteration order, got %q", key)
	}
}

// TestTapEmitsSelection verifies a press-release without movement
// selects the node under the pointer
func TestTapEmitsSelection(t *testing.T) {
	s := testScene()
	var got *Selection
	calls := 0
	c := NewController(s, func(sel *Selection) { got = sel; calls++ })

	// Tap directly on a cached node
	target := s.Projected()[0]
	c.Down(target.X, target.Y, PointerMouse)
	c.Up(target.X, target.Y)

	if calls != 1 {
		t.Fatalf("Expected one selection callback, got %d", calls)
	}
	if got == nil || got.Key != target.Key {
		t.Fatalf("Expected selection of %q, got %+v", target.Key, got)
	}
	if got.ScreenX != target.X || got.ScreenY != target.Y {
		t.Error("Selection must carry the node's cached screen position")
	}
	if got.Snapshot.Key != target.Key {
		t.Error("Selection must carry a state snapshot")
	}
}

// TestTapOnEmptySpaceDeselects verifies a miss emits nil
func TestTapOnEmptySpaceDeselects(t *testing.T) {
	s := testScene()
	calls := 0
	var got *Selection
	c := NewController(s, func(sel *Selection) { got = sel; calls++ })

	c.Down(-1000, -1000, PointerMouse)
	c.Up(-1000, -1000)

	if calls != 1 || got != nil {
		t.Errorf("Expected one nil callback, calls=%d got=%v", calls, got)
	}
}

// TestDragSuppressesSelection verifies that moving past the threshold
// turns the gesture into rotation and the release emits nothing
func TestDragSuppressesSelection(t *testing.T) {
	s := testScene()
	calls := 0
	c := NewController(s, func(*Selection) { calls++ })

	yawBefore := s.Yaw
	c.Down(100, 100, PointerMouse)
	c.Move(100+parameter.DragThreshold+1, 100)
	if c.State() != StateDragging {
		t.Fatal("Expected dragging after threshold crossing")
	}
	if !s.Dragging {
		t.Error("Scene must see the drag for auto-rotation pause")
	}
	c.Up(150, 100)

	if calls != 0 {
		t.Errorf("Drag release must not emit selection, got %d calls", calls)
	}
	if s.Yaw == yawBefore {
		t.Error("Drag must rotate the camera")
	}
	if s.Dragging {
		t.Error("Dragging flag must clear on release")
	}
}

// TestSubThresholdJitterStaysTap verifies small movement below the
// threshold still counts as a tap
func TestSubThresholdJitterStaysTap(t *testing.T) {
	s := testScene()
	calls := 0
	c := NewController(s, func(*Selection) { calls++ })

	target := s.Projected()[0]
	c.Down(target.X, target.Y, PointerMouse)
	c.Move(target.X+1, target.Y)
	c.Move(target.X, target.Y+1)
	if c.State() != StatePressed {
		t.Fatal("Sub-threshold movement must stay pressed")
	}
	c.Up(target.X, target.Y)

	if calls != 1 {
		t.Errorf("Expected tap selection, got %d calls", calls)
	}
}

// TestTouchUsesWiderRadius verifies a touch release selects at distances
// a mouse release would miss
func TestTouchUsesWiderRadius(t *testing.T) {
	s := testScene()

	// Tap to the right of the rightmost node: it is strictly nearest to
	// that point, so only the radius decides hit or miss
	target := s.Projected()[0]
	for _, p := range s.Projected() {
		if p.X > target.X {
			target = p
		}
	}
	offX := target.X + (parameter.TapRadiusMouse+parameter.TapRadiusTouch)/2

	var got *Selection
	c := NewController(s, func(sel *Selection) { got = sel })

	c.Down(offX, target.Y, PointerMouse)
	c.Up(offX, target.Y)
	if got != nil {
		t.Errorf("Mouse tap at 35px must miss, got %+v", got)
	}

	c.Down(offX, target.Y, PointerTouch)
	c.Up(offX, target.Y)
	if got == nil || got.Key != target.Key {
		t.Errorf("Touch tap at 35px must hit %q, got %+v", target.Key, got)
	}
}

// TestMoveWhileIdleIgnored verifies stray motion outside a gesture does
// not rotate the camera
func TestMoveWhileIdleIgnored(t *testing.T) {
	s := testScene()
	c := NewController(s, nil)
	yaw := s.Yaw
	c.Move(500, 500)
	if s.Yaw != yaw {
		t.Error("Idle motion must not rotate")
	}
}

// TestCancelClearsGesture verifies Cancel aborts without a callback
func TestCancelClearsGesture(t *testing.T) {
	s := testScene()
	calls := 0
	c := NewController(s, func(*Selection) { calls++ })
	c.Down(10, 10, PointerMouse)
	c.Move(100, 100)
	c.Cancel()
	if c.State() != StateIdle || s.Dragging {
		t.Error("Cancel must return to idle")
	}
	if calls != 0 {
		t.Error("Cancel must not emit a selection")
	}
}
