package input

import (
	"math"

	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/scene"
)

// PointerKind distinguishes precise and imprecise pointers; touch gets a
// wider tap radius
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

// State of the gesture machine
type State int

const (
	StateIdle State = iota
	StatePressed  // down, not yet moved past the drag threshold
	StateDragging // moved-flag set, deltas feed the camera
)

// Selection carries a tap result to the host. A nil *Selection on the
// callback means deselection
type Selection struct {
	Key      string
	Snapshot scene.Snapshot
	ScreenX  float64
	ScreenY  float64
}

// Controller is the pointer state machine: a press either becomes a
// continuous camera drag or, if the pointer never travels past the
// threshold, a tap that hit-tests the scene's cached projection
type Controller struct {
	scene *scene.Scene

	state        State
	kind         PointerKind
	lastX, lastY float64
	travel       float64 // cumulative displacement since press

	onSelect func(*Selection)
}

// NewController builds a controller bound to one scene
func NewController(s *scene.Scene, onSelect func(*Selection)) *Controller {
	return &Controller{scene: s, onSelect: onSelect}
}

// State returns the current gesture state
func (c *Controller) State() State {
	return c.state
}

// Down starts a gesture at a virtual-pixel position
func (c *Controller) Down(x, y float64, kind PointerKind) {
	c.state = StatePressed
	c.kind = kind
	c.lastX, c.lastY = x, y
	c.travel = 0
}

// Move feeds pointer motion. Once cumulative travel passes the drag
// threshold the gesture commits to rotation; there is no way back to a
// tap within the same press
func (c *Controller) Move(x, y float64) {
	if c.state == StateIdle {
		return
	}

	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX, c.lastY = x, y
	c.travel += math.Hypot(dx, dy)

	if c.state == StatePressed && c.travel > parameter.DragThreshold {
		c.state = StateDragging
		c.scene.Dragging = true
	}
	if c.state == StateDragging {
		c.scene.AddDrag(dx, dy)
	}
}

// Up ends the gesture. A press that never became a drag is a tap: the
// nearest cached node within the pointer's radius is selected, or nil is
// emitted when nothing is close enough
func (c *Controller) Up(x, y float64) {
	wasDrag := c.state == StateDragging
	c.state = StateIdle
	c.scene.Dragging = false

	if wasDrag {
		return
	}

	radius := parameter.TapRadiusMouse
	if c.kind == PointerTouch {
		radius = parameter.TapRadiusTouch
	}

	key, px, py, ok := HitTest(c.scene.Projected(), x, y, radius)
	if !ok {
		if c.onSelect != nil {
			c.onSelect(nil)
		}
		return
	}

	snap, live := c.scene.SnapshotOf(key)
	if !live {
		if c.onSelect != nil {
			c.onSelect(nil)
		}
		return
	}
	if c.onSelect != nil {
		c.onSelect(&Selection{Key: key, Snapshot: snap, ScreenX: px, ScreenY: py})
	}
}

// Cancel aborts any in-flight gesture without emitting a selection
func (c *Controller) Cancel() {
	c.state = StateIdle
	c.scene.Dragging = false
}

// HitTest scans the cached projected list for the node with minimum
// screen distance to (x, y) below radius. Ties keep the first minimum in
// iteration order, which is deterministic because the cache is sorted
func HitTest(cache []scene.ProjectedNode, x, y, radius float64) (key string, px, py float64, ok bool) {
	best := radius
	for _, p := range cache {
		d := math.Hypot(p.X-x, p.Y-y)
		if d < best {
			best = d
			key = p.Key
			px, py = p.X, p.Y
			ok = true
		}
	}
	return key, px, py, ok
}

// CellToPx converts a terminal cell coordinate to the center of that
// cell in virtual px, the space hit radii are specified in
func CellToPx(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * parameter.CellWidthPx,
		(float64(cy) + 0.5) * parameter.CellHeightPx
}
