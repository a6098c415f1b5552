package parameter

// Pointer gesture disambiguation, virtual px
const (
	// DragThreshold is the cumulative displacement beyond which a press
	// becomes a drag rather than a pending tap
	DragThreshold = 5.0

	// TapRadiusMouse is the hit-test radius for mouse release
	TapRadiusMouse = 30.0

	// TapRadiusTouch is the hit-test radius for touch release (imprecise)
	TapRadiusTouch = 40.0
)

// Rotation sensitivity, radians per virtual px of pointer travel
const (
	DragYawPerPx  = 0.006
	DragTiltPerPx = 0.004
)
