package parameter

// Perspective projection
const (
	// ProjFOV is the field-of-view constant in the perspective divide:
	// scale = ProjFOV / (ProjFOV + z + ProjDepthOffset)
	ProjFOV = 320.0

	// ProjDepthOffset keeps the divisor positive for all scene depths
	ProjDepthOffset = 240.0

	// ProjCenterFactor scales rotated x/y before centering on screen
	ProjCenterFactor = 0.9
)

// Virtual pixel canvas. The scene projects into browser-canvas-like pixel
// space; the renderer maps px to terminal cells, and mouse coordinates are
// converted the other way before hit testing.
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)
