package vmath

import "github.com/ggwoodsman/w0rd/parameter"

// Projected is a scene point mapped onto the virtual pixel canvas
type Projected struct {
	X, Y float64 // virtual px, canvas origin top-left

	// Scale is the perspective factor; strictly decreasing in depth
	Scale float64

	// Depth is the rotated Z, used for painter's-algorithm ordering
	Depth float64
}

// Project maps a scene point to the virtual canvas. Rotation order is
// fixed: yaw about the vertical axis first, then tilt about the
// horizontal axis. Pure function of its arguments
func Project(v Vec3, yaw, tilt, canvasW, canvasH float64) Projected {
	r := RotateX(RotateY(v, yaw), tilt)
	scale := PerspectiveScale(r.Z)
	return Projected{
		X:     canvasW/2 + r.X*scale*parameter.ProjCenterFactor,
		Y:     canvasH/2 + r.Y*scale*parameter.ProjCenterFactor,
		Scale: scale,
		Depth: r.Z,
	}
}

// PerspectiveScale returns the depth-derived scale factor. Nearer points
// (smaller z) always get a strictly larger scale
func PerspectiveScale(z float64) float64 {
	return parameter.ProjFOV / (parameter.ProjFOV + z + parameter.ProjDepthOffset)
}
