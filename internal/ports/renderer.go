package ports

import "time"

// A labeled point handed to the globe renderer.
type GlobePoint struct {
	Lat   float64
	Lng   float64
	Label string
}

// Contract for the external 3D globe that displays derived points.
// All calls are fire-and-forget: implementations must not block the caller
// waiting on the rendering surface.
type Renderer interface {
	// Replace the displayed point set.
	SetPoints(points []GlobePoint)
	// Animate the viewpoint to the given position over duration.
	FocusCamera(lat, lng, altitude float64, duration time.Duration)
	// Ask the surface to export its current frame under filename.
	CaptureFrame(filename string)
}
