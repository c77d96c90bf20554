package component

// Camera maps world meters onto the screen. The origin sits at the bottom
// left of the view and y grows upward.
type Camera struct {
	PixelsPerMeter float64
	ViewWidth      float64
	ViewHeight     float64
}

var CameraComponent = NewComponent[Camera]()
