package domain

// Point is a pixel coordinate in the renderer's viewport.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Viewport is the visible rendering area in pixels.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClampToViewport positions a floating box of the given size at the requested
// point, keeping it fully inside the viewport. The upper bound is applied
// first and the lower bound after it, so a box larger than the viewport pins
// to the top-left edge.
func ClampToViewport(at Point, boxW, boxH int, vp Viewport) Point {
	x := at.X
	y := at.Y
	if max := vp.Width - boxW; x > max {
		x = max
	}
	if max := vp.Height - boxH; y > max {
		y = max
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Point{X: x, Y: y}
}
