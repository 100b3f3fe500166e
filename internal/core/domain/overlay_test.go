package domain

import "testing"

func TestClampToViewport(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	const boxW, boxH = 300, 200

	tests := []struct {
		name string
		at   Point
		want Point
	}{
		{"fits unchanged", Point{X: 100, Y: 100}, Point{X: 100, Y: 100}},
		{"overflows right and bottom", Point{X: 950, Y: 750}, Point{X: 700, Y: 600}},
		{"negative pins to origin", Point{X: -50, Y: -50}, Point{X: 0, Y: 0}},
		{"exact fit at edge", Point{X: 700, Y: 600}, Point{X: 700, Y: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampToViewport(tt.at, boxW, boxH, vp); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampToViewportOversizedBox(t *testing.T) {
	// A box larger than the viewport pins to the top-left corner.
	got := ClampToViewport(Point{X: 10, Y: 10}, 400, 300, Viewport{Width: 320, Height: 240})
	if got != (Point{X: 0, Y: 0}) {
		t.Errorf("oversized box should pin to origin, got %+v", got)
	}
}
