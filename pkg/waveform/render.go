// ABOUTME: Render pipeline from visible ranges to canvas coordinates
// ABOUTME: Plot points with silence at the vertical center, and the playback cursor
package waveform

import (
	"math"
	"time"
)

// Point is a drawable sample: X is the sample index, Y the canvas height coordinate
type Point struct {
	X float64
	Y float64
}

// PlotCoordinates maps amplitudes in [-1,1] onto [0, height]
func PlotCoordinates(r VisibleRange, height int) []Point {
	half := float64(height) / 2
	points := make([]Point, len(r.Samples))
	for i, a := range r.Samples {
		points[i] = Point{
			X: float64(r.Indices[i]),
			Y: a*half + half,
		}
	}
	return points
}

// PixelX maps a sample index of r onto [0, width]
func PixelX(x float64, r VisibleRange, width int) int {
	span := float64(r.EndIndex - r.StartIndex)
	if span <= 0 || width <= 0 {
		return 0
	}
	return clampPixel(math.Floor((x-float64(r.StartIndex))/span*float64(width)), width)
}

// CursorPixel maps elapsed time over the whole signal onto [0, width].
// ok is false when width or total is not yet known; elapsed past the end clamps.
func CursorPixel(elapsed, total time.Duration, width int) (px int, ok bool) {
	return cursor(elapsed.Seconds(), total.Seconds(), width)
}

// ViewCursorPixel maps elapsed time onto a canvas showing only r.
// ok is false when the playhead is outside r, except past the end of the
// signal where it clamps like CursorPixel.
func ViewCursorPixel(elapsed time.Duration, r VisibleRange, width int) (px int, ok bool) {
	pos := elapsed.Seconds()
	if pos < r.StartSeconds || (pos > r.EndSeconds && !r.AtEnd()) {
		return 0, false
	}
	return cursor(pos-r.StartSeconds, r.EndSeconds-r.StartSeconds, width)
}

func cursor(pos, span float64, width int) (int, bool) {
	if width <= 0 || span <= 0 {
		return 0, false
	}
	return clampPixel(math.Round(pos/span*float64(width)), width), true
}

func clampPixel(v float64, width int) int {
	if v < 0 {
		return 0
	}
	if v > float64(width) {
		return width
	}
	return int(v)
}
