// ABOUTME: Zoom/scroll window over a signal
// ABOUTME: Keeps the visible window inside the signal for every zoom factor
package waveform

import "math"

const (
	// ZoomStep is the factor applied per zoom tick
	ZoomStep = 1.1

	MinZoom = 1.0
	MaxZoom = 10.0
)

// Direction of a zoom tick
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

func (d Direction) String() string {
	switch d {
	case ZoomIn:
		return "in"
	case ZoomOut:
		return "out"
	default:
		return "none"
	}
}

// View is the visible window: duration/Zoom seconds starting at Offset
type View struct {
	Zoom   float64 // 1.0 shows the whole signal
	Offset float64 // seconds
}

// NewView returns a view showing the whole signal
func NewView() View {
	return View{Zoom: MinZoom}
}

// VisibleSeconds returns the visible duration for a signal of the given length
func (v View) VisibleSeconds(duration float64) float64 {
	return duration / v.Zoom
}

// MaxOffset returns the largest offset that keeps the window inside the signal
func (v View) MaxOffset(duration float64) float64 {
	visible := v.VisibleSeconds(duration)
	offset := math.Max(0, duration-visible)
	// duration-visible can round up so that offset+visible exceeds duration
	for offset > 0 && offset+visible > duration {
		offset = math.Nextafter(offset, 0)
	}
	return offset
}

// Clamp forces zoom into [MinZoom, MaxZoom] and offset into [0, MaxOffset]
func (v View) Clamp(duration float64) View {
	if math.IsNaN(v.Zoom) || v.Zoom < MinZoom {
		v.Zoom = MinZoom
	}
	if v.Zoom > MaxZoom {
		v.Zoom = MaxZoom
	}
	if math.IsNaN(v.Offset) || v.Offset < 0 {
		v.Offset = 0
	}
	if maxOffset := v.MaxOffset(duration); v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	return v
}

// ApplyZoomDelta multiplies or divides the zoom by ZoomStep, then re-clamps the offset
func ApplyZoomDelta(v View, dir Direction, duration float64) View {
	switch dir {
	case ZoomIn:
		v.Zoom *= ZoomStep
	case ZoomOut:
		v.Zoom /= ZoomStep
	}
	return v.Clamp(duration)
}

// ScrollBy moves the window by delta seconds, staying inside the signal
func ScrollBy(v View, delta, duration float64) View {
	v.Offset += delta
	return v.Clamp(duration)
}
