// ABOUTME: Waveform windowing and rendering package
// ABOUTME: Projects a zoomed view of a signal and maps it to canvas coordinates
// Package waveform turns an audio.Signal into drawable data.
//
// A View selects the visible part of the signal by zoom factor and scroll
// offset. Project converts the view into a sample range and decimates it to
// a bounded number of points by fixed-stride sampling. Decimation is not
// peak-preserving: short transients between strides can disappear when a
// long range is shown.
//
// PlotCoordinates and CursorPixel map that range and the playback time onto
// a canvas whose vertical center is silence.
//
// Example:
//
//	view := waveform.NewView()
//	view = waveform.ApplyZoomDelta(view, waveform.ZoomIn, sig.Seconds())
//	r := waveform.Project(sig, view, waveform.MaxPlotSamples)
//	points := waveform.PlotCoordinates(r, 300)
//	x, ok := waveform.ViewCursorPixel(elapsed, r, 800)
package waveform
