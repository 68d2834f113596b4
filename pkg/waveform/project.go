// ABOUTME: Visible range projection
// ABOUTME: Maps a view onto sample indices and decimates to a bounded point count
package waveform

import (
	"math"

	"github.com/melody-observer/melody/pkg/audio"
)

// MaxPlotSamples is the default bound on projected points
const MaxPlotSamples = 1000

// VisibleRange is the decimated slice of a signal inside a view
type VisibleRange struct {
	StartSeconds float64
	EndSeconds   float64
	StartIndex   int // inclusive
	EndIndex     int // exclusive
	SampleCount  int // of the whole signal
	Step         int
	Indices      []int
	Samples      []float64
}

// AtEnd reports whether the range reaches the last sample of the signal
func (r VisibleRange) AtEnd() bool {
	return r.SampleCount > 0 && r.EndIndex >= r.SampleCount
}

// Len returns the number of projected points
func (r VisibleRange) Len() int {
	return len(r.Samples)
}

// Project computes the visible sample range of sig under v and keeps every
// Step-th sample so that at most maxPoints remain
func Project(sig *audio.Signal, v View, maxPoints int) VisibleRange {
	if maxPoints <= 0 {
		maxPoints = MaxPlotSamples
	}

	duration := sig.Seconds()
	n := sig.SampleCount()
	v = v.Clamp(duration)

	end := math.Min(v.Offset+v.VisibleSeconds(duration), duration)
	r := VisibleRange{
		StartSeconds: v.Offset,
		EndSeconds:   end,
		StartIndex:   sampleIndex(v.Offset, duration, n),
		EndIndex:     sampleIndex(end, duration, n),
		SampleCount:  n,
		Step:         1,
	}

	count := r.EndIndex - r.StartIndex
	if count <= 0 {
		return r
	}
	if count > maxPoints {
		// Ceiling division keeps the point count at or below maxPoints
		r.Step = (count + maxPoints - 1) / maxPoints
	}

	size := (count + r.Step - 1) / r.Step
	r.Indices = make([]int, 0, size)
	r.Samples = make([]float64, 0, size)
	for i := r.StartIndex; i < r.EndIndex; i += r.Step {
		r.Indices = append(r.Indices, i)
		r.Samples = append(r.Samples, sig.At(i))
	}

	return r
}

// sampleIndex linearly scales seconds into [0, n]
func sampleIndex(seconds, duration float64, n int) int {
	if duration <= 0 {
		return 0
	}
	idx := int(math.Round(seconds / duration * float64(n)))
	if idx < 0 {
		return 0
	}
	if idx > n {
		return n
	}
	return idx
}
