// ABOUTME: Immutable amplitude envelope of a loaded file
// ABOUTME: Channel-reduced, peak-normalized samples used for waveform rendering
package audio

import (
	"math"
	"time"
)

// Signal is the normalized, single-channel view of a loaded file.
// It is never mutated after construction; a new load replaces it wholesale.
type Signal struct {
	path      string
	format    Format
	amplitude []float64
	duration  time.Duration
}

// NewSignal reduces pcm to its first channel and normalizes it by its peak.
func NewSignal(pcm *PCM) (*Signal, error) {
	channels := pcm.Format.Channels
	if channels < 1 || channels > 2 {
		return nil, &UnsupportedFormatError{Channels: channels}
	}

	frames := pcm.Frames()
	reduced := make([]float64, frames)
	peak := 0.0
	for i := 0; i < frames; i++ {
		// Stereo collapses to the first channel of each interleaved frame
		v := float64(pcm.Samples[i*channels])
		reduced[i] = v
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak == 0 {
		return nil, ErrDegenerateSignal
	}

	for i := range reduced {
		reduced[i] /= peak
	}

	return &Signal{
		path:      pcm.Path,
		format:    pcm.Format,
		amplitude: reduced,
		duration:  pcm.Duration(),
	}, nil
}

// Path returns the file the signal was decoded from
func (s *Signal) Path() string { return s.path }

// Format returns the source container format
func (s *Signal) Format() Format { return s.format }

// SampleCount returns the number of amplitude samples (one per frame)
func (s *Signal) SampleCount() int { return len(s.amplitude) }

// Duration returns sampleCount / frameRate
func (s *Signal) Duration() time.Duration { return s.duration }

// Seconds returns the duration in fractional seconds
func (s *Signal) Seconds() float64 { return s.duration.Seconds() }

// At returns the normalized amplitude at index i
func (s *Signal) At(i int) float64 { return s.amplitude[i] }

// Amplitude returns a copy of the normalized samples
func (s *Signal) Amplitude() []float64 {
	out := make([]float64, len(s.amplitude))
	copy(out, s.amplitude)
	return out
}
