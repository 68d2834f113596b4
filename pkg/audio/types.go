// ABOUTME: Audio type definitions
// ABOUTME: Defines PCM container formats, decoded frames and sample conversions
package audio

import "time"

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23

	// PCMFormatTag is the WAVE format tag for integer PCM
	PCMFormatTag = 1
)

// Format describes a decoded PCM container
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
	FormatTag  int
}

// FrameDuration returns the wall time of n frames at this format's rate
func (f Format) FrameDuration(frames int) time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / float64(f.SampleRate) * float64(time.Second))
}

// PCM holds a fully decoded file
type PCM struct {
	Path    string
	Format  Format
	Samples []int32 // Interleaved, scaled into the 24-bit range
}

// Frames returns the number of sample frames (samples per channel)
func (p *PCM) Frames() int {
	if p.Format.Channels <= 0 {
		return 0
	}
	return len(p.Samples) / p.Format.Channels
}

// Duration returns the playback length
func (p *PCM) Duration() time.Duration {
	return p.Format.FrameDuration(p.Frames())
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit to 16-bit range
	return int16(sample >> 8)
}

// SampleFromDepth rescales an integer sample of the given bit depth into the 24-bit range
func SampleFromDepth(sample int, bitDepth int) int32 {
	switch {
	case bitDepth == 8:
		// 8-bit WAV data is unsigned, centered on 128
		return int32(sample-128) << 16
	case bitDepth < 24:
		return int32(sample) << uint(24-bitDepth)
	case bitDepth > 24:
		return int32(sample >> uint(bitDepth-24))
	default:
		return int32(sample)
	}
}
