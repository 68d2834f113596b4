// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for file playback backends
package output

import "time"

// Output represents an audio output device playing one loaded file.
// Implementations keep their own playback position across Pause and a
// following Play, so callers never track byte offsets.
type Output interface {
	// Load prepares the file for playback, replacing any previous one
	Load(path string) error

	// Play starts playback at offset, or resumes a paused file
	Play(offset time.Duration) error

	// Pause suspends playback, keeping the position
	Pause() error

	// Stop ends playback and rewinds
	Stop() error

	// Close releases output resources
	Close() error
}

// VolumeControl is implemented by outputs with software volume
type VolumeControl interface {
	SetVolume(volume int)
	SetMuted(muted bool)
}

// clampVolume limits volume to 0-100
func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
