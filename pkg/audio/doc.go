// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format, PCM, Signal and the load error taxonomy
// Package audio provides the in-memory representation of a loaded wave file.
//
// This package defines core types used throughout the player:
//   - Format: Describes a PCM container (sample rate, channels, bit depth)
//   - PCM: Interleaved samples scaled into the 24-bit range, used for playback
//   - Signal: Channel-reduced, peak-normalized amplitudes, used for rendering
//
// Load failures are reported as *UnsupportedFormatError, ErrDegenerateSignal
// or *LoadError and can be matched with errors.Is / errors.As.
//
// Example:
//
//	pcm := &audio.PCM{
//	    Format:  audio.Format{SampleRate: 8000, Channels: 2, BitDepth: 16},
//	    Samples: samples,
//	}
//	sig, err := audio.NewSignal(pcm)
package audio
