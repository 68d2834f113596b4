// ABOUTME: Audio encoder package for packing decoded samples into device bytes
// ABOUTME: Provides the Encoder interface and a little-endian PCM implementation
// Package encode turns decoded samples into byte streams for audio devices.
//
// Input samples are int32 values in the 24-bit range, as produced by the
// decode package. The PCM encoder writes 16-bit or 24-bit little-endian
// interleaved frames.
//
// Example:
//
//	enc, err := encode.NewPCM(16)
//	data, err := enc.Encode(pcm.Samples)
package encode
