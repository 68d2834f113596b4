// ABOUTME: Wave decoding package
// ABOUTME: Turns PCM wave files into audio.PCM frames and audio.Signal envelopes
// Package decode reads uncompressed PCM wave containers.
//
// Supports: mono and stereo, 8/16/24/32-bit integer PCM.
//
// ReadPCM returns interleaved frames scaled into the 24-bit range for the
// output sinks; Decode additionally reduces the file to a normalized
// audio.Signal for the waveform view.
//
// Example:
//
//	sig, err := decode.Decode("take1.wav")
//	fmt.Println(sig.SampleCount(), sig.Duration())
package decode
