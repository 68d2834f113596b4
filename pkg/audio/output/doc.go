// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Output interface, the oto device output and a silent output
// Package output provides audio playback backends.
//
// Oto plays through the default device; Null plays nothing and is used for
// headless runs. Both keep their own position across Pause and Play.
//
// Example:
//
//	out := output.NewOto()
//	err := out.Load("take1.wav")
//	err = out.Play(0)
//	err = out.Pause()
//	err = out.Play(elapsed) // resumes where it paused
package output
