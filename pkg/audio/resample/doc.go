// ABOUTME: Audio resampling package using linear interpolation
// ABOUTME: Converts audio between sample rates and channel layouts
// Package resample converts decoded samples to the format of an open device.
//
// The audio device is opened once per process, so files whose format
// differs from it are converted before playback. Rates are converted with
// linear interpolation; channels are duplicated or averaged.
//
// Example:
//
//	samples = resample.Remix(samples, 1, 2)
//	samples = resample.Convert(samples, 22050, 44100, 2)
package resample
