// ABOUTME: Wave file decoder
// ABOUTME: Reads PCM wave containers into PCM frames and normalized signals
package decode

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
	"github.com/melody-observer/melody/pkg/audio"
)

// extensibleFormatTag is WAVE_FORMAT_EXTENSIBLE, used by most 24-bit PCM writers
const extensibleFormatTag = 0xFFFE

// Decode reads a wave file and returns its normalized signal
func Decode(path string) (*audio.Signal, error) {
	pcm, err := ReadPCM(path)
	if err != nil {
		return nil, err
	}

	sig, err := audio.NewSignal(pcm)
	if err != nil {
		return nil, wrapLoad(path, err)
	}
	return sig, nil
}

// ReadPCM reads every frame of a wave file
func ReadPCM(path string) (*audio.PCM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &audio.LoadError{Path: path, Err: err}
	}
	defer f.Close()

	pcm, err := DecodeReader(f)
	if err != nil {
		return nil, wrapLoad(path, err)
	}
	pcm.Path = path
	return pcm, nil
}

// DecodeReader reads a wave container from r
func DecodeReader(r io.ReadSeeker) (*audio.PCM, error) {
	d := wav.NewDecoder(r)

	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", err)
	}

	format := audio.Format{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		FormatTag:  int(d.WavAudioFormat),
	}
	if err := validate(format); err != nil {
		return nil, err
	}

	if err := d.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to locate pcm data: %w", err)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read pcm data: %w", err)
	}

	samples := make([]int32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = audio.SampleFromDepth(s, format.BitDepth)
	}

	return &audio.PCM{
		Format:  format,
		Samples: samples,
	}, nil
}

// validate rejects containers outside what the signal model supports
func validate(format audio.Format) error {
	if format.Channels < 1 || format.Channels > 2 {
		return &audio.UnsupportedFormatError{Channels: format.Channels}
	}
	if format.FormatTag != audio.PCMFormatTag && format.FormatTag != extensibleFormatTag {
		return &audio.UnsupportedFormatError{
			Channels: format.Channels,
			Reason:   fmt.Sprintf("format tag %d is not integer PCM", format.FormatTag),
		}
	}
	if format.SampleRate <= 0 {
		return &audio.UnsupportedFormatError{Channels: format.Channels, Reason: "sample rate is zero"}
	}
	switch format.BitDepth {
	case 8, 16, 24, 32:
	default:
		return &audio.UnsupportedFormatError{
			Channels: format.Channels,
			Reason:   fmt.Sprintf("unsupported bit depth: %d (supported: 8, 16, 24, 32)", format.BitDepth),
		}
	}
	return nil
}

// wrapLoad attaches the path to generic failures; format and signal errors pass through
func wrapLoad(path string, err error) error {
	var formatErr *audio.UnsupportedFormatError
	if errors.As(err, &formatErr) || errors.Is(err, audio.ErrDegenerateSignal) {
		return err
	}
	var loadErr *audio.LoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &audio.LoadError{Path: path, Err: err}
}
