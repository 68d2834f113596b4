// ABOUTME: Oto-based audio output implementation
// ABOUTME: Plays a decoded wave file with pause/resume, seek and software volume
package output

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/melody-observer/melody/pkg/audio"
	"github.com/melody-observer/melody/pkg/audio/decode"
	"github.com/melody-observer/melody/pkg/audio/encode"
	"github.com/melody-observer/melody/pkg/audio/resample"
	"go.uber.org/zap"
)

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	player     *oto.Player
	data       []byte // 16-bit little-endian interleaved frames
	sampleRate int
	channels   int
	volume     int
	muted      bool
	paused     bool
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		volume: 100,
	}
}

// Load decodes the file and prepares it for playback
func (o *Oto) Load(path string) error {
	pcm, err := decode.ReadPCM(path)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.open(pcm.Format.SampleRate, pcm.Format.Channels); err != nil {
		return err
	}

	data, err := deviceBytes(pcm, o.sampleRate, o.channels)
	if err != nil {
		return err
	}

	o.closePlayer()
	o.data = data

	zap.S().Infof("Audio output loaded %s: %dHz, %d channels, %v",
		path, pcm.Format.SampleRate, pcm.Format.Channels, pcm.Duration())

	return nil
}

// open creates the oto context (must hold o.mu)
func (o *Oto) open(sampleRate, channels int) error {
	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		return nil
	}

	// oto only allows one context per process; Load converts to the open format instead
	if o.otoCtx != nil {
		zap.S().Infof("Format change detected (%dHz %dch -> %dHz %dch), converting to the open device format",
			sampleRate, channels, o.sampleRate, o.channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels

	zap.S().Infof("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Play starts playback at offset, or resumes after Pause
func (o *Oto) Play(offset time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.data == nil {
		return fmt.Errorf("output not loaded")
	}

	if o.player != nil && o.paused {
		o.player.Play()
		o.paused = false
		return nil
	}

	o.closePlayer()

	player := o.otoCtx.NewPlayer(bytes.NewReader(o.data))
	if pos := o.byteOffset(offset); pos > 0 {
		if _, err := player.Seek(pos, io.SeekStart); err != nil {
			return fmt.Errorf("seek to %v failed: %w", offset, err)
		}
	}
	player.SetVolume(getVolumeMultiplier(o.volume, o.muted))
	player.Play()

	o.player = player
	o.paused = false

	return nil
}

// byteOffset converts a time offset into a frame-aligned byte position
func (o *Oto) byteOffset(offset time.Duration) int64 {
	frameSize := int64(o.channels * 2)
	if frameSize == 0 || offset <= 0 {
		return 0
	}
	frame := int64(offset.Seconds() * float64(o.sampleRate))
	pos := frame * frameSize
	if pos > int64(len(o.data)) {
		pos = int64(len(o.data))
	}
	return pos
}

// Pause suspends playback at the current position
func (o *Oto) Pause() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player != nil {
		o.player.Pause()
		o.paused = true
	}
	return nil
}

// Stop ends playback
func (o *Oto) Stop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closePlayer()
	return nil
}

// closePlayer discards the current player (must hold o.mu)
func (o *Oto) closePlayer() {
	if o.player != nil {
		o.player.Pause()
		o.player.Close()
		o.player = nil
	}
	o.paused = false
}

// Close releases output resources
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closePlayer()
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}

// SetVolume sets the volume (0-100)
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.volume = clampVolume(volume)
	if o.player != nil {
		o.player.SetVolume(getVolumeMultiplier(o.volume, o.muted))
	}
	zap.S().Infof("Volume set to %d", o.volume)
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.muted = muted
	if o.player != nil {
		o.player.SetVolume(getVolumeMultiplier(o.volume, o.muted))
	}
	zap.S().Infof("Muted: %v", muted)
}

// deviceBytes converts decoded samples to the device rate and layout as 16-bit little-endian frames
func deviceBytes(pcm *audio.PCM, sampleRate, channels int) ([]byte, error) {
	samples := resample.Remix(pcm.Samples, pcm.Format.Channels, channels)
	samples = resample.Convert(samples, pcm.Format.SampleRate, sampleRate, channels)

	enc, err := encode.NewPCM(16)
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.Encode(samples)
}
