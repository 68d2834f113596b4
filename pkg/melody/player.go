// ABOUTME: High-level Player API for wave file playback
// ABOUTME: Transport state machine over an audio output, a playback clock and a waveform view
package melody

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/melody-observer/melody/pkg/audio"
	"github.com/melody-observer/melody/pkg/audio/decode"
	"github.com/melody-observer/melody/pkg/audio/output"
	playback "github.com/melody-observer/melody/pkg/sync"
	"github.com/melody-observer/melody/pkg/waveform"
	"go.uber.org/zap"
)

// ErrNotLoaded is returned by Play when no file has been loaded
var ErrNotLoaded = errors.New("no file loaded")

// PlayerConfig holds player configuration
type PlayerConfig struct {
	// Output plays the loaded file (default: Oto device output)
	Output output.Output

	// TimeSource drives the playback clock (default: system time)
	TimeSource playback.TimeSource

	// UpdateInterval is the notifier period (default: 50ms)
	UpdateInterval time.Duration

	// MaxPlotSamples bounds the points per frame (default: 1000)
	MaxPlotSamples int

	// Volume is the initial volume (0-100, default: 100)
	Volume *int

	// OnUpdate is called from the notifier goroutine while playing, and once
	// by Stop. It must not call back into the Player synchronously.
	OnUpdate func(Update)

	// OnStateChange is called when the transport state changes
	OnStateChange func(PlayerState)

	// OnError is called when errors occur outside a method's return path
	OnError func(error)
}

// Player orchestrates load/play/pause/stop for one file at a time
type Player struct {
	config PlayerConfig
	output output.Output
	clock  *playback.PlaybackClock

	mu        sync.Mutex
	state     State
	signal    *audio.Signal
	view      waveform.View
	sessionID string
	volume    int
	muted     bool
	width     int
	height    int
	notifier  *notifier
	closed    bool

	// Published copy of signal/view/canvas for the notifier
	snap atomic.Pointer[snapshot]
}

// NewPlayer creates a new player with the given configuration
func NewPlayer(config PlayerConfig) (*Player, error) {
	// Set defaults
	volume := 100
	if config.Volume != nil {
		volume = *config.Volume
	}
	if volume < 0 || volume > 100 {
		return nil, fmt.Errorf("volume %d out of range 0-100", volume)
	}
	if config.UpdateInterval <= 0 {
		config.UpdateInterval = 50 * time.Millisecond
	}
	if config.MaxPlotSamples <= 0 {
		config.MaxPlotSamples = waveform.MaxPlotSamples
	}
	if config.Output == nil {
		config.Output = output.NewOto()
	}

	p := &Player{
		config: config,
		output: config.Output,
		clock:  playback.NewPlaybackClock(config.TimeSource),
		state:  Idle,
		view:   waveform.NewView(),
		volume: volume,
	}

	if vc, ok := p.output.(output.VolumeControl); ok {
		vc.SetVolume(volume)
	}

	return p, nil
}

// Load decodes path and makes it the current file. A decode failure
// leaves the player untouched.
func (p *Player) Load(path string) error {
	sig, err := decode.Decode(path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return fmt.Errorf("player closed")
	}

	p.stopNotifierLocked()
	var stopErr error
	if p.state == Playing || p.state == Paused {
		if err := p.output.Stop(); err != nil {
			stopErr = fmt.Errorf("failed to stop previous file: %w", err)
		}
	}

	if err := p.output.Load(path); err != nil {
		p.signal = nil
		p.sessionID = ""
		p.clock.Reset()
		p.setStateLocked(Idle)
		p.publishLocked()
		status := p.statusLocked()
		p.mu.Unlock()

		if stopErr != nil {
			p.notifyError(stopErr)
		}
		p.notifyStateChange(status)
		return &audio.LoadError{Path: path, Err: err}
	}

	p.signal = sig
	p.sessionID = uuid.New().String()
	p.clock.Reset()
	p.view = waveform.NewView()
	p.setStateLocked(Loaded)
	p.publishLocked()
	status := p.statusLocked()
	p.mu.Unlock()

	if stopErr != nil {
		p.notifyError(stopErr)
	}

	f := sig.Format()
	zap.S().Infof("Loaded %s: %d samples, %v, %dHz %dch %d-bit (session %s)",
		path, sig.SampleCount(), sig.Duration(), f.SampleRate, f.Channels, f.BitDepth, status.SessionID)

	p.notifyStateChange(status)
	return nil
}

// Play starts playback from the clock position, or resumes after Pause
func (p *Player) Play() error {
	p.mu.Lock()

	switch {
	case p.state == Playing:
		p.mu.Unlock()
		return nil
	case p.signal == nil:
		p.mu.Unlock()
		return ErrNotLoaded
	}

	offset := p.clock.Elapsed()
	if err := p.output.Play(offset); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to start playback: %w", err)
	}

	p.clock.Resume()
	p.setStateLocked(Playing)
	p.startNotifierLocked()
	status := p.statusLocked()
	p.mu.Unlock()

	zap.S().Debugf("Playing from %v (session %s)", offset, status.SessionID)
	p.notifyStateChange(status)
	return nil
}

// Pause suspends playback; it does nothing unless playing
func (p *Player) Pause() error {
	p.mu.Lock()

	if p.state != Playing {
		p.mu.Unlock()
		return nil
	}

	if err := p.output.Pause(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("failed to pause playback: %w", err)
	}

	p.stopNotifierLocked()
	if err := p.clock.Pause(); err != nil {
		p.mu.Unlock()
		return err
	}
	p.setStateLocked(Paused)
	status := p.statusLocked()
	p.mu.Unlock()

	zap.S().Debugf("Paused at %v (session %s)", status.Elapsed, status.SessionID)
	p.notifyStateChange(status)
	return nil
}

// Stop ends playback, rewinds the clock and clears the cursor. The loaded
// file is kept, so a following Play starts again from the beginning.
func (p *Player) Stop() error {
	p.mu.Lock()

	if p.state == Idle {
		p.mu.Unlock()
		return nil
	}

	p.stopNotifierLocked()
	err := p.output.Stop()
	p.clock.Reset()
	p.setStateLocked(Idle)
	status := p.statusLocked()
	p.mu.Unlock()

	p.notifyUpdate(Update{
		SessionID: status.SessionID,
		Total:     status.Duration,
	})
	p.notifyStateChange(status)

	if err != nil {
		return fmt.Errorf("failed to stop playback: %w", err)
	}
	return nil
}

// Zoom applies one zoom tick and returns the new view
func (p *Player) Zoom(dir waveform.Direction) waveform.View {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.signal == nil {
		return p.view
	}
	p.view = waveform.ApplyZoomDelta(p.view, dir, p.signal.Seconds())
	p.publishLocked()
	return p.view
}

// Scroll moves the view by delta seconds and returns the new view
func (p *Player) Scroll(delta float64) waveform.View {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.signal == nil {
		return p.view
	}
	p.view = waveform.ScrollBy(p.view, delta, p.signal.Seconds())
	p.publishLocked()
	return p.view
}

// SetCanvas sets the drawing area. A zero width means the canvas is not
// laid out yet and suppresses cursor updates.
func (p *Player) SetCanvas(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.width = width
	p.height = height
	p.publishLocked()
}

// Frame projects the current view onto the canvas. ok is false when no
// file is loaded.
func (p *Player) Frame() (frame Frame, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.signal == nil {
		return Frame{}, false
	}

	r := waveform.Project(p.signal, p.view, p.config.MaxPlotSamples)
	frame = Frame{
		Range:  r,
		Points: waveform.PlotCoordinates(r, p.height),
		Width:  p.width,
		Height: p.height,
	}
	if p.state == Playing || p.state == Paused {
		frame.Cursor, frame.CursorVisible = waveform.ViewCursorPixel(p.clock.Elapsed(), r, p.width)
	}
	return frame, true
}

// SetVolume sets the volume (0-100)
func (p *Player) SetVolume(volume int) error {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}

	p.mu.Lock()
	p.volume = volume
	if vc, ok := p.output.(output.VolumeControl); ok {
		vc.SetVolume(volume)
	}
	status := p.statusLocked()
	p.mu.Unlock()

	p.notifyStateChange(status)
	return nil
}

// Mute sets the mute state
func (p *Player) Mute(muted bool) error {
	p.mu.Lock()
	p.muted = muted
	if vc, ok := p.output.(output.VolumeControl); ok {
		vc.SetMuted(muted)
	}
	status := p.statusLocked()
	p.mu.Unlock()

	p.notifyStateChange(status)
	return nil
}

// Status returns the current player state
func (p *Player) Status() PlayerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Close stops playback and releases the output
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.stopNotifierLocked()
	p.clock.Reset()
	p.setStateLocked(Idle)
	status := p.statusLocked()
	p.mu.Unlock()

	err := p.output.Close()
	p.notifyStateChange(status)
	return err
}

// tick builds the next update from the published snapshot and the clock
func (p *Player) tick() (Update, bool) {
	s := p.snap.Load()
	if s == nil || s.signal == nil {
		return Update{}, false
	}

	elapsed := p.clock.Elapsed()
	total := s.signal.Duration()
	u := Update{
		SessionID: s.sessionID,
		Elapsed:   elapsed,
		Total:     total,
		Finished:  elapsed >= total,
	}

	r := waveform.Project(s.signal, s.view, p.config.MaxPlotSamples)
	u.Cursor, u.CursorVisible = waveform.ViewCursorPixel(elapsed, r, s.width)
	return u, true
}

// startNotifierLocked spawns the notifier for this Play (must hold p.mu)
func (p *Player) startNotifierLocked() {
	p.stopNotifierLocked()
	n := newNotifier()
	p.notifier = n
	go n.run(p.config.UpdateInterval, p.tick, p.config.OnUpdate)
}

// stopNotifierLocked stops the running notifier (must hold p.mu)
func (p *Player) stopNotifierLocked() {
	if p.notifier != nil {
		p.notifier.stop()
		p.notifier = nil
	}
}

// publishLocked refreshes the notifier snapshot (must hold p.mu)
func (p *Player) publishLocked() {
	p.snap.Store(&snapshot{
		sessionID: p.sessionID,
		signal:    p.signal,
		view:      p.view,
		width:     p.width,
		height:    p.height,
	})
}

func (p *Player) setStateLocked(s State) {
	if p.state != s {
		zap.S().Debugf("Transport %s -> %s", p.state, s)
	}
	p.state = s
}

func (p *Player) statusLocked() PlayerState {
	st := PlayerState{
		State:     p.state,
		SessionID: p.sessionID,
		Elapsed:   p.clock.Elapsed(),
		Zoom:      p.view.Zoom,
		Offset:    p.view.Offset,
		Volume:    p.volume,
		Muted:     p.muted,

		ResumedAfterPause: p.clock.ResumedAfterPause(),
	}
	if p.signal != nil {
		st.Path = p.signal.Path()
		st.Format = p.signal.Format()
		st.Duration = p.signal.Duration()
	}
	return st
}

// notifyStateChange calls the OnStateChange callback if set
func (p *Player) notifyStateChange(st PlayerState) {
	if p.config.OnStateChange != nil {
		p.config.OnStateChange(st)
	}
}

// notifyUpdate calls the OnUpdate callback if set
func (p *Player) notifyUpdate(u Update) {
	if p.config.OnUpdate != nil {
		p.config.OnUpdate(u)
	}
}

// notifyError calls the OnError callback if set
func (p *Player) notifyError(err error) {
	if p.config.OnError != nil {
		p.config.OnError(err)
	} else {
		zap.S().Errorf("Player error: %v", err)
	}
}
