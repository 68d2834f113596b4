// ABOUTME: Silent audio output
// ABOUTME: Tracks transport calls without a device, for headless runs
package output

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Null is an output that plays nothing
type Null struct {
	mu      sync.Mutex
	path    string
	playing bool
	offset  time.Duration
	volume  int
	muted   bool
}

// NewNull creates a silent output
func NewNull() *Null {
	return &Null{volume: 100}
}

// Load records the path after checking the file is readable
func (n *Null) Load(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("null output: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.path = path
	n.playing = false
	n.offset = 0
	zap.S().Debugf("Null output loaded %s", path)
	return nil
}

// Play marks the output as playing
func (n *Null) Play(offset time.Duration) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.path == "" {
		return fmt.Errorf("output not loaded")
	}
	n.playing = true
	n.offset = offset
	return nil
}

// Pause marks the output as paused
func (n *Null) Pause() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.playing = false
	return nil
}

// Stop marks the output as stopped
func (n *Null) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.playing = false
	n.offset = 0
	return nil
}

// Close does nothing
func (n *Null) Close() error {
	return n.Stop()
}

// SetVolume sets the volume (0-100)
func (n *Null) SetVolume(volume int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.volume = clampVolume(volume)
}

// SetMuted sets mute state
func (n *Null) SetMuted(muted bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.muted = muted
}

// Playing reports whether Play was the last transport call
func (n *Null) Playing() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.playing
}

// Offset returns the offset passed to the last Play
func (n *Null) Offset() time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.offset
}
