// ABOUTME: Playback clock tracking elapsed time across pause/resume cycles
// ABOUTME: Samples the time source only at resume/pause boundaries, so reads never drift
package sync

import (
	"errors"
	"sync"
	"time"
)

// ErrInvalidTransition is returned when Pause is called on a clock at rest
var ErrInvalidTransition = errors.New("invalid transition: pause without a prior resume")

// TimeSource provides monotonic instants
type TimeSource interface {
	Now() time.Time
}

// systemTime reads the wall clock; time.Now carries a monotonic reading
type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

// SystemTime is the default monotonic time source
var SystemTime TimeSource = systemTime{}

// State of a PlaybackClock
type State int

const (
	AtRest State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "at-rest"
}

// PlaybackClock accumulates the time spent running
type PlaybackClock struct {
	mu                sync.RWMutex
	source            TimeSource
	accumulated       time.Duration
	lastResume        time.Time
	running           bool
	resumedAfterPause bool
}

// NewPlaybackClock creates a clock at rest. A nil source uses SystemTime.
func NewPlaybackClock(source TimeSource) *PlaybackClock {
	if source == nil {
		source = SystemTime
	}
	return &PlaybackClock{source: source}
}

// Resume starts accumulating. It is a no-op while already running.
func (c *PlaybackClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	c.lastResume = c.source.Now()
	if c.accumulated > 0 {
		c.resumedAfterPause = true
	}
	c.running = true
}

// Pause stops accumulating and folds the running interval into the total
func (c *PlaybackClock) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return ErrInvalidTransition
	}
	c.accumulated += c.source.Now().Sub(c.lastResume)
	c.lastResume = time.Time{}
	c.running = false
	return nil
}

// Reset returns the clock to zero, at rest
func (c *PlaybackClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accumulated = 0
	c.lastResume = time.Time{}
	c.running = false
	c.resumedAfterPause = false
}

// Elapsed returns the total running time, including the current interval
func (c *PlaybackClock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.running {
		return c.accumulated
	}
	return c.accumulated + c.source.Now().Sub(c.lastResume)
}

// State returns Running or AtRest
func (c *PlaybackClock) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.running {
		return Running
	}
	return AtRest
}

// ResumedAfterPause reports whether the clock has been resumed after at least one pause
func (c *PlaybackClock) ResumedAfterPause() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resumedAfterPause
}
