// ABOUTME: Transport states and player events
// ABOUTME: Defines State, PlayerState snapshots, Update ticks and Frame renders
package melody

import (
	"fmt"
	"time"

	"github.com/melody-observer/melody/pkg/audio"
	"github.com/melody-observer/melody/pkg/waveform"
)

// State of the transport
type State int

const (
	Idle State = iota
	Loaded
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// PlayerState describes the current state
type PlayerState struct {
	State     State
	Path      string
	SessionID string
	Format    audio.Format
	Duration  time.Duration
	Elapsed   time.Duration
	Zoom      float64
	Offset    float64 // seconds
	Volume    int
	Muted     bool

	// ResumedAfterPause is set once playback resumes after a pause, until Stop or Load
	ResumedAfterPause bool
}

// Update is emitted by the notifier while playing, and once by Stop
type Update struct {
	SessionID     string
	Elapsed       time.Duration
	Total         time.Duration
	Cursor        int
	CursorVisible bool
	Finished      bool // elapsed reached the end of the signal
}

// Frame is everything needed to draw the current view
type Frame struct {
	Range         waveform.VisibleRange
	Points        []waveform.Point
	Width         int
	Height        int
	Cursor        int
	CursorVisible bool
}

// FormatTimestamp renders "MM:SS / MM:SS". Minutes do not wrap at 60.
func FormatTimestamp(elapsed, total time.Duration) string {
	return clockText(elapsed) + " / " + clockText(total)
}

func clockText(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
