// ABOUTME: Periodic update task spawned per Play
// ABOUTME: Reads the clock and view, never transport state, and stops on a liveness flag
package melody

import (
	"sync"
	"time"

	"github.com/melody-observer/melody/pkg/audio"
	"github.com/melody-observer/melody/pkg/waveform"
)

// snapshot is the read-only view of the player that the notifier renders from
type snapshot struct {
	sessionID string
	signal    *audio.Signal
	view      waveform.View
	width     int
	height    int
}

// notifier emits updates until stop is called. Once stop returns no
// further update is delivered.
type notifier struct {
	mu    sync.Mutex
	alive bool
	quit  chan struct{}
	done  chan struct{}
}

func newNotifier() *notifier {
	return &notifier{
		alive: true,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (n *notifier) run(interval time.Duration, tick func() (Update, bool), emit func(Update)) {
	defer close(n.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			u, ok := tick()
			if !ok {
				continue
			}
			if !n.deliver(emit, u) {
				return
			}

		case <-n.quit:
			return
		}
	}
}

// deliver calls emit only while the notifier is alive
func (n *notifier) deliver(emit func(Update), u Update) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.alive {
		return false
	}
	if emit != nil {
		emit(u)
	}
	return true
}

// stop clears the liveness flag, waiting out an in-flight delivery
func (n *notifier) stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.alive {
		n.alive = false
		close(n.quit)
	}
}
