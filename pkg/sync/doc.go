// ABOUTME: Playback clock package
// ABOUTME: Tracks elapsed playback time across play/pause/stop cycles
// Package sync keeps the playback position the cursor follows.
//
// The clock samples its TimeSource only when playback resumes or pauses,
// so Elapsed can be polled at any rate without accumulating error.
//
// Example:
//
//	clock := sync.NewPlaybackClock(nil)
//	clock.Resume()
//	elapsed := clock.Elapsed()
//	err := clock.Pause()
package sync
