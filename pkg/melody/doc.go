// ABOUTME: High-level Melody player API
// ABOUTME: Loads a wave file, drives playback and reports cursor updates
// Package melody is the main entry point for embedding the player.
//
// A Player owns one loaded signal, its playback clock and its waveform view.
// It drives an output.Output through load, play, pause and stop, and while
// playing it calls OnUpdate at a fixed interval with the elapsed time and the
// cursor position on the configured canvas.
//
// For lower-level control, see the audio, decode, output, sync and waveform packages.
//
// Example:
//
//	player, err := melody.NewPlayer(melody.PlayerConfig{
//	    OnUpdate: func(u melody.Update) {
//	        fmt.Println(melody.FormatTimestamp(u.Elapsed, u.Total))
//	    },
//	})
//	err = player.Load("/path/to/song.wav")
//	player.SetCanvas(800, 200)
//	err = player.Play()
package melody
