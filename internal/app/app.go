// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates config, audio output, transport, file watcher and UI
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/melody-observer/melody/internal/config"
	"github.com/melody-observer/melody/internal/ui"
	"github.com/melody-observer/melody/internal/version"
	"github.com/melody-observer/melody/internal/watch"
	"github.com/melody-observer/melody/pkg/audio/output"
	"github.com/melody-observer/melody/pkg/melody"
	"go.uber.org/zap"
)

// headlessLogEvery throttles progress lines in headless mode
const headlessLogEvery = time.Second

// App represents the main player application
type App struct {
	config  *config.Config
	output  output.Output
	player  *melody.Player
	watcher *watch.Watcher

	// TUI mode
	forwarder *ui.Forwarder

	// Headless mode
	updates chan melody.Update
	reloads chan string
}

// New creates the application and its components
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config:  cfg,
		updates: make(chan melody.Update, 1),
		reloads: make(chan string, 1),
	}

	if cfg.NoAudio {
		a.output = output.NewNull()
	} else {
		a.output = output.NewOto()
	}

	if !cfg.NoTUI {
		a.forwarder = ui.NewForwarder()
	}

	player, err := melody.NewPlayer(melody.PlayerConfig{
		Output:         a.output,
		UpdateInterval: cfg.UpdateInterval,
		MaxPlotSamples: cfg.MaxPlotSamples,
		Volume:         &cfg.Volume,
		OnUpdate:       a.onUpdate,
		OnStateChange:  a.onStateChange,
		OnError: func(err error) {
			zap.S().Errorf("Player error: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	a.player = player

	if cfg.Watch {
		w, err := watch.New("", watch.DefaultDebounce, a.onFileChanged)
		if err != nil {
			player.Close()
			return nil, err
		}
		a.watcher = w
	}

	return a, nil
}

// Run plays until the user quits, the track ends (headless) or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	zap.S().Infof("Starting %s", version.String())

	if a.config.NoTUI {
		return a.runHeadless(ctx)
	}
	return a.runTUI(ctx)
}

// runTUI starts the bubbletea program and blocks until it exits
func (a *App) runTUI(ctx context.Context) error {
	if a.config.File != "" {
		// A bad startup file leaves the TUI open so another can be chosen
		if err := a.player.Load(a.config.File); err != nil {
			zap.S().Warnf("Failed to load %s: %v", a.config.File, err)
		}
	}

	prog := ui.Run(a.player)
	a.forwarder.Start(prog)
	defer a.forwarder.Stop()

	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}

// runHeadless plays the file once, logging progress
func (a *App) runHeadless(ctx context.Context) error {
	if a.config.File == "" {
		return errors.New("a file is required with --no-tui")
	}

	if err := a.player.Load(a.config.File); err != nil {
		return err
	}
	if err := a.player.Play(); err != nil {
		return err
	}

	var lastLog time.Time
	for {
		select {
		case u := <-a.updates:
			if u.Finished {
				zap.S().Infof("Finished %s", filepath.Base(a.config.File))
				return a.player.Stop()
			}
			if time.Since(lastLog) >= headlessLogEvery {
				zap.S().Infof("%s", melody.FormatTimestamp(u.Elapsed, u.Total))
				lastLog = time.Now()
			}

		case path := <-a.reloads:
			zap.S().Infof("Reloading %s", path)
			if err := a.player.Load(path); err != nil {
				return err
			}
			if err := a.player.Play(); err != nil {
				return err
			}

		case <-ctx.Done():
			zap.S().Infof("Shutdown signal received")
			return a.player.Stop()
		}
	}
}

// onUpdate hands a notifier tick to the UI or the headless loop without blocking
func (a *App) onUpdate(u melody.Update) {
	if a.forwarder != nil {
		a.forwarder.Update(ui.UpdateMsg(u))
		return
	}

	// Keep only the newest tick
	select {
	case <-a.updates:
	default:
	}
	select {
	case a.updates <- u:
	default:
	}
}

// onStateChange logs transitions and follows the loaded file with the watcher
func (a *App) onStateChange(st melody.PlayerState) {
	zap.S().Debugf("State changed: %s (path: %s, volume: %d, muted: %v)", st.State, st.Path, st.Volume, st.Muted)

	if a.watcher != nil && st.Path != "" {
		if err := a.watcher.Set(st.Path); err != nil {
			zap.S().Warnf("Cannot watch %s: %v", st.Path, err)
		}
	}
}

// onFileChanged routes a reload request to whichever loop is running.
// The request names the path as the player knows it.
func (a *App) onFileChanged(changed string) {
	path := a.player.Status().Path
	if abs, err := filepath.Abs(path); err != nil || abs != changed {
		return
	}

	if a.forwarder != nil {
		a.forwarder.Reload(path)
		return
	}

	select {
	case a.reloads <- path:
	default:
	}
}

// Close releases the watcher, player and audio output
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	return a.player.Close()
}
