// ABOUTME: Bubbletea model for the player TUI
// ABOUTME: Defines application state, key bindings and view rendering
package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/melody-observer/melody/internal/version"
	"github.com/melody-observer/melody/pkg/melody"
	"github.com/melody-observer/melody/pkg/waveform"
	"go.uber.org/zap"
)

// ErrSelectionCancelled is returned when the file prompt is dismissed
var ErrSelectionCancelled = errors.New("file selection cancelled")

// Lines around the canvas: title, timestamp, status, message, help
const chromeLines = 5

const (
	minCanvasHeight = 3
	volumeStep      = 5
	scrollFraction  = 0.1
)

// Controller is the transport the UI drives
type Controller interface {
	Load(path string) error
	Play() error
	Pause() error
	Stop() error
	Zoom(dir waveform.Direction) waveform.View
	Scroll(delta float64) waveform.View
	SetCanvas(width, height int)
	Frame() (melody.Frame, bool)
	SetVolume(volume int) error
	Mute(muted bool) error
	Status() melody.PlayerState
}

// UpdateMsg carries a notifier tick into the UI
type UpdateMsg melody.Update

// ReloadMsg asks the UI to reload a file that changed on disk
type ReloadMsg struct {
	Path string
}

// Model represents the TUI state
type Model struct {
	player Controller

	// Transport
	status   melody.PlayerState
	frame    melody.Frame
	hasFrame bool

	// Cursor
	elapsed       time.Duration
	cursor        int
	cursorVisible bool

	// File prompt
	prompt    textinput.Model
	prompting bool

	// Last error or notice
	message string
	isError bool

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.player.SetCanvas(m.canvasSize())
		m.refresh()

	case UpdateMsg:
		m.applyUpdate(melody.Update(msg))

	case ReloadMsg:
		m.reload(msg.Path)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderWaveform())
	b.WriteString("\n")
	b.WriteString(m.renderTimestamp())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderMessage())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// canvasSize returns the waveform area for the current terminal
func (m Model) canvasSize() (int, int) {
	return m.width, max(minCanvasHeight, m.height-chromeLines)
}

// renderHeader renders the title and loaded file
func (m Model) renderHeader() string {
	file := "No file loaded"
	if m.status.Path != "" {
		file = filepath.Base(m.status.Path)
	}
	return titleStyle.Render(version.Product) + "  " + valueStyle.Render(truncate(file, max(10, m.width-len(version.Product)-2)))
}

// renderWaveform renders the canvas, or a placeholder before the first load
func (m Model) renderWaveform() string {
	w, h := m.canvasSize()
	if !m.hasFrame {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, faintStyle.Render("Press 'o' to open a wave file"))
	}
	return renderCanvas(m.frame, m.cursor, m.cursorVisible)
}

// renderTimestamp renders "MM:SS / MM:SS"
func (m Model) renderTimestamp() string {
	return headerStyle.Render(melody.FormatTimestamp(m.elapsed, m.status.Duration))
}

// renderStatus renders transport, format, zoom and volume
func (m Model) renderStatus() string {
	muteIcon := ""
	if m.status.Muted {
		muteIcon = " muted"
	}

	format := "-"
	if f := m.status.Format; f.SampleRate > 0 {
		format = fmt.Sprintf("%dHz %s %d-bit", f.SampleRate, channelName(f.Channels), f.BitDepth)
	}

	return fmt.Sprintf("%s  %s  %s  %s",
		headerStyle.Render(strings.ToUpper(m.status.State.String())),
		valueStyle.Render(format),
		valueStyle.Render(fmt.Sprintf("zoom x%.2f", m.status.Zoom)),
		valueStyle.Render(fmt.Sprintf("vol [%s] %d%%%s", renderBar(m.status.Volume, 100, 10), m.status.Volume, muteIcon)))
}

// renderMessage renders the prompt, or the last message
func (m Model) renderMessage() string {
	if m.prompting {
		return headerStyle.Render("Open: ") + m.prompt.View()
	}
	if m.isError {
		return errorStyle.Render(m.message)
	}
	return faintStyle.Render(m.message)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return faintStyle.Render("o:Open  space:Play/Pause  s:Stop  +/-:Zoom  ←/→:Scroll  ↑/↓:Volume  m:Mute  q:Quit")
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "o":
		m.prompting = true
		m.prompt.SetValue("")
		cmd := m.prompt.Focus()
		return m, cmd
	case " ", "p":
		m.togglePlay()
	case "s":
		m.stop()
	case "+", "=":
		m.player.Zoom(waveform.ZoomIn)
		m.refresh()
	case "-", "_":
		m.player.Zoom(waveform.ZoomOut)
		m.refresh()
	case "left", "h":
		m.scroll(-1)
	case "right", "l":
		m.scroll(1)
	case "up":
		m.report(m.player.SetVolume(min(100, m.status.Volume+volumeStep)))
		m.refresh()
	case "down":
		m.report(m.player.SetVolume(max(0, m.status.Volume-volumeStep)))
		m.refresh()
	case "m":
		m.report(m.player.Mute(!m.status.Muted))
		m.refresh()
	}

	return m, nil
}

// handlePromptKey feeds the file prompt
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.prompting = false
		m.prompt.Blur()
		m.load(selectedPath(m.prompt.Value()))
		return m, nil

	case tea.KeyEsc, tea.KeyCtrlC:
		m.prompting = false
		m.prompt.Blur()
		m.load("", ErrSelectionCancelled)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleMouse zooms on wheel ticks
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.player.Zoom(waveform.ZoomIn)
		m.refresh()
	case tea.MouseButtonWheelDown:
		m.player.Zoom(waveform.ZoomOut)
		m.refresh()
	case tea.MouseButtonWheelLeft:
		m.scroll(-1)
	case tea.MouseButtonWheelRight:
		m.scroll(1)
	}

	return m, nil
}

// selectedPath validates prompt input
func selectedPath(value string) (string, error) {
	path := strings.TrimSpace(value)
	if path == "" {
		return "", ErrSelectionCancelled
	}
	return path, nil
}

// load loads path unless selection failed. Cancellation is not an error.
func (m *Model) load(path string, err error) {
	if errors.Is(err, ErrSelectionCancelled) {
		m.setMessage("", false)
		return
	}
	if err == nil {
		err = m.player.Load(path)
	}
	if err != nil {
		zap.S().Warnf("Load failed: %v", err)
		m.setMessage(err.Error(), true)
		m.refresh()
		return
	}

	m.setMessage(fmt.Sprintf("Loaded %s", filepath.Base(path)), false)
	m.refresh()
}

// reload reloads the current file after an on-disk change
func (m *Model) reload(path string) {
	if path == "" || path != m.status.Path {
		return
	}

	wasPlaying := m.status.State == melody.Playing
	if err := m.player.Load(path); err != nil {
		zap.S().Warnf("Reload failed: %v", err)
		m.setMessage(fmt.Sprintf("Reload failed: %v", err), true)
		m.refresh()
		return
	}
	if wasPlaying {
		m.report(m.player.Play())
	}

	m.setMessage(fmt.Sprintf("Reloaded %s", filepath.Base(path)), false)
	m.refresh()
}

// togglePlay plays or pauses
func (m *Model) togglePlay() {
	if m.status.State == melody.Playing {
		m.report(m.player.Pause())
	} else {
		m.report(m.player.Play())
	}
	m.refresh()
}

// stop stops and clears the cursor
func (m *Model) stop() {
	m.report(m.player.Stop())
	m.refresh()
}

// scroll moves the view by a tenth of the visible window
func (m *Model) scroll(dir float64) {
	if m.status.Duration <= 0 || m.status.Zoom <= 0 {
		return
	}
	visible := m.status.Duration.Seconds() / m.status.Zoom
	m.player.Scroll(dir * visible * scrollFraction)
	m.refresh()
}

// applyUpdate moves the cursor. Ticks from an earlier load or arriving
// after playback left Playing are dropped.
func (m *Model) applyUpdate(u melody.Update) {
	if u.SessionID != m.status.SessionID || m.status.State != melody.Playing {
		return
	}

	if u.Finished {
		m.stop()
		m.setMessage("Finished", false)
		return
	}

	m.elapsed = u.Elapsed
	m.cursor = u.Cursor
	m.cursorVisible = u.CursorVisible
}

// refresh re-reads status and frame from the player
func (m *Model) refresh() {
	m.status = m.player.Status()
	m.frame, m.hasFrame = m.player.Frame()
	m.elapsed = m.status.Elapsed
	m.cursor = m.frame.Cursor
	m.cursorVisible = m.frame.CursorVisible
}

// report shows err, if any
func (m *Model) report(err error) {
	if err != nil {
		zap.S().Warnf("Player error: %v", err)
		m.setMessage(err.Error(), true)
	}
}

func (m *Model) setMessage(text string, isError bool) {
	m.message = text
	m.isError = isError
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func channelName(channels int) string {
	if channels == 1 {
		return "Mono"
	}
	return "Stereo"
}
