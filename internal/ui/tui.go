// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program and forwards player updates into it
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// NewModel creates a new TUI model
func NewModel(player Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "/path/to/file.wav"
	ti.Prompt = ""
	ti.CharLimit = 4096
	ti.Width = 60

	m := Model{
		player: player,
		prompt: ti,
	}
	m.refresh()
	return m
}

// Run creates the TUI program; the caller runs it
func Run(player Controller) *tea.Program {
	return tea.NewProgram(NewModel(player), tea.WithAltScreen(), tea.WithMouseCellMotion())
}

// Forwarder delivers messages to a running program without blocking the
// sender. Only the newest pending update is kept.
type Forwarder struct {
	updates chan UpdateMsg
	reloads chan ReloadMsg
	done    chan struct{}
}

// NewForwarder creates a forwarder; call Start once the program exists
func NewForwarder() *Forwarder {
	return &Forwarder{
		updates: make(chan UpdateMsg, 1),
		reloads: make(chan ReloadMsg, 4),
		done:    make(chan struct{}),
	}
}

// Start sends queued messages to program until Stop
func (f *Forwarder) Start(program *tea.Program) {
	go func() {
		for {
			select {
			case u := <-f.updates:
				program.Send(u)
			case r := <-f.reloads:
				program.Send(r)
			case <-f.done:
				return
			}
		}
	}()
}

// Update queues a notifier tick, replacing an undelivered one
func (f *Forwarder) Update(u UpdateMsg) {
	for {
		select {
		case f.updates <- u:
			return
		default:
		}
		// Drop the stale update and retry
		select {
		case <-f.updates:
		default:
		}
	}
}

// Reload queues a reload request
func (f *Forwarder) Reload(path string) {
	select {
	case f.reloads <- ReloadMsg{Path: path}:
	default:
		// Don't block if channel is full
	}
}

// Stop ends forwarding
func (f *Forwarder) Stop() {
	close(f.done)
}
