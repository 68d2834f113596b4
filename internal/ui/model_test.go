// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests key bindings, update ticks, file prompt and rendering
package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/melody-observer/melody/pkg/audio"
	"github.com/melody-observer/melody/pkg/melody"
	"github.com/melody-observer/melody/pkg/waveform"
)

// fakePlayer is a Controller that records calls
type fakePlayer struct {
	state    melody.PlayerState
	view     waveform.View
	calls    []string
	loaded   []string
	loadErr  error
	zooms    []waveform.Direction
	scrolls  []float64
	canvasW  int
	canvasH  int
	frameSet bool
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		state: melody.PlayerState{State: melody.Idle, Volume: 100, Zoom: 1},
		view:  waveform.NewView(),
	}
}

func (f *fakePlayer) Load(path string) error {
	f.calls = append(f.calls, "load")
	if f.loadErr != nil {
		return f.loadErr
	}
	f.loaded = append(f.loaded, path)
	f.state.State = melody.Loaded
	f.state.Path = path
	f.state.SessionID = "session-" + path
	f.state.Duration = 10 * time.Second
	f.state.Format = audio.Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
	f.frameSet = true
	return nil
}

func (f *fakePlayer) Play() error {
	f.calls = append(f.calls, "play")
	if f.state.Path == "" {
		return melody.ErrNotLoaded
	}
	f.state.State = melody.Playing
	return nil
}

func (f *fakePlayer) Pause() error {
	f.calls = append(f.calls, "pause")
	if f.state.State == melody.Playing {
		f.state.State = melody.Paused
	}
	return nil
}

func (f *fakePlayer) Stop() error {
	f.calls = append(f.calls, "stop")
	f.state.State = melody.Idle
	f.state.Elapsed = 0
	return nil
}

func (f *fakePlayer) Zoom(dir waveform.Direction) waveform.View {
	f.zooms = append(f.zooms, dir)
	f.view = waveform.ApplyZoomDelta(f.view, dir, f.state.Duration.Seconds())
	f.state.Zoom = f.view.Zoom
	return f.view
}

func (f *fakePlayer) Scroll(delta float64) waveform.View {
	f.scrolls = append(f.scrolls, delta)
	return f.view
}

func (f *fakePlayer) SetCanvas(width, height int) {
	f.canvasW, f.canvasH = width, height
}

func (f *fakePlayer) Frame() (melody.Frame, bool) {
	if !f.frameSet {
		return melody.Frame{}, false
	}
	return melody.Frame{Width: f.canvasW, Height: f.canvasH}, true
}

func (f *fakePlayer) SetVolume(volume int) error {
	f.state.Volume = volume
	return nil
}

func (f *fakePlayer) Mute(muted bool) error {
	f.state.Muted = muted
	return nil
}

func (f *fakePlayer) Status() melody.PlayerState {
	return f.state
}

func (f *fakePlayer) lastCall() string {
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func loadedModel(t *testing.T) (Model, *fakePlayer) {
	t.Helper()
	fp := newFakePlayer()
	if err := fp.Load("/music/song.wav"); err != nil {
		t.Fatal(err)
	}
	fp.calls = nil
	m := send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, fp
}

func TestNewModel(t *testing.T) {
	fp := newFakePlayer()
	model := NewModel(fp)

	if model.status.State != melody.Idle {
		t.Errorf("expected idle, got %s", model.status.State)
	}
	if model.status.Volume != 100 {
		t.Errorf("expected default volume 100, got %d", model.status.Volume)
	}
	if model.hasFrame {
		t.Error("expected no frame before load")
	}
	if model.prompting {
		t.Error("expected prompt closed initially")
	}
	if model.View() != "Loading..." {
		t.Errorf("expected loading view before the first resize, got %q", model.View())
	}
}

func TestWindowSizeSetsCanvas(t *testing.T) {
	fp := newFakePlayer()
	send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24})

	if fp.canvasW != 80 || fp.canvasH != 24-chromeLines {
		t.Errorf("expected canvas 80x%d, got %dx%d", 24-chromeLines, fp.canvasW, fp.canvasH)
	}

	send(NewModel(fp), tea.WindowSizeMsg{Width: 40, Height: 4})
	if fp.canvasH != minCanvasHeight {
		t.Errorf("expected minimum canvas height %d, got %d", minCanvasHeight, fp.canvasH)
	}
}

func TestTogglePlayPause(t *testing.T) {
	m, fp := loadedModel(t)

	m = send(m, key(" "))
	if fp.lastCall() != "play" || m.status.State != melody.Playing {
		t.Fatalf("expected play, got %v (state %s)", fp.calls, m.status.State)
	}

	m = send(m, key(" "))
	if fp.lastCall() != "pause" || m.status.State != melody.Paused {
		t.Fatalf("expected pause, got %v (state %s)", fp.calls, m.status.State)
	}

	m = send(m, key("p"))
	if fp.lastCall() != "play" {
		t.Errorf("expected p to resume, got %v", fp.calls)
	}
}

func TestPlayWithoutFileShowsError(t *testing.T) {
	fp := newFakePlayer()
	m := send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24}, key(" "))

	if !m.isError || m.message != melody.ErrNotLoaded.Error() {
		t.Errorf("expected not-loaded error message, got %q", m.message)
	}
}

func TestStopKey(t *testing.T) {
	m, fp := loadedModel(t)
	m = send(m, key(" "), key("s"))

	if fp.lastCall() != "stop" {
		t.Errorf("expected stop, got %v", fp.calls)
	}
	if m.status.State != melody.Idle || m.cursorVisible {
		t.Errorf("expected idle without cursor, got %s (cursor %v)", m.status.State, m.cursorVisible)
	}
}

func TestUpdateMsgMovesCursor(t *testing.T) {
	m, _ := loadedModel(t)
	m = send(m, key(" "))

	m = send(m, UpdateMsg{
		SessionID:     m.status.SessionID,
		Elapsed:       3 * time.Second,
		Total:         10 * time.Second,
		Cursor:        24,
		CursorVisible: true,
	})

	if m.elapsed != 3*time.Second || m.cursor != 24 || !m.cursorVisible {
		t.Errorf("expected cursor 24 at 3s, got %d at %v (visible=%v)", m.cursor, m.elapsed, m.cursorVisible)
	}
	if !strings.Contains(m.View(), "00:03 / 00:10") {
		t.Error("expected timestamp in view")
	}
}

func TestUpdateMsgIgnoredWhenNotPlaying(t *testing.T) {
	m, _ := loadedModel(t)
	m = send(m, key(" "), key(" ")) // paused

	m = send(m, UpdateMsg{SessionID: m.status.SessionID, Elapsed: 5 * time.Second, Cursor: 40, CursorVisible: true})
	if m.elapsed == 5*time.Second || m.cursor == 40 {
		t.Error("expected stale tick to be dropped while paused")
	}
}

func TestUpdateMsgIgnoredFromOtherSession(t *testing.T) {
	m, _ := loadedModel(t)
	m = send(m, key(" "))

	m = send(m, UpdateMsg{SessionID: "previous", Elapsed: 5 * time.Second, Cursor: 40, CursorVisible: true})
	if m.cursor == 40 {
		t.Error("expected tick from another session to be dropped")
	}
}

func TestFinishedUpdateStops(t *testing.T) {
	m, fp := loadedModel(t)
	m = send(m, key(" "))

	m = send(m, UpdateMsg{SessionID: m.status.SessionID, Elapsed: 10 * time.Second, Finished: true})
	if fp.lastCall() != "stop" {
		t.Errorf("expected stop at end of track, got %v", fp.calls)
	}
	if m.status.State != melody.Idle {
		t.Errorf("expected idle, got %s", m.status.State)
	}
}

func TestZoomKeys(t *testing.T) {
	m, fp := loadedModel(t)
	m = send(m, key("+"), key("="), key("-"))

	want := []waveform.Direction{waveform.ZoomIn, waveform.ZoomIn, waveform.ZoomOut}
	if len(fp.zooms) != len(want) {
		t.Fatalf("expected %d zoom calls, got %d", len(want), len(fp.zooms))
	}
	for i := range want {
		if fp.zooms[i] != want[i] {
			t.Errorf("zoom %d: expected %s, got %s", i, want[i], fp.zooms[i])
		}
	}
	if m.status.Zoom != fp.view.Zoom {
		t.Errorf("expected status zoom %v, got %v", fp.view.Zoom, m.status.Zoom)
	}
}

func TestMouseWheelZooms(t *testing.T) {
	m, fp := loadedModel(t)
	send(m,
		tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress},
		tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
		tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease},
	)

	if len(fp.zooms) != 2 || fp.zooms[0] != waveform.ZoomIn || fp.zooms[1] != waveform.ZoomOut {
		t.Errorf("expected in then out, got %v", fp.zooms)
	}
}

func TestScrollKeys(t *testing.T) {
	m, fp := loadedModel(t)
	m = send(m, key("+"))
	send(m, key("right"), key("left"))

	if len(fp.scrolls) != 2 {
		t.Fatalf("expected 2 scroll calls, got %d", len(fp.scrolls))
	}
	step := 10.0 / fp.view.Zoom * scrollFraction
	if fp.scrolls[0] != step || fp.scrolls[1] != -step {
		t.Errorf("expected ±%v, got %v", step, fp.scrolls)
	}
}

func TestVolumeKeys(t *testing.T) {
	m, fp := loadedModel(t)

	m = send(m, key("up"))
	if fp.state.Volume != 100 {
		t.Errorf("expected volume capped at 100, got %d", fp.state.Volume)
	}

	m = send(m, key("down"), key("down"))
	if m.status.Volume != 90 {
		t.Errorf("expected volume 90, got %d", m.status.Volume)
	}

	m = send(m, key("m"))
	if !m.status.Muted {
		t.Error("expected muted")
	}
	m = send(m, key("m"))
	if m.status.Muted {
		t.Error("expected unmuted")
	}
}

func TestOpenPromptLoads(t *testing.T) {
	fp := newFakePlayer()
	m := send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24}, key("o"))
	if !m.prompting {
		t.Fatal("expected prompt to open")
	}

	m = send(m, key("/tmp/a.wav"), key("enter"))
	if m.prompting {
		t.Error("expected prompt to close")
	}
	if len(fp.loaded) != 1 || fp.loaded[0] != "/tmp/a.wav" {
		t.Errorf("expected load of /tmp/a.wav, got %v", fp.loaded)
	}
	if m.status.State != melody.Loaded || !m.hasFrame {
		t.Errorf("expected loaded with a frame, got %s", m.status.State)
	}
}

func TestOpenPromptCancel(t *testing.T) {
	fp := newFakePlayer()
	m := send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24}, key("o"), key("x.wav"), key("esc"))

	if m.prompting {
		t.Error("expected prompt to close")
	}
	if len(fp.calls) != 0 {
		t.Errorf("expected no player calls, got %v", fp.calls)
	}
	if m.isError {
		t.Errorf("expected cancellation to be silent, got %q", m.message)
	}
}

func TestOpenPromptEmptyIsCancel(t *testing.T) {
	fp := newFakePlayer()
	m := send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24}, key("o"), key("enter"))

	if len(fp.calls) != 0 || m.isError {
		t.Errorf("expected empty input to cancel, got calls %v message %q", fp.calls, m.message)
	}
}

func TestLoadErrorShown(t *testing.T) {
	fp := newFakePlayer()
	fp.loadErr = &audio.UnsupportedFormatError{Channels: 6}
	m := send(NewModel(fp), tea.WindowSizeMsg{Width: 80, Height: 24}, key("o"), key("surround.wav"), key("enter"))

	if !m.isError || !strings.Contains(m.message, "6 channels") {
		t.Errorf("expected format error message, got %q", m.message)
	}
	if m.status.State != melody.Idle {
		t.Errorf("expected idle, got %s", m.status.State)
	}
}

func TestSelectedPath(t *testing.T) {
	if _, err := selectedPath("   "); !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got %v", err)
	}
	if p, err := selectedPath("  song.wav "); err != nil || p != "song.wav" {
		t.Errorf("expected trimmed path, got %q, %v", p, err)
	}
}

func TestReloadMsg(t *testing.T) {
	m, fp := loadedModel(t)
	m = send(m, key(" "))

	m = send(m, ReloadMsg{Path: "/music/other.wav"})
	if len(fp.loaded) != 1 {
		t.Errorf("expected reload of another file to be ignored, got %v", fp.loaded)
	}

	m = send(m, ReloadMsg{Path: "/music/song.wav"})
	if len(fp.loaded) != 2 {
		t.Fatalf("expected reload, got %v", fp.loaded)
	}
	if fp.lastCall() != "play" || m.status.State != melody.Playing {
		t.Errorf("expected playback to resume after reload, got %v", fp.calls)
	}
}

func TestQuit(t *testing.T) {
	m, _ := loadedModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewShowsStatus(t *testing.T) {
	m, _ := loadedModel(t)
	view := m.View()

	for _, want := range []string{"song.wav", "LOADED", "44100Hz Stereo 16-bit", "zoom x1.00", "00:00 / 00:10"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(50, 100, 10); got != "█████░░░░░" {
		t.Errorf("unexpected bar %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged, got %q", got)
	}
	if got := truncate("a very long file name.wav", 10); got != "a very ..." {
		t.Errorf("expected truncated, got %q", got)
	}
}
