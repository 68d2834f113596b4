// ABOUTME: Audio output tests
// ABOUTME: Verifies Output implementations and volume helpers
package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/melody-observer/melody/pkg/audio"
)

func TestOutputsImplementInterfaces(t *testing.T) {
	var _ Output = (*Oto)(nil)
	var _ Output = (*Null)(nil)
	var _ VolumeControl = (*Oto)(nil)
	var _ VolumeControl = (*Null)(nil)
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-10, 0},
		{0, 0},
		{50, 50},
		{100, 100},
		{150, 100},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestGetVolumeMultiplier(t *testing.T) {
	if m := getVolumeMultiplier(50, false); m != 0.5 {
		t.Errorf("expected 0.5, got %v", m)
	}
	if m := getVolumeMultiplier(100, true); m != 0 {
		t.Errorf("expected 0 when muted, got %v", m)
	}
}

func TestDeviceBytesSameFormat(t *testing.T) {
	pcm := &audio.PCM{
		Format:  audio.Format{SampleRate: 1000, Channels: 1, BitDepth: 16},
		Samples: []int32{256 << 8, -1 << 8},
	}

	out, err := deviceBytes(pcm, 1000, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []byte{0x00, 0x01, 0xff, 0xff}
	if !bytes.Equal(out, expected) {
		t.Errorf("expected % x, got % x", expected, out)
	}
}

func TestDeviceBytesConvertsToDeviceFormat(t *testing.T) {
	pcm := &audio.PCM{
		Format:  audio.Format{SampleRate: 1000, Channels: 1, BitDepth: 16},
		Samples: make([]int32, 100),
	}

	// Mono 1kHz into a stereo 2kHz device: 99 interpolated spans, two frames each, two channels, two bytes
	out, err := deviceBytes(pcm, 2000, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 198*2*2 {
		t.Errorf("expected %d bytes, got %d", 198*2*2, len(out))
	}
}

func TestOtoByteOffset(t *testing.T) {
	o := &Oto{sampleRate: 1000, channels: 2, data: make([]byte, 4000)}

	if pos := o.byteOffset(0); pos != 0 {
		t.Errorf("expected 0, got %d", pos)
	}
	if pos := o.byteOffset(250 * time.Millisecond); pos != 1000 {
		t.Errorf("expected 1000, got %d", pos)
	}
	// Offsets beyond the end clamp to the data length
	if pos := o.byteOffset(5 * time.Second); pos != 4000 {
		t.Errorf("expected 4000, got %d", pos)
	}
}

func TestOtoPlayBeforeLoad(t *testing.T) {
	o := NewOto()
	if err := o.Play(0); err == nil {
		t.Error("expected Play to fail before Load")
	}
}

func TestNullTransport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	n := NewNull()
	if err := n.Play(0); err == nil {
		t.Error("expected Play to fail before Load")
	}

	if err := n.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := n.Play(time.Second); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if !n.Playing() || n.Offset() != time.Second {
		t.Errorf("expected playing at 1s, got playing=%v offset=%v", n.Playing(), n.Offset())
	}

	n.Pause()
	if n.Playing() {
		t.Error("expected paused")
	}

	n.Stop()
	if n.Offset() != 0 {
		t.Errorf("expected offset reset by Stop, got %v", n.Offset())
	}
}

func TestNullLoadMissingFile(t *testing.T) {
	n := NewNull()
	if err := n.Load(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected Load to fail for missing file")
	}
}

func TestNullVolume(t *testing.T) {
	n := NewNull()
	n.SetVolume(150)
	if n.volume != 100 {
		t.Errorf("expected volume clamped to 100, got %d", n.volume)
	}
	n.SetMuted(true)
	if !n.muted {
		t.Error("expected muted")
	}
}
