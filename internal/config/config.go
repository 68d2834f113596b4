// ABOUTME: Runtime configuration
// ABOUTME: Defaults, .env and MELODY_* environment variables, then command-line flags
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DefaultLogFile        = "melody.log"
	DefaultLogLevel       = "info"
	DefaultUpdateInterval = 50 * time.Millisecond
	DefaultMaxPlotSamples = 1000
	DefaultVolume         = 100

	MinUpdateInterval = 10 * time.Millisecond
	MaxUpdateInterval = time.Second
)

// Config holds all runtime configuration
type Config struct {
	// File is the wave file to open at startup (optional in TUI mode)
	File string

	LogFile  string
	LogLevel string

	// UpdateInterval is the cursor notifier period
	UpdateInterval time.Duration
	MaxPlotSamples int
	Volume         int

	NoTUI   bool // stream logs instead of the TUI
	NoAudio bool // use the silent output
	Watch   bool // reload the file when it changes on disk
}

// Load reads configuration from environment variables (via .env files) or
// defaults. Without arguments ./.env is tried; existing variables win.
func Load(envFiles ...string) *Config {
	// A missing .env is normal; only the environment and defaults apply then
	_ = godotenv.Load(envFiles...)

	return &Config{
		LogFile:        envStr("MELODY_LOG_FILE", DefaultLogFile),
		LogLevel:       envStr("MELODY_LOG_LEVEL", DefaultLogLevel),
		UpdateInterval: time.Duration(envInt("MELODY_UPDATE_INTERVAL_MS", int(DefaultUpdateInterval/time.Millisecond))) * time.Millisecond,
		MaxPlotSamples: envInt("MELODY_MAX_PLOT_SAMPLES", DefaultMaxPlotSamples),
		Volume:         envInt("MELODY_VOLUME", DefaultVolume),
		NoTUI:          envBool("MELODY_NO_TUI", false),
		NoAudio:        envBool("MELODY_NO_AUDIO", false),
		Watch:          envBool("MELODY_WATCH", false),
	}
}

// BindFlags registers command-line flags whose defaults are the loaded values
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Log file path")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
	fs.DurationVar(&c.UpdateInterval, "interval", c.UpdateInterval, "Cursor update interval")
	fs.IntVar(&c.MaxPlotSamples, "max-points", c.MaxPlotSamples, "Maximum waveform points per frame")
	fs.IntVar(&c.Volume, "volume", c.Volume, "Initial volume (0-100)")
	fs.BoolVar(&c.NoTUI, "no-tui", c.NoTUI, "Disable TUI, use streaming logs instead")
	fs.BoolVar(&c.NoTUI, "stream-logs", c.NoTUI, "Alias for --no-tui")
	fs.BoolVar(&c.NoAudio, "no-audio", c.NoAudio, "Play without an audio device")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "Reload the file when it changes on disk")
	_ = fs.MarkHidden("stream-logs")
}

// Validate clamps out-of-range values and describes each adjustment
func (c *Config) Validate() []string {
	var notes []string

	switch {
	case c.UpdateInterval < MinUpdateInterval:
		notes = append(notes, fmt.Sprintf("update interval %v raised to %v", c.UpdateInterval, MinUpdateInterval))
		c.UpdateInterval = MinUpdateInterval
	case c.UpdateInterval > MaxUpdateInterval:
		notes = append(notes, fmt.Sprintf("update interval %v lowered to %v", c.UpdateInterval, MaxUpdateInterval))
		c.UpdateInterval = MaxUpdateInterval
	}

	if c.MaxPlotSamples <= 0 {
		notes = append(notes, fmt.Sprintf("max plot samples %d replaced by %d", c.MaxPlotSamples, DefaultMaxPlotSamples))
		c.MaxPlotSamples = DefaultMaxPlotSamples
	}

	if c.Volume < 0 || c.Volume > 100 {
		v := min(100, max(0, c.Volume))
		notes = append(notes, fmt.Sprintf("volume %d clamped to %d", c.Volume, v))
		c.Volume = v
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		notes = append(notes, fmt.Sprintf("unknown log level %q, using %s", c.LogLevel, DefaultLogLevel))
		c.LogLevel = DefaultLogLevel
	}

	return notes
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
