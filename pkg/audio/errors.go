// ABOUTME: Load error taxonomy
// ABOUTME: Format, degenerate-signal and generic I/O failures raised while loading a file
package audio

import (
	"errors"
	"fmt"
)

// ErrDegenerateSignal is returned when a file has no non-zero sample to normalize against
var ErrDegenerateSignal = errors.New("degenerate signal: peak amplitude is zero")

// UnsupportedFormatError reports a container the signal model cannot represent
type UnsupportedFormatError struct {
	Channels int
	Reason   string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported format: %s", e.Reason)
	}
	return fmt.Sprintf("unsupported format: wav file has %d channels (supported: 1, 2)", e.Channels)
}

// LoadError wraps any other failure with the offending path attached
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
