// ABOUTME: PCM encoder implementation
// ABOUTME: Packs 24-bit range samples into 16-bit or 24-bit little-endian bytes
package encode

import (
	"encoding/binary"
	"fmt"

	"github.com/melody-observer/melody/pkg/audio"
)

// PCMEncoder encodes to raw little-endian PCM
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates a new PCM encoder for 16 or 24-bit output
func NewPCM(bitDepth int) (*PCMEncoder, error) {
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}

	return &PCMEncoder{bitDepth: bitDepth}, nil
}

// BitDepth returns the output sample width in bits
func (e *PCMEncoder) BitDepth() int {
	return e.bitDepth
}

// Encode converts int32 samples to PCM bytes
func (e *PCMEncoder) Encode(samples []int32) ([]byte, error) {
	if e.bitDepth == 24 {
		return encode24(samples), nil
	}
	return encode16(samples), nil
}

// Close releases resources (no-op for PCM)
func (e *PCMEncoder) Close() error {
	return nil
}

func encode16(samples []int32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(audio.SampleToInt16(s)))
	}
	return out
}

func encode24(samples []int32) []byte {
	out := make([]byte, len(samples)*3)
	for i, s := range samples {
		if s > audio.Max24Bit {
			s = audio.Max24Bit
		} else if s < audio.Min24Bit {
			s = audio.Min24Bit
		}
		out[i*3] = byte(s)
		out[i*3+1] = byte(s >> 8)
		out[i*3+2] = byte(s >> 16)
	}
	return out
}
