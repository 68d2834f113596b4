// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for turning decoded samples into device bytes
package encode

// Encoder encodes PCM int32 samples into an output byte layout
type Encoder interface {
	// Encode converts PCM samples to encoded audio data
	Encode(samples []int32) ([]byte, error)

	// Close releases encoder resources
	Close() error
}
