// Package host defines the capability surface the camera core expects from
// its hosting application. The microscopy host's plugin ABI is out of scope;
// these interfaces are the contract any host adapter has to satisfy.
package host

import "errors"

// ErrBufferOverflow signals that the host's image storage is full. It is the
// one recoverable acquisition error: the camera clears the sink and retries
// the frame exactly once.
var ErrBufferOverflow = errors.New("host image buffer overflow")

// Metadata carries per-frame annotations handed to the host alongside the
// pixel data.
type Metadata map[string]string

// Standard metadata keys attached to every reported frame.
const (
	MetaCamera    = "Camera"
	MetaStartTime = "StartTimeMs"
	MetaROIX      = "ROI-X"
	MetaROIY      = "ROI-Y"
	MetaBinning   = "Binning"
)

// FrameSink receives completed frames from the camera. Implementations may
// return ErrBufferOverflow (possibly wrapped) when their storage is full.
type FrameSink interface {
	// InsertImage hands one frame to the host. The pixel slice is only
	// valid for the duration of the call; sinks that keep it must copy.
	InsertImage(pixels []byte, width, height, bytesPerPixel int, md Metadata) error

	// Clear discards all frames buffered by the sink. Called by the
	// camera after an overflow, before the single retry.
	Clear() error
}
