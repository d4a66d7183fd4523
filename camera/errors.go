package camera

import "fmt"

// DeviceBusyError indicates an operation was rejected because a sequence
// acquisition is running. The rejected operation has no side effects.
type DeviceBusyError struct {
	// Operation is the rejected operation
	Operation string
}

func (e *DeviceBusyError) Error() string {
	return fmt.Sprintf("%s rejected: camera is busy acquiring", e.Operation)
}

// IsDeviceBusy returns true if the error is a DeviceBusyError.
func IsDeviceBusy(err error) bool {
	_, ok := err.(*DeviceBusyError)
	return ok
}

// UnsupportedModeError indicates an invalid pixel-format or bit-depth
// selection. The rejected value leaves camera state untouched.
type UnsupportedModeError struct {
	Property string
	Value    string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported %s %q", e.Property, e.Value)
}

// ImageReadTimeoutError indicates the bulk image payload was still
// incomplete after the read iteration cap. The partial data is discarded;
// a truncated frame is never delivered.
type ImageReadTimeoutError struct {
	// BytesRead is how much of the payload arrived
	BytesRead int

	// BytesExpected is the full payload size
	BytesExpected int

	// Iterations is the number of read attempts made
	Iterations int
}

func (e *ImageReadTimeoutError) Error() string {
	return fmt.Sprintf("image read incomplete: %d of %d bytes after %d iterations",
		e.BytesRead, e.BytesExpected, e.Iterations)
}

// IsImageReadTimeout returns true if the error is an ImageReadTimeoutError.
func IsImageReadTimeout(err error) bool {
	_, ok := err.(*ImageReadTimeoutError)
	return ok
}
