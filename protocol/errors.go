package protocol

import "fmt"

// ResponseError indicates the sensor answered a command with the wrong
// number of bytes. It is distinct from a transport error: the port worked,
// the device said something unexpected.
type ResponseError struct {
	// Operation is the command that failed
	Operation string

	// Got is the number of bytes actually received
	Got int

	// Want is the expected response length
	Want int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: short response from device, read %d of %d bytes", e.Operation, e.Got, e.Want)
}

// IsResponseError returns true if the error is a ResponseError.
func IsResponseError(err error) bool {
	_, ok := err.(*ResponseError)
	return ok
}
