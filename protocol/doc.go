// Package protocol implements the Abisense camera serial command set.
//
// This package provides functions to build command lines and decode the
// sensor's binary responses. It performs no I/O; the camera package drives
// the actual exchanges.
//
// # Protocol Overview
//
// Commands are plain ASCII lines; responses are fixed-length binary blobs
// or, for readout, a bulk payload sized by the current acquisition mode:
//
//	sht <exposureMs>        -> 2-byte confirmation after exposure completes
//	rid <binning> <depth>   -> width*height*bytesPerPixel payload bytes
//	chp\n                   -> 4 bytes, little-endian 12-bit ADC code
//	cld <0|1>\n             -> 1 confirmation byte
//	hlp                     -> help text ending in "\r\n\r\n\r\n"
//
// Confirmation content is opaque; only the byte count is validated.
//
// # Command Builders
//
// Use the Build* functions to create command lines:
//
//	cmd, err := protocol.BuildShutterCmd(1000)
//	cmd, err := protocol.BuildReadoutCmd(2, 12)
//	cmd := protocol.BuildTemperatureCmd()
//	// ... etc
//
// # Response Decoding
//
// Use DecodeTemperature for `chp` responses:
//
//	tempC, err := protocol.DecodeTemperature(resp)
//
// and ImageSize to compute the expected `rid` payload length.
//
// # Error Handling
//
// A short response surfaces as a *ResponseError carrying the operation name
// and the got/want byte counts:
//
//	if protocol.IsResponseError(err) {
//	    // the port worked; the sensor misbehaved
//	}
package protocol
