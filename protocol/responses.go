package protocol

// DecodeTemperature converts a `chp` response into degrees Celsius.
//
// Response format (TemperatureResponseSize bytes):
//
//	[ADC_L][ADC_H][UNUSED(2)]
//
// Bytes 0-1 form a little-endian 16-bit word whose low 12 bits carry the
// ADC code. The code maps linearly onto TempADCScale Kelvin across the
// TempADCRange code span.
func DecodeTemperature(resp []byte) (float64, error) {
	if len(resp) != TemperatureResponseSize {
		return 0, &ResponseError{Operation: "chip temperature", Got: len(resp), Want: TemperatureResponseSize}
	}

	code := int(resp[1])*256 + int(resp[0])
	kelvin := float64(code) * TempADCScale / TempADCRange
	return kelvin - KelvinOffset, nil
}

// ImageSize returns the expected `rid` payload size in bytes for the given
// binning factor and pixel width.
func ImageSize(binning, bytesPerPixel int) int {
	return (SensorWidth / binning) * (SensorHeight / binning) * bytesPerPixel
}
