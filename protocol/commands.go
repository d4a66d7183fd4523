package protocol

import "fmt"

// validBinnings are the binning factors the sensor readout accepts.
var validBinnings = map[int]bool{1: true, 2: true, 4: true, 8: true, 16: true, 32: true, 64: true}

// validBitDepths are the ADC modes the sensor readout accepts.
var validBitDepths = map[int]bool{6: true, 8: true, 10: true, 12: true}

// ValidBinning reports whether b is a binning factor the sensor supports.
func ValidBinning(b int) bool { return validBinnings[b] }

// ValidBitDepth reports whether d is a bit depth the sensor supports.
func ValidBitDepth(d int) bool { return validBitDepths[d] }

// BuildShutterCmd constructs a `sht` exposure command.
// The sensor opens the shutter for exposureMs milliseconds and, once the
// exposure plus its internal delay completes, replies with a
// ShutterConfirmationSize-byte binary confirmation. The command is sent
// without a terminator.
//
// Command format:
//
//	sht <exposureMs>
func BuildShutterCmd(exposureMs int) ([]byte, error) {
	if exposureMs < 0 {
		return nil, fmt.Errorf("exposure must be non-negative, got %d ms", exposureMs)
	}
	return []byte(fmt.Sprintf("sht %d", exposureMs)), nil
}

// BuildReadoutCmd constructs a `rid` readout command for the last exposure.
// The sensor answers with a bulk binary payload of
// (SensorWidth/binning) * (SensorHeight/binning) * bytesPerPixel bytes.
// The command is sent without a terminator.
//
// Command format:
//
//	rid <binning> <bitDepth>
func BuildReadoutCmd(binning, bitDepth int) ([]byte, error) {
	if !ValidBinning(binning) {
		return nil, fmt.Errorf("unsupported binning factor %d", binning)
	}
	if !ValidBitDepth(bitDepth) {
		return nil, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
	return []byte(fmt.Sprintf("rid %d %d", binning, bitDepth)), nil
}

// BuildTemperatureCmd constructs a `chp` chip-temperature query.
// The sensor answers with TemperatureResponseSize bytes; decode them with
// DecodeTemperature. The command is terminated by LineTerminator.
func BuildTemperatureCmd() []byte {
	return []byte("chp" + LineTerminator)
}

// BuildCoolingCmd constructs a `cld` cooling on/off command.
// The sensor answers with a single confirmation byte. The command is
// terminated by LineTerminator.
//
// Command format:
//
//	cld <0|1>
func BuildCoolingCmd(enable bool) []byte {
	v := 0
	if enable {
		v = 1
	}
	return []byte(fmt.Sprintf("cld %d%s", v, LineTerminator))
}

// BuildHelpCmd constructs a `hlp` command. The sensor answers with free-form
// help text ending in HelpTerminator. The command is sent without a
// terminator.
func BuildHelpCmd() []byte {
	return []byte("hlp")
}
