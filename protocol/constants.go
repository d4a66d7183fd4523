package protocol

// Sensor geometry for the Abisense development camera.
const (
	// SensorWidth is the full-frame width in pixels at binning 1
	SensorWidth = 512

	// SensorHeight is the full-frame height in pixels at binning 1
	SensorHeight = 512

	// MaxBitDepth is the deepest ADC mode the sensor supports
	MaxBitDepth = 12
)

// Confirmation and response sizes. The sensor acknowledges commands with
// short fixed-length binary responses; the content of a confirmation is
// opaque, only its length is checked.
const (
	// ShutterConfirmationSize is the confirmation length after `sht` (2 bytes)
	ShutterConfirmationSize = 2

	// TemperatureResponseSize is the response length for `chp` (4 bytes)
	TemperatureResponseSize = 4

	// CoolingConfirmationSize is the confirmation length after `cld` (1 byte)
	CoolingConfirmationSize = 1
)

// Timing constants for the exchange protocol. The sensor has no flow
// control: the host sleeps through hardware turnaround and then polls.
const (
	// SettleDelayMs is added to the exposure time before reading the
	// shutter confirmation, covering internal sensor delays
	SettleDelayMs = 700

	// StatusDelayMs is the turnaround sleep for status commands
	// (`chp`, `cld`) before their response is read
	StatusDelayMs = 100

	// RetryDelayMs is the back-off sleep after a bulk read returns zero
	// bytes (the sensor has nothing buffered yet)
	RetryDelayMs = 100
)

// Bulk image transfer bounds. The `rid` payload arrives in arbitrary
// partial reads; the read loop is capped so a dead sensor cannot hang
// an acquisition forever.
const (
	// BulkChunkSize is the maximum bytes requested per read iteration
	BulkChunkSize = 32768

	// MaxBulkReadIters is the iteration cap for the bulk payload read
	MaxBulkReadIters = 75
)

// Temperature conversion. The `chp` response carries a 12-bit ADC code in
// the low bits of a little-endian 16-bit word; the code scales linearly to
// Kelvin over the ADC range.
const (
	// TempADCScale is the Kelvin full-scale of the temperature ADC
	TempADCScale = 400.0

	// TempADCRange is the 12-bit ADC code range
	TempADCRange = 4096.0

	// KelvinOffset converts Kelvin to degrees Celsius
	KelvinOffset = 273.15
)

// TempReadDelayMs throttles `chp` polling: a temperature query issued
// sooner than this after the previous one returns the cached reading
// instead of touching the port.
const TempReadDelayMs = 1000

// LineTerminator terminates the status commands (`chp`, `cld`). Exposure
// and readout commands are sent bare.
const LineTerminator = "\n"

// HelpTerminator ends the `hlp` answer text.
const HelpTerminator = "\r\n\r\n\r\n"
