package camera

import (
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/morgunovmi/AbiCamera/host"
	"github.com/morgunovmi/AbiCamera/imgbuf"
	"github.com/morgunovmi/AbiCamera/protocol"
)

// Pixel type names exposed through the property surface.
const (
	PixelType8Bit  = "8bit"
	PixelType16Bit = "16bit"
)

// Transport is the serial capability the camera drives. Reads may return
// fewer bytes than requested, including zero when the device has nothing
// buffered; the engine's accumulation loops handle that.
type Transport interface {
	io.ReadWriter

	// Purge discards stale bytes buffered on the receive side.
	Purge() error
}

// Camera drives the Abisense development camera over a serial transport.
// It owns the live and background frame buffers, the acquisition state that
// sizes them, and the sequence controller for repeating acquisition.
//
// One host thread and the sequence worker may use a Camera concurrently;
// all other concurrent use is rejected with DeviceBusyError.
type Camera struct {
	device Transport
	config Config

	portMu sync.Mutex // serializes purge+exchange sequences on the port
	pixMu  sync.Mutex // guards pixel storage of both buffers
	mu     sync.Mutex // guards scalar acquisition state

	sink host.FrameSink

	binning       int
	bytesPerPixel int
	bitDepth      int
	exposureMs    float64
	subtractBkg   bool
	cooling       bool
	portName      string
	roiX, roiY    int

	imgBuf *imgbuf.Buffer
	bkgBuf *imgbuf.Buffer

	lastTempC    float64
	lastTempRead time.Time

	seq sequenceRunner
}

// New creates a Camera speaking to the given device.
//
// Example:
//
//	port, _ := serialport.Open("COM3", 115200)
//	cam := camera.New(port,
//	    camera.WithLogger(logger),
//	    camera.WithProgressCallback(progressFunc),
//	)
func New(device Transport, opts ...Option) *Camera {
	if device == nil {
		panic("device cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Camera{
		device:        device,
		config:        cfg,
		binning:       1,
		bytesPerPixel: 1,
		bitDepth:      8,
		exposureMs:    1000.0,
		subtractBkg:   true,
		lastTempC:     42.42,
	}
	c.imgBuf = imgbuf.New(protocol.SensorWidth, protocol.SensorHeight, 1)
	c.bkgBuf = imgbuf.New(protocol.SensorWidth, protocol.SensorHeight, 1)
	c.seq.cam = c
	return c
}

// SetSink installs the frame sink completed acquisitions are reported to.
// Install it before starting an acquisition.
func (c *Camera) SetSink(sink host.FrameSink) {
	c.mu.Lock()
	c.sink = sink
	c.mu.Unlock()
}

// Description identifies the adapter.
func (c *Camera) Description() string {
	return "Abisense development camera adapter"
}

// Label returns the camera label used in metadata.
func (c *Camera) Label() string { return c.config.Label }

// Binning returns the current binning factor.
func (c *Camera) Binning() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.binning
}

// SetBinning selects a binning factor and resizes both frame buffers to
// the binned geometry. Rejected while a sequence acquisition is running.
func (c *Camera) SetBinning(factor int) error {
	if !protocol.ValidBinning(factor) {
		return &UnsupportedModeError{Property: "binning", Value: strconv.Itoa(factor)}
	}
	if c.IsCapturing() {
		return &DeviceBusyError{Operation: "set binning"}
	}

	c.mu.Lock()
	c.binning = factor
	c.mu.Unlock()
	c.resizeImageBuffer()
	return nil
}

// BitDepth returns the current ADC bit depth.
func (c *Camera) BitDepth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bitDepth
}

// SetBitDepth selects the ADC bit depth. Bytes per pixel follow the depth
// (8 bits and below fit one byte, deeper modes take two) and both buffers
// are resized to match. Rejected while a sequence acquisition is running.
func (c *Camera) SetBitDepth(depth int) error {
	if !protocol.ValidBitDepth(depth) {
		return &UnsupportedModeError{Property: "bit depth", Value: strconv.Itoa(depth)}
	}
	if c.IsCapturing() {
		return &DeviceBusyError{Operation: "set bit depth"}
	}

	c.mu.Lock()
	c.bitDepth = depth
	c.bytesPerPixel = bytesPerPixelFor(depth)
	c.mu.Unlock()
	c.resizeImageBuffer()
	return nil
}

func bytesPerPixelFor(bitDepth int) int {
	if bitDepth <= 8 {
		return 1
	}
	return 2
}

// PixelType returns the pixel format derived from the current byte depth.
func (c *Camera) PixelType() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bytesPerPixel == 1 {
		return PixelType8Bit
	}
	return PixelType16Bit
}

// SetPixelType selects a pixel format. The format is bound to the bit
// depth (bytesPerPixel is derived from it), so a selection that contradicts
// the current depth is an unsupported mode. Rejected while a sequence
// acquisition is running.
func (c *Camera) SetPixelType(name string) error {
	var bpp int
	switch name {
	case PixelType8Bit:
		bpp = 1
	case PixelType16Bit:
		bpp = 2
	default:
		return &UnsupportedModeError{Property: "pixel type", Value: name}
	}
	if c.IsCapturing() {
		return &DeviceBusyError{Operation: "set pixel type"}
	}

	c.mu.Lock()
	if bpp != bytesPerPixelFor(c.bitDepth) {
		depth := c.bitDepth
		c.mu.Unlock()
		return &UnsupportedModeError{Property: "pixel type", Value: name + " at bit depth " + strconv.Itoa(depth)}
	}
	c.bytesPerPixel = bpp
	c.mu.Unlock()
	c.resizeImageBuffer()
	return nil
}

// BytesPerPixel returns the current per-pixel byte depth.
func (c *Camera) BytesPerPixel() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bytesPerPixel
}

// Exposure returns the exposure time in milliseconds.
func (c *Camera) Exposure() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exposureMs
}

// SetExposure sets the exposure time in milliseconds.
func (c *Camera) SetExposure(ms float64) {
	c.mu.Lock()
	c.exposureMs = ms
	c.mu.Unlock()
}

// SubtractBackground reports whether dark-frame subtraction is enabled.
func (c *Camera) SubtractBackground() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subtractBkg
}

// SetSubtractBackground enables or disables dark-frame subtraction for
// subsequent acquisitions.
func (c *Camera) SetSubtractBackground(enable bool) {
	c.mu.Lock()
	c.subtractBkg = enable
	c.mu.Unlock()
}

// Cooling reports the last cooling state applied to the sensor.
func (c *Camera) Cooling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cooling
}

// PortName returns the configured port identifier.
func (c *Camera) PortName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.portName
}

// SetPortName records the port identifier. The transport itself is fixed
// at construction; the name is kept for properties and metadata.
func (c *Camera) SetPortName(name string) {
	c.mu.Lock()
	c.portName = name
	c.mu.Unlock()
}

// Width returns the current image width in pixels.
func (c *Camera) Width() int {
	c.pixMu.Lock()
	defer c.pixMu.Unlock()
	return c.imgBuf.Width()
}

// Height returns the current image height in pixels.
func (c *Camera) Height() int {
	c.pixMu.Lock()
	defer c.pixMu.Unlock()
	return c.imgBuf.Height()
}

// BufferSize returns the image buffer size in bytes.
func (c *Camera) BufferSize() int {
	c.pixMu.Lock()
	defer c.pixMu.Unlock()
	return c.imgBuf.Size()
}

// CopyImage returns a copy of the live image buffer.
func (c *Camera) CopyImage() []byte {
	c.pixMu.Lock()
	defer c.pixMu.Unlock()
	out := make([]byte, c.imgBuf.Size())
	copy(out, c.imgBuf.Pixels())
	return out
}

// SetROI crops the frame buffers to the requested size and records the
// origin. A zero-size request clears the ROI. Rejected while a sequence
// acquisition is running.
func (c *Camera) SetROI(x, y, width, height int) error {
	if c.IsCapturing() {
		return &DeviceBusyError{Operation: "set ROI"}
	}
	if width == 0 && height == 0 {
		return c.ClearROI()
	}

	c.mu.Lock()
	bpp := c.bytesPerPixel
	c.roiX, c.roiY = x, y
	c.mu.Unlock()

	c.pixMu.Lock()
	c.imgBuf.Resize(width, height, bpp)
	c.bkgBuf.Resize(width, height, bpp)
	c.pixMu.Unlock()
	return nil
}

// ROI returns the current region of interest.
func (c *Camera) ROI() (x, y, width, height int) {
	c.mu.Lock()
	x, y = c.roiX, c.roiY
	c.mu.Unlock()

	c.pixMu.Lock()
	width, height = c.imgBuf.Width(), c.imgBuf.Height()
	c.pixMu.Unlock()
	return x, y, width, height
}

// ClearROI restores the full binned frame.
func (c *Camera) ClearROI() error {
	if c.IsCapturing() {
		return &DeviceBusyError{Operation: "clear ROI"}
	}
	c.mu.Lock()
	c.roiX, c.roiY = 0, 0
	c.mu.Unlock()
	c.resizeImageBuffer()
	return nil
}

// resizeImageBuffer syncs both frame buffers to the binned sensor geometry
// and the current byte depth. Live and background buffers stay in lockstep.
func (c *Camera) resizeImageBuffer() {
	c.mu.Lock()
	binning, bpp := c.binning, c.bytesPerPixel
	c.mu.Unlock()

	w := protocol.SensorWidth / binning
	h := protocol.SensorHeight / binning

	c.pixMu.Lock()
	c.imgBuf.Resize(w, h, bpp)
	c.bkgBuf.Resize(w, h, bpp)
	c.pixMu.Unlock()
}

// insertImage hands the live frame to the sink with its metadata. A buffer
// overflow from the sink is recovered once: clear the sink, resend the same
// frame without reacquiring it.
func (c *Camera) insertImage() error {
	c.mu.Lock()
	sink := c.sink
	md := host.Metadata{
		host.MetaCamera:    c.config.Label,
		host.MetaStartTime: strconv.FormatInt(time.Now().UnixMilli(), 10),
		host.MetaROIX:      strconv.Itoa(c.roiX),
		host.MetaROIY:      strconv.Itoa(c.roiY),
		host.MetaBinning:   strconv.Itoa(c.binning),
	}
	c.mu.Unlock()

	if sink == nil {
		return nil
	}

	c.pixMu.Lock()
	defer c.pixMu.Unlock()

	pix := c.imgBuf.Pixels()
	w, h, b := c.imgBuf.Width(), c.imgBuf.Height(), c.imgBuf.BytesPerPixel()

	err := sink.InsertImage(pix, w, h, b, md)
	if errors.Is(err, host.ErrBufferOverflow) {
		c.logDebug("sink overflow, clearing and retrying frame once")
		if cerr := sink.Clear(); cerr != nil {
			return cerr
		}
		return sink.InsertImage(pix, w, h, b, md)
	}
	return err
}

func (c *Camera) sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (c *Camera) reportProgress(p Progress) {
	if c.config.ProgressCallback != nil {
		c.config.ProgressCallback(p)
	}
}

func (c *Camera) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

func (c *Camera) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

func (c *Camera) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
