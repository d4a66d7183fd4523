package camera

import (
	"fmt"
	"strings"
	"time"

	"github.com/morgunovmi/AbiCamera/imgbuf"
	"github.com/morgunovmi/AbiCamera/protocol"
)

// SnapImage performs one complete acquisition into the live buffer: an
// optional zero-exposure dark frame into the background buffer, the real
// exposure, and wrapping dark-frame subtraction. It blocks for the full
// exposure, settle, and readout time. Rejected while a sequence
// acquisition is running.
func (c *Camera) SnapImage() error {
	if c.IsCapturing() {
		return &DeviceBusyError{Operation: "snap image"}
	}
	return c.snap()
}

// snap is SnapImage without the busy check; the sequence worker uses it
// directly since it is the one holding the camera busy.
func (c *Camera) snap() error {
	c.portMu.Lock()
	defer c.portMu.Unlock()

	if err := c.device.Purge(); err != nil {
		c.logError("purge failed", "err", err)
		return fmt.Errorf("purge port: %w", err)
	}

	c.mu.Lock()
	exposureMs := int(c.exposureMs)
	subtract := c.subtractBkg
	binning, bitDepth := c.binning, c.bitDepth
	c.mu.Unlock()

	if subtract {
		// zero-exposure capture of the fixed sensor noise
		if err := c.acquireFrame(0, binning, bitDepth, c.bkgBuf); err != nil {
			c.logError("background acquisition failed", "err", err)
			return err
		}
	}

	if err := c.acquireFrame(exposureMs, binning, bitDepth, c.imgBuf); err != nil {
		c.logError("acquisition failed", "err", err)
		return err
	}

	if subtract {
		c.pixMu.Lock()
		defer c.pixMu.Unlock()
		return c.imgBuf.Subtract(c.bkgBuf)
	}
	return nil
}

// acquireFrame runs one full exposure-and-readout exchange into buf:
// `sht`, settle sleep, 2-byte confirmation, `rid`, bulk payload.
func (c *Camera) acquireFrame(exposureMs, binning, bitDepth int, buf *imgbuf.Buffer) error {
	cmd, err := protocol.BuildShutterCmd(exposureMs)
	if err != nil {
		return err
	}
	if _, err := c.device.Write(cmd); err != nil {
		return fmt.Errorf("send shutter command: %w", err)
	}

	// nothing arrives before the exposure and the sensor's internal
	// delay have passed
	c.sleep(time.Duration(exposureMs)*time.Millisecond + c.config.SettleDelay)

	if err := c.readShutterConfirmation(); err != nil {
		return err
	}

	cmd, err = protocol.BuildReadoutCmd(binning, bitDepth)
	if err != nil {
		return err
	}
	if _, err := c.device.Write(cmd); err != nil {
		return fmt.Errorf("send readout command: %w", err)
	}

	return c.readImage(buf)
}

// readShutterConfirmation accumulates the 2-byte confirmation across
// partial reads. The loop is deliberately unbounded: the sensor commits to
// answering `sht`, and the legacy adapter waits for it forever, so a dead
// sensor hangs the acquiring thread here. Only the bulk payload read below
// carries an iteration cap.
func (c *Camera) readShutterConfirmation() error {
	buf := make([]byte, protocol.ShutterConfirmationSize)
	total := 0
	for total < protocol.ShutterConfirmationSize {
		n, err := c.device.Read(buf[total:])
		if err != nil {
			return fmt.Errorf("read shutter confirmation: %w", err)
		}
		total += n
	}
	if total != protocol.ShutterConfirmationSize {
		return &protocol.ResponseError{
			Operation: "shutter confirmation",
			Got:       total,
			Want:      protocol.ShutterConfirmationSize,
		}
	}
	return nil
}

// readImage accumulates the bulk `rid` payload. A read may deliver any
// number of bytes including zero; zero-byte iterations back off by
// RetryDelay. The loop is capped at MaxBulkIters; if the payload is still
// incomplete the partial data is discarded and an ImageReadTimeoutError
// returned, so a truncated frame never reaches the buffer.
func (c *Camera) readImage(buf *imgbuf.Buffer) error {
	c.pixMu.Lock()
	defer c.pixMu.Unlock()

	expected := buf.Size()
	scratch := make([]byte, expected+c.config.ChunkSize)

	total := 0
	iters := 0
	for total < expected && iters < c.config.MaxBulkIters {
		n, err := c.device.Read(scratch[total : total+c.config.ChunkSize])
		if err != nil {
			return fmt.Errorf("read image data: %w", err)
		}
		total += n
		iters++

		c.logDebug("bulk read iteration", "iter", iters, "bytes", n, "total", total)
		c.reportProgress(Progress{BytesRead: total, TotalBytes: expected, Iteration: iters})

		if n == 0 {
			c.sleep(c.config.RetryDelay)
		}
	}

	if total != expected {
		return &ImageReadTimeoutError{
			BytesRead:     total,
			BytesExpected: expected,
			Iterations:    iters,
		}
	}

	return buf.SetPixels(scratch[:expected])
}

// Temperature returns the chip temperature in degrees Celsius. Polls are
// throttled: inside TempReadInterval of the previous poll the cached
// reading is returned without touching the port.
func (c *Camera) Temperature() (float64, error) {
	c.mu.Lock()
	if time.Since(c.lastTempRead) < c.config.TempReadInterval {
		t := c.lastTempC
		c.mu.Unlock()
		return t, nil
	}
	c.lastTempRead = time.Now()
	c.mu.Unlock()

	c.portMu.Lock()
	defer c.portMu.Unlock()

	if err := c.device.Purge(); err != nil {
		return 0, fmt.Errorf("purge port: %w", err)
	}
	if _, err := c.device.Write(protocol.BuildTemperatureCmd()); err != nil {
		return 0, fmt.Errorf("send temperature command: %w", err)
	}

	c.sleep(c.config.StatusDelay)

	buf := make([]byte, protocol.TemperatureResponseSize)
	n, err := c.device.Read(buf)
	if err != nil {
		return 0, fmt.Errorf("read temperature response: %w", err)
	}
	if n != protocol.TemperatureResponseSize {
		err := &protocol.ResponseError{Operation: "chip temperature", Got: n, Want: protocol.TemperatureResponseSize}
		c.logError("temperature poll failed", "err", err)
		return 0, err
	}

	tempC, err := protocol.DecodeTemperature(buf)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.lastTempC = tempC
	c.mu.Unlock()

	c.logDebug("chip temperature", "celsius", tempC)
	return tempC, nil
}

// SetCooling turns sensor cooling on or off and waits for the single
// confirmation byte.
func (c *Camera) SetCooling(enable bool) error {
	c.portMu.Lock()
	defer c.portMu.Unlock()

	if err := c.device.Purge(); err != nil {
		return fmt.Errorf("purge port: %w", err)
	}
	if _, err := c.device.Write(protocol.BuildCoolingCmd(enable)); err != nil {
		return fmt.Errorf("send cooling command: %w", err)
	}

	c.sleep(c.config.StatusDelay)

	buf := make([]byte, protocol.CoolingConfirmationSize)
	n, err := c.device.Read(buf)
	if err != nil {
		return fmt.Errorf("read cooling confirmation: %w", err)
	}
	if n != protocol.CoolingConfirmationSize {
		err := &protocol.ResponseError{Operation: "cooling confirmation", Got: n, Want: protocol.CoolingConfirmationSize}
		c.logError("cooling command failed", "err", err)
		return err
	}
	c.logDebug("cooling confirmation", "value", buf[0], "enabled", enable)

	c.mu.Lock()
	c.cooling = enable
	c.mu.Unlock()
	return nil
}

// Help requests the sensor's help text and returns it without the
// terminator. The answer is accumulated across partial reads; the read
// loop shares the bulk iteration cap.
func (c *Camera) Help() (string, error) {
	c.portMu.Lock()
	defer c.portMu.Unlock()

	if _, err := c.device.Write(protocol.BuildHelpCmd()); err != nil {
		return "", fmt.Errorf("send help command: %w", err)
	}

	var text []byte
	chunk := make([]byte, 256)
	for iters := 0; iters < c.config.MaxBulkIters; iters++ {
		n, err := c.device.Read(chunk)
		if err != nil {
			return "", fmt.Errorf("read help text: %w", err)
		}
		text = append(text, chunk[:n]...)

		if idx := strings.Index(string(text), protocol.HelpTerminator); idx >= 0 {
			answer := string(text[:idx])
			c.logInfo("device help", "text", answer)
			return answer, nil
		}
		if n == 0 {
			c.sleep(c.config.RetryDelay)
		}
	}
	return "", fmt.Errorf("read help text: terminator not received after %d reads", c.config.MaxBulkIters)
}
