// Package serialport provides the real COM-port transport for the camera.
//
// Reads are configured with a short timeout so that an idle port returns
// zero bytes instead of blocking forever; the camera's accumulation loops
// supply the actual retry pacing.
package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultReadTimeout is the per-read timeout. A read that sees no data
// within it returns (0, nil), which the camera treats as "nothing buffered
// yet".
const DefaultReadTimeout = 100 * time.Millisecond

// Port is a serial connection to the camera. It satisfies camera.Transport.
type Port struct {
	port serial.Port
	name string
}

// Open opens the named port in 8N1 mode at the given baud rate.
//
// Example:
//
//	port, err := serialport.Open("/dev/ttyUSB0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
func Open(name string, baudRate int) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if err := p.SetReadTimeout(DefaultReadTimeout); err != nil {
		p.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", name, err)
	}

	return &Port{port: p, name: name}, nil
}

// Name returns the port identifier used at Open.
func (p *Port) Name() string { return p.name }

// Read reads up to len(b) bytes, returning (0, nil) when the device sends
// nothing within the read timeout.
func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write writes b to the port.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Purge discards any bytes buffered on the receive side, so a new exchange
// never consumes a stale response.
func (p *Port) Purge() error {
	return p.port.ResetInputBuffer()
}

// Close closes the port.
func (p *Port) Close() error {
	return p.port.Close()
}
