// Package camera drives the Abisense development camera over a serial
// transport.
//
// The Camera type owns the acquisition state (binning, bit depth, pixel
// format, exposure, background subtraction, cooling), the live and
// background frame buffers sized from that state, and the wire protocol
// engine that fills them.
//
// # Basic Usage
//
//	port, err := serialport.Open("/dev/ttyUSB0", 115200)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	cam := camera.New(port, camera.WithLogger(logger))
//	if err := cam.SnapImage(); err != nil {
//	    log.Fatal(err)
//	}
//	pixels := cam.CopyImage()
//
// # Repeating Acquisition
//
// StartSequenceAcquisition runs acquisitions on a background worker and
// reports each frame to the installed host.FrameSink:
//
//	cam.SetSink(sink)
//	if err := cam.StartSequenceAcquisition(100, 500); err != nil {
//	    log.Fatal(err)
//	}
//	// ...
//	cam.StopSequenceAcquisition() // blocks until the worker quiesces
//
// While the worker runs, snaps and buffer-affecting property changes are
// rejected with DeviceBusyError; StopSequenceAcquisition returning
// guarantees no acquisition is in flight.
//
// # Blocking Behavior
//
// Every exchange blocks its calling thread for the full settle-plus-read
// duration, typically hundreds of milliseconds. There is no cancellation
// of an exchange in flight: once a command is written the engine commits
// to reading its response. The 2-byte shutter confirmation is waited for
// indefinitely; only the bulk image read is bounded (75 iterations), after
// which the acquisition fails with ImageReadTimeoutError rather than
// delivering a truncated frame.
package camera
