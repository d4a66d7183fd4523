package camera

import (
	"sync"
	"sync/atomic"
	"time"
)

// Unbounded requests a sequence acquisition with no image count limit.
const Unbounded int64 = -1

// sequenceRunner is the background worker for repeating acquisition:
// acquire one frame, report it to the sink, wait for the next tick, until
// stopped or the image count is reached. The stop flag is observed between
// iterations only; an exchange in flight always runs to completion.
type sequenceRunner struct {
	cam *Camera

	mu            sync.Mutex
	running       bool
	stopRequested bool
	stop          chan struct{}
	done          chan struct{}

	numImages    int64
	intervalMs   float64
	imageCounter int64
}

// StartSequenceAcquisition begins repeating acquisition of numImages frames
// (Unbounded for no limit) paced at intervalMs. It returns immediately; the
// acquisitions run on a background goroutine. Starting while already
// running is rejected with DeviceBusyError.
func (c *Camera) StartSequenceAcquisition(numImages int64, intervalMs float64) error {
	return c.seq.start(numImages, intervalMs)
}

// StopSequenceAcquisition requests a stop and blocks until the worker has
// fully quiesced: when it returns there is no acquisition in flight and
// buffer-affecting property changes are safe. Stopping an idle camera is a
// no-op.
func (c *Camera) StopSequenceAcquisition() {
	c.seq.stopAndWait()
}

// IsCapturing reports whether a sequence acquisition is running.
func (c *Camera) IsCapturing() bool {
	return c.seq.isRunning()
}

// ImagesAcquired returns the number of frames reported during the current
// or most recent sequence run.
func (c *Camera) ImagesAcquired() int64 {
	return atomic.LoadInt64(&c.seq.imageCounter)
}

func (s *sequenceRunner) start(numImages int64, intervalMs float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return &DeviceBusyError{Operation: "start sequence acquisition"}
	}

	s.numImages = numImages
	s.intervalMs = intervalMs
	atomic.StoreInt64(&s.imageCounter, 0)
	s.stopRequested = false
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.running = true

	s.cam.logInfo("sequence acquisition started", "images", numImages, "interval_ms", intervalMs)
	go s.run()
	return nil
}

func (s *sequenceRunner) stopAndWait() {
	s.mu.Lock()
	if s.done == nil {
		s.mu.Unlock()
		return
	}
	if !s.stopRequested {
		s.stopRequested = true
		close(s.stop)
	}
	done := s.done
	s.mu.Unlock()

	<-done
}

func (s *sequenceRunner) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *sequenceRunner) run() {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		close(s.done)
		s.cam.logInfo("sequence acquisition finished",
			"images", atomic.LoadInt64(&s.imageCounter))
	}()

	interval := time.Duration(s.intervalMs * float64(time.Millisecond))
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for i := int64(0); s.numImages < 0 || i < s.numImages; i++ {
		// Wait for the tick before acquiring, so a stop issued right
		// after start lands here and no frame is ever taken.
		select {
		case <-s.stop:
			return
		case <-timer.C:
		}

		start := time.Now()

		if err := s.cam.snap(); err != nil {
			// conservative policy: a failed iteration ends the run,
			// a partial frame is never reported
			s.cam.logError("sequence acquisition aborted", "err", err)
			return
		}
		if err := s.cam.insertImage(); err != nil {
			s.cam.logError("sequence frame report failed", "err", err)
			return
		}
		atomic.AddInt64(&s.imageCounter, 1)

		// The interval is advisory: an overrunning acquisition makes
		// the next one start immediately, there is no backlog.
		wait := interval - time.Since(start)
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)
	}
}
