package camera

import (
	"time"

	"github.com/morgunovmi/AbiCamera/protocol"
)

// Config holds the camera configuration.
type Config struct {
	// Label identifies the camera in frame metadata and logs
	Label string

	// SettleDelay is added to the exposure time before the shutter
	// confirmation is read, covering sensor turnaround latency
	SettleDelay time.Duration

	// StatusDelay is the turnaround sleep before reading the response
	// of a status command (`chp`, `cld`)
	StatusDelay time.Duration

	// RetryDelay is the back-off sleep after a bulk read iteration
	// returns zero bytes
	RetryDelay time.Duration

	// ChunkSize is the maximum bytes requested per bulk read iteration
	ChunkSize int

	// MaxBulkIters caps the bulk payload read loop
	MaxBulkIters int

	// TempReadInterval throttles chip temperature polling; queries
	// inside the interval return the cached reading
	TempReadInterval time.Duration

	// ProgressCallback is called during bulk image reads to report
	// transfer progress (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger
}

// defaultConfig returns the default configuration, matching the sensor's
// documented timing.
func defaultConfig() Config {
	return Config{
		Label:            "AbiCam",
		SettleDelay:      protocol.SettleDelayMs * time.Millisecond,
		StatusDelay:      protocol.StatusDelayMs * time.Millisecond,
		RetryDelay:       protocol.RetryDelayMs * time.Millisecond,
		ChunkSize:        protocol.BulkChunkSize,
		MaxBulkIters:     protocol.MaxBulkReadIters,
		TempReadInterval: protocol.TempReadDelayMs * time.Millisecond,
	}
}

// Option is a functional option for configuring the Camera.
type Option func(*Config)

// WithLabel sets the camera label used in frame metadata.
func WithLabel(label string) Option {
	return func(c *Config) {
		if label != "" {
			c.Label = label
		}
	}
}

// WithLogger sets a logger for camera operations.
//
// Example:
//
//	cam := camera.New(device, camera.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithProgressCallback sets a callback invoked on every bulk read iteration.
//
// Example:
//
//	cam := camera.New(device,
//	    camera.WithProgressCallback(func(p camera.Progress) {
//	        fmt.Printf("%d/%d bytes\n", p.BytesRead, p.TotalBytes)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithSettleDelay overrides the post-exposure settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SettleDelay = d
		}
	}
}

// WithStatusDelay overrides the status command turnaround delay.
func WithStatusDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.StatusDelay = d
		}
	}
}

// WithRetryDelay overrides the zero-byte-read back-off delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.RetryDelay = d
		}
	}
}

// WithChunkSize overrides the bulk read chunk size.
func WithChunkSize(size int) Option {
	return func(c *Config) {
		if size > 0 {
			c.ChunkSize = size
		}
	}
}

// WithMaxBulkIters overrides the bulk read iteration cap.
func WithMaxBulkIters(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxBulkIters = n
		}
	}
}

// WithTempReadInterval overrides the temperature poll throttle.
func WithTempReadInterval(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.TempReadInterval = d
		}
	}
}
