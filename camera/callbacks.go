package camera

// Progress describes the state of an in-flight bulk image transfer.
// Passed to ProgressCallback once per read iteration.
type Progress struct {
	// BytesRead is the number of payload bytes accumulated so far
	BytesRead int

	// TotalBytes is the expected payload size
	TotalBytes int

	// Iteration is the current read iteration (1-based)
	Iteration int
}

// ProgressCallback is called during bulk image reads to report progress.
// Implementations should return quickly; the callback runs on the thread
// driving the acquisition.
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the
// camera. This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	cam := camera.New(device, camera.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
