package eeprom

// Progress describes how far a Write call has got.
// Passed to ProgressCallback after each page has been committed.
type Progress struct {
	// Address is the first byte of the page just committed
	Address uint16

	// Chunk is the 1-based index of the committed chunk
	Chunk int

	// TotalChunks is the number of chunks in the Write call
	TotalChunks int

	// BytesWritten is the number of payload bytes committed so far
	BytesWritten int

	// TotalBytes is the payload length of the Write call
	TotalBytes int

	// Polls is the number of acknowledge polls the chunk needed
	Polls int
}

// Percentage returns the completion percentage (0.0 to 100.0).
func (p Progress) Percentage() float64 {
	if p.TotalBytes == 0 {
		return 100
	}
	return float64(p.BytesWritten) / float64(p.TotalBytes) * 100
}

// ProgressCallback is called after every committed page of a Write.
// Implementations should return quickly; the bus is idle while it runs.
//
// Example:
//
//	dev := eeprom.New(bus, 0,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%.1f%% - page %d/%d\n", p.Percentage(), p.Chunk, p.TotalChunks)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the device.
// This allows integration with any logging framework.
//
// Example with standard log package:
//
//	type StdLogger struct{}
//	func (l *StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l *StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l *StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	dev := eeprom.New(bus, 0, eeprom.WithLogger(&StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
