package trace

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Recorder receives bus transaction events.
// Pass NoopRecorder to disable recording.
type Recorder interface {
	// Record stores an event. Implementations must be safe for concurrent use
	// and should not block.
	Record(event Event)
}

// NoopRecorder discards all events.
type NoopRecorder struct{}

// Record discards the event.
func (NoopRecorder) Record(Event) {}

// FileRecorder appends events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
type FileRecorder struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
	err     error
}

// NewFileRecorder creates a FileRecorder writing to path. Existing files are
// appended to; new files are created with permissions 0644.
func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Record writes an event to the file. Encoding errors do not reach the
// driver; the first one is kept and returned by Close.
func (r *FileRecorder) Record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if err := r.encoder.Encode(event); err != nil && r.err == nil {
		r.err = err
	}
}

// Close closes the file. It is safe to call Close multiple times.
// After Close, Record calls are silently ignored.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.file.Close(); err != nil {
		return err
	}
	return r.err
}

// SlogRecorder writes events to an slog.Logger at debug level.
type SlogRecorder struct {
	logger *slog.Logger
}

// NewSlogRecorder creates a SlogRecorder writing to logger.
func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger}
}

// Record logs the event.
func (r *SlogRecorder) Record(event Event) {
	attrs := []slog.Attr{
		slog.Uint64("seq", event.Seq),
		slog.String("kind", event.Kind.String()),
		slog.String("dev", hexByte(event.BusAddress)),
		slog.Bool("acked", event.Acked),
		slog.Duration("took", event.Duration),
	}
	if event.MemAddress != nil {
		attrs = append(attrs, slog.String("mem", hexWord(*event.MemAddress)))
	}
	if len(event.Out) > 2 {
		attrs = append(attrs, slog.Int("out_len", len(event.Out)-2))
	}
	if len(event.In) > 0 {
		attrs = append(attrs, slog.Int("in_len", len(event.In)))
	}
	if event.Nack {
		attrs = append(attrs, slog.Bool("nack", true))
	} else if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}

	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "i2c", attrs...)
}

// MultiRecorder fans events out to several recorders.
type MultiRecorder []Recorder

// Record passes the event to every recorder.
func (m MultiRecorder) Record(event Event) {
	for _, r := range m {
		r.Record(event)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*FileRecorder)(nil)
	_ Recorder = (*SlogRecorder)(nil)
	_ Recorder = MultiRecorder(nil)
)
