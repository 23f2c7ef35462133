package eeprom

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/moffa90/go-m24c64/memmap"
)

// Device is a handle to one M24C64 on a bus. It splits writes into page
// writes, waits out the chip's write cycle after each of them and reads with
// the chip's sequential read.
//
// Device does no locking. Calls must be serialised by the caller, and nothing
// else may use the bus address while a Write is in progress.
type Device struct {
	bus     Bus
	address uint8
	config  Config
}

// New creates a Device for the chip whose E2..E0 pins are strapped to
// hardwareAddress (0-7). New panics if bus is nil or hardwareAddress is out of
// range.
//
// Example:
//
//	bus, _ := i2cdev.Open(1)
//	dev := eeprom.New(bus, 0,
//	    eeprom.WithLogger(eeprom.NewSlogLogger(slog.Default())),
//	)
func New(bus Bus, hardwareAddress uint8, opts ...Option) *Device {
	if bus == nil {
		panic("bus cannot be nil")
	}
	address, err := memmap.BusAddress(hardwareAddress)
	if err != nil {
		panic(err)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		bus:     bus,
		address: address,
		config:  cfg,
	}
}

// Address returns the 7-bit bus address of the chip.
func (d *Device) Address() uint8 {
	return d.address
}

// Size returns the capacity of the memory array in bytes.
func (d *Device) Size() int {
	return memmap.Capacity
}

// Write stores data starting at addr.
//
// The data is written one page at a time. After each page Write polls the
// chip until its write cycle is over, so when Write returns nil every byte
// has been committed. On error the pages before the failing one are
// committed, the failing page is undefined and later pages are untouched.
//
// Errors:
//   - *memmap.RangeError if the data does not fit; nothing is sent
//   - *TransportError if the bus fails
//   - *WriteTimeoutError if a write cycle does not finish in time
//   - *VerifyError if read-back verification is enabled and fails
func (d *Device) Write(addr uint16, data []byte) error {
	if err := memmap.CheckRange(addr, len(data)); err != nil {
		return err
	}

	chunker := memmap.NewChunker(addr, data)
	total := chunker.Len()
	written := 0

	for i := 1; ; i++ {
		chunk, ok := chunker.Next()
		if !ok {
			break
		}

		polls, err := d.writeChunk(chunk)
		if err != nil {
			d.logError("write failed",
				"address", fmt.Sprintf("0x%04X", chunk.Address),
				"chunk", i,
				"chunks", total,
				"error", err,
			)
			return err
		}

		written += len(chunk.Data)
		d.reportProgress(Progress{
			Address:      chunk.Address,
			Chunk:        i,
			TotalChunks:  total,
			BytesWritten: written,
			TotalBytes:   len(data),
			Polls:        polls,
		})
	}

	if total > 0 {
		d.logInfo("write complete",
			"address", fmt.Sprintf("0x%04X", addr),
			"bytes", len(data),
			"pages", total,
		)
	}

	return nil
}

// writeChunk sends one page-bounded chunk and waits for its write cycle.
// It returns the number of acknowledge polls used.
func (d *Device) writeChunk(chunk memmap.Chunk) (int, error) {
	frame, err := memmap.BuildWriteFrame(chunk.Address, chunk.Data)
	if err != nil {
		return 0, err
	}

	if err := d.bus.Write(d.address, frame); err != nil {
		return 0, &TransportError{Op: "write", Address: chunk.Address, Err: err}
	}

	polls, err := d.waitReady(chunk.Address)
	if err != nil {
		return polls, err
	}

	d.logDebug("page committed",
		"address", fmt.Sprintf("0x%04X", chunk.Address),
		"bytes", len(chunk.Data),
		"polls", polls,
	)

	if d.config.VerifyAfterWrite {
		if err := d.Verify(chunk.Address, chunk.Data); err != nil {
			return polls, err
		}
	}

	return polls, nil
}

// waitReady polls the chip with address-only transactions until it
// acknowledges. The first poll goes out immediately; each NACK is followed by
// one PollInterval delay. Any error other than ErrNack aborts at once.
func (d *Device) waitReady(addr uint16) (int, error) {
	for attempt := 1; attempt <= d.config.PollAttempts; attempt++ {
		err := d.bus.Write(d.address, nil)
		if err == nil {
			return attempt, nil
		}
		if !isNack(err) {
			return attempt, &TransportError{Op: "poll", Address: addr, Err: err}
		}

		d.config.Delay.DelayMs(d.config.PollInterval)
	}

	return d.config.PollAttempts, &WriteTimeoutError{
		Address:  addr,
		Attempts: d.config.PollAttempts,
		Timeout:  d.config.WriteTimeout(),
	}
}

// Read fills buf with the bytes stored from addr onwards.
//
// The chip's address pointer is set with an address-only write and the data
// is fetched with one sequential read, so reads are not split at page
// boundaries. Read does not poll: a preceding Write has already waited for
// its write cycle.
func (d *Device) Read(addr uint16, buf []byte) error {
	if err := memmap.CheckRange(addr, len(buf)); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}

	if err := d.bus.WriteRead(d.address, memmap.BuildAddressFrame(addr), buf); err != nil {
		return &TransportError{Op: "read", Address: addr, Err: err}
	}

	d.logDebug("read",
		"address", fmt.Sprintf("0x%04X", addr),
		"bytes", len(buf),
	)

	return nil
}

// Verify reads len(data) bytes from addr and compares them with data.
// A difference is reported as a *VerifyError for the first mismatching byte.
func (d *Device) Verify(addr uint16, data []byte) error {
	got := make([]byte, len(data))
	if err := d.Read(addr, got); err != nil {
		return err
	}
	if bytes.Equal(got, data) {
		return nil
	}

	for i := range data {
		if got[i] != data[i] {
			return &VerifyError{
				Address:  addr + uint16(i),
				Expected: data[i],
				Actual:   got[i],
			}
		}
	}
	return nil
}

// ReadAt implements io.ReaderAt. Reads that extend past the end of the
// array return the available bytes and io.EOF.
func (d *Device) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("read at %d: negative offset", off)
	}
	if off >= memmap.Capacity {
		return 0, io.EOF
	}

	n := len(p)
	if rest := memmap.Capacity - int(off); n > rest {
		n = rest
	}
	if err := d.Read(uint16(off), p[:n]); err != nil {
		return 0, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements io.WriterAt. Unlike ReadAt it never writes a prefix:
// a request that does not fit fails before anything is sent.
func (d *Device) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off > memmap.Capacity {
		return 0, fmt.Errorf("write at %d: offset outside the %d byte array", off, memmap.Capacity)
	}
	if err := d.Write(uint16(off), p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// isNack reports whether err means the device did not acknowledge.
func isNack(err error) bool {
	return errors.Is(err, ErrNack)
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(progress Progress) {
	if d.config.ProgressCallback != nil {
		d.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (d *Device) logInfo(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}

var (
	_ io.ReaderAt = (*Device)(nil)
	_ io.WriterAt = (*Device)(nil)
)
