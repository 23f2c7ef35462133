package eeprom

import (
	"errors"
	"fmt"
	"time"
)

// TransportError wraps a failure reported by the Bus that is not part of the
// normal write-cycle handshake. It is never retried.
type TransportError struct {
	// Op is the driver step that failed: "write", "poll" or "read"
	Op string

	// Address is the memory address of the chunk or read being processed
	Address uint16

	// Err is the error returned by the Bus
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s at 0x%04X: %v", e.Op, e.Address, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// WriteTimeoutError indicates that the device kept NACKing acknowledge polls
// after a page write. The page at Address may be partially written; all
// earlier pages of the same Write call are complete.
type WriteTimeoutError struct {
	Address  uint16
	Attempts int
	Timeout  time.Duration
}

func (e *WriteTimeoutError) Error() string {
	return fmt.Sprintf("write cycle at 0x%04X did not complete: no acknowledge after %d polls (%s)",
		e.Address, e.Attempts, e.Timeout)
}

// VerifyError indicates that data read back differs from what was written.
type VerifyError struct {
	Address  uint16
	Expected byte
	Actual   byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("verify mismatch at 0x%04X: expected 0x%02X, got 0x%02X",
		e.Address, e.Expected, e.Actual)
}

// IsWriteTimeout returns true if err is or wraps a WriteTimeoutError.
func IsWriteTimeout(err error) bool {
	var te *WriteTimeoutError
	return errors.As(err, &te)
}

// IsTransportError returns true if err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
