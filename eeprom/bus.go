package eeprom

import (
	"errors"
	"time"
)

// ErrNack is reported by a Bus when the addressed device did not acknowledge
// the transaction. During a write cycle the chip NACKs everything, so the
// driver treats ErrNack from an acknowledge poll as "still busy". Transports
// must wrap or return ErrNack for address NACKs and use other errors for bus
// faults such as arbitration loss.
var ErrNack = errors.New("device did not acknowledge")

// Bus is the transaction interface the driver needs from an I2C master.
// Addresses are 7-bit; the transport adds the read/write direction bit.
//
// Implementations block until the transaction has completed or failed.
type Bus interface {
	// Write sends p to the device at addr in a single transaction.
	// An empty p addresses the device without sending data.
	Write(addr uint8, p []byte) error

	// WriteRead sends w then, after a repeated start, reads len(r) bytes
	// into r.
	WriteRead(addr uint8, w, r []byte) error
}

// Delayer blocks the caller for a number of milliseconds.
type Delayer interface {
	DelayMs(ms uint32)
}

// DelayFunc adapts a plain function to the Delayer interface.
type DelayFunc func(ms uint32)

// DelayMs calls f(ms).
func (f DelayFunc) DelayMs(ms uint32) {
	f(ms)
}

// SleepDelay is a Delayer backed by time.Sleep.
type SleepDelay struct{}

// DelayMs sleeps for at least ms milliseconds.
func (SleepDelay) DelayMs(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

var (
	_ Delayer = SleepDelay{}
	_ Delayer = DelayFunc(nil)
)
