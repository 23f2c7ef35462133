package sim

import (
	"sync"

	"github.com/moffa90/go-m24c64/eeprom"
)

// Delay is an eeprom.Delayer that records requested delays instead of
// sleeping.
type Delay struct {
	mu    sync.Mutex
	calls []uint32
}

// DelayMs records ms and returns immediately.
func (d *Delay) DelayMs(ms uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, ms)
}

// Calls returns the recorded delays in order.
func (d *Delay) Calls() []uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]uint32(nil), d.calls...)
}

// Total returns the sum of all recorded delays in milliseconds.
func (d *Delay) Total() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	var sum uint32
	for _, ms := range d.calls {
		sum += ms
	}
	return sum
}

// Compile-time interface satisfaction check.
var _ eeprom.Delayer = (*Delay)(nil)
