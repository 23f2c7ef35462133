package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/moffa90/go-m24c64/eeprom"
	"github.com/moffa90/go-m24c64/memmap"
)

// ErrNoDevice is returned for transactions to an address no simulated chip
// answers. It deliberately does not wrap eeprom.ErrNack: a missing chip is a
// wiring fault, not a busy chip.
var ErrNoDevice = errors.New("sim: no device at address")

// DefaultBusyPolls is the number of transactions the chip NACKs after a write.
const DefaultBusyPolls = 3

// Stats counts the transactions seen by a Chip.
type Stats struct {
	Writes int
	Probes int
	Reads  int
	Nacks  int
}

// Chip is a simulated M24C64. It is safe for concurrent use.
type Chip struct {
	mu sync.Mutex

	mem     [memmap.Capacity]byte
	address uint8
	pointer uint16

	busyPolls int
	busy      int
	fault     error
	stats     Stats
}

// Option configures a Chip.
type Option func(*Chip)

// WithBusyPolls sets how many transactions the chip NACKs after each write.
// Negative values are ignored.
func WithBusyPolls(n int) Option {
	return func(c *Chip) {
		if n >= 0 {
			c.busyPolls = n
		}
	}
}

// WithContents preloads the array starting at address 0.
func WithContents(data []byte) Option {
	return func(c *Chip) {
		copy(c.mem[:], data)
	}
}

// New creates a blank chip (all bytes 0xFF) strapped to hardwareAddress.
func New(hardwareAddress uint8, opts ...Option) (*Chip, error) {
	addr, err := memmap.BusAddress(hardwareAddress)
	if err != nil {
		return nil, err
	}

	c := &Chip{
		address:   addr,
		busyPolls: DefaultBusyPolls,
	}
	for i := range c.mem {
		c.mem[i] = 0xFF
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Address returns the 7-bit bus address the chip answers to.
func (c *Chip) Address() uint8 {
	return c.address
}

// Write handles a write transaction. An empty p is an acknowledge probe, two
// bytes set the address pointer and anything longer is a page write.
func (c *Chip) Write(addr uint8, p []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.accept(addr); err != nil {
		return err
	}

	switch {
	case len(p) == 0:
		c.stats.Probes++
		return nil
	case len(p) < memmap.AddressSize:
		// Incomplete address: the chip latches nothing.
		return nil
	}

	a, _ := memmap.DecodeAddress(p)
	c.pointer = a % memmap.Capacity
	data := p[memmap.AddressSize:]
	if len(data) == 0 {
		return nil
	}

	c.stats.Writes++
	c.pageWrite(data)
	c.busy = c.busyPolls

	return nil
}

// WriteRead sets the address pointer from w and reads len(r) bytes.
func (c *Chip) WriteRead(addr uint8, w, r []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.accept(addr); err != nil {
		return err
	}

	if a, ok := memmap.DecodeAddress(w); ok {
		c.pointer = a % memmap.Capacity
	}

	c.stats.Reads++
	for i := range r {
		r[i] = c.mem[c.pointer]
		c.pointer = (c.pointer + 1) % memmap.Capacity
	}

	return nil
}

// accept decides whether the chip acknowledges its address. Must be called
// with mu held.
func (c *Chip) accept(addr uint8) error {
	if c.fault != nil {
		return c.fault
	}
	if addr != c.address {
		return fmt.Errorf("%w 0x%02X", ErrNoDevice, addr)
	}
	if c.busy > 0 {
		c.busy--
		c.stats.Nacks++
		return fmt.Errorf("sim: write cycle in progress: %w", eeprom.ErrNack)
	}
	return nil
}

// pageWrite stores data at the pointer. The column counter wraps inside the
// page, so data longer than the rest of the page overwrites its start.
func (c *Chip) pageWrite(data []byte) {
	page := memmap.PageStart(c.pointer)
	col := memmap.PageOffset(c.pointer)

	for _, b := range data {
		c.mem[int(page)+col] = b
		col = (col + 1) % memmap.PageSize
	}
	c.pointer = page + uint16(col)
}

// SetFault makes every following transaction fail with err. Pass nil to
// clear the fault.
func (c *Chip) SetFault(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fault = err
}

// SetBusy forces the chip to NACK the next n transactions.
func (c *Chip) SetBusy(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = n
}

// Load copies data into the array at addr without bus transactions.
func (c *Chip) Load(addr uint16, data []byte) error {
	if err := memmap.CheckRange(addr, len(data)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.mem[addr:], data)
	return nil
}

// Snapshot returns a copy of the whole array.
func (c *Chip) Snapshot() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]byte, memmap.Capacity)
	copy(out, c.mem[:])
	return out
}

// Stats returns the transaction counters.
func (c *Chip) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Compile-time interface satisfaction check.
var _ eeprom.Bus = (*Chip)(nil)
