package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/moffa90/go-m24c64/eeprom"
	"github.com/moffa90/go-m24c64/i2cdev"
	"github.com/moffa90/go-m24c64/memmap"
	"github.com/moffa90/go-m24c64/sim"
	"github.com/moffa90/go-m24c64/trace"
)

// Target selects the chip a command talks to.
type Target struct {
	// Bus is the i2c-dev adapter number (/dev/i2c-N).
	Bus int

	// HardwareAddress is the E2..E0 strap value, 0 to 7.
	HardwareAddress uint

	// Sim uses an in-memory chip instead of real hardware.
	Sim bool

	// Trace appends every bus transaction to this CBOR file.
	Trace string

	// Verify reads back every page after it is written.
	Verify bool
}

// Session is an open device plus the resources behind it.
type Session struct {
	Device *eeprom.Device

	// Chip is the simulated chip, nil on real hardware.
	Chip *sim.Chip

	// TraceSession is the trace session ID, empty when tracing is off.
	TraceSession string

	closers []io.Closer
}

// Open connects to the target. Progress and driver logs go to logger.
func (t *Target) Open(logger *slog.Logger, opts ...eeprom.Option) (*Session, error) {
	if t.HardwareAddress > memmap.MaxHardwareAddress {
		return nil, fmt.Errorf("hardware address %d out of range 0..%d", t.HardwareAddress, memmap.MaxHardwareAddress)
	}
	hw := uint8(t.HardwareAddress)

	s := &Session{}
	var bus eeprom.Bus

	if t.Sim {
		chip, err := sim.New(hw)
		if err != nil {
			return nil, err
		}
		s.Chip = chip
		bus = chip
	} else {
		dev, err := i2cdev.Open(t.Bus)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, dev)
		bus = dev
	}

	if t.Trace != "" {
		rec, err := trace.NewFileRecorder(t.Trace)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open trace: %w", err)
		}
		s.closers = append(s.closers, rec)

		var r trace.Recorder = rec
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			r = trace.MultiRecorder{rec, trace.NewSlogRecorder(logger)}
		}
		tb := trace.WrapBus(bus, r)
		s.TraceSession = tb.SessionID()
		bus = tb
	}

	opts = append([]eeprom.Option{
		eeprom.WithLogger(eeprom.NewSlogLogger(logger)),
		eeprom.WithVerifyAfterWrite(t.Verify),
	}, opts...)
	s.Device = eeprom.New(bus, hw, opts...)

	return s, nil
}

// Close releases the bus and flushes the trace, in reverse order of opening.
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
