// Package eeprom drives an M24C64 serial EEPROM over an I2C bus.
//
// # Overview
//
// A Device exposes two operations on the chip's 8 KiB array:
//   - Write stores an arbitrary byte range, split into page writes
//   - Read loads an arbitrary byte range with one sequential read
//
// After each page write the chip runs an internal write cycle during which it
// NACKs every transaction. Write polls the chip with address-only
// transactions, 1 ms apart, until it acknowledges again. If the chip stays
// busy for 10 polls the write fails with a *WriteTimeoutError.
//
// # Basic Usage
//
//	// User provides the bus transport
//	bus, err := i2cdev.Open(1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	// E2..E0 strapped to 000: bus address 0x50
//	dev := eeprom.New(bus, 0)
//
//	if err := dev.Write(0x0100, []byte("hello")); err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := make([]byte, 5)
//	if err := dev.Read(0x0100, buf); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	dev := eeprom.New(bus, 0,
//	    eeprom.WithDelay(myDelay),
//	    eeprom.WithLogger(eeprom.NewSlogLogger(slog.Default())),
//	    eeprom.WithProgressCallback(progressFunc),
//	    eeprom.WithPollAttempts(20),
//	    eeprom.WithVerifyAfterWrite(true),
//	)
//
// # Error Handling
//
// The package provides structured error types:
//   - memmap.RangeError: the access does not fit in the array
//   - TransportError: the bus reported a failure other than a busy NACK
//   - WriteTimeoutError: the write cycle did not end within the poll budget
//   - VerifyError: read-back data differs from the written data
//
// # Bus Independence
//
// This package does NOT implement bus communication. Users provide a Bus:
//
//	type Bus interface {
//	    Write(addr uint8, p []byte) error
//	    WriteRead(addr uint8, w, r []byte) error
//	}
//
// A Bus must report a missing acknowledge with an error matching ErrNack so
// the driver can tell a busy chip from a broken bus. The i2cdev package
// provides a Linux implementation and the sim package an in-memory chip for
// tests.
//
// # Concurrency
//
// Device is not safe for concurrent use. Operations block until finished and
// cannot be cancelled.
package eeprom
