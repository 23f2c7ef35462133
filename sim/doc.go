// Package sim provides an in-memory M24C64 that implements eeprom.Bus.
//
// The simulated chip reproduces the behaviour the driver depends on:
//   - page writes wrap inside their page
//   - after a write the chip NACKs for a configurable number of transactions
//   - sequential reads run across pages and wrap at the end of the array
//   - only its own bus address is acknowledged
//
// It is intended for tests and for running the command line tool without
// hardware.
package sim
