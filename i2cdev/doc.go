// Package i2cdev implements eeprom.Bus on top of the Linux i2c-dev interface.
//
//	bus, err := i2cdev.Open(1) // /dev/i2c-1
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	dev := eeprom.New(bus, 0)
//
// Transactions use the I2C_RDWR ioctl so that the address write and the read
// of a sequential read are joined by a repeated start. A missing acknowledge
// (ENXIO or EREMOTEIO from the adapter driver) is reported as eeprom.ErrNack.
//
// On platforms other than Linux, Open returns ErrUnsupported.
package i2cdev

import (
	"errors"
	"strconv"
)

// ErrUnsupported is returned by Open on platforms without i2c-dev.
var ErrUnsupported = errors.New("i2cdev: not supported on this platform")

// DevicePath returns the character device for bus number n.
func DevicePath(n int) string {
	return "/dev/i2c-" + strconv.Itoa(n)
}
