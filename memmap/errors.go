package memmap

import (
	"errors"
	"fmt"
)

// RangeError indicates an access that does not fit in the memory array.
type RangeError struct {
	// Address is the first byte of the access
	Address uint16

	// Length is the number of bytes accessed
	Length int

	// Capacity is the size of the memory array
	Capacity int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("access 0x%04X+%d is out of range: capacity is %d bytes",
		e.Address, e.Length, e.Capacity)
}

// IsRangeError returns true if err is or wraps a RangeError.
func IsRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

// CheckRange reports whether [addr, addr+length) lies inside the array.
// A zero-length access is valid at any address up to and including Capacity.
func CheckRange(addr uint16, length int) error {
	if length < 0 || int(addr)+length > Capacity {
		return &RangeError{Address: addr, Length: length, Capacity: Capacity}
	}
	return nil
}
