package memmap

import "time"

// ChipFamily is the device family described by this package.
const ChipFamily = "M24C64"

// Memory organisation per the M24C64 datasheet.
const (
	// Capacity is the size of the memory array in bytes (64 Kbit)
	Capacity = 8192

	// PageSize is the write page size in bytes
	PageSize = 32

	// PageCount is the number of pages in the array
	PageCount = Capacity / PageSize

	// AddressSize is the number of address bytes sent before data
	AddressSize = 2

	// MaxFrameSize is the largest write transaction: address bytes plus one page
	MaxFrameSize = AddressSize + PageSize
)

// Bus addressing.
const (
	// DeviceTypeIdentifier is the fixed 4-bit family code 1010 in the upper
	// bits of the 7-bit bus address
	DeviceTypeIdentifier = 0x50

	// MaxHardwareAddress is the largest value of the E2..E0 chip enable pins
	MaxHardwareAddress = 0x07
)

// Write cycle timing.
const (
	// WriteCycleTime is the datasheet maximum for the internal write cycle (t_w)
	WriteCycleTime = 5 * time.Millisecond

	// WriteTimeout is how long a write cycle is allowed to take before the
	// device is considered unresponsive. Twice WriteCycleTime.
	WriteTimeout = 10 * time.Millisecond

	// PollInterval is the delay between two acknowledge polls
	PollInterval = 1 * time.Millisecond

	// PollAttempts is the number of acknowledge polls that fit in WriteTimeout
	PollAttempts = int(WriteTimeout / PollInterval)
)
