package memmap

import (
	"encoding/binary"
	"fmt"
)

// BusAddress returns the 7-bit bus address of a chip whose E2..E0 pins are
// strapped to hw.
func BusAddress(hw uint8) (uint8, error) {
	if hw > MaxHardwareAddress {
		return 0, fmt.Errorf("hardware address must be 0-%d, got %d", MaxHardwareAddress, hw)
	}
	return DeviceTypeIdentifier | hw, nil
}

// EncodeAddress returns the two address bytes for addr, high byte first.
func EncodeAddress(addr uint16) [AddressSize]byte {
	var b [AddressSize]byte
	binary.BigEndian.PutUint16(b[:], addr)
	return b
}

// DecodeAddress is the inverse of EncodeAddress. It returns false when b holds
// fewer than AddressSize bytes.
func DecodeAddress(b []byte) (uint16, bool) {
	if len(b) < AddressSize {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

// PageOf returns the index of the page containing addr.
func PageOf(addr uint16) int {
	return int(addr) / PageSize
}

// PageOffset returns the position of addr inside its page.
func PageOffset(addr uint16) int {
	return int(addr) % PageSize
}

// PageStart returns the first address of the page containing addr.
func PageStart(addr uint16) uint16 {
	return addr &^ (PageSize - 1)
}

// BuildWriteFrame constructs a page write transaction.
//
// Frame structure:
//
//	[ADDR_H][ADDR_L][DATA(0-32)]
//
// The payload must not cross a page boundary, otherwise the chip would wrap
// inside the page and overwrite its beginning.
func BuildWriteFrame(addr uint16, payload []byte) ([]byte, error) {
	if err := CheckRange(addr, len(payload)); err != nil {
		return nil, err
	}
	if PageOffset(addr)+len(payload) > PageSize {
		return nil, fmt.Errorf("payload of %d bytes at 0x%04X crosses page boundary 0x%04X",
			len(payload), addr, int(PageStart(addr))+PageSize)
	}

	frame := make([]byte, 0, AddressSize+len(payload))
	a := EncodeAddress(addr)
	frame = append(frame, a[:]...)
	frame = append(frame, payload...)

	return frame, nil
}

// BuildAddressFrame constructs the address-only transaction that positions the
// chip's internal pointer before a sequential read.
func BuildAddressFrame(addr uint16) []byte {
	a := EncodeAddress(addr)
	return a[:]
}
