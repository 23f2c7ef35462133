// Package memmap describes the memory organisation of the M24C64 serial EEPROM
// and the byte layout of its bus transactions.
//
// # Memory Organisation
//
// The array holds Capacity (8192) bytes addressed by a 16-bit offset. It is
// divided into pages of PageSize (32) bytes starting at multiples of the page
// size. A single write transaction must stay inside one page: the chip's
// internal address counter wraps to the start of the current page instead of
// advancing to the next one.
//
// # Transaction Layout
//
// Every memory access starts with the two address bytes, high byte first:
//
//	Write:      [DEV+W][ADDR_H][ADDR_L][DATA...]
//	Set/Read:   [DEV+W][ADDR_H][ADDR_L] [DEV+R][DATA...]
//	Ack probe:  [DEV+W]
//
// Where DEV is the 7-bit bus address 0b1010_E2E1E0 (see BusAddress). The
// read/write direction bit is appended by the bus transport.
//
// # Write Chunking
//
// Use a Chunker to split an arbitrary write into page-bounded pieces:
//
//	c := memmap.NewChunker(0x001B, payload)
//	for chunk, ok := c.Next(); ok; chunk, ok = c.Next() {
//	    frame, _ := memmap.BuildWriteFrame(chunk.Address, chunk.Data)
//	    // send frame ...
//	}
//
// Chunks reference the caller's payload; nothing is copied.
//
// # Error Handling
//
// Accesses that extend past the end of the array are reported as a
// *RangeError by CheckRange:
//
//	if err := memmap.CheckRange(addr, len(buf)); err != nil {
//	    // err.Error() returns: "access 0x1FF0+32 is out of range: capacity is 8192 bytes"
//	}
package memmap
