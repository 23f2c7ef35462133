package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/moffa90/go-m24c64/memmap"
)

// ParseAddress parses a memory address in decimal, 0x hex or 0o octal.
func ParseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	if v >= memmap.Capacity {
		return 0, fmt.Errorf("address 0x%04X beyond end of array (0x%04X)", v, memmap.Capacity)
	}
	return uint16(v), nil
}

// ParseLength parses a byte count.
func ParseLength(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil || v > memmap.Capacity {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return int(v), nil
}

// ParseByte parses a single byte value such as 0xFF or 255.
func ParseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// ParseHex decodes a hex string. Spaces, colons and a 0x prefix are ignored,
// so "DE AD", "de:ad" and "0xdead" are equivalent.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.NewReplacer(" ", "", ":", "", "\t", "").Replace(s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return data, nil
}

// HexDump writes data as 16-byte rows prefixed with the memory address of the
// first byte of each row.
func HexDump(w io.Writer, base uint16, data []byte) {
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(w, "%04X  % -47X  |", int(base)+off, row)
		for _, b := range row {
			if b >= 0x20 && b < 0x7F {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
