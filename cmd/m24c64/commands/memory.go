package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/moffa90/go-m24c64/eeprom"
	"github.com/moffa90/go-m24c64/image"
	"github.com/moffa90/go-m24c64/memmap"
)

// RunRead reads n bytes at addr and hex-dumps them to w.
func RunRead(dev *eeprom.Device, addr uint16, n int, w io.Writer) error {
	buf := make([]byte, n)
	if err := dev.Read(addr, buf); err != nil {
		return err
	}
	HexDump(w, addr, buf)
	return nil
}

// RunWrite writes data at addr and reports how many pages it touched.
func RunWrite(dev *eeprom.Device, addr uint16, data []byte, w io.Writer) error {
	start := time.Now()
	if err := dev.Write(addr, data); err != nil {
		return err
	}
	pages := memmap.NewChunker(addr, data).Len()
	fmt.Fprintf(w, "wrote %d bytes at 0x%04X (%d page writes, %s)\n",
		len(data), addr, pages, time.Since(start).Round(time.Millisecond))
	return nil
}

// RunDump reads the whole array. With output empty it hex-dumps to w,
// otherwise it writes the raw bytes to the output file.
func RunDump(dev *eeprom.Device, output string, w io.Writer) error {
	buf := make([]byte, dev.Size())
	if err := dev.Read(0, buf); err != nil {
		return err
	}

	if output == "" {
		HexDump(w, 0, buf)
		return nil
	}

	if err := os.WriteFile(output, buf, 0644); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	fmt.Fprintf(w, "dumped %d bytes to %s\n", len(buf), output)
	return nil
}

// RunProgram writes every region of the manifest at path, then reads each
// region back and compares it.
func RunProgram(dev *eeprom.Device, path string, w io.Writer) error {
	img, err := image.Parse(path)
	if err != nil {
		return err
	}

	name := img.Name
	if name == "" {
		name = path
	}
	fmt.Fprintf(w, "programming %s: %d regions, %d bytes\n", name, len(img.Regions), img.Size())

	err = img.Apply(dev, func(r *image.Region, done, total int) {
		fmt.Fprintf(w, "  [%d/%d] %-16s 0x%04X-0x%04X  %d bytes\n",
			done, total, r.Name, r.Address, r.End()-1, len(r.Data))
	})
	if err != nil {
		return err
	}

	for _, r := range img.Regions {
		if err := dev.Verify(r.Address, r.Data); err != nil {
			return &image.LoadError{File: path, Region: r.Name, Message: "verify failed", Cause: err}
		}
	}
	fmt.Fprintln(w, "verified")
	return nil
}
