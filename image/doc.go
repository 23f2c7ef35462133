// Package image parses YAML image manifests describing what to program into
// an EEPROM.
//
// # Manifest Format
//
// A manifest lists named regions. Each region has a start address and exactly
// one source of bytes:
//
//	name: board-config
//	device: M24C64
//	regions:
//	  - name: serial
//	    address: 0x0000
//	    hex: "A1 B2 C3 D4"
//	  - name: calibration
//	    address: 0x0100
//	    fill: { length: 64, value: 0xFF }
//	  - name: label
//	    address: 0x0200
//	    text: "rev-b"
//
// Regions must fit in the memory array and must not overlap.
//
// # Usage
//
//	img, err := image.Parse("board.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("%s: %d regions, %d bytes\n", img.Name, len(img.Regions), img.Size())
//
//	err = img.Apply(dev, func(r *image.Region, done, total int) {
//	    fmt.Printf("[%d/%d] %s at 0x%04X\n", done, total, r.Name, r.Address)
//	})
//
// # Error Handling
//
// Parse errors are *LoadError values naming the file and, when the problem is
// in a region, the region. Hex decoding and range problems are wrapped as the
// Cause.
package image
