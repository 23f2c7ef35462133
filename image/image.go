package image

import (
	"sort"

	"github.com/moffa90/go-m24c64/memmap"
)

// Image is a parsed manifest.
type Image struct {
	// Name is a free-form label for the image
	Name string `yaml:"name"`

	// Device optionally names the target chip; it must match memmap.ChipFamily
	Device string `yaml:"device"`

	// Regions are the byte ranges to program, sorted by address after parsing
	Regions []*Region `yaml:"regions"`
}

// Region is one contiguous byte range of an image.
type Region struct {
	// Name identifies the region in messages
	Name string `yaml:"name"`

	// Address is the first byte of the region
	Address uint16 `yaml:"address"`

	// Hex is the region content as hex digits; whitespace is ignored
	Hex string `yaml:"hex,omitempty"`

	// Text is the region content as a UTF-8 string
	Text string `yaml:"text,omitempty"`

	// Fill repeats one byte value
	Fill *Fill `yaml:"fill,omitempty"`

	// Data is the decoded content
	Data []byte `yaml:"-"`
}

// Fill describes a region made of a single repeated byte.
type Fill struct {
	Length int   `yaml:"length"`
	Value  uint8 `yaml:"value"`
}

// End returns the address one past the last byte of the region.
func (r *Region) End() int {
	return int(r.Address) + len(r.Data)
}

// Pages returns the number of page writes needed to program the region.
func (r *Region) Pages() int {
	return memmap.NewChunker(r.Address, r.Data).Len()
}

// Size returns the total number of bytes in the image.
func (img *Image) Size() int {
	n := 0
	for _, r := range img.Regions {
		n += len(r.Data)
	}
	return n
}

// Writer is the subset of eeprom.Device used to program an image.
type Writer interface {
	Write(addr uint16, data []byte) error
}

// ApplyFunc is called after each region has been written.
type ApplyFunc func(r *Region, done, total int)

// Apply writes every region in address order. It stops at the first error,
// which is returned wrapped in a *LoadError naming the region.
func (img *Image) Apply(w Writer, progress ApplyFunc) error {
	for i, r := range img.Regions {
		if err := w.Write(r.Address, r.Data); err != nil {
			return &LoadError{Region: r.Name, Message: "write failed", Cause: err}
		}
		if progress != nil {
			progress(r, i+1, len(img.Regions))
		}
	}
	return nil
}

// Render returns the full memory array as it looks after Apply, with bytes
// outside every region set to blank.
func (img *Image) Render(blank byte) []byte {
	out := make([]byte, memmap.Capacity)
	for i := range out {
		out[i] = blank
	}
	for _, r := range img.Regions {
		copy(out[r.Address:], r.Data)
	}
	return out
}

func (img *Image) sortRegions() {
	sort.SliceStable(img.Regions, func(i, j int) bool {
		return img.Regions[i].Address < img.Regions[j].Address
	})
}
