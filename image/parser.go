package image

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-m24c64/memmap"
)

// Parse parses a manifest from the given file path.
//
// Example:
//
//	img, err := image.Parse("board.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Parse(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	img, err := ParseBytes(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}

	return img, nil
}

// ParseReader parses a manifest from any io.Reader.
func ParseReader(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Message: "failed to read manifest", Cause: err}
	}
	return ParseBytes(data)
}

// ParseBytes parses and validates a manifest from YAML bytes.
func ParseBytes(data []byte) (*Image, error) {
	var img Image
	if err := yaml.Unmarshal(data, &img); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	if img.Device != "" && !strings.EqualFold(img.Device, memmap.ChipFamily) {
		return nil, &LoadError{
			Message: fmt.Sprintf("manifest targets %s, expected %s", img.Device, memmap.ChipFamily),
		}
	}
	if len(img.Regions) == 0 {
		return nil, &LoadError{Message: "manifest must have at least one region"}
	}

	for i, r := range img.Regions {
		if r == nil {
			return nil, &LoadError{Message: fmt.Sprintf("region %d is empty", i)}
		}
		if r.Name == "" {
			r.Name = fmt.Sprintf("region-%d", i)
		}
		if err := decodeRegion(r); err != nil {
			return nil, err
		}
	}

	if err := img.Validate(); err != nil {
		return nil, err
	}

	return &img, nil
}

// Validate checks that every region fits in the array and that no two regions
// overlap. It sorts the regions by address.
func (img *Image) Validate() error {
	img.sortRegions()

	for i, r := range img.Regions {
		if err := memmap.CheckRange(r.Address, len(r.Data)); err != nil {
			return &LoadError{Region: r.Name, Message: "does not fit", Cause: err}
		}
		if i > 0 {
			prev := img.Regions[i-1]
			if prev.End() > int(r.Address) {
				return &LoadError{
					Region: r.Name,
					Message: fmt.Sprintf("overlaps region %q (0x%04X-0x%04X)",
						prev.Name, prev.Address, prev.End()-1),
				}
			}
		}
	}

	return nil
}

// decodeRegion fills r.Data from the single source the region names.
func decodeRegion(r *Region) error {
	sources := 0
	if r.Hex != "" {
		sources++
	}
	if r.Text != "" {
		sources++
	}
	if r.Fill != nil {
		sources++
	}
	if sources != 1 {
		return &LoadError{Region: r.Name, Message: "exactly one of hex, text or fill is required"}
	}

	switch {
	case r.Hex != "":
		digits := strings.Join(strings.Fields(r.Hex), "")
		data, err := hex.DecodeString(digits)
		if err != nil {
			return &LoadError{Region: r.Name, Message: "invalid hex data", Cause: err}
		}
		r.Data = data
	case r.Text != "":
		r.Data = []byte(r.Text)
	default:
		if r.Fill.Length <= 0 {
			return &LoadError{Region: r.Name, Message: fmt.Sprintf("invalid fill length %d", r.Fill.Length)}
		}
		if r.Fill.Length > memmap.Capacity {
			return &LoadError{Region: r.Name, Message: fmt.Sprintf("fill length %d exceeds capacity", r.Fill.Length)}
		}
		r.Data = make([]byte, r.Fill.Length)
		for i := range r.Data {
			r.Data[i] = r.Fill.Value
		}
	}

	if len(r.Data) == 0 {
		return &LoadError{Region: r.Name, Message: "region has no data"}
	}
	return nil
}
