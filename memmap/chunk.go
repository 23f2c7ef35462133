package memmap

// Chunk is one page-bounded piece of a write request.
type Chunk struct {
	// Address is the first byte written by this chunk. It is either the start
	// of the request or a page boundary.
	Address uint16

	// Data is a sub-slice of the request payload
	Data []byte
}

// End returns the address one past the last byte of the chunk.
func (c Chunk) End() int {
	return int(c.Address) + len(c.Data)
}

// Chunker splits a write request at page boundaries. The first chunk runs up
// to the end of the start page, every following chunk covers one full page
// and the last one stops at the end of the payload.
//
// A Chunker is restartable with Reset and allocates nothing while iterating.
type Chunker struct {
	addr uint16
	data []byte
	off  int
}

// NewChunker returns a Chunker over data written at addr.
func NewChunker(addr uint16, data []byte) *Chunker {
	return &Chunker{addr: addr, data: data}
}

// Next returns the next chunk in ascending address order. The second result
// is false once the payload is exhausted.
func (c *Chunker) Next() (Chunk, bool) {
	if c.off >= len(c.data) {
		return Chunk{}, false
	}

	pos := int(c.addr) + c.off
	n := PageSize - pos%PageSize
	if rest := len(c.data) - c.off; n > rest {
		n = rest
	}

	chunk := Chunk{
		Address: uint16(pos),
		Data:    c.data[c.off : c.off+n],
	}
	c.off += n

	return chunk, true
}

// Reset rewinds the Chunker to the first chunk.
func (c *Chunker) Reset() {
	c.off = 0
}

// Len returns the total number of chunks the request splits into.
func (c *Chunker) Len() int {
	if len(c.data) == 0 {
		return 0
	}
	first := int(c.addr) / PageSize
	last := (int(c.addr) + len(c.data) - 1) / PageSize
	return last - first + 1
}
