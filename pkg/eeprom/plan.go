package eeprom

import (
	"fmt"

	"github.com/peripheral-io/at24cxx-go/pkg/chip"
)

// Two-address-byte chips share a bus transaction buffer smaller than their
// own write page: bursts past 30 data bytes must be re-chunked as if the
// page were 16 bytes.
const (
	largeChipBurstLimit = 30
	clampedPageSize     = 16
)

// chunk is one page-respecting slice of a write request.
type chunk struct {
	addr uint16 // logical start address
	size int
}

// planWrite decomposes a write request into an ordered chunk sequence.
//
// Validation is all-or-nothing: a request that would overrun the chip's
// capacity is rejected in full before any chunk is built. A zero-length
// request plans to zero chunks.
func planWrite(p chip.Profile, addr uint16, length int) ([]chunk, error) {
	if uint32(addr)+uint32(length) > p.CapacityBytes {
		return nil, fmt.Errorf("%w: %d bytes at %#04x, capacity %d", ErrOutOfRange, length, addr, p.CapacityBytes)
	}
	if length == 0 {
		return nil, nil
	}

	pageSize := p.PageSize
	if p.AddressBytes > 1 && length > largeChipBurstLimit {
		pageSize = clampedPageSize
	}

	offset := int(addr) % pageSize
	count := (length+offset-1)/pageSize + 1

	chunks := make([]chunk, 0, count)
	sent := 0
	for i := 0; i < count; i++ {
		size := pageSize - offset
		if rest := length - sent; rest < size {
			size = rest
		}
		chunks = append(chunks, chunk{addr: addr + uint16(sent), size: size})
		sent += size
		offset = 0
	}
	return chunks, nil
}
