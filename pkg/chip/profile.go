package chip

import (
	"errors"
	"fmt"
)

// Profile validation errors.
var (
	ErrBadCapacity     = errors.New("capacity out of range")
	ErrBadPageSize     = errors.New("unsupported page size")
	ErrBadAddressBytes = errors.New("address width must be 1 or 2 bytes")
	ErrBadOverflowBits = errors.New("invalid overflow bit count")
)

// MaxCapacity is the largest addressable range in the AT24CXX family
// (AT24C512, 512 Kbit).
const MaxCapacity = 65536

// Profile holds the immutable capability parameters of one chip variant.
//
// A Profile is plain data; it carries no bus state. The zero value is not a
// valid profile: obtain one from ID.Profile, Descriptor.Decode, or build it
// by hand and check it with Validate.
type Profile struct {
	// CapacityBytes is the total addressable byte range of the chip.
	CapacityBytes uint32

	// PageSize is the chip's internal write page size in bytes.
	// A single write transaction may not cross a page boundary.
	PageSize int

	// AddressBytes is the number of in-chip address bytes the protocol
	// expects on the wire (1 or 2).
	AddressBytes int

	// OverflowBits is the number of high address bits that fold into the
	// low bits of the I2C device address instead of the in-chip address
	// field. Nonzero only for single-address-byte chips whose capacity
	// exceeds 256 bytes.
	OverflowBits int
}

// Validate checks the profile against the family's geometry invariants.
func (p Profile) Validate() error {
	if p.CapacityBytes == 0 || p.CapacityBytes > MaxCapacity {
		return fmt.Errorf("%w: %d bytes", ErrBadCapacity, p.CapacityBytes)
	}
	switch p.PageSize {
	case 8, 16, 32, 64, 128:
	default:
		return fmt.Errorf("%w: %d bytes", ErrBadPageSize, p.PageSize)
	}
	if p.AddressBytes != 1 && p.AddressBytes != 2 {
		return fmt.Errorf("%w: got %d", ErrBadAddressBytes, p.AddressBytes)
	}
	if p.OverflowBits < 0 || p.OverflowBits > 3 {
		return fmt.Errorf("%w: got %d", ErrBadOverflowBits, p.OverflowBits)
	}
	if p.OverflowBits != 0 && p.AddressBytes != 1 {
		return fmt.Errorf("%w: %d overflow bits with %d address bytes", ErrBadOverflowBits, p.OverflowBits, p.AddressBytes)
	}
	return nil
}
