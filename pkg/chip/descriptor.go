package chip

// Descriptor is the legacy bit-packed capability word used by C driver
// tables for this chip family:
//
//	bits  0-16: capacity in bytes
//	bits 20-27: page size in bytes
//	bits 28-29: address byte width
//	bits 30-31: overflow bit count
//
// It exists for interoperability with existing tables; new code should use
// the structured Profile via ID.Profile.
type Descriptor uint32

// Field masks and shifts of the packed layout.
const (
	descCapacityMask  = 0x0001FFFF
	descPageShift     = 20
	descPageMask      = 0x0FF00000
	descAddrShift     = 28
	descAddrMask      = 0x30000000
	descOverflowShift = 30
	descOverflowMask  = 0xC0000000
)

// Decode unpacks the descriptor into a Profile.
//
// Pure field extraction, no validation: descriptors are expected to come from
// a fixed table of known variants, so a malformed word is a caller error.
func (d Descriptor) Decode() Profile {
	return Profile{
		CapacityBytes: uint32(d) & descCapacityMask,
		PageSize:      int((uint32(d) & descPageMask) >> descPageShift),
		AddressBytes:  int((uint32(d) & descAddrMask) >> descAddrShift),
		OverflowBits:  int((uint32(d) & descOverflowMask) >> descOverflowShift),
	}
}

// Pack encodes a Profile into the packed descriptor form.
// Fields wider than their bit allocation are truncated.
func Pack(p Profile) Descriptor {
	return Descriptor(p.CapacityBytes&descCapacityMask |
		uint32(p.PageSize)<<descPageShift&descPageMask |
		uint32(p.AddressBytes)<<descAddrShift&descAddrMask |
		uint32(p.OverflowBits)<<descOverflowShift&descOverflowMask)
}
