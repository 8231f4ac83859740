package chip

import (
	"fmt"
	"strings"
)

// ID identifies a supported AT24CXX chip variant.
type ID uint8

const (
	AT24C01 ID = iota
	AT24C02
	AT24C04
	AT24C08
	AT24C16
	AT24C32
	AT24C64
	AT24C128
	AT24C256
	AT24C512
)

// profiles is the static capability table, one entry per datasheet.
// Capacities run from 1 Kbit (AT24C01) to 512 Kbit (AT24C512). Chips up to
// the AT24C16 use a single address byte; capacities past 256 bytes fold the
// missing high address bits into the device address (overflow bits). The
// AT24C32 and larger switch to two address bytes and fold nothing.
var profiles = map[ID]Profile{
	AT24C01:  {CapacityBytes: 128, PageSize: 8, AddressBytes: 1, OverflowBits: 0},
	AT24C02:  {CapacityBytes: 256, PageSize: 8, AddressBytes: 1, OverflowBits: 0},
	AT24C04:  {CapacityBytes: 512, PageSize: 16, AddressBytes: 1, OverflowBits: 1},
	AT24C08:  {CapacityBytes: 1024, PageSize: 16, AddressBytes: 1, OverflowBits: 2},
	AT24C16:  {CapacityBytes: 2048, PageSize: 16, AddressBytes: 1, OverflowBits: 3},
	AT24C32:  {CapacityBytes: 4096, PageSize: 32, AddressBytes: 2, OverflowBits: 0},
	AT24C64:  {CapacityBytes: 8192, PageSize: 32, AddressBytes: 2, OverflowBits: 0},
	AT24C128: {CapacityBytes: 16384, PageSize: 64, AddressBytes: 2, OverflowBits: 0},
	AT24C256: {CapacityBytes: 32768, PageSize: 64, AddressBytes: 2, OverflowBits: 0},
	AT24C512: {CapacityBytes: 65536, PageSize: 128, AddressBytes: 2, OverflowBits: 0},
}

// Profile returns the capability profile for the chip.
// ok is false for an unknown ID.
func (id ID) Profile() (p Profile, ok bool) {
	p, ok = profiles[id]
	return p, ok
}

// String returns the chip's part name.
func (id ID) String() string {
	switch id {
	case AT24C01:
		return "AT24C01"
	case AT24C02:
		return "AT24C02"
	case AT24C04:
		return "AT24C04"
	case AT24C08:
		return "AT24C08"
	case AT24C16:
		return "AT24C16"
	case AT24C32:
		return "AT24C32"
	case AT24C64:
		return "AT24C64"
	case AT24C128:
		return "AT24C128"
	case AT24C256:
		return "AT24C256"
	case AT24C512:
		return "AT24C512"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(id))
	}
}

// IDs returns the supported chip identifiers in capacity order.
func IDs() []ID {
	return []ID{
		AT24C01, AT24C02, AT24C04, AT24C08, AT24C16,
		AT24C32, AT24C64, AT24C128, AT24C256, AT24C512,
	}
}

// ParseID resolves a part name (case-insensitive, e.g. "at24c256") to an ID.
// ok is false for an unrecognized name.
func ParseID(name string) (ID, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, id := range IDs() {
		if id.String() == name {
			return id, true
		}
	}
	return 0, false
}
