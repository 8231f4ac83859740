package eeprom

import "github.com/peripheral-io/at24cxx-go/pkg/chip"

// translate maps a logical chip address onto the wire-level address pair:
// the 7-bit device address and the in-chip address bytes.
//
// Chips without overflow bits keep their device identity fixed and carry the
// whole logical address in the in-chip field. Overflow-bit chips use one
// address byte on the wire and fold address bits 8 and up into the low
// identity bits, which the base address leaves reserved for that purpose.
//
// Folding depends on the current position, not the request's start, so the
// driver re-translates for every chunk of a multi-chunk write.
func translate(p chip.Profile, base byte, logical uint16) (busAddr byte, memAddr uint16) {
	if p.OverflowBits == 0 {
		return base, logical
	}

	mask := uint16(1)<<p.OverflowBits - 1
	busAddr = base&^0x07 | byte(logical>>8&mask)
	return busAddr, logical & 0xFF
}
