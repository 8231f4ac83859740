package eeprom

import (
	"testing"

	"github.com/peripheral-io/at24cxx-go/pkg/chip"
)

func profileFor(t *testing.T, id chip.ID) chip.Profile {
	t.Helper()
	p, ok := id.Profile()
	if !ok {
		t.Fatalf("no profile for %s", id)
	}
	return p
}

func TestTranslateNoFolding(t *testing.T) {
	p := profileFor(t, chip.AT24C256)

	busAddr, memAddr := translate(p, 0x50, 0x1234)
	if busAddr != 0x50 {
		t.Errorf("bus address = %#02x, want 0x50", busAddr)
	}
	if memAddr != 0x1234 {
		t.Errorf("in-chip address = %#04x, want 0x1234", memAddr)
	}

	// External bias passes through untouched.
	busAddr, _ = translate(p, 0x53, 0x0000)
	if busAddr != 0x53 {
		t.Errorf("biased bus address = %#02x, want 0x53", busAddr)
	}
}

func TestTranslateFolding(t *testing.T) {
	tests := []struct {
		name        string
		id          chip.ID
		base        byte
		logical     uint16
		wantBus     byte
		wantMemAddr uint16
	}{
		// The AT24C16 scenario: 2 KiB, 3 overflow bits.
		{"AT24C16 high block", chip.AT24C16, 0x50, 0x0300, 0x53, 0x00},
		{"AT24C16 first block", chip.AT24C16, 0x50, 0x00FF, 0x50, 0xFF},
		{"AT24C16 last byte", chip.AT24C16, 0x50, 0x07FF, 0x57, 0xFF},
		// AT24C08: 2 overflow bits mask the fold to 4 blocks.
		{"AT24C08", chip.AT24C08, 0x50, 0x0300, 0x53, 0x00},
		// AT24C04: 1 overflow bit.
		{"AT24C04", chip.AT24C04, 0x50, 0x01FF, 0x51, 0xFF},
		// A biased base has its low bits overwritten by folded bits.
		{"bias displaced by fold", chip.AT24C16, 0x57, 0x0100, 0x51, 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profileFor(t, tt.id)
			busAddr, memAddr := translate(p, tt.base, tt.logical)
			if busAddr != tt.wantBus {
				t.Errorf("bus address = %#02x, want %#02x", busAddr, tt.wantBus)
			}
			if memAddr != tt.wantMemAddr {
				t.Errorf("in-chip address = %#02x, want %#02x", memAddr, tt.wantMemAddr)
			}
		})
	}
}

func TestTranslatePerPositionNotPerRequest(t *testing.T) {
	// A write crossing a 256-byte block boundary must fold differently for
	// the chunks on either side.
	p := profileFor(t, chip.AT24C16)

	before, _ := translate(p, 0x50, 0x02F0)
	after, _ := translate(p, 0x50, 0x0300)
	if before != 0x52 || after != 0x53 {
		t.Errorf("fold across block boundary = %#02x then %#02x, want 0x52 then 0x53", before, after)
	}
}
