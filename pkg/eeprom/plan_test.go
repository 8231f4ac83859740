package eeprom

import (
	"errors"
	"testing"

	"github.com/peripheral-io/at24cxx-go/pkg/chip"
)

func TestPlanSingleChunk(t *testing.T) {
	p := profileFor(t, chip.AT24C02) // 8-byte pages

	chunks, err := planWrite(p, 8, 8)
	if err != nil {
		t.Fatalf("planWrite: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != (chunk{addr: 8, size: 8}) {
		t.Errorf("chunks = %+v", chunks)
	}
}

func TestPlanPageCrossing(t *testing.T) {
	// 16-byte pages: 2 bytes at address 15 straddle a page boundary.
	p := profileFor(t, chip.AT24C16)

	chunks, err := planWrite(p, 15, 2)
	if err != nil {
		t.Fatalf("planWrite: %v", err)
	}
	want := []chunk{{addr: 15, size: 1}, {addr: 16, size: 1}}
	if len(chunks) != 2 || chunks[0] != want[0] || chunks[1] != want[1] {
		t.Errorf("chunks = %+v, want %+v", chunks, want)
	}
}

func TestPlanBusSizeClamp(t *testing.T) {
	// A two-address-byte chip writing more than 30 bytes is limited by the
	// bus transaction buffer, not its own 32-byte page: effective page 16.
	p := profileFor(t, chip.AT24C32)

	chunks, err := planWrite(p, 20, 40)
	if err != nil {
		t.Fatalf("planWrite: %v", err)
	}
	want := []chunk{{addr: 20, size: 12}, {addr: 32, size: 16}, {addr: 48, size: 12}}
	if len(chunks) != len(want) {
		t.Fatalf("chunk count = %d, want %d: %+v", len(chunks), len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk[%d] = %+v, want %+v", i, chunks[i], want[i])
		}
	}
}

func TestPlanClampOnlyAboveBurstLimit(t *testing.T) {
	p := profileFor(t, chip.AT24C32)

	// 30 bytes exactly: full 32-byte page applies.
	chunks, err := planWrite(p, 0, 30)
	if err != nil {
		t.Fatalf("planWrite: %v", err)
	}
	if len(chunks) != 1 || chunks[0].size != 30 {
		t.Errorf("chunks = %+v, want one 30-byte chunk", chunks)
	}

	// Single-address-byte chips never clamp, whatever the length.
	small := profileFor(t, chip.AT24C16)
	chunks, err = planWrite(small, 0, 64)
	if err != nil {
		t.Fatalf("planWrite: %v", err)
	}
	if len(chunks) != 4 || chunks[0].size != 16 {
		t.Errorf("chunks = %+v, want four 16-byte chunks", chunks)
	}
}

func TestPlanRejectsOverrun(t *testing.T) {
	p := profileFor(t, chip.AT24C02) // 256 bytes

	tests := []struct {
		name   string
		addr   uint16
		length int
	}{
		{"one past end", 0, 257},
		{"tail overrun", 250, 7},
		{"start at capacity", 256, 1},
		{"far out", 0xFFFF, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := planWrite(p, tt.addr, tt.length)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("err = %v, want ErrOutOfRange", err)
			}
			if chunks != nil {
				t.Errorf("rejected plan produced chunks: %+v", chunks)
			}
		})
	}

	// The full array is still writable.
	if _, err := planWrite(p, 0, 256); err != nil {
		t.Errorf("full-capacity write rejected: %v", err)
	}
}

func TestPlanZeroLength(t *testing.T) {
	p := profileFor(t, chip.AT24C02)

	chunks, err := planWrite(p, 10, 0)
	if err != nil {
		t.Errorf("zero-length plan failed: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("zero-length plan produced chunks: %+v", chunks)
	}
}

func TestPlanCoversRequestExactly(t *testing.T) {
	// Across several geometries, chunks must tile the request contiguously
	// and never cross an effective page boundary.
	for _, id := range chip.IDs() {
		p := profileFor(t, id)
		for _, tc := range []struct {
			addr   uint16
			length int
		}{
			{0, 1},
			{1, int(p.CapacityBytes/2) - 3},
			{uint16(p.PageSize - 1), p.PageSize + 2},
			{uint16(p.CapacityBytes - 1), 1},
		} {
			chunks, err := planWrite(p, tc.addr, tc.length)
			if err != nil {
				t.Errorf("%s: planWrite(%d,%d): %v", id, tc.addr, tc.length, err)
				continue
			}

			pageSize := p.PageSize
			if p.AddressBytes > 1 && tc.length > largeChipBurstLimit {
				pageSize = clampedPageSize
			}

			next := tc.addr
			total := 0
			for _, c := range chunks {
				if c.addr != next {
					t.Errorf("%s: gap at %#04x (expected %#04x)", id, c.addr, next)
				}
				if int(c.addr)/pageSize != int(c.addr+uint16(c.size)-1)/pageSize {
					t.Errorf("%s: chunk %+v crosses a %d-byte page", id, c, pageSize)
				}
				next += uint16(c.size)
				total += c.size
			}
			if total != tc.length {
				t.Errorf("%s: chunks cover %d bytes, want %d", id, total, tc.length)
			}
		}
	}
}
