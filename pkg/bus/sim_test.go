package bus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/peripheral-io/at24cxx-go/pkg/chip"
)

func simFor(t *testing.T, id chip.ID, base byte) *Sim {
	t.Helper()
	p, ok := id.Profile()
	if !ok {
		t.Fatalf("no profile for %s", id)
	}
	s := NewSim(p, base)
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return s
}

func TestSimRequiresInit(t *testing.T) {
	p, _ := chip.AT24C02.Profile()
	s := NewSim(p, 0x50)

	if err := s.Write8(0, []byte{1}); !errors.Is(err, ErrSimNotInited) {
		t.Errorf("Write8 before Init = %v, want ErrSimNotInited", err)
	}
	if err := s.WriteRead8(0, make([]byte, 1)); !errors.Is(err, ErrSimNotInited) {
		t.Errorf("WriteRead8 before Init = %v, want ErrSimNotInited", err)
	}
}

func TestSimWriteRead(t *testing.T) {
	s := simFor(t, chip.AT24C02, 0x50)

	if err := s.Write8(0x10, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("Write8: %v", err)
	}

	got := make([]byte, 2)
	if err := s.WriteRead8(0x10, got); err != nil {
		t.Fatalf("WriteRead8: %v", err)
	}
	if !bytes.Equal(got, []byte{0xAA, 0xBB}) {
		t.Errorf("read back %x", got)
	}

	txs := s.Transactions()
	if len(txs) != 2 || txs[0].Kind != TxWrite || txs[1].Kind != TxRead {
		t.Errorf("journal = %+v", txs)
	}
}

func TestSimWriteWrapsInsidePage(t *testing.T) {
	// AT24C02 pages are 8 bytes. A 4-byte burst starting 2 bytes before a
	// page boundary must wrap to the page start, like the real chip.
	s := simFor(t, chip.AT24C02, 0x50)

	if err := s.Write8(0x0E, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write8: %v", err)
	}

	if got := s.Peek(0x0E, 2); !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("tail of page = %x", got)
	}
	if got := s.Peek(0x08, 2); !bytes.Equal(got, []byte{3, 4}) {
		t.Errorf("head of page = %x", got)
	}
	if got := s.Peek(0x10, 2); !bytes.Equal(got, []byte{0, 0}) {
		t.Errorf("next page touched: %x", got)
	}
}

func TestSimFoldedAddressing(t *testing.T) {
	// AT24C16: 3 overflow bits, the identity's low bits are address bits 8-10.
	s := simFor(t, chip.AT24C16, 0x50)

	if err := s.SetAddress(0x53); err != nil {
		t.Fatalf("SetAddress: %v", err)
	}
	if err := s.Write8(0x20, []byte{0x5A}); err != nil {
		t.Fatalf("Write8: %v", err)
	}

	if got := s.Peek(0x320, 1); got[0] != 0x5A {
		t.Errorf("mem[0x320] = %#02x, want 0x5A", got[0])
	}
}

func TestSimNoAckOutsideIdentityBlock(t *testing.T) {
	s := simFor(t, chip.AT24C16, 0x50)

	// 0x58 is beyond the 8-address block the AT24C16 occupies at 0x50.
	if err := s.SetAddress(0x58); err != nil {
		t.Fatalf("SetAddress: %v", err)
	}
	if err := s.Write8(0, []byte{1}); !errors.Is(err, ErrSimNoAck) {
		t.Errorf("Write8 at foreign identity = %v, want ErrSimNoAck", err)
	}

	fixed := simFor(t, chip.AT24C32, 0x50)
	if err := fixed.SetAddress(0x51); err != nil {
		t.Fatalf("SetAddress: %v", err)
	}
	if err := fixed.Write16(0, []byte{1}); !errors.Is(err, ErrSimNoAck) {
		t.Errorf("Write16 at wrong identity = %v, want ErrSimNoAck", err)
	}
}

func TestSimReadRollsOverArray(t *testing.T) {
	s := simFor(t, chip.AT24C02, 0x50)
	s.Poke(0x00, []byte{0x11})
	s.Poke(0xFF, []byte{0x22})

	got := make([]byte, 2)
	if err := s.WriteRead8(0xFF, got); err != nil {
		t.Fatalf("WriteRead8: %v", err)
	}
	if !bytes.Equal(got, []byte{0x22, 0x11}) {
		t.Errorf("rollover read = %x", got)
	}
}

func TestSimFailNext(t *testing.T) {
	s := simFor(t, chip.AT24C02, 0x50)

	injected := errors.New("bus glitch")
	s.FailNext(injected)

	if err := s.Write8(0, []byte{1}); !errors.Is(err, injected) {
		t.Errorf("Write8 = %v, want injected error", err)
	}
	// The fault is one-shot.
	if err := s.Write8(0, []byte{1}); err != nil {
		t.Errorf("second Write8 = %v", err)
	}
}

func TestSimPinRecordsDrive(t *testing.T) {
	p := NewSimPin()
	if p.IsOutput() {
		t.Error("pin should start as input")
	}

	if err := p.SetDirectionOutput(); err != nil {
		t.Fatalf("SetDirectionOutput: %v", err)
	}
	_ = p.SetLevel(true)
	_ = p.SetLevel(false)

	if !p.IsOutput() {
		t.Error("pin not configured as output")
	}
	if p.Level() {
		t.Error("pin should be low")
	}
	if got := p.LevelsSet(); len(got) != 2 || !got[0] || got[1] {
		t.Errorf("levels = %v", got)
	}
}
