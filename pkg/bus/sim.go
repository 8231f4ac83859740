package bus

import (
	"errors"
	"fmt"
	"sync"

	"github.com/peripheral-io/at24cxx-go/pkg/chip"
)

// Sim transaction kinds.
const (
	TxWrite = "write"
	TxRead  = "read"
)

// Sim transport errors.
var (
	ErrSimNotInited = errors.New("sim transport not initialized")
	ErrSimNoAck     = errors.New("no device at address")
)

// Transaction is one data transfer recorded by the Sim journal.
type Transaction struct {
	Kind    string // TxWrite or TxRead
	BusAddr byte   // device address in effect
	MemAddr uint16 // in-chip address as sent on the wire
	Len     int
}

// Sim is an in-memory AT24CXX chip behind a Transport.
//
// It models the family's bus behavior closely enough to catch driver
// mistakes: overflow-bit chips acknowledge a block of 2^k device addresses
// and use the low identity bits as high address bits, and writes that run
// past a page boundary wrap to the start of the page exactly as the silicon
// does. Every data transfer is recorded in a journal for inspection.
//
// Sim is safe for concurrent use, though the driver it backs is not.
type Sim struct {
	mu      sync.Mutex
	profile chip.Profile
	base    byte // 7-bit base identity, low bits masked off for overflow chips
	mem     []byte
	cur     byte // address set by the last SetAddress call
	inited  bool
	journal []Transaction
	nextErr error
}

// NewSim creates a simulated chip with the given geometry, answering at the
// given 7-bit base address.
func NewSim(profile chip.Profile, base byte) *Sim {
	return &Sim{
		profile: profile,
		base:    base & 0x7F,
		mem:     make([]byte, profile.CapacityBytes),
		cur:     base & 0x7F,
	}
}

// Init marks the transport ready. The chip contents survive re-init.
func (s *Sim) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inited = true
	return nil
}

// SetAddress selects the device identity for subsequent transfers.
func (s *Sim) SetAddress(addr byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = addr & 0x7F
	return nil
}

// FailNext arranges for the next data transfer to return err instead of
// touching the chip. Used to exercise transport-fault paths.
func (s *Sim) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr = err
}

// Write8 implements Transport for single-address-byte chips.
func (s *Sim) Write8(memAddr byte, p []byte) error {
	return s.write(uint16(memAddr), p)
}

// Write16 implements Transport for two-address-byte chips.
func (s *Sim) Write16(memAddr uint16, p []byte) error {
	return s.write(memAddr, p)
}

// WriteRead8 implements Transport for single-address-byte chips.
func (s *Sim) WriteRead8(memAddr byte, p []byte) error {
	return s.read(uint16(memAddr), p)
}

// WriteRead16 implements Transport for two-address-byte chips.
func (s *Sim) WriteRead16(memAddr uint16, p []byte) error {
	return s.read(memAddr, p)
}

// Transactions returns a copy of the data-transfer journal.
func (s *Sim) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Transaction, len(s.journal))
	copy(out, s.journal)
	return out
}

// ResetJournal clears the data-transfer journal.
func (s *Sim) ResetJournal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal = nil
}

// Peek returns a copy of n chip bytes starting at addr, bypassing the bus.
func (s *Sim) Peek(addr uint16, n int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, n)
	copy(out, s.mem[addr:int(addr)+n])
	return out
}

// Poke stores p into the chip starting at addr, bypassing the bus.
func (s *Sim) Poke(addr uint16, p []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.mem[addr:], p)
}

// resolve maps the wire-level address pair onto a logical chip address,
// rejecting identities the simulated chip would not acknowledge.
func (s *Sim) resolve(memAddr uint16) (uint32, error) {
	if !s.inited {
		return 0, ErrSimNotInited
	}
	if s.nextErr != nil {
		err := s.nextErr
		s.nextErr = nil
		return 0, err
	}

	if s.profile.OverflowBits == 0 {
		if s.cur != s.base {
			return 0, fmt.Errorf("%w: %#02x", ErrSimNoAck, s.cur)
		}
		logical := uint32(memAddr)
		if logical >= s.profile.CapacityBytes {
			logical %= s.profile.CapacityBytes
		}
		return logical, nil
	}

	// An overflow-bit chip answers 2^k consecutive identities; the low k
	// bits carry address bits 8 and up.
	mask := byte(1<<s.profile.OverflowBits - 1)
	if s.cur&^mask != s.base&^0x07 {
		return 0, fmt.Errorf("%w: %#02x", ErrSimNoAck, s.cur)
	}
	return uint32(s.cur&mask)<<8 | uint32(memAddr&0xFF), nil
}

func (s *Sim) write(memAddr uint16, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logical, err := s.resolve(memAddr)
	if err != nil {
		return err
	}

	// The chip's write counter only increments within the current page;
	// running off the end wraps to the page start.
	page := uint32(s.profile.PageSize)
	pageBase := logical &^ (page - 1)
	for i, b := range p {
		s.mem[pageBase+(logical-pageBase+uint32(i))%page] = b
	}

	s.journal = append(s.journal, Transaction{Kind: TxWrite, BusAddr: s.cur, MemAddr: memAddr, Len: len(p)})
	return nil
}

func (s *Sim) read(memAddr uint16, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	logical, err := s.resolve(memAddr)
	if err != nil {
		return err
	}

	// Sequential reads roll over the whole array, not the page.
	for i := range p {
		p[i] = s.mem[(logical+uint32(i))%s.profile.CapacityBytes]
	}

	s.journal = append(s.journal, Transaction{Kind: TxRead, BusAddr: s.cur, MemAddr: memAddr, Len: len(p)})
	return nil
}

// SimPin is an in-memory GPIO line recording everything driven onto it.
type SimPin struct {
	mu        sync.Mutex
	output    bool
	level     bool
	levelsSet []bool
}

// NewSimPin creates a simulated GPIO pin, input by default.
func NewSimPin() *SimPin {
	return &SimPin{}
}

// SetDirectionOutput implements Pin.
func (p *SimPin) SetDirectionOutput() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = true
	return nil
}

// SetLevel implements Pin.
func (p *SimPin) SetLevel(high bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = high
	p.levelsSet = append(p.levelsSet, high)
	return nil
}

// IsOutput reports whether the pin was configured as an output.
func (p *SimPin) IsOutput() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.output
}

// Level returns the currently driven level.
func (p *SimPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// LevelsSet returns every level driven onto the pin, in order.
func (p *SimPin) LevelsSet() []bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]bool, len(p.levelsSet))
	copy(out, p.levelsSet)
	return out
}

// Compile-time interface satisfaction checks.
var (
	_ Transport = (*Sim)(nil)
	_ Pin       = (*SimPin)(nil)
)
