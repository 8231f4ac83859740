package eeprom

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/peripheral-io/at24cxx-go/pkg/bus"
	"github.com/peripheral-io/at24cxx-go/pkg/chip"
	"github.com/peripheral-io/at24cxx-go/pkg/trace"
)

// BaseAddress is the family's fixed 7-bit device address. The low 3 bits are
// available for external biasing (chip-select pins) on chips that do not use
// them as folded address bits.
const BaseAddress = 0x50

// WriteCycleTime is the datasheet-maximum settle time after each write
// transaction before the chip accepts another.
const WriteCycleTime = 5 * time.Millisecond

// Config configures a Driver.
type Config struct {
	// Chip selects the variant's capability profile from the static table.
	Chip chip.ID

	// Profile overrides the table lookup when non-nil, for geometries not
	// listed (compatible clones). It must pass chip.Profile.Validate.
	Profile *chip.Profile

	// AddressBias is the external bias of the device address (0-7), OR'd
	// into the low bits of BaseAddress. Bits above the low 3 are ignored.
	AddressBias byte

	// WriteProtect is the GPIO pin wired to the chip's WP line.
	// Nil means the device has no write-protect capability.
	WriteProtect bus.Pin

	// Delay blocks for the given duration between write chunks.
	// If nil, time.Sleep is used. Tests inject a counter here.
	Delay func(time.Duration)

	// Tracer receives bus activity events.
	// If nil, tracing is disabled.
	Tracer trace.Logger
}

// DefaultConfig returns a Config for the given chip with defaults:
// no bias, no write-protect pin, real sleeps, no tracing.
func DefaultConfig(id chip.ID) Config {
	return Config{Chip: id}
}

// Driver is a byte-addressable interface to one AT24CXX chip.
//
// A Driver assumes a single caller context at a time; concurrent calls must
// be serialized by the caller. Every operation blocks until its bus
// transactions and inter-chunk settle waits complete.
type Driver struct {
	profile   chip.Profile
	chipName  string
	transport bus.Transport
	base      byte
	wp        bus.Pin
	delay     func(time.Duration)
	tracer    trace.Logger
	state     State
	id        string
}

// New creates a Driver for the given transport and configuration.
// No bus activity happens until Init.
func New(t bus.Transport, cfg Config) (*Driver, error) {
	if t == nil {
		return nil, ErrNoTransport
	}

	profile := chip.Profile{}
	name := cfg.Chip.String()
	if cfg.Profile != nil {
		profile = *cfg.Profile
		name = "custom"
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidProfile, err)
		}
	} else {
		p, ok := cfg.Chip.Profile()
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChip, cfg.Chip)
		}
		profile = p
	}

	delay := cfg.Delay
	if delay == nil {
		delay = time.Sleep
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = trace.NoopLogger{}
	}

	return &Driver{
		profile:   profile,
		chipName:  name,
		transport: t,
		base:      BaseAddress | cfg.AddressBias&0x07,
		wp:        cfg.WriteProtect,
		delay:     delay,
		tracer:    tracer,
		state:     StateUninitialized,
		id:        uuid.New().String(),
	}, nil
}

// Init prepares the transport and, when a write-protect pin is configured,
// drives it as a deasserted output. Idempotent in effect, though the GPIO
// direction and level are re-applied on every call.
func (d *Driver) Init() error {
	if err := d.transport.Init(); err != nil {
		return fmt.Errorf("transport init: %w", err)
	}

	next := StateActiveNoProtect
	if d.wp != nil {
		if err := d.wp.SetDirectionOutput(); err != nil {
			return fmt.Errorf("write-protect pin direction: %w", err)
		}
		if err := d.wp.SetLevel(false); err != nil {
			return fmt.Errorf("write-protect pin level: %w", err)
		}
		next = StateActiveWithProtect
	}

	if d.state != next {
		d.traceState(d.state, next)
		d.state = next
	}
	return nil
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Profile returns the chip's capability profile.
func (d *Driver) Profile() chip.Profile {
	return d.profile
}

// Chip returns the part name the driver was configured for.
func (d *Driver) Chip() string {
	return d.chipName
}

// ID returns the driver instance identifier used in trace events.
func (d *Driver) ID() string {
	return d.id
}

// WriteByte writes a single byte.
func (d *Driver) WriteByte(addr uint16, v byte) error {
	return d.Write(addr, []byte{v})
}

// WriteString writes the bytes of s starting at addr.
func (d *Driver) WriteString(addr uint16, s string) error {
	return d.Write(addr, []byte(s))
}

// Write stores p at the given logical address, splitting the transfer into
// page-respecting chunks and waiting out the chip's write cycle after each.
//
// Range violations are rejected in full before any bus activity. Once the
// plan is accepted, all chunks are issued best-effort: a transport-level
// chunk failure does not abort the remaining chunks and is not reflected in
// the return value, only in the trace stream.
func (d *Driver) Write(addr uint16, p []byte) error {
	if d.state == StateUninitialized {
		return ErrNotReady
	}

	chunks, err := planWrite(d.profile, addr, len(p))
	if err != nil {
		return err
	}

	sent := 0
	for i, c := range chunks {
		busAddr, memAddr := translate(d.profile, d.base, c.addr)
		if err := d.issueWrite(busAddr, memAddr, p[sent:sent+c.size]); err != nil {
			d.traceError("write", err)
		} else {
			d.traceTransaction(trace.DirectionWrite, busAddr, memAddr, c.size, i+1, len(chunks))
		}
		sent += c.size
		d.delay(WriteCycleTime)
	}
	return nil
}

// ReadByte reads a single byte. On a range or readiness error the returned
// byte is zero; a zero byte alone is not distinguishable from failure.
func (d *Driver) ReadByte(addr uint16) (byte, error) {
	var b [1]byte
	err := d.Read(addr, b[:])
	return b[0], err
}

// ReadString reads n bytes starting at addr and returns them as a string.
func (d *Driver) ReadString(addr uint16, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: negative length %d", ErrOutOfRange, n)
	}
	p := make([]byte, n)
	if err := d.Read(addr, p); err != nil {
		return "", err
	}
	return string(p), nil
}

// Read fills p from the given logical address in one combined
// write-address-then-read transaction. Reads have no page constraint, so the
// address is translated once at the request's start.
func (d *Driver) Read(addr uint16, p []byte) error {
	if d.state == StateUninitialized {
		return ErrNotReady
	}
	if uint32(addr)+uint32(len(p)) > d.profile.CapacityBytes {
		return fmt.Errorf("%w: %d bytes at %#04x, capacity %d", ErrOutOfRange, len(p), addr, d.profile.CapacityBytes)
	}
	if len(p) == 0 {
		return nil
	}

	busAddr, memAddr := translate(d.profile, d.base, addr)
	if err := d.issueRead(busAddr, memAddr, p); err != nil {
		d.traceError("read", err)
		return nil
	}
	d.traceTransaction(trace.DirectionRead, busAddr, memAddr, len(p), 0, 0)
	return nil
}

// SetWriteProtect asserts the write-protect line, hardware-blocking writes.
// No-op unless the device was initialized with a write-protect pin.
func (d *Driver) SetWriteProtect() error {
	if d.state != StateActiveWithProtect {
		return nil
	}
	return d.wp.SetLevel(true)
}

// ClearWriteProtect deasserts the write-protect line.
// No-op unless the device was initialized with a write-protect pin.
func (d *Driver) ClearWriteProtect() error {
	if d.state != StateActiveWithProtect {
		return nil
	}
	return d.wp.SetLevel(false)
}

// issueWrite sends one chunk, dispatching on the chip's address width.
func (d *Driver) issueWrite(busAddr byte, memAddr uint16, p []byte) error {
	if err := d.transport.SetAddress(busAddr); err != nil {
		return err
	}
	if d.profile.AddressBytes > 1 {
		return d.transport.Write16(memAddr, p)
	}
	return d.transport.Write8(byte(memAddr), p)
}

// issueRead performs the combined address-write/data-read transaction.
func (d *Driver) issueRead(busAddr byte, memAddr uint16, p []byte) error {
	if err := d.transport.SetAddress(busAddr); err != nil {
		return err
	}
	if d.profile.AddressBytes > 1 {
		return d.transport.WriteRead16(memAddr, p)
	}
	return d.transport.WriteRead8(byte(memAddr), p)
}

func (d *Driver) traceTransaction(dir trace.Direction, busAddr byte, memAddr uint16, n, chunkNo, chunkCount int) {
	d.tracer.Log(trace.Event{
		Timestamp:  time.Now(),
		DeviceID:   d.id,
		Chip:       d.chipName,
		Kind:       trace.KindTransaction,
		Direction:  dir,
		BusAddr:    busAddr,
		MemAddr:    memAddr,
		Len:        n,
		Chunk:      chunkNo,
		ChunkCount: chunkCount,
	})
}

func (d *Driver) traceState(old, next State) {
	d.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  d.id,
		Chip:      d.chipName,
		Kind:      trace.KindState,
		StateChange: &trace.StateChangeEvent{
			OldState: old.String(),
			NewState: next.String(),
		},
	})
}

func (d *Driver) traceError(op string, err error) {
	d.tracer.Log(trace.Event{
		Timestamp: time.Now(),
		DeviceID:  d.id,
		Chip:      d.chipName,
		Kind:      trace.KindError,
		Error: &trace.ErrorEvent{
			Op:      op,
			Message: err.Error(),
		},
	})
}
