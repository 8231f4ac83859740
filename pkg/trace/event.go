package trace

import "time"

// Event is one captured driver occurrence.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// DeviceID uniquely identifies the driver instance (UUID).
	DeviceID string `cbor:"2,keyasint"`

	// Chip is the part name of the device (e.g. "AT24C256").
	Chip string `cbor:"3,keyasint,omitempty"`

	// Kind classifies the event.
	Kind Kind `cbor:"4,keyasint"`

	// Direction of a data transfer (transactions only).
	Direction Direction `cbor:"5,keyasint,omitempty"`

	// BusAddr is the 7-bit device address the transaction used.
	// For folded-addressing chips this varies per chunk.
	BusAddr byte `cbor:"6,keyasint,omitempty"`

	// MemAddr is the in-chip address as sent on the wire.
	MemAddr uint16 `cbor:"7,keyasint,omitempty"`

	// Len is the number of data bytes transferred.
	Len int `cbor:"8,keyasint,omitempty"`

	// Chunk and ChunkCount locate a write transaction within its plan
	// (1-based; both zero for reads and single events).
	Chunk      int `cbor:"9,keyasint,omitempty"`
	ChunkCount int `cbor:"10,keyasint,omitempty"`

	// Type-specific payload (at most one is set).
	StateChange *StateChangeEvent `cbor:"11,keyasint,omitempty"`
	Error       *ErrorEvent       `cbor:"12,keyasint,omitempty"`
}

// StateChangeEvent records a driver lifecycle transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`
}

// ErrorEvent records a transport error the driver swallowed.
type ErrorEvent struct {
	// Op names the failing operation ("write", "read", "init").
	Op string `cbor:"1,keyasint"`

	// Message is the transport error text.
	Message string `cbor:"2,keyasint"`
}

// Kind classifies a trace event.
type Kind uint8

const (
	// KindTransaction is a completed bus data transfer.
	KindTransaction Kind = 1

	// KindState is a driver lifecycle transition.
	KindState Kind = 2

	// KindError is a transport error not surfaced to the caller.
	KindError Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransaction:
		return "TRANSACTION"
	case KindState:
		return "STATE"
	case KindError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Direction indicates the direction of a data transfer.
type Direction uint8

const (
	// DirectionWrite is a transfer toward the chip.
	DirectionWrite Direction = 1

	// DirectionRead is a transfer from the chip.
	DirectionRead Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionWrite:
		return "WRITE"
	case DirectionRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}
