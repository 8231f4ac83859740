package eeprom

import "errors"

// Driver errors.
var (
	// ErrNotReady is returned by data operations before Init has been called.
	ErrNotReady = errors.New("device not initialized")

	// ErrOutOfRange is returned when address+length would run past the end
	// of the chip. The request is rejected in full; no bytes are transferred.
	ErrOutOfRange = errors.New("address range exceeds chip capacity")

	// ErrUnknownChip is returned by New for an ID with no table entry.
	ErrUnknownChip = errors.New("unknown chip")

	// ErrInvalidProfile is returned by New for a custom profile that
	// violates the family's geometry invariants.
	ErrInvalidProfile = errors.New("invalid chip profile")

	// ErrNoTransport is returned by New when no transport is supplied.
	ErrNoTransport = errors.New("transport is required")
)
