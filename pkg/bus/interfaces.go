package bus

// Transport is the I2C access the driver needs.
//
// The 1-byte and 2-byte variants reflect the two in-chip address widths in
// the AT24CXX family; the driver picks the variant from the chip profile.
// SetAddress exists as a separate call because folded addressing changes the
// device identity per chunk, not per driver instance.
type Transport interface {
	// Init prepares the transport for use.
	Init() error

	// SetAddress sets the 7-bit device address for subsequent transactions.
	SetAddress(addr byte) error

	// Write8 writes p starting at the given 1-byte in-chip address.
	Write8(memAddr byte, p []byte) error

	// Write16 writes p starting at the given 2-byte in-chip address.
	Write16(memAddr uint16, p []byte) error

	// WriteRead8 performs a combined write-address-then-read transaction
	// with a 1-byte in-chip address, filling p.
	WriteRead8(memAddr byte, p []byte) error

	// WriteRead16 performs a combined write-address-then-read transaction
	// with a 2-byte in-chip address, filling p.
	WriteRead16(memAddr uint16, p []byte) error
}

// Pin is the GPIO access needed for the optional write-protect line.
type Pin interface {
	// SetDirectionOutput configures the pin as an output.
	SetDirectionOutput() error

	// SetLevel drives the pin high (true) or low (false).
	SetLevel(high bool) error
}
