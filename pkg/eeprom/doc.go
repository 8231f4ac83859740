// Package eeprom implements a byte-addressable driver for AT24CXX serial
// EEPROMs over an abstract I2C transport.
//
// The chips store data in fixed-size pages and, depending on capacity, take
// one or two in-chip address bytes; the smaller single-byte variants fold
// their high address bits into the I2C device address. The driver hides all
// of that: callers read and write arbitrary-length byte ranges at arbitrary
// addresses, and the driver plans the page-respecting chunk sequence, folds
// addresses per chunk, and waits out the chip's write cycle between chunks.
//
//	sim := bus.NewSim(mustProfile(chip.AT24C256), eeprom.BaseAddress)
//	drv, err := eeprom.New(sim, eeprom.DefaultConfig(chip.AT24C256))
//	if err != nil { ... }
//	if err := drv.Init(); err != nil { ... }
//	err = drv.Write(0x0100, []byte("hello"))
//
// A driver instance assumes a single caller context; concurrent use must be
// serialized externally. The transport and optional write-protect pin are
// referenced, not owned.
package eeprom
