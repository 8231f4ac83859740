// Package bus defines the narrow collaborator interfaces the EEPROM driver
// requires from its surroundings: an I2C transport, an optional GPIO pin for
// the write-protect line, and nothing else.
//
// The package deliberately does not implement an I2C bus. Integrations adapt
// whatever HAL the target platform provides (linux devfs, tinygo machine,
// vendor SDKs) to the Transport interface. Sim provides an in-memory chip
// simulation of the AT24CXX family for tests and tooling.
package bus
