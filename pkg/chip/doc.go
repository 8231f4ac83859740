// Package chip describes the capability geometry of AT24CXX EEPROM variants.
//
// Each supported chip is identified by an ID and maps to a Profile holding
// the per-datasheet parameters that drive address translation and page
// splitting: total capacity, write page size, in-chip address width, and the
// number of high address bits that fold into the I2C device address.
//
// The legacy bit-packed capability word used by existing C driver tables is
// supported through the Descriptor type.
package chip
