// Package config loads YAML device definitions for EEPROM tooling.
//
// A definition file names the chips present on a system, their address
// biasing and write-protect wiring, and where trace output should go:
//
//	devices:
//	  - name: boardid
//	    chip: AT24C256
//	    address_bias: 0
//	    write_protect: true
//	    channel: 1
//	trace:
//	  file: /var/log/eeprom.trace
//	  console: true
//
// The channel selector only picks which bus transport instance a device is
// wrapped around; it plays no role in address translation.
package config
