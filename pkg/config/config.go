package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/peripheral-io/at24cxx-go/pkg/chip"
)

// Config validation errors.
var (
	ErrNoDevices       = errors.New("no devices defined")
	ErrMissingName     = errors.New("device name is required")
	ErrDuplicateDevice = errors.New("duplicate device name")
	ErrUnknownChip     = errors.New("unknown chip")
	ErrBadAddressBias  = errors.New("address bias out of range")
	ErrBadChannel      = errors.New("bus channel out of range")
)

// Config is a parsed device definition file.
type Config struct {
	Devices []Device `yaml:"devices"`
	Trace   Trace    `yaml:"trace"`
}

// Device describes one EEPROM on the system.
type Device struct {
	// Name identifies the device in tooling ("-device" flag).
	Name string `yaml:"name"`

	// Chip is the part name, e.g. "AT24C256".
	Chip string `yaml:"chip"`

	// AddressBias is the external bias of the device address (0-7).
	AddressBias int `yaml:"address_bias"`

	// WriteProtect indicates the chip's WP line is under GPIO control.
	WriteProtect bool `yaml:"write_protect"`

	// Channel selects which bus transport instance the device sits on.
	Channel int `yaml:"channel"`
}

// Trace configures trace capture.
type Trace struct {
	// File receives CBOR trace events when non-empty.
	File string `yaml:"file"`

	// Console mirrors trace events to slog at debug level.
	Console bool `yaml:"console"`
}

// ChipID resolves the device's part name.
func (d Device) ChipID() (chip.ID, error) {
	id, ok := chip.ParseID(d.Chip)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownChip, d.Chip)
	}
	return id, nil
}

// Load parses and validates a YAML definition.
func Load(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile reads and parses a YAML definition file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Validate checks the definition for consistency.
func (c *Config) Validate() error {
	if len(c.Devices) == 0 {
		return ErrNoDevices
	}

	seen := make(map[string]bool, len(c.Devices))
	for i, d := range c.Devices {
		if d.Name == "" {
			return fmt.Errorf("%w: device %d", ErrMissingName, i)
		}
		if seen[d.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateDevice, d.Name)
		}
		seen[d.Name] = true

		if _, err := d.ChipID(); err != nil {
			return fmt.Errorf("device %q: %w", d.Name, err)
		}
		if d.AddressBias < 0 || d.AddressBias > 7 {
			return fmt.Errorf("%w: device %q has bias %d", ErrBadAddressBias, d.Name, d.AddressBias)
		}
		if d.Channel < 0 {
			return fmt.Errorf("%w: device %q has channel %d", ErrBadChannel, d.Name, d.Channel)
		}
	}
	return nil
}

// Device returns the named device definition.
// An empty name selects the first device.
func (c *Config) Device(name string) (Device, error) {
	if name == "" {
		return c.Devices[0], nil
	}
	for _, d := range c.Devices {
		if d.Name == name {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("device %q not defined", name)
}
