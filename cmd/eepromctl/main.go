// Command eepromctl is an interactive workbench for AT24CXX EEPROMs.
//
// It drives the eeprom package against a simulated chip, which makes it
// useful for exploring the family's paging and folded-addressing behavior
// and for exercising device definition files before real hardware exists.
//
// Usage:
//
//	eepromctl [flags]
//
// Flags:
//
//	-config string      Device definition file (YAML)
//	-device string      Device name from the definition file (default: first)
//	-chip string        Chip part name when no config file is given (default "AT24C256")
//	-bias int           Device address bias 0-7 (default 0)
//	-wp                 Attach a write-protect pin
//	-trace-file string  Write CBOR trace events to this file
//	-log-level string   Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Explore a simulated AT24C16 with folded addressing
//	eepromctl -chip AT24C16 -log-level debug
//
//	# Use a device definition file and capture a trace
//	eepromctl -config devices.yaml -device boardid -trace-file /tmp/eeprom.trace
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/peripheral-io/at24cxx-go/cmd/eepromctl/interactive"
	"github.com/peripheral-io/at24cxx-go/pkg/bus"
	"github.com/peripheral-io/at24cxx-go/pkg/config"
	"github.com/peripheral-io/at24cxx-go/pkg/eeprom"
	"github.com/peripheral-io/at24cxx-go/pkg/trace"
)

// Options holds the parsed command line.
type Options struct {
	ConfigFile   string
	DeviceName   string
	Chip         string
	Bias         int
	WriteProtect bool
	TraceFile    string
	LogLevel     string
}

var opts Options

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Device definition file (YAML)")
	flag.StringVar(&opts.DeviceName, "device", "", "Device name from the definition file")
	flag.StringVar(&opts.Chip, "chip", "AT24C256", "Chip part name when no config file is given")
	flag.IntVar(&opts.Bias, "bias", 0, "Device address bias 0-7")
	flag.BoolVar(&opts.WriteProtect, "wp", false, "Attach a write-protect pin")
	flag.StringVar(&opts.TraceFile, "trace-file", "", "Write CBOR trace events to this file")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalf("eepromctl: %v", err)
	}
}

func run() error {
	def, traceCfg, err := resolveDevice()
	if err != nil {
		return err
	}

	id, err := def.ChipID()
	if err != nil {
		return err
	}
	profile, _ := id.Profile()

	logger := newLogger(opts.LogLevel)
	slog.SetDefault(logger)

	tracer, cleanup, err := newTracer(traceCfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	// The ring backs the shell's trace command regardless of file/console
	// trace configuration.
	ring := trace.NewRingLogger(256)
	tracer = trace.NewMultiLogger(tracer, ring)

	// One simulated chip per device; the channel would select a transport
	// instance on real hardware.
	sim := bus.NewSim(profile, eeprom.BaseAddress|byte(def.AddressBias&0x07))

	cfg := eeprom.DefaultConfig(id)
	cfg.AddressBias = byte(def.AddressBias)
	cfg.Tracer = tracer
	if def.WriteProtect {
		cfg.WriteProtect = bus.NewSimPin()
	}

	drv, err := eeprom.New(sim, cfg)
	if err != nil {
		return err
	}
	if err := drv.Init(); err != nil {
		return err
	}

	shell, err := interactive.New(drv, ring)
	if err != nil {
		return err
	}

	fmt.Fprintf(shell.Stdout(), "eepromctl: %s on channel %d (simulated), state %s\n",
		drv.Chip(), def.Channel, drv.State())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	shell.Run(ctx, cancel)
	return nil
}

// resolveDevice builds the device definition from the config file or flags.
func resolveDevice() (config.Device, config.Trace, error) {
	if opts.ConfigFile == "" {
		def := config.Device{
			Name:         "default",
			Chip:         opts.Chip,
			AddressBias:  opts.Bias,
			WriteProtect: opts.WriteProtect,
		}
		traceCfg := config.Trace{File: opts.TraceFile}
		return def, traceCfg, nil
	}

	cfg, err := config.LoadFile(opts.ConfigFile)
	if err != nil {
		return config.Device{}, config.Trace{}, err
	}
	def, err := cfg.Device(opts.DeviceName)
	if err != nil {
		return config.Device{}, config.Trace{}, err
	}

	traceCfg := cfg.Trace
	if opts.TraceFile != "" {
		traceCfg.File = opts.TraceFile
	}
	return def, traceCfg, nil
}

// newTracer assembles the trace pipeline from the trace configuration.
func newTracer(traceCfg config.Trace, logger *slog.Logger) (trace.Logger, func(), error) {
	var loggers []trace.Logger
	cleanup := func() {}

	if traceCfg.File != "" {
		fl, err := trace.NewFileLogger(traceCfg.File)
		if err != nil {
			return nil, nil, fmt.Errorf("trace file: %w", err)
		}
		loggers = append(loggers, fl)
		cleanup = func() { _ = fl.Close() }
	}
	if traceCfg.Console || opts.LogLevel == "debug" {
		loggers = append(loggers, trace.NewSlogAdapter(logger))
	}

	switch len(loggers) {
	case 0:
		return trace.NoopLogger{}, cleanup, nil
	case 1:
		return loggers[0], cleanup, nil
	default:
		return trace.NewMultiLogger(loggers...), cleanup, nil
	}
}

// newLogger builds the operational slog logger.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
