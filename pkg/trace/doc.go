// Package trace provides structured capture of EEPROM bus activity.
//
// The driver emits one Event per bus transaction, state transition, or
// swallowed transport error. Applications choose where events go by
// supplying a Logger implementation:
//
//	// Development: see transactions on the console via slog
//	cfg.Tracer = trace.NewSlogAdapter(slog.Default())
//
//	// Capture to a CBOR stream for offline inspection
//	cfg.Tracer, _ = trace.NewFileLogger("/tmp/eeprom.trace")
//
//	// Both at once
//	cfg.Tracer = trace.NewMultiLogger(
//	    trace.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// Captured files are read back with Reader, optionally filtered by device,
// kind, direction, or time range.
//
// Tracing is diagnostic only: the driver never changes behavior based on the
// logger, and a nil or Noop logger disables capture entirely.
package trace
