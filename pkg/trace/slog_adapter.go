package trace

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see bus activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("device_id", event.DeviceID),
		slog.String("kind", event.Kind.String()),
	}

	if event.Chip != "" {
		attrs = append(attrs, slog.String("chip", event.Chip))
	}

	switch {
	case event.Kind == KindTransaction:
		attrs = append(attrs,
			slog.String("direction", event.Direction.String()),
			slog.String("bus_addr", hexByte(event.BusAddr)),
			slog.Uint64("mem_addr", uint64(event.MemAddr)),
			slog.Int("len", event.Len),
		)
		if event.ChunkCount > 0 {
			attrs = append(attrs,
				slog.Int("chunk", event.Chunk),
				slog.Int("chunk_count", event.ChunkCount),
			)
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("op", event.Error.Op),
			slog.String("error", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "eeprom trace", attrs...)
}

// hexByte formats a bus address the way datasheets write them.
func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{'0', 'x', digits[b>>4], digits[b&0x0F]})
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
