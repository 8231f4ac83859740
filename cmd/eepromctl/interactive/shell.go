// Package interactive provides the interactive command-line interface
// for eepromctl.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/peripheral-io/at24cxx-go/pkg/eeprom"
	"github.com/peripheral-io/at24cxx-go/pkg/trace"
)

// Shell handles interactive mode for eepromctl.
type Shell struct {
	drv  *eeprom.Driver
	ring *trace.RingLogger
	rl   *readline.Instance
}

// New creates a new interactive shell around the given driver. The ring
// buffer backs the trace command and may be nil.
func New(drv *eeprom.Driver, ring *trace.RingLogger) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "eeprom> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{drv: drv, ring: ring, rl: rl}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "info", "i":
			s.cmdInfo()

		case "init":
			s.cmdInit()

		case "read", "r":
			s.cmdRead(args)

		case "write", "w":
			s.cmdWrite(args)

		case "dump", "d":
			s.cmdDump(args)

		case "fill":
			s.cmdFill(args)

		case "wstr":
			s.cmdWriteString(args)

		case "rstr":
			s.cmdReadString(args)

		case "protect":
			s.cmdProtect(args)

		case "trace", "t":
			s.cmdTrace(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
EEPROM Commands:
  Data:
    read <addr>              - Read one byte
    write <addr> <byte...>   - Write bytes at address
    dump [addr] [len]        - Hex dump (default: first 256 bytes)
    fill <addr> <len> <byte> - Fill a range with one value
    wstr <addr> <text>       - Write a string
    rstr <addr> <len>        - Read a string

  Device:
    info                     - Show chip geometry and driver state
    init                     - (Re-)initialize the device
    protect on|off           - Drive the write-protect line
    trace [n]                - Show the n most recent trace events (default 10)

  General:
    help                     - Show this help
    quit                     - Exit

  Numbers accept decimal or hex (0x...) notation.`)
}

func (s *Shell) cmdInfo() {
	p := s.drv.Profile()
	out := s.rl.Stdout()
	fmt.Fprintf(out, "Chip:          %s\n", s.drv.Chip())
	fmt.Fprintf(out, "Capacity:      %d bytes\n", p.CapacityBytes)
	fmt.Fprintf(out, "Page size:     %d bytes\n", p.PageSize)
	fmt.Fprintf(out, "Address bytes: %d\n", p.AddressBytes)
	fmt.Fprintf(out, "Overflow bits: %d\n", p.OverflowBits)
	fmt.Fprintf(out, "State:         %s\n", s.drv.State())
	fmt.Fprintf(out, "Instance:      %s\n", s.drv.ID())
}

func (s *Shell) cmdInit() {
	if err := s.drv.Init(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Initialized, state %s\n", s.drv.State())
}

func (s *Shell) cmdRead(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: read <addr>")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	v, err := s.drv.ReadByte(addr)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%#04x = %#02x\n", addr, v)
}

func (s *Shell) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: write <addr> <byte...>")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	data := make([]byte, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseUint(a, 0, 8)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid byte %q: %v\n", a, err)
			return
		}
		data = append(data, byte(v))
	}

	if err := s.drv.Write(addr, data); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Wrote %d bytes at %#04x\n", len(data), addr)
}

func (s *Shell) cmdDump(args []string) {
	addr := uint16(0)
	length := 256

	var err error
	if len(args) > 0 {
		if addr, err = parseAddr(args[0]); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
			return
		}
	}
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 0, 17)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid length: %v\n", err)
			return
		}
		length = int(n)
	}
	if capacity := int(s.drv.Profile().CapacityBytes); int(addr)+length > capacity {
		length = capacity - int(addr)
	}
	if length <= 0 {
		fmt.Fprintln(s.rl.Stdout(), "Nothing to dump")
		return
	}

	data := make([]byte, length)
	if err := s.drv.Read(addr, data); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.rl.Stdout(), hexDump(addr, data))
}

func (s *Shell) cmdFill(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: fill <addr> <len> <byte>")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}
	n, err := strconv.ParseUint(args[1], 0, 17)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid length: %v\n", err)
		return
	}
	v, err := strconv.ParseUint(args[2], 0, 8)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid byte: %v\n", err)
		return
	}

	data := make([]byte, n)
	for i := range data {
		data[i] = byte(v)
	}
	if err := s.drv.Write(addr, data); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Filled %d bytes at %#04x with %#02x\n", n, addr, byte(v))
}

func (s *Shell) cmdWriteString(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: wstr <addr> <text>")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	text := strings.Join(args[1:], " ")
	if err := s.drv.WriteString(addr, text); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Wrote %d bytes at %#04x\n", len(text), addr)
}

func (s *Shell) cmdReadString(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: rstr <addr> <len>")
		return
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}
	n, err := strconv.ParseUint(args[1], 0, 17)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid length: %v\n", err)
		return
	}

	text, err := s.drv.ReadString(addr, int(n))
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%q\n", text)
}

func (s *Shell) cmdProtect(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: protect on|off")
		return
	}

	if s.drv.State() != eeprom.StateActiveWithProtect {
		fmt.Fprintln(s.rl.Stdout(), "Device has no write-protect control")
		return
	}

	var err error
	switch strings.ToLower(args[0]) {
	case "on":
		err = s.drv.SetWriteProtect()
	case "off":
		err = s.drv.ClearWriteProtect()
	default:
		fmt.Fprintln(s.rl.Stdout(), "Usage: protect on|off")
		return
	}
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Write protect %s\n", args[0])
}

func (s *Shell) cmdTrace(args []string) {
	if s.ring == nil {
		fmt.Fprintln(s.rl.Stdout(), "Tracing is not enabled")
		return
	}

	n := 10
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 0, 16)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid count: %v\n", err)
			return
		}
		n = int(v)
	}

	events := s.ring.Events()
	if len(events) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No trace events recorded")
		return
	}
	if len(events) > n {
		events = events[len(events)-n:]
	}
	for _, e := range events {
		fmt.Fprintln(s.rl.Stdout(), formatEvent(e))
	}
}

// formatEvent renders one trace event as a single console line.
func formatEvent(e trace.Event) string {
	ts := e.Timestamp.Format("15:04:05.000")
	switch e.Kind {
	case trace.KindTransaction:
		line := fmt.Sprintf("%s  %-5s bus %#04x mem %#06x len %d", ts, e.Direction, e.BusAddr, e.MemAddr, e.Len)
		if e.ChunkCount > 0 {
			line += fmt.Sprintf(" (chunk %d/%d)", e.Chunk, e.ChunkCount)
		}
		return line
	case trace.KindState:
		if e.StateChange != nil {
			return fmt.Sprintf("%s  STATE %s -> %s", ts, e.StateChange.OldState, e.StateChange.NewState)
		}
	case trace.KindError:
		if e.Error != nil {
			return fmt.Sprintf("%s  ERROR %s: %s", ts, e.Error.Op, e.Error.Message)
		}
	}
	return fmt.Sprintf("%s  %s", ts, e.Kind)
}

// parseAddr parses a chip address in decimal or 0x hex notation.
func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// hexDump formats data as rows of 16 hex bytes with an ASCII gutter.
func hexDump(base uint16, data []byte) string {
	var b strings.Builder
	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(&b, "%04x  ", base+uint16(row))
		for i := row; i < row+16; i++ {
			if i < end {
				fmt.Fprintf(&b, "%02x ", data[i])
			} else {
				b.WriteString("   ")
			}
			if i == row+7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for i := row; i < end; i++ {
			c := data[i]
			if c < 0x20 || c > 0x7E {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
