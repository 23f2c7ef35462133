package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Shell is an interactive prompt over an open session.
type Shell struct {
	session *Session
	rl      *readline.Instance
}

// NewShell creates a shell with line editing and history.
func NewShell(session *Session) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "m24c64> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("read"),
			readline.PcItem("write"),
			readline.PcItem("fill"),
			readline.PcItem("dump"),
			readline.PcItem("verify"),
			readline.PcItem("stats"),
			readline.PcItem("busy"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Shell{session: session, rl: rl}, nil
}

// Stdout returns a writer that does not interfere with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run reads commands until exit, EOF or an unrecoverable input error.
func (s *Shell) Run() {
	defer s.rl.Close()

	w := s.rl.Stdout()
	printShellHelp(w)

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(w, "Exiting...")
			return
		}

		if Exec(s.session, line, w) {
			return
		}
	}
}

// Exec runs one shell line against session and reports whether the shell
// should exit. Command errors are printed to w.
func Exec(session *Session, line string, w io.Writer) bool {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		printShellHelp(w)

	case "read", "r":
		err = shellRead(session, args, w)

	case "write", "w":
		err = shellWrite(session, args, w)

	case "fill", "f":
		err = shellFill(session, args, w)

	case "dump", "d":
		out := ""
		if len(args) > 0 {
			out = args[0]
		}
		err = RunDump(session.Device, out, w)

	case "verify", "v":
		err = shellVerify(session, args, w)

	case "stats":
		err = shellStats(session, w)

	case "busy":
		err = shellBusy(session, args, w)

	case "quit", "exit", "q":
		fmt.Fprintln(w, "Exiting...")
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return false
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `
M24C64 Commands:
  read <addr> [len]        - Hex-dump len bytes (default 16)
  write <addr> <hex>       - Write bytes, e.g. write 0x100 DEADBEEF
  fill <addr> <len> <byte> - Write len copies of byte
  verify <addr> <hex>      - Compare memory with bytes
  dump [file]              - Dump the whole array (hex, or raw to file)

  Simulator only:
    stats                  - Show chip transaction counters
    busy <n>               - NACK the next n transactions

  help                     - Show this help
  exit                     - Leave the shell
`)
}

func shellRead(session *Session, args []string, w io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: read <addr> [len]")
	}
	addr, err := ParseAddress(args[0])
	if err != nil {
		return err
	}
	n := 16
	if len(args) > 1 {
		if n, err = ParseLength(args[1]); err != nil {
			return err
		}
	}
	return RunRead(session.Device, addr, n, w)
}

func shellWrite(session *Session, args []string, w io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: write <addr> <hex>")
	}
	addr, err := ParseAddress(args[0])
	if err != nil {
		return err
	}
	data, err := ParseHex(strings.Join(args[1:], ""))
	if err != nil {
		return err
	}
	return RunWrite(session.Device, addr, data, w)
}

func shellFill(session *Session, args []string, w io.Writer) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: fill <addr> <len> <byte>")
	}
	addr, err := ParseAddress(args[0])
	if err != nil {
		return err
	}
	n, err := ParseLength(args[1])
	if err != nil {
		return err
	}
	v, err := ParseByte(args[2])
	if err != nil {
		return err
	}

	data := make([]byte, n)
	for i := range data {
		data[i] = v
	}
	return RunWrite(session.Device, addr, data, w)
}

func shellVerify(session *Session, args []string, w io.Writer) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: verify <addr> <hex>")
	}
	addr, err := ParseAddress(args[0])
	if err != nil {
		return err
	}
	data, err := ParseHex(strings.Join(args[1:], ""))
	if err != nil {
		return err
	}
	if err := session.Device.Verify(addr, data); err != nil {
		return err
	}
	fmt.Fprintf(w, "OK: %d bytes match at 0x%04X\n", len(data), addr)
	return nil
}

func shellStats(session *Session, w io.Writer) error {
	if session.Chip == nil {
		return fmt.Errorf("stats is only available with -sim")
	}
	st := session.Chip.Stats()
	fmt.Fprintf(w, "writes=%d reads=%d probes=%d nacks=%d\n", st.Writes, st.Reads, st.Probes, st.Nacks)
	return nil
}

func shellBusy(session *Session, args []string, w io.Writer) error {
	if session.Chip == nil {
		return fmt.Errorf("busy is only available with -sim")
	}
	if len(args) < 1 {
		return fmt.Errorf("usage: busy <n>")
	}
	n, err := ParseLength(args[0])
	if err != nil {
		return err
	}
	session.Chip.SetBusy(n)
	fmt.Fprintf(w, "chip will NACK the next %d transactions\n", n)
	return nil
}
