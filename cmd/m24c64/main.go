// Command m24c64 reads, writes and programs M24C64 EEPROMs on a Linux I2C bus.
//
// Usage:
//
//	m24c64 <command> [flags] [args]
//
// Commands:
//
//	read     Hex-dump a byte range
//	write    Write bytes at an address
//	dump     Read the whole array
//	program  Write a YAML image manifest and verify it
//	shell    Interactive prompt
//	trace    View or summarise a bus trace file
//
// Examples:
//
//	# Read 64 bytes at 0x0100 from the chip at 0x51 on /dev/i2c-1
//	m24c64 read -bus 1 -addr 1 -at 0x100 -n 64
//
//	# Write four bytes and record the bus traffic
//	m24c64 write -at 0x1F -hex DEADBEEF -trace eeprom.trace
//
//	# Program a board configuration image
//	m24c64 program -verify board.yaml
//
//	# Try the shell against a simulated chip
//	m24c64 shell -sim
//
//	# Show only the polls the chip did not acknowledge
//	m24c64 trace view -nacks eeprom.trace
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/moffa90/go-m24c64/cmd/m24c64/commands"
)

const usage = `m24c64 - M24C64 I2C EEPROM tool

Usage:
  m24c64 <command> [flags] [args]

Commands:
  read     Hex-dump a byte range
  write    Write bytes at an address
  dump     Read the whole array
  program  Write a YAML image manifest and verify it
  shell    Interactive prompt
  trace    View or summarise a bus trace file (view, stats)

Use "m24c64 <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "read":
		runRead(args)
	case "write":
		runWrite(args)
	case "dump":
		runDump(args)
	case "program":
		runProgram(args)
	case "shell":
		runShell(args)
	case "trace":
		runTrace(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// targetFlags registers the flags shared by every command that opens a chip.
type targetFlags struct {
	target  commands.Target
	verbose bool
}

func addTargetFlags(fs *flag.FlagSet) *targetFlags {
	tf := &targetFlags{}
	fs.IntVar(&tf.target.Bus, "bus", 1, "I2C adapter number (/dev/i2c-N)")
	fs.UintVar(&tf.target.HardwareAddress, "addr", 0, "Hardware address E2..E0 (0-7)")
	fs.BoolVar(&tf.target.Sim, "sim", false, "Use a simulated chip instead of hardware")
	fs.StringVar(&tf.target.Trace, "trace", "", "Append bus transactions to this trace file")
	fs.BoolVar(&tf.target.Verify, "verify", false, "Read back every page after writing it")
	fs.BoolVar(&tf.verbose, "v", false, "Verbose logging")
	return tf
}

func (tf *targetFlags) open() *commands.Session {
	level := slog.LevelWarn
	if tf.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	session, err := tf.target.Open(logger)
	if err != nil {
		fatal(err)
	}
	if session.TraceSession != "" {
		logger.Info("tracing", "file", tf.target.Trace, "session", session.TraceSession)
	}
	return session
}

func newFlagSet(name, synopsis, usageLine string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "m24c64 %s - %s\n\nUsage:\n  %s\n\nFlags:\n", name, synopsis, usageLine)
		fs.PrintDefaults()
	}
	return fs
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runRead(args []string) {
	fs := newFlagSet("read", "Hex-dump a byte range", "m24c64 read [flags] -at ADDR -n LEN")
	tf := addTargetFlags(fs)
	at := fs.String("at", "0", "Start address")
	n := fs.String("n", "16", "Number of bytes")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	addr, err := commands.ParseAddress(*at)
	if err != nil {
		fatal(err)
	}
	length, err := commands.ParseLength(*n)
	if err != nil {
		fatal(err)
	}

	session := tf.open()
	defer session.Close()

	if err := commands.RunRead(session.Device, addr, length, os.Stdout); err != nil {
		session.Close()
		fatal(err)
	}
}

func runWrite(args []string) {
	fs := newFlagSet("write", "Write bytes at an address", "m24c64 write [flags] -at ADDR -hex DATA")
	tf := addTargetFlags(fs)
	at := fs.String("at", "", "Start address (required)")
	hexData := fs.String("hex", "", "Data as hex, e.g. DEADBEEF (required)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *at == "" || *hexData == "" {
		fmt.Fprintln(os.Stderr, "Error: -at and -hex are required")
		fs.Usage()
		os.Exit(1)
	}

	addr, err := commands.ParseAddress(*at)
	if err != nil {
		fatal(err)
	}
	data, err := commands.ParseHex(*hexData)
	if err != nil {
		fatal(err)
	}

	session := tf.open()
	defer session.Close()

	if err := commands.RunWrite(session.Device, addr, data, os.Stdout); err != nil {
		session.Close()
		fatal(err)
	}
}

func runDump(args []string) {
	fs := newFlagSet("dump", "Read the whole array", "m24c64 dump [flags]")
	tf := addTargetFlags(fs)
	output := fs.String("o", "", "Write raw bytes to this file (default: hex dump to stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	session := tf.open()
	defer session.Close()

	if err := commands.RunDump(session.Device, *output, os.Stdout); err != nil {
		session.Close()
		fatal(err)
	}
}

func runProgram(args []string) {
	fs := newFlagSet("program", "Write a YAML image manifest and verify it", "m24c64 program [flags] <manifest.yaml>")
	tf := addTargetFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: manifest path required")
		fs.Usage()
		os.Exit(1)
	}

	session := tf.open()
	defer session.Close()

	if err := commands.RunProgram(session.Device, fs.Arg(0), os.Stdout); err != nil {
		session.Close()
		fatal(err)
	}
}

func runShell(args []string) {
	fs := newFlagSet("shell", "Interactive prompt", "m24c64 shell [flags]")
	tf := addTargetFlags(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	session := tf.open()
	defer session.Close()

	shell, err := commands.NewShell(session)
	if err != nil {
		session.Close()
		fatal(err)
	}
	shell.Run()
}

func runTrace(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace subcommand required (view, stats)")
		os.Exit(1)
	}

	switch args[0] {
	case "view":
		runTraceView(args[1:])
	case "stats":
		runTraceStats(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown trace subcommand: %s\n", args[0])
		os.Exit(1)
	}
}

func runTraceView(args []string) {
	fs := newFlagSet("trace view", "Print trace events", "m24c64 trace view [flags] <file>")

	var tf commands.TraceFilter
	fs.StringVar(&tf.Session, "session", "", "Filter by session ID")
	fs.StringVar(&tf.Kind, "kind", "", "Filter by kind (write, write-read, probe)")
	fs.StringVar(&tf.Addr, "dev", "", "Filter by bus address, e.g. 0x50")
	fs.BoolVar(&tf.Nacks, "nacks", false, "Only transactions the chip did not acknowledge")
	fs.BoolVar(&tf.Errors, "errors", false, "Only failed transactions")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := tf.Build()
	if err != nil {
		fatal(err)
	}

	if err := commands.RunTraceView(fs.Arg(0), filter, os.Stdout); err != nil {
		fatal(err)
	}
}

func runTraceStats(args []string) {
	fs := newFlagSet("trace stats", "Summarise a trace file", "m24c64 trace stats <file>")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: trace file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunTraceStats(fs.Arg(0), os.Stdout); err != nil {
		fatal(err)
	}
}
