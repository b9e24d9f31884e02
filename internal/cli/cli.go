// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "" && opts.Example == "" && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if len(args) > 0 {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("only one program file can be passed, found %d", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	format, err := detector.ParseFormat(opts.Format)
	if err != nil {
		return err
	}
	opts.Format = format.String()
	opts.Example = strings.ToLower(opts.Example)

	if opts.Batch != "" {
		opts.Disasm = true
		if opts.Example != "" {
			return errors.New("the options -batch and -example can not be combined")
		}
	}
	if opts.Disasm && opts.Headless {
		return errors.New("the options -disasm and -headless can not be combined")
	}
	if opts.MemorySize <= chip8.ProgramStart || opts.MemorySize > 0x10000 {
		return fmt.Errorf("invalid memory size %d, has to be larger than %d and at most %d",
			opts.MemorySize, chip8.ProgramStart, 0x10000)
	}
	if int(opts.FontAddress)+len(chip8.Font) > opts.MemorySize {
		return fmt.Errorf("invalid font address $%X for memory size %d", opts.FontAddress, opts.MemorySize)
	}
	if opts.StackDepth <= 0 {
		return fmt.Errorf("invalid stack depth %d", opts.StackDepth)
	}
	if opts.Delay < 0 {
		return fmt.Errorf("invalid negative delay %s", opts.Delay)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	runDefaults := emulator.DefaultConfig()
	machineDefaults := chip8.DefaultConfig()

	flags.StringVar(&opts.Input, "i", "", "name of the input program file")
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file of the listing, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "list a batch of given path and file mask with automatic .asm file naming, for example *.ch8")
	flags.StringVar(&opts.Example, "example", "", "run a bundled example program instead of a file")
	flags.StringVar(&opts.Format, "format", string(detector.Auto), "format of the program file (auto/hex/binary)")
	flags.BoolVar(&opts.Disasm, "disasm", false, "write an assembly listing of the program instead of running it")
	flags.BoolVar(&opts.Headless, "headless", false, "run without terminal display and print the screen when the program stops")
	flags.BoolVar(&opts.Strict, "strict", false, "halt on unknown instructions instead of skipping them")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction with the registers, requires -debug")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.IntVar(&opts.MemorySize, "mem", machineDefaults.MemorySize, "memory size of the machine in bytes")
	flags.UintVar(&opts.FontAddress, "font", uint(machineDefaults.FontAddress), "memory address of the font glyphs")
	flags.IntVar(&opts.StackDepth, "stack", machineDefaults.StackDepth, "maximum depth of the call stack")
	flags.BoolVar(&opts.QuirkIndex, "quirk-index", false, "advance the index register past the bytes stored or loaded by register transfers")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")

	flags.DurationVar(&opts.Delay, "delay", runDefaults.CycleDelay, "pause after every executed instruction")
	flags.Uint64Var(&opts.Cycles, "cycles", 0, "stop after executing the given number of instructions, 0 runs until quit")
	flags.Uint64Var(&opts.CyclesPerTick, "cycles-per-tick", 0, "decrement the timers every given number of instructions instead of at 60 Hz")

	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in comments")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the program")
}
