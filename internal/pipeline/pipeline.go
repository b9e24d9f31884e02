// Package pipeline orchestrates the program loading and execution stages.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/display"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/listing"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/programs"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow of a program.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader

	newScreen func() (tcell.Screen, error)
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:    logger,
		detector:  detector.New(logger),
		loader:    loader.New(),
		newScreen: terminal.NewScreen,
	}
}

// Execute loads the program and either writes its listing or runs it.
// The listing and the screen of a headless run are written to writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	program, err := p.LoadProgram(opts)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	if opts.Disasm {
		if err := listing.Write(ctx, writer, program, config.ListingOptions(opts)); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
		return nil
	}

	return p.Run(ctx, opts, program, writer)
}

// LoadProgram reads the program file or bundled example and decodes it.
func (p *Pipeline) LoadProgram(opts options.Program) ([]byte, error) {
	name, data, err := p.readSource(opts)
	if err != nil {
		return nil, err
	}

	requested, err := detector.ParseFormat(opts.Format)
	if err != nil {
		return nil, fmt.Errorf("parsing format: %w", err)
	}
	format := p.detector.Detect(requested, name, data)

	program, err := p.loader.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding program: %w", err)
	}

	p.printInfo(opts, name, format, len(program))
	return program, nil
}

// Run executes the program, in the terminal or headless.
func (p *Pipeline) Run(ctx context.Context, opts options.Program, program []byte, writer io.Writer) error {
	fb := display.New()
	keys := keypad.New()

	machine, err := chip8.New(config.MachineConfig(opts), fb, keys)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}
	if err := machine.LoadProgram(program, chip8.ProgramStart); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}

	runCfg := config.EmulatorConfig(opts)
	if opts.Headless {
		runner := emulator.New(p.logger, machine, runCfg)
		return p.runHeadless(ctx, runner, fb, writer)
	}

	// the terminal is owned by the screen while the program runs
	runCfg.QuietSkips = true
	runner := emulator.New(p.logger, machine, runCfg)
	err = p.runInteractive(ctx, runner, fb, keys)
	if skipped := runner.Skipped(); skipped > 0 {
		p.logger.Warn("Skipped unknown instructions", log.Uint64("count", skipped))
	}
	return err
}

// runHeadless runs the program and writes the final screen content.
func (p *Pipeline) runHeadless(ctx context.Context, runner *emulator.Runner, fb *display.Framebuffer, writer io.Writer) error {
	runErr := runner.Run(ctx)
	p.logger.Debug("Program stopped", log.Int("cycles", int(runner.Cycles())))

	if _, err := io.WriteString(writer, fb.String()); err != nil {
		return fmt.Errorf("writing screen: %w", err)
	}
	return runErr
}

// runInteractive runs the program and the terminal host concurrently until
// the user quits, the program fails or the context is cancelled.
func (p *Pipeline) runInteractive(ctx context.Context, runner *emulator.Runner, fb *display.Framebuffer, keys *keypad.Keypad) error {
	screen, err := p.newScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()

	host := terminal.New(p.logger, screen, fb, keys, terminal.DefaultConfig())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	hostErr := make(chan error, 1)
	go func() {
		var err error
		defer func() { runErr <- err }()
		err = runner.Run(ctx)
	}()
	go func() {
		var err error
		defer func() { hostErr <- err }()
		err = host.Run(ctx)
	}()

	select {
	case err := <-runErr:
		if err != nil {
			cancel()
			<-hostErr
			return err
		}
		// the program reached its cycle limit, keep showing the screen until the user quits
		if err := <-hostErr; err != nil {
			return err
		}
		return nil

	case err := <-hostErr:
		cancel()
		if rerr := <-runErr; rerr != nil && !errors.Is(rerr, context.Canceled) {
			return rerr
		}
		return err
	}
}

func (p *Pipeline) readSource(opts options.Program) (string, []byte, error) {
	if opts.Example != "" {
		data, err := programs.Source(opts.Example)
		if err != nil {
			return "", nil, fmt.Errorf("reading example program: %w", err)
		}
		return opts.Example, data, nil
	}

	data, err := p.loader.ReadFile(opts.Input)
	if err != nil {
		return "", nil, fmt.Errorf("reading program file: %w", err)
	}
	return opts.Input, data, nil
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, name string, format detector.Format, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing CHIP-8 program",
		log.String("file", name),
		log.Stringer("format", format),
		log.Int("size", size),
	)
	if size > opts.MemorySize-chip8.ProgramStart && opts.MemorySize > 0 {
		p.logger.Warn("Program is larger than the available memory")
	}
}
