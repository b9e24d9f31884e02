// Package emulator runs the fetch, decode and execute loop of a CHIP-8 machine.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/k0kubun/pp/v3"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// TimerFrequency is the rate in Hz at which the delay and sound timers count down.
const TimerFrequency = 60

const tickInterval = time.Second / TimerFrequency

// Config contains the runner configuration.
type Config struct {
	CycleDelay time.Duration // pause after every instruction, 0 runs at full speed
	MaxCycles  uint64        // number of instructions to execute, 0 runs until cancelled

	// CyclesPerTick decrements the timers after the given number of
	// instructions instead of at 60 Hz wall clock time, which makes
	// runs reproducible.
	CyclesPerTick uint64

	HaltOnUnknown bool // stop on unknown instructions instead of skipping them
	QuietSkips    bool // log skipped unknown instructions at debug level only
	Trace         bool // log every instruction and the registers before execution
}

// DefaultConfig returns the default runner configuration.
func DefaultConfig() Config {
	return Config{
		CycleDelay: 2 * time.Millisecond,
	}
}

// Runner executes instructions of a machine until it is stopped.
type Runner struct {
	logger  *log.Logger
	machine *chip8.Machine
	cfg     Config
	printer *pp.PrettyPrinter

	cycles   uint64
	skipped  uint64
	lastTick time.Time
}

// New returns a runner for the given machine.
func New(logger *log.Logger, machine *chip8.Machine, cfg Config) *Runner {
	printer := pp.New()
	printer.SetColoringEnabled(false)

	r := &Runner{
		logger:  logger,
		machine: machine,
		cfg:     cfg,
		printer: printer,
	}
	if cfg.Trace {
		machine.SetTracer(r.trace)
	}
	return r
}

// Run executes instructions until the context is cancelled, the configured
// number of cycles has been executed or the program fails.
func (r *Runner) Run(ctx context.Context) error {
	r.lastTick = time.Now()

	var delay *time.Timer
	if r.cfg.CycleDelay > 0 {
		delay = time.NewTimer(r.cfg.CycleDelay)
		defer delay.Stop()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.cfg.MaxCycles > 0 && r.cycles >= r.cfg.MaxCycles {
			return nil
		}

		r.tickTimers(time.Now())
		if err := r.step(); err != nil {
			return err
		}

		if delay == nil {
			continue
		}
		delay.Reset(r.cfg.CycleDelay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-delay.C:
		}
	}
}

// Cycles returns the number of executed instructions.
func (r *Runner) Cycles() uint64 {
	return r.cycles
}

// Skipped returns the number of unknown instructions that were skipped.
func (r *Runner) Skipped() uint64 {
	return r.skipped
}

// StateDump returns a multi line representation of the machine registers.
func (r *Runner) StateDump() string {
	return r.printer.Sprint(r.machine.State())
}

func (r *Runner) step() error {
	_, err := r.machine.Step()
	r.cycles++
	if err == nil {
		return nil
	}

	if errors.Is(err, chip8.ErrUnknownInstruction) && !r.cfg.HaltOnUnknown {
		r.skipped++
		if r.cfg.QuietSkips {
			r.logger.Debug("Skipping unknown instruction", log.Err(err))
		} else {
			r.logger.Warn("Skipping unknown instruction", log.Err(err))
		}
		return nil
	}

	r.logger.Debug("Program halted",
		log.Err(err),
		log.Uint64("cycles", r.cycles),
		log.StringFunc("state", r.StateDump))

	if chip8.IsGuestError(err) {
		return fmt.Errorf("running program: %w", err)
	}
	return fmt.Errorf("executing instruction: %w", err)
}

// tickTimers decrements the machine timers for every timer period that
// elapsed since the last tick.
func (r *Runner) tickTimers(now time.Time) {
	if r.cfg.CyclesPerTick > 0 {
		if r.cycles > 0 && r.cycles%r.cfg.CyclesPerTick == 0 {
			r.machine.TickTimers()
		}
		return
	}

	elapsed := now.Sub(r.lastTick)
	if elapsed > time.Second {
		// resynchronize after the process was suspended
		r.lastTick = now.Add(-tickInterval)
		elapsed = tickInterval
	}
	for ; elapsed >= tickInterval; elapsed -= tickInterval {
		r.machine.TickTimers()
		r.lastTick = r.lastTick.Add(tickInterval)
	}
}

func (r *Runner) trace(address uint16, ins chip8.Instruction) {
	r.logger.Debug(ins.String(),
		log.Hex("address", address),
		log.Hex("word", ins.Word),
		log.String("registers", r.machine.RegisterDump()))
}
