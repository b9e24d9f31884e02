// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/listing"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// MachineConfig returns the virtual machine configuration for the options.
func MachineConfig(opts options.Program) chip8.Config {
	return chip8.Config{
		MemorySize:   opts.MemorySize,
		FontAddress:  uint16(opts.FontAddress),
		StackDepth:   opts.StackDepth,
		IndexAdvance: opts.QuirkIndex,
		Seed:         opts.Seed,
	}
}

// EmulatorConfig returns the execution loop configuration for the options.
func EmulatorConfig(opts options.Program) emulator.Config {
	return emulator.Config{
		CycleDelay:    opts.Delay,
		MaxCycles:     opts.Cycles,
		CyclesPerTick: opts.CyclesPerTick,
		HaltOnUnknown: opts.Strict,
		Trace:         opts.Trace && opts.Debug,
	}
}

// ListingOptions returns the listing output options for the options.
func ListingOptions(opts options.Program) listing.Options {
	return listing.Options{
		HexComments: !opts.NoHexComments,
		Offsets:     !opts.NoOffsets,
		ZeroBytes:   opts.ZeroBytes,
	}
}
