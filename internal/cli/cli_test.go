package cli

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "default flags",
			args: []string{"prog", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "test.ch8", opts.Input)
				assert.Equal(t, "auto", opts.Format)
				assert.Equal(t, 0x2000, opts.MemorySize)
				assert.Equal(t, 16, opts.StackDepth)
				assert.Equal(t, 2*time.Millisecond, opts.Delay)
				assert.False(t, opts.Disasm)
			},
		},
		{
			name: "machine flags",
			args: []string{"prog", "-mem", "4096", "-font", "80", "-stack", "12", "-quirk-index", "-seed", "7", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, 4096, opts.MemorySize)
				assert.Equal(t, uint(80), opts.FontAddress)
				assert.Equal(t, 12, opts.StackDepth)
				assert.True(t, opts.QuirkIndex)
				assert.Equal(t, uint64(7), opts.Seed)
			},
		},
		{
			name: "run flags",
			args: []string{"prog", "-headless", "-cycles", "500", "-cycles-per-tick", "10", "-delay", "0s", "-strict", "test.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Headless)
				assert.True(t, opts.Strict)
				assert.Equal(t, uint64(500), opts.Cycles)
				assert.Equal(t, uint64(10), opts.CyclesPerTick)
				assert.Equal(t, time.Duration(0), opts.Delay)
			},
		},
		{
			name: "listing flags",
			args: []string{"prog", "-disasm", "-nohexcomments", "-nooffsets", "-z", "-format", "HEX", "test.txt"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Disasm)
				assert.True(t, opts.NoHexComments)
				assert.True(t, opts.NoOffsets)
				assert.True(t, opts.ZeroBytes)
				assert.Equal(t, "hex", opts.Format)
			},
		},
		{
			name: "batch implies listing",
			args: []string{"prog", "-batch", "*.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.True(t, opts.Disasm)
				assert.Equal(t, "", opts.Input)
			},
		},
		{
			name: "example program",
			args: []string{"prog", "-example", "MoveGuy"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "moveguy", opts.Example)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			opts, err := ParseFlags()
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		errContain string
	}{
		{
			name:       "missing program file",
			args:       []string{"prog"},
			usageError: true,
		},
		{
			name:       "flag after program file",
			args:       []string{"prog", "test.ch8", "-disasm"},
			usageError: true,
			errContain: "please pass the program file as last argument",
		},
		{
			name:       "multiple program files",
			args:       []string{"prog", "a.ch8", "b.ch8"},
			usageError: true,
			errContain: "only one program file",
		},
		{
			name:       "empty argument after program file",
			args:       []string{"prog", "test.ch8", ""},
			usageError: true,
			errContain: "only one program file",
		},
		{
			name:       "invalid format",
			args:       []string{"prog", "-format", "elf", "test.ch8"},
			errContain: "unsupported program format",
		},
		{
			name:       "listing and headless",
			args:       []string{"prog", "-disasm", "-headless", "test.ch8"},
			errContain: "can not be combined",
		},
		{
			name:       "batch and example",
			args:       []string{"prog", "-batch", "*.ch8", "-example", "moveguy"},
			errContain: "can not be combined",
		},
		{
			name:       "memory too small",
			args:       []string{"prog", "-mem", "512", "test.ch8"},
			errContain: "invalid memory size",
		},
		{
			name:       "font outside of memory",
			args:       []string{"prog", "-font", "8190", "test.ch8"},
			errContain: "invalid font address",
		},
		{
			name:       "invalid stack depth",
			args:       []string{"prog", "-stack", "0", "test.ch8"},
			errContain: "invalid stack depth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}
