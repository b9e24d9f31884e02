// Package options contains the program options.
package options

import "time"

// Parameters contains file path options.
type Parameters struct {
	Input   string `flag:"i" usage:"input program file"`
	Output  string `flag:"o" usage:"output file of the -disasm listing (default: stdout)"`
	Batch   string `flag:"batch" usage:"list all files matching pattern (e.g. *.ch8), implies -disasm"`
	Example string `flag:"example" usage:"use a bundled example program instead of a file"`
}

// Flags contains behavior options.
type Flags struct {
	Format   string `flag:"format" usage:"program format: auto, hex, binary" default:"auto"`
	Disasm   bool   `flag:"disasm" usage:"write an assembly listing instead of running the program"`
	Headless bool   `flag:"headless" usage:"run without terminal display and print the screen at the end"`
	Strict   bool   `flag:"strict" usage:"halt on unknown instructions instead of skipping them"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, requires -debug"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
}

// MachineFlags contains the virtual machine options.
type MachineFlags struct {
	MemorySize  int    `flag:"mem" usage:"memory size in bytes" default:"8192"`
	FontAddress uint   `flag:"font" usage:"address of the font glyphs" default:"0"`
	StackDepth  int    `flag:"stack" usage:"maximum call stack depth" default:"16"`
	QuirkIndex  bool   `flag:"quirk-index" usage:"advance the index register on register stores and loads"`
	Seed        uint64 `flag:"seed" usage:"random generator seed (default: time based)"`
}

// RunFlags contains the execution loop options.
type RunFlags struct {
	Delay         time.Duration `flag:"delay" usage:"pause after every instruction" default:"2ms"`
	Cycles        uint64        `flag:"cycles" usage:"stop after executing the number of instructions (default: unlimited)"`
	CyclesPerTick uint64        `flag:"cycles-per-tick" usage:"decrement timers every n instructions instead of at 60 Hz"`
}

// OutputFlags contains listing formatting options.
type OutputFlags struct {
	NoHexComments bool `flag:"nohexcomments" usage:"omit hex opcode bytes in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"omit addresses in comments"`
	ZeroBytes     bool `flag:"z" usage:"include trailing zero bytes"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	MachineFlags
	RunFlags
	OutputFlags
}
