package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// CHIP-8 memory layout constants.
const (
	// ProgramStart is the address that programs are loaded to and start executing at.
	ProgramStart = 0x200

	// InstructionSize is the size of an instruction word in bytes.
	InstructionSize = 2

	// RegisterCount is the number of general registers V0-VF.
	RegisterCount = 16

	// FlagRegister is the register that holds carry, borrow and collision flags.
	FlagRegister = 0xF

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16
)

// Default configuration values.
const (
	DefaultMemorySize  = 0x2000
	DefaultFontAddress = 0x000
	DefaultStackDepth  = 16
)

// Screen is the write capability of the shared framebuffer.
type Screen interface {
	// Clear turns all pixels off.
	Clear()
	// Draw XORs the 8 pixel wide sprite rows onto the framebuffer at x,y,
	// wrapping around the edges, and returns whether a set pixel was cleared.
	Draw(x, y int, rows []byte) bool
}

// Keys is the read capability of the shared key state.
type Keys interface {
	IsDown(key byte) bool
	Snapshot() [KeyCount]bool
}

// Config contains the machine configuration.
type Config struct {
	MemorySize  int
	FontAddress uint16
	StackDepth  int

	// IndexAdvance makes Stash and Fetch leave the index register pointing
	// past the last transferred byte, as the COSMAC VIP interpreter did.
	IndexAdvance bool

	// Seed initializes the random generator, 0 seeds from the current time.
	Seed uint64
}

// DefaultConfig returns the reference machine configuration.
func DefaultConfig() Config {
	return Config{
		MemorySize:  DefaultMemorySize,
		FontAddress: DefaultFontAddress,
		StackDepth:  DefaultStackDepth,
	}
}

// Machine contains the state of a CHIP-8 virtual machine.
// Only the framebuffer and key state are shared with the host, all other
// state is owned by the goroutine that executes instructions.
type Machine struct {
	V      [RegisterCount]byte
	I      uint16
	PC     uint16
	Memory []byte

	DelayTimer byte
	SoundTimer byte

	stack []uint16
	cfg   Config
	rng   *rand.Rand

	screen Screen
	keys   Keys

	keySample *[KeyCount]bool // key state of the previous wait key attempt
	tracer    Tracer
}

// Tracer is called with every decoded instruction before it is executed.
type Tracer func(address uint16, ins Instruction)

// New returns a machine with zeroed memory that contains the font glyphs.
func New(cfg Config, screen Screen, keys Keys) (*Machine, error) {
	if cfg.MemorySize <= ProgramStart {
		return nil, fmt.Errorf("memory size $%X does not leave room for programs", cfg.MemorySize)
	}
	if int(cfg.FontAddress)+len(Font) > cfg.MemorySize {
		return nil, fmt.Errorf("font address $%03X exceeds memory size $%X", cfg.FontAddress, cfg.MemorySize)
	}
	if cfg.StackDepth <= 0 {
		return nil, fmt.Errorf("invalid stack depth %d", cfg.StackDepth)
	}
	if screen == nil || keys == nil {
		return nil, errors.New("missing screen or key state")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	m := &Machine{
		PC:     ProgramStart,
		Memory: make([]byte, cfg.MemorySize),
		stack:  make([]uint16, 0, cfg.StackDepth),
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed>>32|seed<<32)),
		screen: screen,
		keys:   keys,
	}
	copy(m.Memory[cfg.FontAddress:], Font[:])
	return m, nil
}

// SetTracer sets the function that is called for every instruction before
// its execution, nil disables tracing.
func (m *Machine) SetTracer(tracer Tracer) {
	m.tracer = tracer
}

// Config returns the machine configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// LoadProgram copies the program into memory at the given address.
func (m *Machine) LoadProgram(program []byte, address uint16) error {
	end := int(address) + len(program)
	if end > len(m.Memory) {
		return fmt.Errorf("program of %d bytes at $%03X exceeds memory size $%X", len(program), address, len(m.Memory))
	}
	copy(m.Memory[address:], program)
	return nil
}

// Fetch reads the instruction word at the program counter and advances
// the program counter past it. It returns the address of the word.
func (m *Machine) Fetch() (uint16, uint16) {
	address := m.PC
	word := uint16(m.read(address))<<8 | uint16(m.read(address+1))
	m.PC += InstructionSize
	return address, word
}

// Step fetches, decodes and executes the next instruction.
func (m *Machine) Step() (Instruction, error) {
	address, word := m.Fetch()
	ins := Decode(word)
	if m.tracer != nil {
		m.tracer(address, ins)
	}
	if err := m.Execute(ins); err != nil {
		return ins, &ExecutionError{Address: address, Instruction: ins, Err: err}
	}
	return ins, nil
}

// TickTimers decrements the delay and sound timers, it is called at 60 Hz.
func (m *Machine) TickTimers() {
	if m.DelayTimer > 0 {
		m.DelayTimer--
	}
	if m.SoundTimer > 0 {
		m.SoundTimer--
	}
}

// StackDepth returns the number of return addresses on the call stack.
func (m *Machine) StackDepth() int {
	return len(m.stack)
}

// WaitingForKey returns whether a wait key instruction is waiting for a key press.
func (m *Machine) WaitingForKey() bool {
	return m.keySample != nil
}

// Load resolves an operand to its current value.
func (m *Machine) Load(op Operand) uint32 {
	switch op.Kind {
	case KindRegister:
		return uint32(m.V[op.Value&0xF])
	case KindIndex:
		return uint32(m.I)
	case KindIndirect:
		return uint32(m.read(m.I))
	case KindImmediate12, KindImmediate8, KindImmediate4:
		return uint32(op.Value)
	case KindDelayTimer:
		return uint32(m.DelayTimer)
	case KindSoundTimer:
		return uint32(m.SoundTimer)
	default:
		panic(&OperandError{Operand: op, Access: "load"})
	}
}

// Store writes a value to an operand, truncated to the width of the location.
func (m *Machine) Store(op Operand, value uint32) {
	switch op.Kind {
	case KindRegister:
		m.V[op.Value&0xF] = byte(value)
	case KindIndex:
		m.I = uint16(value)
	case KindIndirect:
		m.write(m.I, byte(value))
	case KindDelayTimer:
		m.DelayTimer = byte(value)
	case KindSoundTimer:
		m.SoundTimer = byte(value)
	default:
		panic(&OperandError{Operand: op, Access: "store"})
	}
}

// read returns the memory byte at an address, addresses wrap around the memory size.
func (m *Machine) read(address uint16) byte {
	return m.Memory[int(address)%len(m.Memory)]
}

func (m *Machine) write(address uint16, value byte) {
	m.Memory[int(address)%len(m.Memory)] = value
}

// State is a copy of the machine registers used for diagnostics.
type State struct {
	V          [RegisterCount]byte
	I          uint16
	PC         uint16
	Stack      []uint16
	DelayTimer byte
	SoundTimer byte
}

// State returns a copy of the current register state.
func (m *Machine) State() State {
	return State{
		V:          m.V,
		I:          m.I,
		PC:         m.PC,
		Stack:      append([]uint16(nil), m.stack...),
		DelayTimer: m.DelayTimer,
		SoundTimer: m.SoundTimer,
	}
}

// RegisterDump returns a single line representation of all registers.
func (m *Machine) RegisterDump() string {
	var b strings.Builder
	for i, v := range m.V {
		fmt.Fprintf(&b, "V%X=%02X ", i, v)
	}
	fmt.Fprintf(&b, "I=%04X PC=%04X SP=%d DT=%02X ST=%02X", m.I, m.PC, len(m.stack), m.DelayTimer, m.SoundTimer)
	return b.String()
}
