package chip8

import (
	"errors"
	"fmt"
)

// Execute performs the operation of a decoded instruction against the machine.
// The program counter is expected to already point past the instruction.
// Operand wiring errors of the instruction table are returned as *OperandError
// and leave the instruction partially executed at most.
func (m *Machine) Execute(ins Instruction) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var opErr *OperandError
		if e, ok := r.(error); ok && errors.As(e, &opErr) {
			err = opErr
			return
		}
		panic(r)
	}()

	switch ins.Op() {
	case OpInvalid:
		return fmt.Errorf("%w: $%04X", ErrUnknownInstruction, ins.Word)

	case OpSys:
		// machine code routines of the host processor are not supported

	case OpAdd:
		m.add(ins.Dest, ins.Src)
	case OpSub:
		m.subtract(ins.Dest, m.Load(ins.Dest), m.Load(ins.Src))
	case OpSubN:
		m.subtract(ins.Dest, m.Load(ins.Src), m.Load(ins.Dest))
	case OpOr:
		m.Store(ins.Dest, m.Load(ins.Dest)|m.Load(ins.Src))
	case OpAnd:
		m.Store(ins.Dest, m.Load(ins.Dest)&m.Load(ins.Src))
	case OpXor:
		m.Store(ins.Dest, m.Load(ins.Dest)^m.Load(ins.Src))
	case OpShiftRight:
		value := m.Load(ins.Src)
		m.Store(ins.Dest, value>>1)
		m.V[FlagRegister] = byte(value & 1)
	case OpShiftLeft:
		value := m.Load(ins.Src)
		m.Store(ins.Dest, value<<1&0xFF)
		m.V[FlagRegister] = byte(value >> 7 & 1)

	case OpLoad:
		m.Store(ins.Dest, m.Load(ins.Src))
	case OpFont:
		digit := m.Load(ins.Src) & 0xF
		m.Store(ins.Dest, uint32(m.cfg.FontAddress)+digit*GlyphSize)
	case OpBCD:
		m.bcd(ins.Dest, m.Load(ins.Src))
	case OpRand:
		m.Store(ins.Dest, m.rng.Uint32()&m.Load(ins.Src))

	case OpSkipEq:
		m.skipIf(m.Load(ins.Dest) == m.Load(ins.Src))
	case OpSkipNeq:
		m.skipIf(m.Load(ins.Dest) != m.Load(ins.Src))
	case OpSkipKey:
		m.skipIf(m.keys.IsDown(byte(m.Load(ins.Dest) & 0xF)))
	case OpSkipNKey:
		m.skipIf(!m.keys.IsDown(byte(m.Load(ins.Dest) & 0xF)))

	case OpJump:
		m.PC = uint16(m.Load(ins.Dest))
	case OpJumpV0:
		m.PC = uint16(m.Load(ins.Dest) + uint32(m.V[0]))
	case OpCall:
		if len(m.stack) >= m.cfg.StackDepth {
			return fmt.Errorf("%w: depth %d", ErrStackOverflow, len(m.stack))
		}
		m.stack = append(m.stack, m.PC)
		m.PC = uint16(m.Load(ins.Dest))
	case OpRet:
		if len(m.stack) == 0 {
			return ErrStackUnderflow
		}
		m.PC = m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]

	case OpCls:
		m.screen.Clear()
	case OpSprite:
		m.sprite(ins)

	case OpStash:
		m.transfer(m.Load(ins.Src), func(r int) {
			m.Store(ins.Dest, uint32(m.V[r]))
		})
	case OpFetch:
		m.transfer(m.Load(ins.Src), func(r int) {
			m.V[r] = byte(m.Load(Indirect()))
		})
	case OpWaitKey:
		m.waitKey(ins.Dest)

	default:
		return fmt.Errorf("%w: operation %s", ErrUnknownInstruction, ins.Op())
	}
	return nil
}

// add stores dest+src. Only register to register additions update the
// carry flag, an index register destination keeps the unmasked sum.
func (m *Machine) add(dest, src Operand) {
	sum := m.Load(dest) + m.Load(src)
	if dest.Kind != KindRegister {
		m.Store(dest, sum)
		return
	}

	m.Store(dest, sum&0xFF)
	if src.Kind == KindRegister {
		m.V[FlagRegister] = boolByte(sum > 0xFF)
	}
}

// subtract stores minuend-subtrahend and sets the flag register when no borrow occurred.
func (m *Machine) subtract(dest Operand, minuend, subtrahend uint32) {
	m.Store(dest, (minuend-subtrahend)&0xFF)
	m.V[FlagRegister] = boolByte(minuend >= subtrahend)
}

// bcd writes the decimal digits of value to dest at I, I+1 and I+2.
// The index register is restored afterwards.
func (m *Machine) bcd(dest Operand, value uint32) {
	index := m.I
	digits := [3]uint32{value / 100 % 10, value / 10 % 10, value % 10}
	for i, digit := range digits {
		m.I = index + uint16(i)
		m.Store(dest, digit)
	}
	m.I = index
}

// transfer calls fn for the registers V0 to Vlast with the index register
// pointing at the memory byte of the register.
func (m *Machine) transfer(last uint32, fn func(r int)) {
	index := m.I
	for r := 0; r <= int(last&0xF); r++ {
		m.I = index + uint16(r)
		fn(r)
	}
	if m.cfg.IndexAdvance {
		m.I = index + uint16(last&0xF) + 1
		return
	}
	m.I = index
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.PC += InstructionSize
	}
}

// sprite draws the rows read from memory at the index register. The
// coordinates are read before the flag register is overwritten.
func (m *Machine) sprite(ins Instruction) {
	x := int(m.Load(ins.Dest))
	y := int(m.Load(ins.Src))
	height := int(m.Load(ins.Aux))

	rows := make([]byte, height)
	for r := range rows {
		rows[r] = m.read(m.I + uint16(r))
	}

	m.V[FlagRegister] = boolByte(m.screen.Draw(x, y, rows))
}

// waitKey stores the first key that went down since the previous attempt.
// While no key transitioned down the program counter is rewound so that
// the instruction is executed again by the next step.
func (m *Machine) waitKey(dest Operand) {
	current := m.keys.Snapshot()
	if m.keySample != nil {
		for key, down := range current {
			if down && !m.keySample[key] {
				m.keySample = nil
				m.Store(dest, uint32(key))
				return
			}
		}
	}

	m.keySample = &current
	m.PC -= InstructionSize
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
