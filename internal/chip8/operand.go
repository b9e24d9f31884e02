package chip8

import "fmt"

// OperandKind is the type of a decode slot of an instruction definition.
type OperandKind uint8

// Operand kinds.
const (
	KindUnused      OperandKind = iota
	KindRegister                // general register V0-VF
	KindIndex                   // index register I
	KindIndirect                // memory byte at address I
	KindImmediate12             // 12 bit literal
	KindImmediate8              // 8 bit literal
	KindImmediate4              // 4 bit literal
	KindDelayTimer
	KindSoundTimer
)

var kindNames = [...]string{
	KindUnused:      "unused",
	KindRegister:    "register",
	KindIndex:       "index",
	KindIndirect:    "indirect",
	KindImmediate12: "immediate12",
	KindImmediate8:  "immediate8",
	KindImmediate4:  "immediate4",
	KindDelayTimer:  "delay timer",
	KindSoundTimer:  "sound timer",
}

func (k OperandKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsImmediate returns whether the kind describes a literal value.
func (k OperandKind) IsImmediate() bool {
	return k == KindImmediate12 || k == KindImmediate8 || k == KindImmediate4
}

// Operand describes a location or literal that an operation reads or writes.
// It is a descriptor only, the value is resolved against a Machine.
type Operand struct {
	Kind  OperandKind
	Value uint16 // register number or literal, depending on Kind
}

// Unused is the operand of an empty decode slot.
var Unused = Operand{}

// Register returns the operand for the general register Vr.
func Register(r uint8) Operand {
	return Operand{Kind: KindRegister, Value: uint16(r & 0x0F)}
}

// Index returns the operand for the index register.
func Index() Operand {
	return Operand{Kind: KindIndex}
}

// Indirect returns the operand for the memory byte addressed by the index register.
func Indirect() Operand {
	return Operand{Kind: KindIndirect}
}

// Immediate returns a literal operand of the given kind, truncated to its width.
func Immediate(kind OperandKind, value uint16) Operand {
	switch kind {
	case KindImmediate12:
		value &= 0x0FFF
	case KindImmediate8:
		value &= 0x00FF
	case KindImmediate4:
		value &= 0x000F
	default:
		panic(fmt.Sprintf("operand kind %s is not an immediate", kind))
	}
	return Operand{Kind: kind, Value: value}
}

// newOperand converts a raw decoded field into an operand of the given kind.
func newOperand(kind OperandKind, raw uint16) Operand {
	switch kind {
	case KindRegister:
		return Register(uint8(raw))
	case KindImmediate12, KindImmediate8, KindImmediate4:
		return Immediate(kind, raw)
	default:
		return Operand{Kind: kind}
	}
}

// String returns the assembly notation of the operand.
func (o Operand) String() string {
	switch o.Kind {
	case KindRegister:
		return fmt.Sprintf("V%X", o.Value)
	case KindIndex:
		return "I"
	case KindIndirect:
		return "[I]"
	case KindImmediate12:
		return fmt.Sprintf("$%03X", o.Value)
	case KindImmediate8:
		return fmt.Sprintf("$%02X", o.Value)
	case KindImmediate4:
		return fmt.Sprintf("$%X", o.Value)
	case KindDelayTimer:
		return "DT"
	case KindSoundTimer:
		return "ST"
	default:
		return ""
	}
}
