package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/set"
)

// Operation is the semantic operation an instruction definition performs.
// Several bit patterns share one operation, for example the register and
// index register forms of add.
type Operation uint8

// Operations. OpInvalid is the operation of an undecodable word.
const (
	OpInvalid Operation = iota
	OpSys
	OpAdd
	OpSub
	OpSubN
	OpOr
	OpAnd
	OpXor
	OpShiftRight
	OpShiftLeft
	OpLoad
	OpFont
	OpBCD
	OpRand
	OpSkipEq
	OpSkipNeq
	OpSkipKey
	OpSkipNKey
	OpJump
	OpJumpV0
	OpCall
	OpRet
	OpCls
	OpSprite
	OpStash
	OpFetch
	OpWaitKey
)

var operationNames = [...]string{
	OpInvalid:    "Invalid",
	OpSys:        "Sys",
	OpAdd:        "Add",
	OpSub:        "Sub",
	OpSubN:       "SubN",
	OpOr:         "Or",
	OpAnd:        "And",
	OpXor:        "Xor",
	OpShiftRight: "ShiftRight",
	OpShiftLeft:  "ShiftLeft",
	OpLoad:       "Load",
	OpFont:       "Font",
	OpBCD:        "BCD",
	OpRand:       "Rand",
	OpSkipEq:     "SkipEq",
	OpSkipNeq:    "SkipNeq",
	OpSkipKey:    "SkipKey",
	OpSkipNKey:   "SkipNKey",
	OpJump:       "Jump",
	OpJumpV0:     "JumpV0",
	OpCall:       "Call",
	OpRet:        "Ret",
	OpCls:        "Cls",
	OpSprite:     "Sprite",
	OpStash:      "Stash",
	OpFetch:      "Fetch",
	OpWaitKey:    "WaitKey",
}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", o)
}

// SkipOperations can advance the program counter past the next instruction.
var SkipOperations = newOperationSet(OpSkipEq, OpSkipNeq, OpSkipKey, OpSkipNKey)

// BranchOperations transfer control to an address encoded in the instruction.
var BranchOperations = newOperationSet(OpJump, OpJumpV0, OpCall)

func newOperationSet(ops ...Operation) set.Set[Operation] {
	s := set.New[Operation]()
	for _, op := range ops {
		s.Add(op)
	}
	return s
}
