package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInstruction is returned when executing a word that matches no definition.
	ErrUnknownInstruction = errors.New("unknown instruction")
	// ErrInvalidOperand indicates an instruction definition whose operand kinds
	// do not fit its operation.
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrStackUnderflow is returned by a return without a matching call.
	ErrStackUnderflow = errors.New("call stack underflow")
	// ErrStackOverflow is returned by a call that exceeds the call stack depth.
	ErrStackOverflow = errors.New("call stack overflow")
)

// OperandError describes an operand that can not be accessed the requested way.
type OperandError struct {
	Operand Operand
	Access  string // "load" or "store"
}

func (e *OperandError) Error() string {
	return fmt.Sprintf("%s: can not %s %s operand", ErrInvalidOperand, e.Access, e.Operand.Kind)
}

func (e *OperandError) Unwrap() error {
	return ErrInvalidOperand
}

// ExecutionError wraps an error that occurred executing the instruction at an address.
type ExecutionError struct {
	Address     uint16
	Instruction Instruction
	Err         error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s ($%04X) at $%03X: %v", e.Instruction, e.Instruction.Word, e.Address, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// IsGuestError returns whether the error was caused by the running program
// rather than by the interpreter.
func IsGuestError(err error) bool {
	return errors.Is(err, ErrStackUnderflow) || errors.Is(err, ErrStackOverflow)
}
