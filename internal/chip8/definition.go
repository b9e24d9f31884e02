package chip8

import (
	"fmt"
	"strings"
)

// Coding markers identify which decoded field a nibble of the coding belongs to.
// Every other coding character is a fixed upper case hexadecimal nibble.
const (
	fieldDest = 'd'
	fieldSrc  = 's'
	fieldAux  = 'a'
)

// Definition couples an opcode bit pattern with the operand kinds of its
// slots and the operation to perform.
type Definition struct {
	Op   Operation
	Dest OperandKind
	Src  OperandKind
	Aux  OperandKind

	// Coding is the 4 nibble pattern, most significant nibble first,
	// for example "8ds4".
	Coding string
	// Name is the assembler mnemonic.
	Name string
	// Operands is the operand template, {d} {s} {a} are replaced by the
	// operand notation and {s:x} by the raw hex digit of the source.
	Operands string

	Mask  uint16
	Value uint16
}

// newDefinition returns a definition with mask and value computed from its coding.
func newDefinition(op Operation, name, operands, coding string, dest, src, aux OperandKind) Definition {
	mask, value, err := compileCoding(coding)
	if err != nil {
		panic(fmt.Sprintf("instruction %s: %v", name, err))
	}
	return Definition{
		Op:       op,
		Dest:     dest,
		Src:      src,
		Aux:      aux,
		Coding:   coding,
		Name:     name,
		Operands: operands,
		Mask:     mask,
		Value:    value,
	}
}

// compileCoding derives the match mask and value from a nibble coding.
func compileCoding(coding string) (uint16, uint16, error) {
	if len(coding) != 4 {
		return 0, 0, fmt.Errorf("coding %q does not have 4 nibbles", coding)
	}

	var mask, value uint16
	for _, c := range []byte(coding) {
		mask <<= 4
		value <<= 4

		switch c {
		case fieldDest, fieldSrc, fieldAux:
			continue
		}

		nibble, ok := hexNibble(c)
		if !ok {
			return 0, 0, fmt.Errorf("coding %q has invalid nibble %q", coding, c)
		}
		mask |= 0xF
		value |= uint16(nibble)
	}
	return mask, value, nil
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Matches returns whether the word is encoded by this definition.
func (d *Definition) Matches(word uint16) bool {
	return word&d.Mask == d.Value&d.Mask
}

// FixedNibbles returns the number of constant nibbles of the coding.
func (d *Definition) FixedNibbles() int {
	n := 0
	for shift := 0; shift < 16; shift += 4 {
		if d.Mask>>shift&0xF != 0 {
			n++
		}
	}
	return n
}

// fields extracts the raw destination, source and auxiliary values of a word.
func (d *Definition) fields(word uint16) (dest, src, aux uint16) {
	for i, c := range []byte(d.Coding) {
		nibble := word >> (12 - 4*i) & 0xF
		switch c {
		case fieldDest:
			dest = dest<<4 | nibble
		case fieldSrc:
			src = src<<4 | nibble
		case fieldAux:
			aux = aux<<4 | nibble
		}
	}
	return dest, src, aux
}

// format renders the operand template for the given operands.
func (d *Definition) format(dest, src, aux Operand) string {
	if d.Operands == "" {
		return d.Name
	}
	r := strings.NewReplacer(
		"{d}", dest.String(),
		"{s}", src.String(),
		"{a}", aux.String(),
		"{s:x}", fmt.Sprintf("%X", src.Value),
	)
	return d.Name + " " + r.Replace(d.Operands)
}
