// Package listing writes an assembly listing of a CHIP-8 program.
// Code is separated from data by following the control flow from the
// program start, bytes that are never reached are written as data.
package listing

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

const bytesPerDataLine = 8

// Options contains the listing output options.
type Options struct {
	HexComments bool // comment instructions with their encoded bytes
	Offsets     bool // comment lines with their address
	ZeroBytes   bool // keep trailing zero bytes of the program
}

// DefaultOptions returns the default listing options.
func DefaultOptions() Options {
	return Options{
		HexComments: true,
		Offsets:     true,
	}
}

type labelKind int

// label kinds in increasing priority.
const (
	labelData labelKind = iota + 1
	labelJump
	labelSub
	labelStart
)

type label struct {
	kind labelKind
	name string
}

// Listing contains the analyzed program.
type Listing struct {
	program []byte
	opts    Options

	code   set.Set[uint16]
	labels map[uint16]label
}

// New analyzes the program loaded at the program start address.
func New(ctx context.Context, program []byte, opts Options) (*Listing, error) {
	l := &Listing{
		program: program,
		opts:    opts,
		code:    set.New[uint16](),
		labels:  map[uint16]label{},
	}
	if err := l.trace(ctx); err != nil {
		return nil, err
	}
	return l, nil
}

// IsCode returns whether an instruction starts at the address.
func (l *Listing) IsCode(address uint16) bool {
	return l.code.Contains(address)
}

// Label returns the label name of an address.
func (l *Listing) Label(address uint16) (string, bool) {
	lbl, ok := l.labels[address]
	return lbl.name, ok
}

// trace follows all code paths from the program start.
func (l *Listing) trace(ctx context.Context) error {
	l.addLabel(chip8.ProgramStart, labelStart)

	visited := set.New[uint16]()
	queue := []uint16{chip8.ProgramStart}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("tracing code: %w", err)
		}

		address := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if visited.Contains(address) {
			continue
		}
		visited.Add(address)

		word, ok := l.word(address)
		if !ok {
			continue
		}
		ins := chip8.Decode(word)
		if !ins.IsValid() {
			continue // unknown words are data
		}
		l.code.Add(address)

		next := address + chip8.InstructionSize
		op := ins.Op()

		switch {
		case op == chip8.OpCall:
			target := ins.Dest.Value
			l.addLabel(target, labelSub)
			queue = append(queue, next, target)

		case chip8.BranchOperations.Contains(op):
			target := ins.Dest.Value
			l.addLabel(target, labelJump)
			queue = append(queue, target)

		case chip8.SkipOperations.Contains(op):
			queue = append(queue, next+chip8.InstructionSize, next)

		case op == chip8.OpLoad && ins.Dest.Kind == chip8.KindIndex:
			l.addLabel(ins.Src.Value, labelData)
			queue = append(queue, next)

		case op == chip8.OpRet:
			// end of subroutine

		default:
			queue = append(queue, next)
		}
	}
	return nil
}

func (l *Listing) addLabel(address uint16, kind labelKind) {
	if existing, ok := l.labels[address]; ok && existing.kind >= kind {
		return
	}

	var name string
	switch kind {
	case labelStart:
		name = "Start"
	case labelSub:
		name = fmt.Sprintf("Sub_%03X", address)
	case labelJump:
		name = fmt.Sprintf("L_%03X", address)
	default:
		name = fmt.Sprintf("Data_%03X", address)
	}
	l.labels[address] = label{kind: kind, name: name}
}

// word returns the instruction word at the address if it is inside the program.
func (l *Listing) word(address uint16) (uint16, bool) {
	if address < chip8.ProgramStart {
		return 0, false
	}
	i := int(address - chip8.ProgramStart)
	if i+1 >= len(l.program) {
		return 0, false
	}
	return uint16(l.program[i])<<8 | uint16(l.program[i+1]), true
}

// WriteTo writes the listing in assembler syntax.
func (l *Listing) WriteTo(w io.Writer) (int64, error) {
	var buf strings.Builder
	buf.WriteString("; CHIP-8 program listing\n")
	fmt.Fprintf(&buf, "; %d bytes\n\n", len(l.program))
	buf.WriteString(".org $200\n\n")

	end := l.endIndex()
	for i := 0; i < end; {
		address := uint16(chip8.ProgramStart + i)
		if lbl, ok := l.labels[address]; ok {
			fmt.Fprintf(&buf, "%s:\n", lbl.name)
		}

		if l.isCodeLine(address, end) {
			ins := chip8.Decode(uint16(l.program[i])<<8 | uint16(l.program[i+1]))
			l.writeLine(&buf, "    "+ins.String(), address, l.program[i:i+2])
			i += chip8.InstructionSize
			continue
		}

		n := l.dataLength(i, end)
		l.writeData(&buf, address, l.program[i:i+n])
		i += n
	}

	n, err := io.WriteString(w, buf.String())
	if err != nil {
		return int64(n), fmt.Errorf("writing listing: %w", err)
	}
	return int64(n), nil
}

// isCodeLine returns whether an instruction is written at the address. An
// instruction whose second byte is a label target is written as data.
func (l *Listing) isCodeLine(address uint16, end int) bool {
	if !l.code.Contains(address) {
		return false
	}
	if int(address-chip8.ProgramStart)+chip8.InstructionSize > end {
		return false
	}
	_, labeled := l.labels[address+1]
	return !labeled
}

// dataLength returns the number of data bytes at index i that fit on one line.
func (l *Listing) dataLength(i, end int) int {
	n := 1
	for ; n < bytesPerDataLine && i+n < end; n++ {
		address := uint16(chip8.ProgramStart + i + n)
		if _, ok := l.labels[address]; ok || l.code.Contains(address) {
			break
		}
	}
	return n
}

func (l *Listing) writeData(buf *strings.Builder, address uint16, data []byte) {
	var line strings.Builder
	fmt.Fprintf(&line, "    .byte $%02X", data[0])
	for _, b := range data[1:] {
		fmt.Fprintf(&line, ", $%02X", b)
	}
	l.writeLine(buf, line.String(), address, nil)
}

func (l *Listing) writeLine(buf *strings.Builder, line string, address uint16, data []byte) {
	var comment []string
	if l.opts.Offsets {
		comment = append(comment, fmt.Sprintf("$%04X", address))
	}
	if l.opts.HexComments {
		for _, b := range data {
			comment = append(comment, fmt.Sprintf("%02X", b))
		}
	}

	if len(comment) == 0 {
		fmt.Fprintf(buf, "%s\n", line)
		return
	}
	fmt.Fprintf(buf, "%-32s ; %s\n", line, strings.Join(comment, " "))
}

// endIndex returns the index after the last byte that is written, trailing
// zero bytes that are not code or labeled are dropped.
func (l *Listing) endIndex() int {
	if l.opts.ZeroBytes {
		return len(l.program)
	}

	for i := len(l.program) - 1; i >= 0; i-- {
		address := uint16(chip8.ProgramStart + i)
		if l.program[i] != 0 {
			return i + 1
		}
		if _, ok := l.labels[address]; ok {
			return i + 1
		}
		if l.code.Contains(address) || (i > 0 && l.code.Contains(address-1)) {
			return i + 1
		}
	}
	return 0
}

// Write analyzes the program and writes its listing.
func Write(ctx context.Context, w io.Writer, program []byte, opts Options) error {
	l, err := New(ctx, program, opts)
	if err != nil {
		return err
	}
	_, err = l.WriteTo(w)
	return err
}
