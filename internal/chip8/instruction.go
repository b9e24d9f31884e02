package chip8

import "fmt"

// Instruction is a decoded instruction word. An instruction without a
// definition is the invalid pseudo instruction of an undecodable word.
type Instruction struct {
	Word uint16
	Def  *Definition

	Dest Operand
	Src  Operand
	Aux  Operand
}

// Decode returns the instruction for a 16 bit instruction word.
// Words that match no definition decode to an invalid instruction.
func Decode(word uint16) Instruction {
	for i := range Table {
		def := &Table[i]
		if !def.Matches(word) {
			continue
		}

		dest, src, aux := def.fields(word)
		return Instruction{
			Word: word,
			Def:  def,
			Dest: newOperand(def.Dest, dest),
			Src:  newOperand(def.Src, src),
			Aux:  newOperand(def.Aux, aux),
		}
	}
	return Instruction{Word: word}
}

// Op returns the operation of the instruction.
func (i Instruction) Op() Operation {
	if i.Def == nil {
		return OpInvalid
	}
	return i.Def.Op
}

// IsValid returns whether the word matched an instruction definition.
func (i Instruction) IsValid() bool {
	return i.Def != nil
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	if i.Def == nil {
		return ""
	}
	return i.Def.Name
}

// String returns the assembly notation of the instruction.
func (i Instruction) String() string {
	if i.Def == nil {
		return fmt.Sprintf(".word $%04X", i.Word)
	}
	return i.Def.format(i.Dest, i.Src, i.Aux)
}
