package cpu

import (
	"fmt"
	"iter"
)

// Instruction is a single assembled instruction with its source
// position.
type Instruction struct {
	LineNo int    // Source line number.
	Text   string // Stripped source text.
	Word   uint16 // Encoded instruction word.
}

// Program is an assembled instruction stream.
type Program struct {
	Instructions []Instruction
}

// Words iterates instruction words in address order.
func (prog *Program) Words() iter.Seq2[int, uint16] {
	return func(yield func(pc int, word uint16) bool) {
		for n, inst := range prog.Instructions {
			if !yield(n, inst.Word) {
				return
			}
		}
	}
}

// Binary renders the program as 16-character binary words.
func (prog *Program) Binary() (words []string) {
	for _, word := range prog.Words() {
		words = append(words, fmt.Sprintf("%016b", word))
	}

	return
}

// LineNo returns the source line for an instruction address, or 0 when
// the address is outside the program.
func (prog *Program) LineNo(pc int) int {
	if pc < 0 || pc >= len(prog.Instructions) {
		return 0
	}

	return prog.Instructions[pc].LineNo
}
