// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Assembler is the two pass translator from symbolic source lines to
// instruction words. A fresh SymbolTable is created for every Parse,
// so no state leaks between runs.
type Assembler struct {
	Verbose bool         // If set, verbosely logs the assembler actions.
	Symbols *SymbolTable // Table of the most recent Parse.
}

// parenEval does compile-time $(...) evaluations. The predefined
// symbols are in scope as integers.
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for name, addr := range Builtins() {
		pred[name] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// stripLine reduces a source line to its instruction token: comment
// removal, $() evaluation, then whitespace removal. Comments are cut
// first, so their text never reaches the evaluator. An empty token
// means the line emits nothing.
func (asm *Assembler) stripLine(line string) (token string, err error) {
	line, _, _ = strings.Cut(line, "//")

	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.Itoa(value)
	})
	if err != nil {
		return
	}

	token = strings.Join(strings.Fields(line), "")
	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Symbols = NewSymbolTable()

	var lineno int
	var line string

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	// Pass 1: strip lines, bind labels, keep real instructions in
	// source order. A label binds to the index of the next real
	// instruction and emits nothing itself.
	var insts []Instruction

	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var token string
		token, err = asm.stripLine(line)
		if err != nil {
			return
		}
		if len(token) == 0 {
			continue
		}

		if token[0] == '(' {
			label := strings.Trim(token, "()")
			asm.Symbols.Add(label, len(insts))
			continue
		}

		insts = append(insts, Instruction{LineNo: lineno, Text: token})
	}
	if err = scanner.Err(); err != nil {
		return
	}

	// Pass 2: encode. Labels are all bound by now, so forward label
	// references resolve; unseen symbols become fresh variables on
	// first occurrence.
	for n := range insts {
		inst := &insts[n]
		lineno, line = inst.LineNo, inst.Text

		inst.Word, err = asm.encode(inst.Text)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Instructions: insts,
	}

	return
}

// isNumeric reports whether a token is all decimal digits.
func isNumeric(token string) bool {
	if len(token) == 0 {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// encode translates one stripped instruction token into a word.
func (asm *Assembler) encode(token string) (word uint16, err error) {
	if token[0] == '@' {
		return asm.encodeA(token[1:])
	}

	return asm.encodeC(token)
}

// encodeA encodes an address load from a decimal literal or a symbol.
// An unresolved symbol is never an error: it becomes the next fresh
// variable.
func (asm *Assembler) encodeA(name string) (word uint16, err error) {
	if isNumeric(name) {
		var value uint64
		value, err = strconv.ParseUint(name, 10, 15)
		if err != nil {
			err = ErrParseNumber(name)
			return
		}
		word = makeCodeA(int(value))
		return
	}

	addr, ok := asm.Symbols.Get(name)
	if !ok {
		addr = asm.Symbols.Allocate(name)
		if asm.Verbose {
			log.Printf("var %v = %v", name, addr)
		}
	}
	word = makeCodeA(addr)
	return
}

// encodeC encodes a dest=comp, comp;jump, or dest=comp;jump
// instruction.
func (asm *Assembler) encodeC(token string) (word uint16, err error) {
	fields := strings.FieldsFunc(token, func(r rune) bool {
		return r == '=' || r == ';'
	})

	var comp *compOp
	var dest Dest
	var jump Jump

	switch len(fields) {
	case 2:
		if j, is_jump := jumpByName[fields[1]]; is_jump {
			// comp;jump. A purely numeric comp field encodes the
			// constant 0.
			jump = j
			if isNumeric(fields[0]) {
				comp = compByName["0"]
			} else {
				comp, err = asm.getComp(fields[0])
			}
		} else {
			// dest=comp
			dest, err = asm.getDest(fields[0])
			if err != nil {
				return
			}
			comp, err = asm.getComp(fields[1])
		}
	case 3:
		dest, err = asm.getDest(fields[0])
		if err != nil {
			return
		}
		comp, err = asm.getComp(fields[1])
		if err != nil {
			return
		}
		jump, err = asm.getJump(fields[2])
	default:
		err = ErrInstructionInvalid
	}
	if err != nil {
		return
	}

	word = makeCodeC(comp, dest, jump)
	return
}

// getComp looks up a comp mnemonic.
func (asm *Assembler) getComp(token string) (comp *compOp, err error) {
	comp, ok := compByName[token]
	if !ok {
		err = &ErrMnemonic{Field: "comp", Token: token}
	}
	return
}

// getDest looks up a dest mnemonic.
func (asm *Assembler) getDest(token string) (dest Dest, err error) {
	dest, ok := destByName[token]
	if !ok {
		err = &ErrMnemonic{Field: "dest", Token: token}
	}
	return
}

// getJump looks up a jump mnemonic.
func (asm *Assembler) getJump(token string) (jump Jump, err error) {
	jump, ok := jumpByName[token]
	if !ok {
		err = &ErrMnemonic{Field: "jump", Token: token}
	}
	return
}
