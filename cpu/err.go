package cpu

import (
	"errors"

	"github.com/ezrec/hack16/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// ErrMnemonic reports an unknown mnemonic and the field it appeared
// in.
type ErrMnemonic struct {
	Field string
	Token string
}

func (err *ErrMnemonic) Error() string {
	return f("unknown %v mnemonic '%v'", err.Field, err.Token)
}

// ErrSyntax locates an assembly failure in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a 15-bit constant", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrCompCode reports an instruction word whose comp field decodes to
// no defined operation.
type ErrCompCode uint16

func (err ErrCompCode) Error() string {
	return f("bad opcode 0x%04x: undefined comp field", uint16(err))
}
