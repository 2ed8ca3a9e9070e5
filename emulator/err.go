package emulator

import (
	"github.com/ezrec/hack16/translate"
)

var f = translate.From

// ErrWord reports a malformed binary text word.
type ErrWord struct {
	LineNo int
	Word   string
}

func (err *ErrWord) Error() string {
	return f("line %d '%v' is not a 16-bit binary word", err.LineNo, err.Word)
}

// ErrRuntime locates a runtime failure.
type ErrRuntime struct {
	Pc     int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("pc %d line %d %v", err.Pc, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
